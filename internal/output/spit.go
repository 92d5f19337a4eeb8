// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/tootctl/tootctl/internal/attrs"
)

// Formats lists the accepted --output values.
var Formats = []string{"text", "json", "yaml", "raw"}

// Options are the presentation flags shared by every command that prints
// posts.
type Options struct {
	Format string
	Titles bool
	Color  bool
	// Padding is the left padding of every text column after the first.
	Padding int
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Counts are the only numbers in a status, so no fraction is shown.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Rows extracts the attrs of every record in results (a value or a slice)
// and applies each attr's transform.
func Rows(results any, al attrs.AttrList) ([]map[string]interface{}, error) {
	raw, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results: %w", err)
	}

	doc := gjson.ParseBytes(raw)
	records := []gjson.Result{doc}
	if doc.IsArray() {
		records = doc.Array()
	}

	rows := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		row := make(map[string]interface{}, len(al))
		for _, attr := range al {
			value := rec.Get(attr.Key).Value()
			if attr.TransformSpec != "" {
				value = attr.Transform(value)
			}
			row[attr.OutputKey] = value
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Spit renders results to w in the format selected by opts. If w is nil,
// os.Stdout is used.
func Spit(w io.Writer, results any, al attrs.AttrList, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump the API payload and go home.
	if opts.Format == "raw" {
		raw, err := json.Marshal(results)
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}

	rows, err := Rows(results, al)
	if err != nil {
		return err
	}

	switch opts.Format {
	case "json":
		jsonOutput, err := json.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	default:
		TableWriter(w, rows, al, opts)
		return nil
	}
}

// TableWriter renders the result set in a tabular form honoring color, titles
// and padding options.
func TableWriter(w io.Writer, resultSet []map[string]interface{}, al attrs.AttrList, opts Options) {
	// We return early if there are no results to display.
	if len(resultSet) == 0 {
		log.Debug("no rows to render")
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors()

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(al))
		for _, attr := range al {
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	pad := max(opts.Padding, 0)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(al.OutputKeys()...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors picks header, even and odd row colors that stay readable on the
// terminal's background.
func getColors() (header, even, odd color.Color) {
	if lipgloss.HasDarkBackground(os.Stdin, os.Stdout) {
		return lipgloss.Color("#f6be00"), lipgloss.Color("#ffffff"), lipgloss.Color("#00c8f0")
	}
	return lipgloss.Color("#b08800"), lipgloss.Color("#333333"), lipgloss.Color("#0088a0")
}
