// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/net/html"

	"github.com/tootctl/tootctl/internal/log"
)

// Attr is one output column. Key is a gjson path into a post's JSON
// rendering (e.g. "account.acct").
type Attr struct {
	// The gjson path to extract from the result JSON object.
	Key string `yaml:"key" json:"Key"`
	// The key to use in the output. This is also used as the column title when
	// output=text.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

var lengthRe = regexp.MustCompile(`-?\d+`)

// Transform applies the attribute's transform spec to a value and returns the
// transformed result. Only string values are transformed.
//
//	h  HTML to plain text
//	t  UTC timestamp to local time
//	T  timestamp to "time ago"
//	l  lower case, u upper case (last one wins)
//	N  truncate to N characters; -N keeps both ends around ".."
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: value=%v", value)
		return value
	}

	if strings.Contains(a.TransformSpec, "h") {
		result = HTMLToText(result)
	}

	// Convert UTC time to local or time ago.
	if strings.ContainsAny(a.TransformSpec, "tT") {
		if t, err := time.Parse(time.RFC3339, result); err == nil {
			if strings.Contains(a.TransformSpec, "T") {
				result = humanize.Time(t)
				log.Tracef("time ago: result=%s", result)
			} else {
				result = t.Local().Format("2006-01-02T15:04:05MST")
				log.Tracef("time local: result=%s", result)
			}
		}
	}

	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	if match := lengthRe.FindAllString(a.TransformSpec, -1); len(match) != 0 {
		// Take the last (overriding) match.
		l, _ := strconv.Atoi(match[len(match)-1])
		abs := int(math.Abs(float64(l)))
		runes := []rune(result)
		if abs > 0 && len(runes) > abs {
			if l < 0 && abs > 4 {
				lr := abs/2 - 1
				result = string(runes[:lr]) + ".." + string(runes[len(runes)-lr:])
				log.Tracef("length middle: result=%s", result)
			} else {
				result = string(runes[:abs])
				log.Tracef("length trunc: result=%s", result)
			}
		}
	}

	return result
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Set parses a comma-separated list of specs and appends them. Each spec has
// up to three colon-delimited fields: gjson path, output key, transform. The
// output key defaults to the last segment of the path. A spec whose path is
// already present replaces the earlier one.
func (a *AttrList) Set(value string) error {
	if value == "" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	for _, spec := range strings.Split(value, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		fields := strings.Split(spec, ":")
		if len(fields) > 3 || fields[keyIdx] == "" {
			return fmt.Errorf("invalid attr spec %q", spec)
		}

		attr := Attr{Key: fields[keyIdx]}
		if len(fields) > outputIdx && fields[outputIdx] != "" {
			attr.OutputKey = fields[outputIdx]
		} else {
			parts := strings.Split(attr.Key, ".")
			attr.OutputKey = parts[len(parts)-1]
		}
		if len(fields) > transformIdx {
			attr.TransformSpec = fields[transformIdx]
		}

		replaced := false
		for i := range *a {
			if (*a)[i].Key == attr.Key {
				(*a)[i] = attr
				replaced = true
				break
			}
		}
		if !replaced {
			*a = append(*a, attr)
		}
	}

	log.Debugf("attrs: %v", *a)
	return nil
}

// OutputKeys returns the column titles in order.
func (a AttrList) OutputKeys() []string {
	keys := make([]string, 0, len(a))
	for _, attr := range a {
		keys = append(keys, attr.OutputKey)
	}
	return keys
}

// HTMLToText flattens status HTML to a single line of text. Paragraph and
// line breaks become spaces; entities are decoded.
func HTMLToText(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br", "p":
				b.WriteByte(' ')
			}
		}
	}
}
