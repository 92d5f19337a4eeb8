package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tootctl/tootctl/internal/command"
)

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Subcommand struct {
	ID    string
	Short string
	Usage string
	Flags []Flag
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

const mdTemplate = `# tootctl {{ .ID }}

{{ .Short }}

## Usage

    {{ .Usage }}
{{ if .Flags }}
## Flags

| flag | description | default |
|------|-------------|---------|
{{- range .Flags }}
| ` + "`{{ .Syntax }}`" + ` | {{ .Description }} | {{ .Default }} |
{{- end }}
{{ end }}
_tootctl {{ .Version }}, {{ .Date }}_
`

const manTemplate = `.TH TOOTCTL-{{ .IDUpper }} 1 "{{ .Date }}" "tootctl {{ .Version }}"
.SH NAME
tootctl-{{ .ID }} \- {{ .Short }}
.SH SYNOPSIS
{{ .Usage }}
{{- if .Flags }}
.SH OPTIONS
{{- range .Flags }}
.TP
.B {{ .Syntax }}
{{ .Description }}{{ if .Default }} (default {{ .Default }}){{ end }}
{{- end }}
{{- end }}
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(2)
	}
	docs := os.Args[1]

	// The config dir only feeds flag defaults, which are not documented.
	app, err := command.InitApp(context.Background(), []string{"tootctl", "--config-dir", os.TempDir()})
	if err != nil {
		panic(err)
	}

	types := []Outputs{
		{Template: mdTemplate, Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: manTemplate, Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "tootctl-", Suffix: ".1"},
	}

	for _, sub := range subcommands(app) {
		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    getVersion(),
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0755); err != nil {
				panic(err)
			}

			path := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			fmt.Println("Generating", path)
			file, err := os.Create(path)
			if err != nil {
				panic(err)
			}

			if err := render(file, t.Template, metadata); err != nil {
				panic(err)
			}

			file.Close()
		}
	}
}

// subcommands describes every subcommand of app, flags sorted by name.
func subcommands(app *cli.Command) []Subcommand {
	subs := make([]Subcommand, 0, len(app.Commands))
	for _, c := range app.Commands {
		sub := Subcommand{
			ID:    c.Name,
			Short: c.Usage,
			Usage: c.UsageText,
		}

		for _, f := range c.Flags {
			names := f.Names()
			syntax := make([]string, 0, len(names))
			for _, n := range names {
				if len(n) == 1 {
					syntax = append(syntax, "-"+n)
				} else {
					syntax = append(syntax, "--"+n)
				}
			}

			flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
			if df, ok := f.(cli.DocGenerationFlag); ok {
				flag.Description = df.GetUsage()
				if df.TakesValue() {
					flag.Default = df.GetValue()
				}
			}
			sub.Flags = append(sub.Flags, flag)
		}

		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})
		subs = append(subs, sub)
	}
	return subs
}

func render(w io.Writer, text string, data TemplateData) error {
	tmpl, err := template.New("doc").Parse(text)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
