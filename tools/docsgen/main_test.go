package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tootctl/tootctl/internal/command"
)

func TestSubcommands(t *testing.T) {
	app, err := command.InitApp(context.Background(), []string{"tootctl", "--config-dir", t.TempDir()})
	require.NoError(t, err)

	subs := subcommands(app)
	byID := map[string]Subcommand{}
	for _, s := range subs {
		byID[s.ID] = s
	}
	require.Contains(t, byID, "posts")

	var limit *Flag
	for i, f := range byID["posts"].Flags {
		if f.ID == "limit" {
			limit = &byID["posts"].Flags[i]
		}
	}
	require.NotNil(t, limit)
	assert.Equal(t, "--limit, -l", limit.Syntax)
	assert.Equal(t, "limit posts returned", limit.Description)
}

func TestRender(t *testing.T) {
	data := TemplateData{
		Subcommand: Subcommand{
			ID:    "posts",
			Short: "list your recent posts",
			Usage: "tootctl posts [options]",
			Flags: []Flag{{ID: "limit", Syntax: "--limit, -l", Description: "limit posts returned", Default: "20"}},
		},
		Date:    "January 2, 2026",
		Version: "dev",
		IDUpper: "POSTS",
	}

	var md bytes.Buffer
	require.NoError(t, render(&md, mdTemplate, data))
	assert.Contains(t, md.String(), "# tootctl posts")
	assert.Contains(t, md.String(), "| `--limit, -l` | limit posts returned | 20 |")

	var man bytes.Buffer
	require.NoError(t, render(&man, manTemplate, data))
	assert.Contains(t, man.String(), ".TH TOOTCTL-POSTS 1")
	assert.Contains(t, man.String(), "(default 20)")
}
