// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tootctl/tootctl/internal/meta"
)

// SessionCommandBuilder constructs a cli.Command for subcommands that log in
// and print posts (posts, post). The builder wires metadata and adds the
// schema and output flags.
type SessionCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (scb *SessionCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      scb.Name,
		Usage:     scb.Usage,
		UsageText: scb.UsageText,
		Metadata: map[string]any{
			"meta": scb.Meta,
		},
		Flags: append(scb.Flags, append([]cli.Flag{
			schemaFlag,
		}, NewGlobalFlags(scb.Meta.ConfigFile)...)...),
		Action: scb.Action,
	}
}
