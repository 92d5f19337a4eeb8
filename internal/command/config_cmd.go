// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tootctl/tootctl/internal/config"
	"github.com/tootctl/tootctl/internal/meta"
	"github.com/tootctl/tootctl/internal/output"
)

// configCommandAction prints the configuration with secrets masked. It never
// talks to the instance.
func configCommandAction(_ context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)

	cfg, err := config.Load(m.ConfigDir)
	if err != nil {
		return err
	}
	redacted := cfg.Redacted()

	if key := cmd.Args().First(); key != "" {
		value, err := redacted.Lookup(key)
		if err != nil {
			return &config.Error{Path: m.ConfigFile, Err: err}
		}
		if s := output.InterfaceToString(value); s != "" {
			fmt.Fprintln(stdout(cmd), s)
		}
		return nil
	}

	raw, err := config.Marshal(redacted)
	if err != nil {
		return err
	}
	_, err = stdout(cmd).Write(raw)
	return err
}

func configCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "config",
		Usage:     "show the configuration with secrets masked",
		UsageText: "tootctl config [KEY]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: configCommandAction,
	}
}
