// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tootctl/tootctl/internal/config"
	"github.com/tootctl/tootctl/internal/meta"
	"github.com/tootctl/tootctl/internal/session"
)

// initCommandAction registers tootctl with the instance if needed, logs in
// and reports the account.
func initCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)

	if cmd.Bool("create") {
		created, err := config.EnsureFile(m.ConfigDir)
		if err != nil {
			return err
		}
		if created {
			log.Infof("created %s", m.ConfigFile)
		}
	}

	s, err := newSession(ctx, cmd, session.Options{
		BaseURL:  cmd.String("base-url"),
		Username: cmd.String("username"),
	})
	if err != nil {
		return err
	}

	acct := s.Account()
	fmt.Fprintf(stdout(cmd), "Logged in as %s (id %s) on %s\n", acct.Acct, acct.ID, s.Config().BaseURL())
	return nil
}

func initCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "register with an instance and log in",
		UsageText: "tootctl init [--base-url URL] [--username EMAIL] [--create]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Aliases: []string{"b"},
				Usage:   "instance URL, only on the first run",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("TOOTCTL_BASE_URL"),
				),
			},
			&cli.BoolFlag{
				Name:  "create",
				Usage: "create the configuration directory and file if missing",
			},
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "account email, saved to config.yaml",
			},
		},
		Action: initCommandAction,
	}
}
