// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tootctl/tootctl/internal/config"
	"github.com/tootctl/tootctl/internal/meta"
)

// ConfigDirEnv overrides the default configuration directory.
const ConfigDirEnv = "TOOTCTL_CONFIG_DIR"

func InitApp(_ context.Context, args []string) (*cli.Command, error) {

	// Flag defaults are read from config.yaml through altsrc, so the
	// directory has to be known before cli parses anything.
	dir, err := resolveConfigDir(args)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}

	meta := meta.Meta{
		ConfigDir:  dir,
		ConfigFile: config.FilePath(dir),
	}

	app := &cli.Command{
		Name:  config.AppName,
		Usage: "Mastodon account control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "tootctl version info",
				HideDefault: true,
			},
			&cli.StringFlag{
				Name:  "config-dir",
				Usage: "directory holding config.yaml",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar(ConfigDirEnv),
				),
				Value: dir,
			},
		},
	}

	app.Commands = append(app.Commands,
		initCommandBuilder(meta),
		postsCommandBuilder(meta),
		postCommandBuilder(meta),
		configCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

// resolveConfigDir picks the configuration directory from --config-dir in
// args, then TOOTCTL_CONFIG_DIR, then the platform default.
func resolveConfigDir(args []string) (string, error) {
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		for _, name := range []string{"--config-dir", "-config-dir"} {
			if arg == name {
				if i+1 >= len(args) {
					return "", fmt.Errorf("flag needs an argument: %s", name)
				}
				return args[i+1], nil
			}
			if v, ok := strings.CutPrefix(arg, name+"="); ok {
				return v, nil
			}
		}
	}

	if env := os.Getenv(ConfigDirEnv); env != "" {
		return env, nil
	}

	return config.DefaultDir()
}
