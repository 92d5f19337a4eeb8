// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tootctl/tootctl/internal/session"
)

// DefaultLimit is the number of posts listed when nothing else says
// otherwise.
const DefaultLimit = 20

var schemaFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:        "schema",
	Usage:       "list the attributes available to --attrs",
	HideDefault: true,
}

// NewGlobalFlags returns the output flags shared by every command that prints
// posts. configFile supplies defaults.output.
func NewGlobalFlags(configFile string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		ValueChainFlagFromConfigFile(configFile, "defaults.output", &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TOOTCTL_OUTPUT"),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		}),
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text output columns",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TOOTCTL_PADDING"),
			),
			Value: 1,
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewLimitFlag constructs the --limit flag. Its value comes from the flag,
// then TOOTCTL_LIMIT, then defaults.limit in configFile, then DefaultLimit.
func NewLimitFlag(configFile string) *cli.IntFlag {
	flag := &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"l"},
		Usage:   "limit posts returned",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TOOTCTL_LIMIT"),
		),
		Value: DefaultLimit,
		Validator: func(value int) error {
			return FlagValidators(value, LimitValidator)
		},
	}
	flag.Sources.Chain = append(flag.Sources.Chain,
		yaml.YAML("defaults.limit", altsrc.StringSourcer(configFile)))

	return flag
}

// NewVisibilityFlag constructs the --visibility flag with defaults.visibility
// from configFile as a fallback.
func NewVisibilityFlag(configFile string) *cli.StringFlag {
	return ValueChainFlagFromConfigFile(configFile, "defaults.visibility", &cli.StringFlag{
		Name:    "visibility",
		Aliases: []string{"V"},
		Usage:   "post visibility: public, unlisted, private or direct",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TOOTCTL_VISIBILITY"),
		),
		Value: string(session.Public),
		Validator: func(value string) error {
			return FlagValidators(value, VisibilityValidator)
		},
	})
}

// ValueChainFlagFromConfigFile appends the config file key to the given
// flag's Sources chain, after any environment variables.
func ValueChainFlagFromConfigFile(path string, key string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
