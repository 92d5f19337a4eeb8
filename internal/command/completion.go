// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tootctl/tootctl/internal/meta"
)

const bashCompletionScript = `# bash completion for tootctl
_tootctl()
{
    local cur prev cmd
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "init posts post config completion --config-dir --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --output -o --schema --titles -t"

    case "$prev" in
    --output|-o)
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
        ;;
    --visibility|-V)
        COMPREPLY=( $(compgen -W "public unlisted private direct" -- "$cur") )
        return 0
        ;;
    --config-dir)
        COMPREPLY=( $(compgen -o dirnames -- "$cur") )
        return 0
        ;;
    esac

    case "$cmd" in
    init)
        local opts="--base-url -b --create --username -u"
        ;;
    posts)
        local opts="$common --limit -l"
        ;;
    post)
        local opts="$common --edit -e --reply-to -r --visibility -V"
        ;;
    config)
        local opts="instance.base_url application.client_id user.username defaults"
        ;;
    completion)
        local opts="bash zsh"
        ;;
    *)
        local opts=""
        ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _tootctl tootctl
`

const zshCompletionScript = `#compdef tootctl

_tootctl() {
  local -a cmds
  cmds=(
    'init:register with an instance and log in'
    'posts:list your recent posts'
    'post:publish a post'
    'config:show the configuration with secrets masked'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--schema[list attributes]'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'tootctl commands' cmds
    return
  fi

  case $words[2] in
    init)
      _arguments -C \
        '(-b --base-url)'{-b,--base-url}'[instance URL]:url' \
        '--create[create config.yaml if missing]' \
        '(-u --username)'{-u,--username}'[account email]:email'
      ;;
    posts)
      _arguments -C \
        $common \
        '(-l --limit)'{-l,--limit}'[limit posts returned]:limit'
      ;;
    post)
      _arguments -C \
        $common \
        '(-e --edit)'{-e,--edit}'[interactive editor]' \
        '(-r --reply-to)'{-r,--reply-to}'[post to reply to]:id' \
        '(-V --visibility)'{-V,--visibility}'[visibility]:visibility:(public unlisted private direct)' \
        '*:text'
      ;;
    config)
      _arguments '1::key:(instance.base_url application.client_id user.username defaults)'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _tootctl tootctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(stdout(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout(cmd), zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(stdout(cmd), zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(stdout(cmd), bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: tootctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "tootctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
