// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-mastodon"
	"github.com/urfave/cli/v3"

	"github.com/tootctl/tootctl/internal/compose"
	"github.com/tootctl/tootctl/internal/meta"
	"github.com/tootctl/tootctl/internal/session"
)

// ErrNoText is returned when post has nothing to publish.
var ErrNoText = errors.New("no post text given")

// composeFunc runs the interactive editor. Tests replace it.
var composeFunc = compose.Compose

// postCommandAction publishes one post and prints it.
func postCommandAction(ctx context.Context, cmd *cli.Command) error {
	if DumpSchemaIfRequested(cmd) {
		return nil
	}

	text, fromStdin, err := postText(cmd)
	if err != nil {
		return err
	}

	visibility, err := session.ParseVisibility(cmd.String("visibility"))
	if err != nil {
		return err
	}

	var opts session.Options
	if fromStdin {
		opts.Prompt = noPrompt
	}
	s, err := newSession(ctx, cmd, opts)
	if err != nil {
		return err
	}

	status, err := s.CreatePost(ctx, session.Message{
		Text:        text,
		InReplyToID: cmd.String("reply-to"),
		Visibility:  visibility,
	})
	if err != nil {
		return err
	}

	return EmitPosts(cmd, []*mastodon.Status{status})
}

// postText gathers the post body from the arguments, stdin or the editor. It
// reports whether stdin was consumed.
func postText(cmd *cli.Command) (string, bool, error) {
	args := cmd.Args().Slice()
	in := stdin(cmd)

	var (
		text      string
		fromStdin bool
	)
	switch {
	case cmd.Bool("edit"):
		text, err := composeFunc(strings.Join(args, " "))
		return text, false, err
	case len(args) == 1 && args[0] == "-", len(args) == 0 && !isTerminal(in):
		raw, err := io.ReadAll(in)
		if err != nil {
			return "", true, fmt.Errorf("failed to read post from stdin: %w", err)
		}
		text = string(raw)
		fromStdin = true
	default:
		text = strings.Join(args, " ")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fromStdin, ErrNoText
	}
	return text, fromStdin, nil
}

// postCommandBuilder constructs the cli.Command for "post", wiring metadata,
// flags, and action handlers.
func postCommandBuilder(meta meta.Meta) *cli.Command {
	return (&SessionCommandBuilder{
		Name:      "post",
		Usage:     "publish a post",
		UsageText: "tootctl post [TEXT...|-] [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "edit",
				Aliases: []string{"e"},
				Usage:   "write the post in an interactive editor",
			},
			&cli.StringFlag{
				Name:    "reply-to",
				Aliases: []string{"r"},
				Usage:   "id of the post to reply to",
			},
			NewVisibilityFlag(meta.ConfigFile),
		},
		Action: postCommandAction,
		Meta:   meta,
	}).Build()
}
