// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tootctl/tootctl/internal/meta"
	"github.com/tootctl/tootctl/internal/session"
)

// postsCommandAction lists the account's own recent posts.
func postsCommandAction(ctx context.Context, cmd *cli.Command) error {
	if DumpSchemaIfRequested(cmd) {
		return nil
	}

	s, err := newSession(ctx, cmd, session.Options{})
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	log.Debugf("listing posts: limit=%d", limit)

	posts, err := s.ListRecentPosts(ctx, limit)
	if err != nil {
		return err
	}

	return EmitPosts(cmd, posts)
}

// postsCommandBuilder constructs the cli.Command for "posts", wiring metadata,
// flags, and action handlers.
func postsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&SessionCommandBuilder{
		Name:      "posts",
		Usage:     "list your recent posts",
		UsageText: "tootctl posts [options]",
		Flags: []cli.Flag{
			NewLimitFlag(meta.ConfigFile),
		},
		Action: postsCommandAction,
		Meta:   meta,
	}).Build()
}
