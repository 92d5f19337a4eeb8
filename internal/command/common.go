// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/mattn/go-mastodon"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tootctl/tootctl/internal/attrs"
	"github.com/tootctl/tootctl/internal/config"
	"github.com/tootctl/tootctl/internal/meta"
	"github.com/tootctl/tootctl/internal/output"
	"github.com/tootctl/tootctl/internal/remote"
	"github.com/tootctl/tootctl/internal/session"
)

// DefaultPostAttrs are the columns shown for posts unless --attrs adds more.
var DefaultPostAttrs = []string{
	"id",
	"created_at:created:T",
	"visibility",
	"content::h60",
}

// newRemote returns the collaborator used to reach the instance. Tests
// replace it.
var newRemote = func() session.Remote {
	return remote.NewConnector()
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList, err error) {
	for _, d := range defaults {
		if err = al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err = al.Set(extras); err != nil {
			return nil, fmt.Errorf("--attrs: %w", err)
		}
	}
	return
}

// DumpSchemaIfRequested lists the post attributes when --schema is set, and
// returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(reflect.TypeOf(mastodon.Status{}), stdout(cmd))
		return true
	}
	return false
}

// EmitPosts renders posts using the output flags of cmd.
func EmitPosts(cmd *cli.Command, posts any) error {
	al, err := BuildAttrs(cmd, DefaultPostAttrs...)
	if err != nil {
		return err
	}

	return output.Spit(stdout(cmd), posts, al, output.Options{
		Format:  cmd.String("output"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: cmd.Int("padding"),
	})
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ErrNoCredentials is returned when the login is incomplete and stdin cannot
// be used to ask for it.
var ErrNoCredentials = errors.New("credentials missing from config.yaml; set user.username and user.password or run \"tootctl init\"")

// newSession opens the account session for cmd. opts.Dir and opts.Prompt
// default to the configured directory and an interactive prompt on stdin.
func newSession(ctx context.Context, cmd *cli.Command, opts session.Options) (*session.AccountSession, error) {
	if opts.Dir == "" {
		opts.Dir = GetMeta(cmd).ConfigDir
	}
	if opts.Prompt == nil {
		opts.Prompt = promptCredentials(stdin(cmd), os.Stderr)
	}
	return session.New(ctx, newRemote(), opts)
}

// noPrompt refuses to ask for credentials, for runs where stdin carried the
// post body.
func noPrompt(*config.User) error {
	return ErrNoCredentials
}

// promptCredentials asks for whatever part of the login is missing. The
// password is read without echo when in is a terminal.
func promptCredentials(in io.Reader, out io.Writer) session.PromptFunc {
	return func(user *config.User) error {
		reader := bufio.NewReader(in)

		if user.Username == "" {
			fmt.Fprint(out, "Username (email): ")
			line, err := reader.ReadString('\n')
			if err != nil && (err != io.EOF || line == "") {
				return fmt.Errorf("failed to read username: %w", err)
			}
			user.Username = strings.TrimSpace(line)
		}

		if user.Password == "" {
			fmt.Fprint(out, "Password: ")
			if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				pw, err := term.ReadPassword(int(f.Fd()))
				fmt.Fprintln(out)
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				user.Password = string(pw)
			} else {
				line, err := reader.ReadString('\n')
				if err != nil && (err != io.EOF || line == "") {
					return fmt.Errorf("failed to read password: %w", err)
				}
				user.Password = strings.TrimRight(line, "\r\n")
			}
		}

		if user.Username == "" || user.Password == "" {
			return fmt.Errorf("username and password are required")
		}
		return nil
	}
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func stdout(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

func stdin(cmd *cli.Command) io.Reader {
	if root := cmd.Root(); root != nil && root.Reader != nil {
		return root.Reader
	}
	return os.Stdin
}
