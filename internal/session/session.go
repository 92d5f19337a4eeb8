// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/mattn/go-mastodon"

	"github.com/tootctl/tootctl/internal/config"
	"github.com/tootctl/tootctl/internal/remote"
)

// Language is attached to every post created through a session.
const Language = "en"

// ErrInvalidLimit is returned by ListRecentPosts for a non-positive limit.
var ErrInvalidLimit = errors.New("limit must be a positive integer")

// Remote is what New needs from the instance before it holds a Handle.
// *remote.Connector implements it.
type Remote interface {
	RegisterApplication(ctx context.Context, baseURL string) (*config.Application, error)
	Login(ctx context.Context, baseURL string, app config.Application, user config.User) (remote.Handle, error)
}

// PromptFunc fills in missing credentials before login.
type PromptFunc func(user *config.User) error

// Options tune New. The zero value uses the default configuration directory
// and expects the instance URL to be configured already.
type Options struct {
	// Dir is the configuration directory. Empty means config.DefaultDir().
	Dir string
	// BaseURL is the instance URL for the first run. It must be empty once
	// config.yaml records instance.base_url.
	BaseURL string
	// Username, if set, fills user.username. It must match any username
	// already recorded.
	Username string
	// Prompt, if set, is called when the username or password is empty.
	Prompt PromptFunc
}

// AccountSession is an authenticated session for the configured account.
type AccountSession struct {
	cfg     *config.Config
	path    string
	handle  remote.Handle
	account *mastodon.Account
}

// New loads the configuration, registers the application if this is the first
// run, logs in, and saves the configuration. Configuration problems are
// returned as *config.Error and remote failures as *remote.ServiceError.
func New(ctx context.Context, r Remote, opts Options) (*AccountSession, error) {
	dir := opts.Dir
	if dir == "" {
		d, err := config.DefaultDir()
		if err != nil {
			return nil, &config.Error{Err: fmt.Errorf("failed to resolve config directory: %w", err)}
		}
		dir = d
	}
	path := config.FilePath(dir)

	// Load.
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	// Resolve the instance URL.
	baseURL, err := resolveBaseURL(cfg, opts.BaseURL, path)
	if err != nil {
		return nil, err
	}

	// Register on first run.
	if !cfg.Registered() {
		if cfg.Instance != nil {
			return nil, &config.Error{Path: path, Err: config.ErrStaleInstance}
		}

		log.Infof("registering application with %s", baseURL)
		app, err := r.RegisterApplication(ctx, baseURL)
		if err != nil {
			return nil, err
		}
		cfg.Instance = &config.Instance{BaseURL: baseURL}
		cfg.Application = app
	}

	// Ensure the user section.
	if cfg.User == nil {
		cfg.User = &config.User{}
	}
	if opts.Username != "" {
		if cfg.User.Username != "" && cfg.User.Username != opts.Username {
			return nil, &config.Error{Path: path, Err: fmt.Errorf("user.username is already %q", cfg.User.Username)}
		}
		cfg.User.Username = opts.Username
	}
	if opts.Prompt != nil && (cfg.User.Username == "" || cfg.User.Password == "") {
		if err := opts.Prompt(cfg.User); err != nil {
			return nil, fmt.Errorf("failed to read credentials: %w", err)
		}
	}

	// Connect.
	handle, err := r.Login(ctx, baseURL, *cfg.Application, *cfg.User)
	if err != nil {
		return nil, err
	}
	cfg.User.AccessToken = handle.AccessToken()

	account, err := handle.OwnAccount(ctx)
	if err != nil {
		return nil, err
	}
	log.Debugf("authenticated: account=%s id=%s", account.Acct, account.ID)

	// Persist.
	if err := config.Save(path, cfg); err != nil {
		return nil, err
	}

	return &AccountSession{
		cfg:     cfg,
		path:    path,
		handle:  handle,
		account: account,
	}, nil
}

// resolveBaseURL picks the instance URL from the loaded configuration or the
// caller, never both.
func resolveBaseURL(cfg *config.Config, supplied string, path string) (string, error) {
	stored := cfg.BaseURL()
	supplied = strings.TrimRight(strings.TrimSpace(supplied), "/")

	switch {
	case stored != "" && supplied != "":
		return "", &config.Error{Path: path, Err: fmt.Errorf("%w (have %s)", config.ErrDuplicateBaseURL, stored)}
	case stored != "":
		return stored, nil
	case supplied == "":
		return "", &config.Error{Path: path, Err: config.ErrMissingBaseURL}
	case cfg.Registered():
		// An application without an instance cannot be repaired by guessing
		// which server issued it.
		return "", &config.Error{Path: path, Err: config.ErrMissingBaseURL}
	}

	if err := config.ValidateBaseURL(supplied); err != nil {
		return "", &config.Error{Path: path, Err: fmt.Errorf("%w: base URL: %v", config.ErrMalformed, err)}
	}
	return supplied, nil
}

// Account returns the authenticated account.
func (s *AccountSession) Account() *mastodon.Account {
	return s.account
}

// Config returns a copy of the configuration as it was saved.
func (s *AccountSession) Config() *config.Config {
	return s.cfg.Clone()
}

// ConfigFile returns the path of the configuration file.
func (s *AccountSession) ConfigFile() string {
	return s.path
}

// ListRecentPosts returns up to limit of the account's own most recent posts,
// excluding replies and reblogs, in the order the instance returns them.
func (s *AccountSession) ListRecentPosts(ctx context.Context, limit int) ([]*mastodon.Status, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}

	return s.handle.AccountPosts(ctx, s.account.ID, remote.PostFilter{
		OnlyMedia:      false,
		Pinned:         false,
		ExcludeReplies: true,
		ExcludeReblogs: true,
		Limit:          limit,
	})
}

// CreatePost publishes msg and returns the created post. Calling it twice
// creates two posts.
func (s *AccountSession) CreatePost(ctx context.Context, msg Message) (*mastodon.Status, error) {
	return s.handle.CreatePost(ctx, &mastodon.Toot{
		Status:      msg.Text,
		InReplyToID: mastodon.ID(msg.InReplyToID),
		Visibility:  string(msg.Visibility),
		Sensitive:   false,
		SpoilerText: "",
		Language:    Language,
	})
}
