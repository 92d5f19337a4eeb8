// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattn/go-mastodon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tootctl/tootctl/internal/config"
	"github.com/tootctl/tootctl/internal/remote"
	"github.com/tootctl/tootctl/internal/session"
)

const registeredConfig = `instance:
  base_url: https://example.social
application:
  client_id: cid
  client_secret: csecret
user:
  username: alice@example.com
  password: hunter2
  access_token: oldtok
`

type fakeRemote struct {
	registerCalls int
	lastUser      config.User
	handle        *fakeHandle
}

func (f *fakeRemote) RegisterApplication(context.Context, string) (*config.Application, error) {
	f.registerCalls++
	return &config.Application{ClientID: "cid", ClientSecret: "csecret"}, nil
}

func (f *fakeRemote) Login(_ context.Context, _ string, _ config.Application, user config.User) (remote.Handle, error) {
	f.lastUser = user
	return f.handle, nil
}

type fakeHandle struct {
	lastFilter remote.PostFilter
	toots      []*mastodon.Toot
}

func (h *fakeHandle) OwnAccount(context.Context) (*mastodon.Account, error) {
	return &mastodon.Account{ID: "42", Acct: "alice"}, nil
}

func (h *fakeHandle) AccountPosts(_ context.Context, _ mastodon.ID, f remote.PostFilter) ([]*mastodon.Status, error) {
	h.lastFilter = f
	var out []*mastodon.Status
	for i := 0; i < f.Limit && i < 30; i++ {
		out = append(out, &mastodon.Status{
			ID:         mastodon.ID(fmt.Sprint(100 - i)),
			Content:    fmt.Sprintf("<p>post %d</p>", 100-i),
			Visibility: "public",
		})
	}
	return out, nil
}

func (h *fakeHandle) CreatePost(_ context.Context, toot *mastodon.Toot) (*mastodon.Status, error) {
	h.toots = append(h.toots, toot)
	return &mastodon.Status{
		ID:         mastodon.ID(fmt.Sprint(500 + len(h.toots))),
		Content:    "<p>" + toot.Status + "</p>",
		Visibility: toot.Visibility,
	}, nil
}

func (h *fakeHandle) AccessToken() string {
	return "newtok"
}

// setup writes content to a fresh config dir and swaps in a fake remote.
func setup(t *testing.T, content string) (string, *fakeRemote) {
	t.Helper()
	dir := t.TempDir()
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o600))
	}

	fr := &fakeRemote{handle: &fakeHandle{}}
	orig := newRemote
	newRemote = func() session.Remote { return fr }
	t.Cleanup(func() { newRemote = orig })

	for _, env := range []string{ConfigDirEnv, "TOOTCTL_LIMIT", "TOOTCTL_OUTPUT", "TOOTCTL_VISIBILITY", "TOOTCTL_BASE_URL"} {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}

	return dir, fr
}

// run executes the app with args after "tootctl --config-dir dir".
func run(t *testing.T, dir string, stdin string, args ...string) (string, error) {
	t.Helper()
	full := append([]string{"tootctl", "--config-dir", dir}, args...)

	app, err := InitApp(context.Background(), full)
	require.NoError(t, err)

	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	app.Reader = strings.NewReader(stdin)

	err = app.Run(context.Background(), full)
	return out.String(), err
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  string
		want string
	}{
		{"flag", []string{"tootctl", "--config-dir", "/a", "posts"}, "/env", "/a"},
		{"flag equals", []string{"tootctl", "--config-dir=/b", "posts"}, "", "/b"},
		{"env", []string{"tootctl", "posts"}, "/env", "/env"},
		{"after terminator", []string{"tootctl", "post", "--", "--config-dir", "/x"}, "/env", "/env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigDirEnv, tt.env)
			got, err := resolveConfigDir(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveConfigDirMissingValue(t *testing.T) {
	_, err := resolveConfigDir([]string{"tootctl", "--config-dir"})
	assert.Error(t, err)
}

func TestInitAppCommands(t *testing.T) {
	dir := t.TempDir()
	app, err := InitApp(context.Background(), []string{"tootctl", "--config-dir", dir})
	require.NoError(t, err)

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
		assert.Equal(t, dir, GetMeta(c).ConfigDir)
		assert.Equal(t, filepath.Join(dir, config.FileName), GetMeta(c).ConfigFile)
	}
	assert.Equal(t, []string{"init", "posts", "post", "config", "completion"}, names)
}

func TestConfigCommandRedacts(t *testing.T) {
	dir, _ := setup(t, registeredConfig)

	out, err := run(t, dir, "", "config")
	require.NoError(t, err)

	assert.Contains(t, out, "base_url: https://example.social")
	assert.Contains(t, out, "username: alice@example.com")
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "csecret")
	assert.NotContains(t, out, "oldtok")
}

func TestConfigCommandKey(t *testing.T) {
	dir, _ := setup(t, registeredConfig)

	out, err := run(t, dir, "", "config", "instance.base_url")
	require.NoError(t, err)
	assert.Equal(t, "https://example.social\n", out)

	out, err = run(t, dir, "", "config", "user.password")
	require.NoError(t, err)
	assert.Equal(t, "********\n", out)

	_, err = run(t, dir, "", "config", "nope.nothing")
	assert.True(t, config.IsConfigError(err))
}

func TestConfigCommandNoFile(t *testing.T) {
	dir, _ := setup(t, "")

	_, err := run(t, dir, "", "config")
	assert.ErrorIs(t, err, config.ErrNoFile)
}

func TestPostsCommand(t *testing.T) {
	dir, fr := setup(t, registeredConfig)

	out, err := run(t, dir, "", "posts", "--limit", "3", "--output", "json", "--attrs", "content::h")
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "100", rows[0]["id"])
	assert.Equal(t, "post 100", rows[0]["content"])

	assert.Equal(t, 3, fr.handle.lastFilter.Limit)
	assert.True(t, fr.handle.lastFilter.ExcludeReplies)
	assert.True(t, fr.handle.lastFilter.ExcludeReblogs)
	assert.Equal(t, 0, fr.registerCalls)
}

func TestPostsCommandLimitSources(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		dir, fr := setup(t, registeredConfig)
		_, err := run(t, dir, "", "posts", "-o", "json")
		require.NoError(t, err)
		assert.Equal(t, DefaultLimit, fr.handle.lastFilter.Limit)
	})

	t.Run("config file", func(t *testing.T) {
		dir, fr := setup(t, registeredConfig+"defaults:\n  limit: 5\n")
		_, err := run(t, dir, "", "posts", "-o", "json")
		require.NoError(t, err)
		assert.Equal(t, 5, fr.handle.lastFilter.Limit)
	})

	t.Run("env over config file", func(t *testing.T) {
		dir, fr := setup(t, registeredConfig+"defaults:\n  limit: 5\n")
		t.Setenv("TOOTCTL_LIMIT", "7")
		_, err := run(t, dir, "", "posts", "-o", "json")
		require.NoError(t, err)
		assert.Equal(t, 7, fr.handle.lastFilter.Limit)
	})

	t.Run("flag over env", func(t *testing.T) {
		dir, fr := setup(t, registeredConfig)
		t.Setenv("TOOTCTL_LIMIT", "7")
		_, err := run(t, dir, "", "posts", "-o", "json", "--limit", "2")
		require.NoError(t, err)
		assert.Equal(t, 2, fr.handle.lastFilter.Limit)
	})
}

func TestPostsCommandSavesToken(t *testing.T) {
	dir, _ := setup(t, registeredConfig)

	_, err := run(t, dir, "", "posts", "-o", "json")
	require.NoError(t, err)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "newtok", cfg.User.AccessToken)
}

func TestPostsCommandSchema(t *testing.T) {
	dir, fr := setup(t, "")

	out, err := run(t, dir, "", "posts", "--schema")
	require.NoError(t, err)
	assert.Contains(t, out, "account.acct")
	assert.Equal(t, 0, fr.handle.lastFilter.Limit)
}

func TestPostCommand(t *testing.T) {
	dir, fr := setup(t, registeredConfig)

	out, err := run(t, dir, "", "post", "-o", "json", "hello", "world")
	require.NoError(t, err)

	require.Len(t, fr.handle.toots, 1)
	toot := fr.handle.toots[0]
	assert.Equal(t, "hello world", toot.Status)
	assert.Equal(t, "public", toot.Visibility)
	assert.Equal(t, session.Language, toot.Language)
	assert.Contains(t, out, `"id":"501"`)
}

func TestPostCommandOptions(t *testing.T) {
	dir, fr := setup(t, registeredConfig)

	_, err := run(t, dir, "", "post", "-o", "json", "--reply-to", "77", "--visibility", "Unlisted", "hi")
	require.NoError(t, err)

	require.Len(t, fr.handle.toots, 1)
	assert.Equal(t, mastodon.ID("77"), fr.handle.toots[0].InReplyToID)
	assert.Equal(t, "unlisted", fr.handle.toots[0].Visibility)
}

func TestPostCommandDefaultVisibility(t *testing.T) {
	dir, fr := setup(t, registeredConfig+"defaults:\n  visibility: private\n")

	_, err := run(t, dir, "", "post", "-o", "json", "hi")
	require.NoError(t, err)
	assert.Equal(t, "private", fr.handle.toots[0].Visibility)
}

func TestPostCommandBadVisibility(t *testing.T) {
	dir, fr := setup(t, registeredConfig)

	_, err := run(t, dir, "", "post", "--visibility", "secret", "hi")
	assert.Error(t, err)
	assert.Empty(t, fr.handle.toots)
}

func TestPostCommandStdin(t *testing.T) {
	dir, fr := setup(t, registeredConfig)

	_, err := run(t, dir, "  from stdin\n", "post", "-o", "json", "-")
	require.NoError(t, err)
	require.Len(t, fr.handle.toots, 1)
	assert.Equal(t, "from stdin", fr.handle.toots[0].Status)
}

func TestPostCommandEmpty(t *testing.T) {
	dir, fr := setup(t, registeredConfig)

	_, err := run(t, dir, "", "post")
	assert.ErrorIs(t, err, ErrNoText)
	assert.Empty(t, fr.handle.toots)
}

func TestPostCommandEdit(t *testing.T) {
	dir, fr := setup(t, registeredConfig)

	orig := composeFunc
	composeFunc = func(initial string) (string, error) {
		assert.Equal(t, "draft", initial)
		return "edited", nil
	}
	t.Cleanup(func() { composeFunc = orig })

	_, err := run(t, dir, "", "post", "-o", "json", "--edit", "draft")
	require.NoError(t, err)
	require.Len(t, fr.handle.toots, 1)
	assert.Equal(t, "edited", fr.handle.toots[0].Status)
}

func TestInitCommandFirstRun(t *testing.T) {
	dir, fr := setup(t, "")

	out, err := run(t, dir, "s3cret\n", "init", "--create", "--base-url", "https://example.social/", "--username", "alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice (id 42) on https://example.social")

	assert.Equal(t, 1, fr.registerCalls)
	assert.Equal(t, "alice@example.com", fr.lastUser.Username)
	assert.Equal(t, "s3cret", fr.lastUser.Password)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://example.social", cfg.BaseURL())
	assert.Equal(t, "cid", cfg.Application.ClientID)
	assert.Equal(t, "newtok", cfg.User.AccessToken)
}

func TestInitCommandWithoutFile(t *testing.T) {
	dir, fr := setup(t, "")

	_, err := run(t, dir, "", "init", "--base-url", "https://example.social")
	assert.ErrorIs(t, err, config.ErrNoFile)
	assert.Equal(t, 0, fr.registerCalls)
}

func TestInitCommandDuplicateBaseURL(t *testing.T) {
	dir, fr := setup(t, registeredConfig)

	_, err := run(t, dir, "", "init", "--base-url", "https://other.social")
	assert.ErrorIs(t, err, config.ErrDuplicateBaseURL)
	assert.Equal(t, 0, fr.registerCalls)
}

func TestInitCommandUsernameConflict(t *testing.T) {
	dir, _ := setup(t, registeredConfig)

	_, err := run(t, dir, "", "init", "--username", "bob@example.com")
	assert.True(t, config.IsConfigError(err))
}

func TestPromptCredentials(t *testing.T) {
	var out bytes.Buffer
	user := &config.User{}

	err := promptCredentials(strings.NewReader("bob@example.com\npa ss\n"), &out)(user)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Username)
	assert.Equal(t, "pa ss", user.Password)
	assert.Contains(t, out.String(), "Username")
	assert.Contains(t, out.String(), "Password")
}

func TestPromptCredentialsEOF(t *testing.T) {
	err := promptCredentials(strings.NewReader(""), &bytes.Buffer{})(&config.User{})
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, OutputValidator("yaml"))
	assert.Error(t, OutputValidator("xml"))
	assert.NoError(t, VisibilityValidator("DIRECT"))
	assert.Error(t, VisibilityValidator("friends"))
	assert.NoError(t, LimitValidator(1))
	assert.Error(t, LimitValidator(0))
	assert.Error(t, FlagValidators("xml", LimitValidator, OutputValidator))
}

func TestCompletion(t *testing.T) {
	dir, _ := setup(t, "")

	out, err := run(t, dir, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _tootctl tootctl")

	out, err = run(t, dir, "", "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef tootctl")
}

func TestInitCommandUsernameFailureLeavesFile(t *testing.T) {
	dir, fr := setup(t, "\n")

	_, err := run(t, dir, "", "init", "--username", "alice@example.com")
	assert.ErrorIs(t, err, config.ErrMissingBaseURL)
	assert.Equal(t, 0, fr.registerCalls)

	raw, err := os.ReadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "\n", string(raw))
}

func TestInitCommandUsernameConflictLeavesFile(t *testing.T) {
	dir, _ := setup(t, registeredConfig)

	_, err := run(t, dir, "", "init", "--username", "bob@example.com")
	require.Error(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, registeredConfig, string(raw))
}

func TestPostCommandStdinWithoutCredentials(t *testing.T) {
	body := "instance:\n  base_url: https://example.social\napplication:\n  client_id: cid\n  client_secret: csecret\n"
	dir, fr := setup(t, body)

	_, err := run(t, dir, "from stdin\n", "post", "-o", "json", "-")
	assert.ErrorIs(t, err, ErrNoCredentials)
	assert.Contains(t, err.Error(), "config.yaml")
	assert.Empty(t, fr.handle.toots)
}

func TestPostsCommandPadding(t *testing.T) {
	width := func(pad string) int {
		dir, _ := setup(t, registeredConfig)
		out, err := run(t, dir, "", "posts", "--limit", "1", "--attrs", "visibility", "--padding", pad)
		require.NoError(t, err)
		for _, line := range strings.Split(out, "\n") {
			if strings.Contains(line, "public") {
				return len(strings.TrimRight(line, " "))
			}
		}
		t.Fatalf("no row in %q", out)
		return 0
	}

	// Every column after id is padded.
	assert.Equal(t, width("1")+6, width("3"))
}
