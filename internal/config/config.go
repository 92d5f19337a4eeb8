// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the per-user configuration directory.
	AppName = "tootctl"
	// FileName is the configuration file inside the configuration directory.
	FileName = "config.yaml"
)

// Config is the in-memory representation of config.yaml. Field order is the
// key order used when the file is written.
type Config struct {
	Instance    *Instance    `yaml:"instance,omitempty"`
	Application *Application `yaml:"application,omitempty"`
	User        *User        `yaml:"user,omitempty"`
	Defaults    *Defaults    `yaml:"defaults,omitempty"`
}

// Instance identifies the remote server.
type Instance struct {
	BaseURL string `yaml:"base_url"`
}

// Application holds the client credentials issued when the application was
// registered with the instance.
type Application struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// User holds the login credentials of the single account.
type User struct {
	Username    string         `yaml:"username,omitempty"`
	Password    string         `yaml:"password,omitempty"`
	AccessToken string         `yaml:"access_token,omitempty"`
	Preferences map[string]any `yaml:"preferences,omitempty"`
}

// Defaults are CLI flag defaults. The core never interprets them; the command
// layer reads them through cli-altsrc.
type Defaults struct {
	Limit      int    `yaml:"limit,omitempty"`
	Visibility string `yaml:"visibility,omitempty"`
	Output     string `yaml:"output,omitempty"`
}

// Registered reports whether the application section carries a client id.
func (c *Config) Registered() bool {
	return c.Application != nil && c.Application.ClientID != ""
}

// BaseURL returns instance.base_url or "".
func (c *Config) BaseURL() string {
	if c.Instance == nil {
		return ""
	}
	return c.Instance.BaseURL
}

// Clone returns a copy that shares nothing mutable with c except the values
// inside User.Preferences.
func (c *Config) Clone() *Config {
	out := &Config{}
	if c.Instance != nil {
		i := *c.Instance
		out.Instance = &i
	}
	if c.Application != nil {
		a := *c.Application
		out.Application = &a
	}
	if c.User != nil {
		u := *c.User
		if c.User.Preferences != nil {
			u.Preferences = make(map[string]any, len(c.User.Preferences))
			for k, v := range c.User.Preferences {
				u.Preferences[k] = v
			}
		}
		out.User = &u
	}
	if c.Defaults != nil {
		d := *c.Defaults
		out.Defaults = &d
	}
	return out
}

// Redacted returns a clone with every secret replaced by a fixed mask.
func (c *Config) Redacted() *Config {
	const mask = "********"
	out := c.Clone()
	if out.Application != nil && out.Application.ClientSecret != "" {
		out.Application.ClientSecret = mask
	}
	if out.User != nil {
		if out.User.Password != "" {
			out.User.Password = mask
		}
		if out.User.AccessToken != "" {
			out.User.AccessToken = mask
		}
	}
	return out
}

// DefaultDir returns the per-user configuration directory for tootctl.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// FilePath returns the path of config.yaml inside dir.
func FilePath(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads and validates dir/config.yaml. The directory and the file must
// both exist. An empty file yields an empty Config.
func Load(dir string) (*Config, error) {
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return nil, newError(dir, ErrNoDirectory)
	}

	path := FilePath(dir)
	if fi, err := os.Stat(path); err != nil || fi.IsDir() {
		return nil, newError(path, ErrNoFile)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(path, fmt.Errorf("failed to read: %w", err))
	}

	cfg, err := Parse(raw)
	if err != nil {
		return nil, newError(path, err)
	}
	log.Debugf("loaded config: path=%s registered=%t", path, cfg.Registered())

	return cfg, nil
}

// Parse decodes and validates a configuration document. Unknown keys and
// wrongly shaped sections are reported as ErrMalformed.
func Parse(raw []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Instance != nil && c.Instance.BaseURL != "" {
		if err := ValidateBaseURL(c.Instance.BaseURL); err != nil {
			return fmt.Errorf("%w: instance.base_url: %v", ErrMalformed, err)
		}
	}
	if c.Application != nil && c.Application.ClientID != "" && c.Application.ClientSecret == "" {
		return fmt.Errorf("%w: application.client_secret is missing", ErrMalformed)
	}
	if c.Defaults != nil && c.Defaults.Limit < 0 {
		return fmt.Errorf("%w: defaults.limit must not be negative", ErrMalformed)
	}
	return nil
}

// ValidateBaseURL checks that s is an absolute http(s) URL.
func ValidateBaseURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("%q is not an http(s) URL", s)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", s)
	}
	return nil
}

// Marshal renders cfg the way it is written to disk: stable key order,
// two-space indentation, non-ASCII text kept literal.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save overwrites path with cfg. The document is written to a temporary file
// in the same directory and renamed into place, so readers see either the old
// or the new content.
func Save(path string, cfg *Config) error {
	out, err := Marshal(cfg)
	if err != nil {
		return newError(path, fmt.Errorf("failed to marshal: %w", err))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return newError(path, fmt.Errorf("failed to create temp file: %w", err))
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		return newError(path, fmt.Errorf("failed to write: %w", err))
	}
	if err := tmp.Chmod(0o600); err != nil { //nolint:mnd
		_ = tmp.Close()
		return newError(path, fmt.Errorf("failed to chmod: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return newError(path, fmt.Errorf("failed to sync: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return newError(path, fmt.Errorf("failed to close: %w", err))
	}
	if err := os.Rename(tmpName, path); err != nil {
		return newError(path, fmt.Errorf("failed to replace: %w", err))
	}
	committed = true

	log.Debugf("saved config: path=%s bytes=%d", path, len(out))
	return nil
}

// EnsureFile creates dir and an empty dir/config.yaml when they are missing.
// It returns true when the file was created.
func EnsureFile(dir string) (bool, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil { //nolint:mnd
		return false, newError(dir, fmt.Errorf("failed to create directory: %w", err))
	}

	path := FilePath(dir)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) //nolint:mnd
	if errors.Is(err, os.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, newError(path, fmt.Errorf("failed to create file: %w", err))
	}
	if err := f.Close(); err != nil {
		return false, newError(path, err)
	}
	log.Debugf("created empty config: path=%s", path)
	return true, nil
}

// Lookup returns the value at a dotted key path (e.g. "instance.base_url").
// Maps are returned as their YAML rendering.
func (c *Config) Lookup(kspec string) (any, error) {
	raw, err := Marshal(c)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	var current any = data
	for _, key := range strings.Split(kspec, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("no value at %q", kspec)
		}
		current, ok = m[key]
		if !ok {
			return nil, fmt.Errorf("no value at %q", kspec)
		}
	}

	return current, nil
}
