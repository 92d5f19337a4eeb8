// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
)

// Sentinel errors describing why a configuration could not be used. They are
// always delivered wrapped in an *Error so callers can recover the path.
var (
	ErrNoDirectory      = errors.New("no such directory")
	ErrNoFile           = errors.New("no such file")
	ErrMalformed        = errors.New("malformed configuration")
	ErrDuplicateBaseURL = errors.New("instance.base_url is already configured; do not pass a base URL as well")
	ErrMissingBaseURL   = errors.New("instance.base_url is not configured; pass a base URL on first run")
	ErrStaleInstance    = errors.New("instance is configured but application is not; remove the instance section or restore the application section")
)

// Error is the configuration error kind. Path is the directory or file the
// problem relates to.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is, or wraps, a configuration error.
func IsConfigError(err error) bool {
	var cfgErr *Error
	return errors.As(err, &cfgErr)
}

func newError(path string, err error) *Error {
	return &Error{Path: path, Err: err}
}
