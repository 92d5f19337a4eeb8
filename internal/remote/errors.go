// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// Operation names used in error messages. OpLogin is also how callers tell a
// login failure apart from other remote failures.
const (
	OpRegister   = "register application"
	OpLogin      = "log in"
	OpOwnAccount = "read own account"
	OpListPosts  = "list account posts"
	OpCreatePost = "create post"
)

// ErrorContext carries input context for improving API error messages.
type ErrorContext struct {
	Host      string
	Account   string
	Operation string
}

// HTTPError is a non-2xx answer from the instance.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// ServiceError is the remote-service error kind. Err carries a stack trace
// captured where the failure was first seen.
type ServiceError struct {
	Host       string
	Operation  string
	StatusCode int
	Err        error

	friendly string
}

func (e *ServiceError) Error() string {
	if e.friendly != "" {
		return e.friendly
	}
	return fmt.Sprintf("%s on %s: %v", nonEmpty(e.Operation, "request"), nonEmpty(e.Host, "<unknown>"), e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Format prints the stack trace of the underlying error for %+v.
func (e *ServiceError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, e.Error())
			_, _ = fmt.Fprintf(s, "\ncaused by: %+v", e.Err)
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// IsServiceError reports whether err is, or wraps, a *ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

// IsLoginError reports whether err is a *ServiceError raised while logging in.
func IsLoginError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Operation == OpLogin
}

// Friendly wraps err in a *ServiceError with a contextual, user-facing message
// while keeping the original error reachable through errors.Is/As.
func Friendly(err error, ctx ErrorContext) error {
	if err == nil {
		return nil
	}

	se := &ServiceError{
		Host:      ctx.Host,
		Operation: ctx.Operation,
		Err:       pkgerrors.WithStack(err),
	}

	host := nonEmpty(ctx.Host, "<unknown>")
	op := nonEmpty(ctx.Operation, "request")

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		se.StatusCode = httpErr.StatusCode
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			if ctx.Operation == OpLogin {
				se.friendly = fmt.Sprintf("%s on %s: credentials for %q were rejected (%d). Check user.username and user.password in %s",
					op, host, nonEmpty(ctx.Account, "<unknown>"), httpErr.StatusCode, "config.yaml")
			} else {
				se.friendly = fmt.Sprintf("%s on %s: authentication failed (%d). Run \"tootctl init\" again",
					op, host, httpErr.StatusCode)
			}
		case http.StatusNotFound:
			se.friendly = fmt.Sprintf("%s on %s: not found (404). Is %s a Mastodon-compatible instance?", op, host, host)
		case http.StatusUnprocessableEntity:
			se.friendly = fmt.Sprintf("%s on %s: rejected by the instance (422): %s", op, host, nonEmpty(httpErr.Message, "invalid request"))
		case http.StatusTooManyRequests:
			se.friendly = fmt.Sprintf("%s on %s: rate limited (429). Try again later", op, host)
		}
	}

	return se
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
