// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/apex/log"
	"github.com/mattn/go-mastodon"
	"github.com/tidwall/gjson"
)

// PostFilter selects which of an account's statuses the instance returns.
// Every field is always sent so the request is explicit about what it wants.
type PostFilter struct {
	OnlyMedia      bool
	Pinned         bool
	ExcludeReplies bool
	ExcludeReblogs bool
	Limit          int
}

// Values renders the filter as query parameters.
func (f PostFilter) Values() url.Values {
	v := url.Values{}
	v.Set("only_media", strconv.FormatBool(f.OnlyMedia))
	v.Set("pinned", strconv.FormatBool(f.Pinned))
	v.Set("exclude_replies", strconv.FormatBool(f.ExcludeReplies))
	v.Set("exclude_reblogs", strconv.FormatBool(f.ExcludeReblogs))
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v
}

// AccountPosts returns the statuses of account id, newest first, as ordered
// by the instance. go-mastodon has no way to pass the exclude filters, so
// this issues the authenticated GET itself.
func (c *Client) AccountPosts(ctx context.Context, id mastodon.ID, filter PostFilter) ([]*mastodon.Status, error) {
	errCtx := ErrorContext{Host: c.host, Operation: OpListPosts}

	u, err := url.Parse(c.mc.Config.Server)
	if err != nil {
		return nil, Friendly(fmt.Errorf("failed to parse server URL: %w", err), errCtx)
	}
	u.Path = path.Join(u.Path, "/api/v1/accounts", url.PathEscape(string(id)), "statuses")
	u.RawQuery = filter.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, Friendly(fmt.Errorf("failed to create request: %w", err), errCtx)
	}
	req.Header.Set("Authorization", "Bearer "+c.mc.Config.AccessToken)
	req.Header.Set("Accept", "application/json")

	log.Debugf("GET %s", u.String())
	resp, err := c.mc.Do(req)
	if err != nil {
		return nil, Friendly(fmt.Errorf("failed to execute request: %w", err), errCtx)
	}
	defer resp.Body.Close()

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, Friendly(fmt.Errorf("failed to read response: %w", err), errCtx)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, Friendly(&HTTPError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(doc.Bytes(), "error").String(),
		}, errCtx)
	}

	var statuses []*mastodon.Status
	if err := json.Unmarshal(doc.Bytes(), &statuses); err != nil {
		return nil, Friendly(fmt.Errorf("failed to decode statuses: %w", err), errCtx)
	}

	return statuses, nil
}

// recorder is the transport under every go-mastodon call. It stamps the user
// agent and remembers the last error answer so failures from the library
// can be reported with their HTTP status.
type recorder struct {
	next      http.RoundTripper
	userAgent string
	last      *HTTPError
}

func (r *recorder) RoundTrip(req *http.Request) (*http.Response, error) {
	r.last = nil

	next := r.next
	if next == nil {
		next = http.DefaultTransport
	}

	if r.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := next.RoundTrip(req)
	if err != nil || resp.StatusCode < http.StatusBadRequest {
		return resp, err
	}

	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if readErr != nil {
		log.WithError(readErr).Warn("failed to read error response")
	}

	r.last = &HTTPError{
		StatusCode: resp.StatusCode,
		Message:    gjson.GetBytes(body, "error").String(),
	}
	return resp, nil
}

// annotate attaches the recorded HTTP status to err, if there is one.
func (r *recorder) annotate(err error) error {
	if r == nil || r.last == nil {
		return err
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return err
	}
	return fmt.Errorf("%w: %v", r.last, err)
}
