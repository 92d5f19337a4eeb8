// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/apex/log"
	"github.com/mattn/go-mastodon"

	"github.com/tootctl/tootctl/internal/config"
	"github.com/tootctl/tootctl/internal/version"
)

const (
	// DefaultScopes must cover the scopes go-mastodon requests during the
	// password grant, or the instance rejects the token request.
	DefaultScopes = "read write follow"
	// outOfBandRedirect is the redirect URI for applications without a web
	// callback.
	outOfBandRedirect = "urn:ietf:wg:oauth:2.0:oob"
)

// Handle is an authenticated connection to the instance.
type Handle interface {
	OwnAccount(ctx context.Context) (*mastodon.Account, error)
	AccountPosts(ctx context.Context, id mastodon.ID, filter PostFilter) ([]*mastodon.Status, error)
	CreatePost(ctx context.Context, toot *mastodon.Toot) (*mastodon.Status, error)
	AccessToken() string
}

// Connector registers the application and logs users in. The zero value is
// usable; empty fields fall back to tootctl defaults.
type Connector struct {
	ClientName string
	Website    string
	Scopes     string
	// HTTPClient supplies the timeout and base transport. Nil means
	// http.DefaultClient.
	HTTPClient *http.Client
}

// NewConnector returns a Connector with tootctl's default identity.
func NewConnector() *Connector {
	return &Connector{
		ClientName: config.AppName,
		Website:    "https://github.com/tootctl/tootctl",
		Scopes:     DefaultScopes,
	}
}

// RegisterApplication registers tootctl with the instance at baseURL and
// returns the issued client credentials.
func (c *Connector) RegisterApplication(ctx context.Context, baseURL string) (*config.Application, error) {
	errCtx := ErrorContext{Host: hostOf(baseURL), Operation: OpRegister}
	rec := c.recorder()

	app, err := mastodon.RegisterApp(ctx, &mastodon.AppConfig{
		Client:       c.httpClient(rec),
		Server:       baseURL,
		ClientName:   nonEmpty(c.ClientName, config.AppName),
		RedirectURIs: outOfBandRedirect,
		Scopes:       nonEmpty(c.Scopes, DefaultScopes),
		Website:      c.Website,
	})
	if err != nil {
		return nil, Friendly(rec.annotate(err), errCtx)
	}
	if app.ClientID == "" || app.ClientSecret == "" {
		return nil, Friendly(fmt.Errorf("instance returned an application without client credentials"), errCtx)
	}
	log.Debugf("registered application: host=%s client_id=%s", errCtx.Host, app.ClientID)

	return &config.Application{
		ClientID:     app.ClientID,
		ClientSecret: app.ClientSecret,
	}, nil
}

// Login exchanges the user's username and password for an access token and
// returns the authenticated Handle.
func (c *Connector) Login(ctx context.Context, baseURL string, app config.Application, user config.User) (Handle, error) {
	errCtx := ErrorContext{Host: hostOf(baseURL), Account: user.Username, Operation: OpLogin}
	rec := c.recorder()

	mc := mastodon.NewClient(&mastodon.Config{
		Server:       baseURL,
		ClientID:     app.ClientID,
		ClientSecret: app.ClientSecret,
	})
	mc.Client = c.httpClient(rec)

	if err := mc.Authenticate(ctx, user.Username, user.Password); err != nil {
		return nil, Friendly(rec.annotate(err), errCtx)
	}
	log.Debugf("logged in: host=%s username=%s", errCtx.Host, user.Username)

	return &Client{mc: mc, rec: rec, host: errCtx.Host}, nil
}

func (c *Connector) recorder() *recorder {
	var next http.RoundTripper
	if c.HTTPClient != nil {
		next = c.HTTPClient.Transport
	}
	return &recorder{next: next, userAgent: version.UserAgent()}
}

func (c *Connector) httpClient(rec *recorder) http.Client {
	hc := http.Client{Transport: rec}
	if c.HTTPClient != nil {
		hc.Timeout = c.HTTPClient.Timeout
		hc.Jar = c.HTTPClient.Jar
	}
	return hc
}

// Client is the go-mastodon backed Handle. It is not safe for concurrent use.
type Client struct {
	mc   *mastodon.Client
	rec  *recorder
	host string
}

// OwnAccount returns the account the access token belongs to.
func (c *Client) OwnAccount(ctx context.Context) (*mastodon.Account, error) {
	acct, err := c.mc.GetAccountCurrentUser(ctx)
	if err != nil {
		return nil, Friendly(c.rec.annotate(err), ErrorContext{Host: c.host, Operation: OpOwnAccount})
	}
	return acct, nil
}

// CreatePost publishes toot and returns the created status.
func (c *Client) CreatePost(ctx context.Context, toot *mastodon.Toot) (*mastodon.Status, error) {
	status, err := c.mc.PostStatus(ctx, toot)
	if err != nil {
		return nil, Friendly(c.rec.annotate(err), ErrorContext{Host: c.host, Operation: OpCreatePost})
	}
	log.Debugf("created status: id=%s visibility=%s", status.ID, status.Visibility)
	return status, nil
}

// AccessToken returns the token obtained at login.
func (c *Client) AccessToken() string {
	return c.mc.Config.AccessToken
}

func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	return u.Host
}
