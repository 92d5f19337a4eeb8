// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package remote binds tootctl to a Mastodon-compatible instance through
// github.com/mattn/go-mastodon. It registers the application, logs the user
// in, and exposes the handful of account and status calls tootctl needs.
// Every failure is returned as a *ServiceError.
package remote
