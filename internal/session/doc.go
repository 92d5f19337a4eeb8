// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package session owns the configuration lifecycle of the single account
// tootctl drives. New loads config.yaml, registers the application on first
// run, logs in, and writes the configuration back; the returned
// AccountSession then lists recent posts and creates new ones.
//
// The configuration file is only written after every remote call succeeded,
// so a failed run leaves it exactly as it was.
package session
