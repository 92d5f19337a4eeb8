// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders posts as a text table, JSON, YAML or the raw API
// payload.
package output
