// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package meta

// Meta contains runtime metadata shared by commands: the resolved
// configuration directory and file.
type Meta struct {
	ConfigDir  string
	ConfigFile string
}
