// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads, validates and saves tootctl's credentials file. The
// file is a YAML document named config.yaml inside the configuration
// directory, typically:
//   - Linux: $XDG_CONFIG_HOME/tootctl/config.yaml or $HOME/.config/tootctl/config.yaml
//   - macOS: $HOME/Library/Application Support/tootctl/config.yaml
//   - Windows: %APPDATA%/tootctl/config.yaml
//
// Actual resolution relies on os.UserConfigDir which follows platform
// conventions. The package never creates the directory or the file on its
// own; see EnsureFile for the explicit opt-in used by "tootctl init --create".
package config
