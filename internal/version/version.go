// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other tootctl packages to avoid import cycles.

package version

import "runtime/debug"

var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()

// UserAgent is sent with every request to the instance.
func UserAgent() string {
	return "tootctl/" + Version
}
