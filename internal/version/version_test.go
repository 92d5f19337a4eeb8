// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserAgent(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.True(t, strings.HasPrefix(UserAgent(), "tootctl/"))
	assert.True(t, strings.HasSuffix(UserAgent(), Version))
}
