// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"
	"strings"
)

// Visibility is the audience of a post.
type Visibility string

const (
	Public   Visibility = "public"
	Unlisted Visibility = "unlisted"
	Private  Visibility = "private" // followers only
	Direct   Visibility = "direct"  // mentioned accounts only
)

// Visibilities lists every accepted Visibility.
var Visibilities = []Visibility{Public, Unlisted, Private, Direct}

// ParseVisibility maps s to a Visibility, case-insensitively.
func ParseVisibility(s string) (Visibility, error) {
	v := Visibility(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Visibilities {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("visibility %q must be one of %v", s, Visibilities)
}

// Message is a post to be created.
type Message struct {
	Text        string
	InReplyToID string
	Visibility  Visibility
}
