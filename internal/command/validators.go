// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"

	"github.com/tootctl/tootctl/internal/output"
	"github.com/tootctl/tootctl/internal/session"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(output.Formats, s) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func VisibilityValidator(value any) error {
	s, _ := value.(string)
	if _, err := session.ParseVisibility(s); err != nil {
		return err
	}
	return nil
}

func LimitValidator(value any) error {
	if n, ok := value.(int); !ok || n <= 0 {
		return fmt.Errorf("must be a positive integer, got %v", value)
	}
	return nil
}
