// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in        string
		want      log.Level
		wantTrace bool
	}{
		{in: "trace", want: log.DebugLevel, wantTrace: true},
		{in: "debug", want: log.DebugLevel},
		{in: "info", want: log.InfoLevel},
		{in: "warn", want: log.WarnLevel},
		{in: "error", want: log.ErrorLevel},
		{in: "fatal", want: log.FatalLevel},
		{in: "", want: log.ErrorLevel},
		{in: "chatty", want: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, trace := parseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTrace, trace)
		})
	}
}

func TestInitLogger(t *testing.T) {
	t.Setenv("TOOTCTL_LOG", "DEBUG")
	InitLogger()
	assert.True(t, DebugEnabled())

	t.Setenv("TOOTCTL_LOG", "")
	InitLogger()
	assert.False(t, DebugEnabled())
}

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}

	_ = h.HandleLog(&log.Entry{Level: log.WarnLevel, Message: "careful", Fields: log.Fields{}})
	assert.Contains(t, buf.String(), " W careful\n")

	buf.Reset()
	_ = h.HandleLog(&log.Entry{Level: log.DebugLevel, Message: "TRACE: deep", Fields: log.Fields{}})
	assert.Contains(t, buf.String(), " T deep\n")

	buf.Reset()
	_ = h.HandleLog(&log.Entry{Level: log.ErrorLevel, Message: "failed", Fields: log.Fields{"error": errors.New("boom")}})
	assert.Contains(t, buf.String(), " E failed: error=boom\n")
}
