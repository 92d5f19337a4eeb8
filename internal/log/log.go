// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

var (
	traceEnabled bool
	debugEnabled bool
)

// InitLogger sets up Apex with a custom handler and a log level from the
// TOOTCTL_LOG env variable. Output goes to stderr so command output on stdout
// stays machine readable.
func InitLogger() {
	envLevel := strings.ToLower(os.Getenv("TOOTCTL_LOG"))
	level, trace := parseLevel(envLevel)
	traceEnabled = trace
	debugEnabled = level == log.DebugLevel
	log.SetHandler(&CustomHandler{Writer: os.Stderr})
	log.SetLevel(level)
}

// parseLevel maps a TOOTCTL_LOG value to an Apex level. Trace is reported
// separately because Apex has no level below debug.
func parseLevel(envLevel string) (log.Level, bool) {
	switch envLevel {
	case "trace":
		return log.DebugLevel, true // Show debug and above for trace
	case "debug":
		return log.DebugLevel, false
	case "info":
		return log.InfoLevel, false
	case "warn":
		return log.WarnLevel, false
	case "error", "":
		return log.ErrorLevel, false
	case "fatal":
		return log.FatalLevel, false
	default:
		return log.ErrorLevel, false
	}
}

// DebugEnabled reports whether TOOTCTL_LOG asked for debug or trace output.
func DebugEnabled() bool {
	return debugEnabled
}

// CustomHandler formats log messages and writes them to Writer.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	if errVal, ok := e.Fields["error"]; ok {
		message = fmt.Sprintf("%s: error=%v", message, errVal)
	}

	fmt.Fprintf(w, "%s %s %s\n", timestamp, level, message)
	return nil
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
