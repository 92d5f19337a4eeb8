// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tootctl/tootctl/internal/command"
	"github.com/tootctl/tootctl/internal/compose"
	"github.com/tootctl/tootctl/internal/config"
	"github.com/tootctl/tootctl/internal/log"
	"github.com/tootctl/tootctl/internal/remote"
	"github.com/tootctl/tootctl/internal/version"
)

// Exit codes.
const (
	exitOK         = 0
	exitInit       = 1
	exitRun        = 2
	exitConfig     = 3
	exitRemote     = 4
	exitLoginError = 10
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v right after the binary and returns
// whether it was handled.
func handleVersion(args []string, w io.Writer) bool {
	if len(args) > 1 && (args[1] == "--version" || args[1] == "-v") {
		fmt.Fprintln(w, version.Version)
		return true
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// exitCode maps a run error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, compose.ErrAborted):
		return exitRun
	case config.IsConfigError(err):
		return exitConfig
	case remote.IsLoginError(err):
		return exitLoginError
	case remote.IsServiceError(err):
		return exitRemote
	default:
		return exitRun
	}
}

// reportError prints err, with its stack when debug logging is on.
func reportError(w io.Writer, err error) {
	if log.DebugEnabled() {
		fmt.Fprintf(w, "%+v\n", err)
		return
	}
	fmt.Fprintln(w, err)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string, stderr io.Writer) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		log.Debugf("app init err: err=%v", err)
		return exitInit
	}

	if err := app.Run(ctx, args); err != nil {
		reportError(stderr, err)
		log.Debugf("app run err: err=%v", err)
		return exitCode(err)
	}

	return exitOK
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args, os.Stdout) {
		return exitOK
	}

	return initAndRunApp(handleNakedCommand(args), os.Stderr)
}
