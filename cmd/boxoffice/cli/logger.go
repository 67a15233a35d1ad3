// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// LogLevel is the level of loggers built by NewCommandLogger.
// [ConnectionParams.Connect] sets it from the configuration's
// log_level, so records logged after connecting follow the file.
var LogLevel = new(slog.LevelVar)

// NewCommandLogger logs to stderr: text when stderr is a terminal,
// JSON when it is piped or redirected.
func NewCommandLogger() *slog.Logger {
	options := &slog.HandlerOptions{Level: LogLevel}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, options))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, options))
}

// NewFileHandler writes JSON records to w at LogLevel. The terminal UI
// logs through it because stderr belongs to the screen while it runs.
func NewFileHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: LogLevel})
}
