// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boxui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// alertMsg puts a log record on the status line.
type alertMsg struct {
	text string
}

// StatusHandler is a slog.Handler that passes every record to an
// inner handler and also raises records at or above a threshold on
// the UI's status line. Records arriving before SetProgram are only
// passed on.
//
// Handlers derived with WithAttrs or WithGroup share the program
// pointer, so one SetProgram call reaches all of them.
type StatusHandler struct {
	inner     slog.Handler
	threshold slog.Level
	program   *atomic.Pointer[tea.Program]
	attrs     []slog.Attr
}

// NewStatusHandler wraps inner.
func NewStatusHandler(inner slog.Handler, threshold slog.Level) *StatusHandler {
	return &StatusHandler{
		inner:     inner,
		threshold: threshold,
		program:   &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram enables delivery to program. Safe from any goroutine.
func (handler *StatusHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled reports whether either destination wants the level.
func (handler *StatusHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= handler.threshold || handler.inner.Enabled(ctx, level)
}

// Handle forwards the record and, above the threshold, sends a one-line
// summary to the program.
func (handler *StatusHandler) Handle(ctx context.Context, record slog.Record) error {
	var err error
	if handler.inner.Enabled(ctx, record.Level) {
		err = handler.inner.Handle(ctx, record)
	}
	if record.Level < handler.threshold {
		return err
	}
	if program := handler.program.Load(); program != nil {
		// Send blocks until the loop reads it; a logging goroutine
		// must not wait on the UI.
		go program.Send(alertMsg{text: summarize(record, handler.attrs)})
	}
	return err
}

// summarize renders "message (key=value, ...)".
func summarize(record slog.Record, attrs []slog.Attr) string {
	var parts []string
	for _, attr := range attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})
	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

// WithAttrs returns a handler whose summaries include attrs.
func (handler *StatusHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &StatusHandler{
		inner:     handler.inner.WithAttrs(attrs),
		threshold: handler.threshold,
		program:   handler.program,
		attrs:     append(append([]slog.Attr(nil), handler.attrs...), attrs...),
	}
}

// WithGroup groups the inner handler's attributes. Summaries stay
// flat.
func (handler *StatusHandler) WithGroup(name string) slog.Handler {
	return &StatusHandler{
		inner:     handler.inner.WithGroup(name),
		threshold: handler.threshold,
		program:   handler.program,
		attrs:     handler.attrs,
	}
}
