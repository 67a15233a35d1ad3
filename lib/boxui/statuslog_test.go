// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boxui

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestStatusHandlerForwards(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	inner := slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelWarn})
	handler := NewStatusHandler(inner, slog.LevelError)
	logger := slog.New(handler).With("component", "cart")

	logger.Info("quiet")
	logger.Warn("refreshing cart after mutation failed", "error", "timeout")
	logger.Error("checkout failed")

	output := buffer.String()
	if strings.Contains(output, "quiet") {
		t.Errorf("info record passed the inner level:\n%s", output)
	}
	for _, want := range []string{"refreshing cart after mutation failed", "checkout failed", "component=cart"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestStatusHandlerEnabled(t *testing.T) {
	t.Parallel()

	inner := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError + 4})
	handler := NewStatusHandler(inner, slog.LevelError)
	ctx := context.Background()
	if handler.Enabled(ctx, slog.LevelWarn) {
		t.Error("warn enabled with both destinations above it")
	}
	if !handler.Enabled(ctx, slog.LevelError) {
		t.Error("error not enabled at the status threshold")
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	record := slog.NewRecord(time.Time{}, slog.LevelError, "checkout failed", 0)
	record.AddAttrs(slog.Int("status", 409))
	got := summarize(record, []slog.Attr{slog.String("component", "checkout")})
	if got != "checkout failed (component=checkout, status=409)" {
		t.Errorf("summarize = %q", got)
	}

	bare := slog.NewRecord(time.Time{}, slog.LevelError, "lost connection", 0)
	if got := summarize(bare, nil); got != "lost connection" {
		t.Errorf("summarize without attrs = %q", got)
	}
}
