// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bureau-foundation/boxoffice/lib/discover"
	"github.com/bureau-foundation/boxoffice/lib/storefront"
)

func TestFromPlatform_Categories(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"unauthenticated", fmt.Errorf("check session: %w", discover.ErrUnauthenticated), CategoryForbidden},
		{"401", &storefront.HTTPError{Op: "view cart", StatusCode: http.StatusUnauthorized}, CategoryForbidden},
		{"404", &storefront.HTTPError{Op: "get event", StatusCode: http.StatusNotFound}, CategoryNotFound},
		{"409", &storefront.HTTPError{Op: "add to cart", StatusCode: http.StatusConflict}, CategoryConflict},
		{"400", &storefront.HTTPError{Op: "list tickets", StatusCode: http.StatusBadRequest}, CategoryValidation},
		{"503", &storefront.HTTPError{Op: "checkout", StatusCode: http.StatusServiceUnavailable}, CategoryTransient},
		{"no path", storefront.ErrNoPath, CategoryNotFound},
		{"event missing", discover.ErrEventNotFound, CategoryNotFound},
		{"deadline", fmt.Errorf("list events: %w", context.DeadlineExceeded), CategoryTransient},
		{"network", errors.New("dial tcp: connection refused"), CategoryTransient},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := FromPlatform(test.err)
			var toolError *ToolError
			if !errors.As(err, &toolError) {
				t.Fatalf("FromPlatform returned %T", err)
			}
			if toolError.Category != test.want {
				t.Errorf("category = %s, want %s", toolError.Category, test.want)
			}
			if !errors.Is(err, test.err) {
				t.Error("cause lost from the chain")
			}
		})
	}
}

func TestFromPlatform_PassThrough(t *testing.T) {
	if FromPlatform(nil) != nil {
		t.Error("nil should stay nil")
	}
	original := Conflict("seat taken")
	if got := FromPlatform(original); got != error(original) {
		t.Errorf("categorized error was rewrapped: %v", got)
	}
}

func TestToolError_ExitCode(t *testing.T) {
	if code := Validation("bad").ExitCode(); code != 2 {
		t.Errorf("validation exit code = %d", code)
	}
	if code := (&ToolError{Category: "made-up", Err: errors.New("x")}).ExitCode(); code != 1 {
		t.Errorf("unknown category exit code = %d", code)
	}
	if code := (&ExitError{Code: 7}).ExitCode(); code != 7 {
		t.Errorf("ExitError code = %d", code)
	}
}
