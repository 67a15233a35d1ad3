// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bureau-foundation/boxoffice/lib/discover"
	"github.com/bureau-foundation/boxoffice/lib/storefront"
)

// ErrorCategory classifies a command failure so scripts can decide
// whether to retry, fix their input, or give up, without parsing the
// message.
type ErrorCategory string

const (
	// CategoryValidation: bad arguments or flags. Fix the input.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound: the event, ticket or user does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden: not logged in, or the session expired.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict: the ticket is taken or the request clashes
	// with the cart's state.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient: network failure, timeout, or a 5xx. Retry
	// later.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal: anything else.
	CategoryInternal ErrorCategory = "internal"
)

// exitCodes maps categories to process exit codes. Uncategorized
// errors exit 1.
var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryNotFound:   3,
	CategoryForbidden:  4,
	CategoryConflict:   5,
	CategoryTransient:  6,
	CategoryInternal:   1,
}

// ToolError is a categorized command error wrapping its cause.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// ExitCode is the process exit code for the category.
func (e *ToolError) ExitCode() int {
	if code, ok := exitCodes[e.Category]; ok {
		return code
	}
	return 1
}

// Validation creates a validation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// FromPlatform categorizes an error from a platform call. Errors that
// are already categorized pass through; nil stays nil.
func FromPlatform(err error) error {
	if err == nil {
		return nil
	}
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return err
	}

	var category ErrorCategory
	var httpErr *storefront.HTTPError
	switch {
	case errors.Is(err, discover.ErrUnauthenticated):
		category = CategoryForbidden
		err = fmt.Errorf("%w (run 'boxoffice login <email>')", err)
	case errors.Is(err, discover.ErrEventNotFound), errors.Is(err, storefront.ErrNoPath):
		category = CategoryNotFound
	case errors.Is(err, context.DeadlineExceeded):
		category = CategoryTransient
	case errors.As(err, &httpErr):
		category = statusCategory(httpErr.StatusCode)
	default:
		// Anything else from the client is a failed exchange.
		category = CategoryTransient
	}
	return &ToolError{Category: category, Err: err}
}

func statusCategory(status int) ErrorCategory {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return CategoryForbidden
	case status == http.StatusNotFound:
		return CategoryNotFound
	case status == http.StatusConflict:
		return CategoryConflict
	case status >= 500 || status == http.StatusTooManyRequests:
		return CategoryTransient
	case status >= 400:
		return CategoryValidation
	default:
		return CategoryInternal
	}
}
