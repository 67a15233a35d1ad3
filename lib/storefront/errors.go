// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefront

import (
	"errors"
	"fmt"
	"strings"
)

// HTTPError is a non-2xx response from the platform. Body is the raw
// response text; the platform's error bodies are not structured
// consistently, so they are never parsed.
//
// Callers can use errors.As to inspect the status:
//
//	var httpErr *storefront.HTTPError
//	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound { ... }
type HTTPError struct {
	// Op names the client call, e.g. "list tickets".
	Op         string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, body)
}

// ErrNoPath is returned by Explain when the platform has no graph path
// between the user and the event.
var ErrNoPath = errors.New("no recommendation path")

// IsStatus reports whether err is an *HTTPError with the given status.
func IsStatus(err error, status int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == status
	}
	return false
}
