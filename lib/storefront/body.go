// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefront

import (
	"encoding/json"
	"fmt"
	"io"
)

// MaxResponseSize bounds every response body read: 16 MB. The largest
// legitimate response is a thousand-ticket catalog page, well under a
// megabyte.
const MaxResponseSize int64 = 16 << 20

// readBody reads a response body up to MaxResponseSize bytes.
func readBody(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// decodeBody JSON-decodes data into target. An empty body is an error:
// every decoded endpoint returns a JSON document.
func decodeBody(data []byte, target any) error {
	if len(data) == 0 {
		return fmt.Errorf("decoding response: empty body")
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
