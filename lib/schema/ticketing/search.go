// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketing

// SuggestionTypeEvent marks suggestions that name an event.
const SuggestionTypeEvent = "event"

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Text string `json:"text"`
	Type string `json:"type"`
}
