// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fakeplatform

import (
	"slices"
	"strings"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

const (
	// SuggestionTypeVenue marks a venue name suggestion.
	SuggestionTypeVenue = "venue"

	suggestionsPerKind = 5
	maxSuggestions     = 10
)

// Suggest returns event titles, then venue names, starting with the
// query, ignoring case. Queries shorter than two characters get an
// empty list.
func (store *Store) Suggest(query string) []ticketing.Suggestion {
	query = strings.ToLower(strings.TrimSpace(query))
	suggestions := []ticketing.Suggestion{}
	if len([]rune(query)) < 2 {
		return suggestions
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()

	events := 0
	var venues []string
	for _, event := range store.events {
		if events < suggestionsPerKind && strings.HasPrefix(strings.ToLower(event.Title), query) {
			suggestions = append(suggestions, ticketing.Suggestion{Text: event.Title, Type: ticketing.SuggestionTypeEvent})
			events++
		}
		if strings.HasPrefix(strings.ToLower(event.Location), query) && !slices.Contains(venues, event.Location) {
			venues = append(venues, event.Location)
		}
	}
	for _, venue := range venues[:min(len(venues), suggestionsPerKind)] {
		suggestions = append(suggestions, ticketing.Suggestion{Text: venue, Type: SuggestionTypeVenue})
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
