// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package autocomplete

import "github.com/bureau-foundation/boxoffice/lib/schema/ticketing"

// State is the controller's lifecycle position.
type State int

const (
	// StateIdle: no list, nothing outstanding.
	StateIdle State = iota
	// StatePending: a debounce timer or a request is outstanding. The
	// previous list, if any, stays visible.
	StatePending
	// StateShowing: suggestions are visible.
	StateShowing
	// StateCancelled: the user closed the list while work was
	// outstanding; that work was abandoned.
	StateCancelled
)

func (state State) String() string {
	switch state {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateShowing:
		return "showing"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Snapshot is the visible state at one moment. Revision increases with
// every snapshot, so a host receiving snapshots from several
// goroutines can drop an older one that arrives late.
type Snapshot struct {
	State       State
	Text        string
	Suggestions []ticketing.Suggestion
	// Active is the highlighted index, -1 for none.
	Active   int
	Revision uint64
}

// Selected returns the highlighted suggestion.
func (snapshot Snapshot) Selected() (ticketing.Suggestion, bool) {
	if snapshot.Active < 0 || snapshot.Active >= len(snapshot.Suggestions) {
		return ticketing.Suggestion{}, false
	}
	return snapshot.Suggestions[snapshot.Active], true
}

// Visible reports whether a list should be drawn.
func (snapshot Snapshot) Visible() bool {
	return len(snapshot.Suggestions) > 0
}

// narrow keeps event suggestions when there are any, otherwise the
// whole list, truncated to limit.
func narrow(suggestions []ticketing.Suggestion, limit int) []ticketing.Suggestion {
	var events []ticketing.Suggestion
	for _, suggestion := range suggestions {
		if suggestion.Type == ticketing.SuggestionTypeEvent {
			events = append(events, suggestion)
		}
	}
	if len(events) == 0 {
		events = append([]ticketing.Suggestion(nil), suggestions...)
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}
