// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketing

import "time"

// Event is a single ticketed event.
type Event struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	Date        string `json:"eventDate,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// StartsAt parses Date. The platform emits RFC 3339 timestamps, with
// or without a zone; ok is false for anything unparsable.
func (event Event) StartsAt() (time.Time, bool) {
	return ParseTimestamp(event.Date)
}

// ParseTimestamp parses the timestamp layouts the platform emits.
func ParseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		time.RFC1123,
		"2006-01-02",
	} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// EventPage is the envelope of GET /events.
type EventPage struct {
	Data []Event  `json:"data"`
	Meta PageMeta `json:"meta,omitempty"`
}

// PageMeta is the pagination block the list endpoints return.
type PageMeta struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
	Total int `json:"total,omitempty"`
}
