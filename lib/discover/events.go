// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package discover

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bureau-foundation/boxoffice/lib/format"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
	"github.com/bureau-foundation/boxoffice/lib/storefront"
)

// Placeholders for the event list and event page.
const (
	MessageNoEvents        = "No events"
	MessageEventsFailed    = "Failed to load events"
	MessageNoEventSelected = "No event selected"
	MessageEventNotFound   = "Event not found"
	MessageEventFailed     = "Failed to load event"
	untitled               = "Untitled"
)

var (
	// ErrNoEventSelected is returned by Event for an empty ID.
	ErrNoEventSelected = errors.New(strings.ToLower(MessageNoEventSelected))
	// ErrEventNotFound is returned by Event when neither the direct
	// lookup nor the list contains the event.
	ErrEventNotFound = errors.New(strings.ToLower(MessageEventNotFound))
)

// EventSummary is one row of the event list.
type EventSummary struct {
	ID       string
	Title    string
	When     string
	Category string
	Location string
}

func summarize(event ticketing.Event, formatter *format.Formatter) EventSummary {
	title := format.Line(event.Title)
	if title == "" {
		title = untitled
	}
	return EventSummary{
		ID:       event.ID,
		Title:    title,
		When:     formatter.Date(event.Date),
		Category: format.Line(event.Category),
		Location: format.Line(event.Location),
	}
}

// EventList is the result of Events. Message is set when there are no
// rows to show.
type EventList struct {
	Query   string
	Events  []EventSummary
	Message string
	Err     error
}

// Events lists events matching query (empty for all). A failed request
// is reported in the list's Message and Err, and also returned.
func (service *Service) Events(ctx context.Context, query string) (EventList, error) {
	query = strings.TrimSpace(query)
	list := EventList{Query: query}
	events, err := service.platform.ListEvents(ctx, storefront.EventQuery{Text: query, Limit: service.eventLimit})
	if err != nil {
		service.logger.Warn("listing events failed", "query", query, "error", err)
		list.Message = MessageEventsFailed
		list.Err = err
		return list, err
	}
	for _, event := range events {
		list.Events = append(list.Events, summarize(event, service.formatter))
	}
	if len(list.Events) == 0 {
		list.Message = MessageNoEvents
	}
	return list, nil
}

// EventPage is the header of the event page.
type EventPage struct {
	Event       ticketing.Event
	Title       string
	When        string
	Location    string
	Description string
}

// Event fetches one event. Platforms without GET /events/{id} answer
// 404 or 405; for those the event is looked up in the full list
// instead.
func (service *Service) Event(ctx context.Context, eventID string) (*EventPage, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, ErrNoEventSelected
	}

	event, err := service.platform.GetEvent(ctx, eventID)
	if storefront.IsRouteMissing(err) {
		service.logger.Debug("event lookup unavailable, searching the list", "event_id", eventID, "error", err)
		event, err = service.findEvent(ctx, eventID)
	}
	if err != nil {
		return nil, err
	}

	summary := summarize(*event, service.formatter)
	return &EventPage{
		Event:       *event,
		Title:       summary.Title,
		When:        summary.When,
		Location:    summary.Location,
		Description: format.Text(event.Description),
	}, nil
}

func (service *Service) findEvent(ctx context.Context, eventID string) (*ticketing.Event, error) {
	events, err := service.platform.ListEvents(ctx, storefront.EventQuery{Limit: service.eventLimit})
	if err != nil {
		return nil, fmt.Errorf("find event %s: %w", eventID, err)
	}
	for index := range events {
		if events[index].ID == eventID {
			return &events[index], nil
		}
	}
	return nil, fmt.Errorf("find event %s: %w", eventID, ErrEventNotFound)
}

// EventMessage maps an Event error to the placeholder shown in place
// of the event page.
func EventMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoEventSelected):
		return MessageNoEventSelected
	case errors.Is(err, ErrEventNotFound):
		return MessageEventNotFound
	default:
		return MessageEventFailed
	}
}
