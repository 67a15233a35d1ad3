// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// EventQuery selects events for ListEvents.
type EventQuery struct {
	// Text is a free-text query; empty lists everything.
	Text  string
	Limit int
}

// ListEvents returns events matching the query.
func (client *Client) ListEvents(ctx context.Context, query EventQuery) ([]ticketing.Event, error) {
	values := url.Values{}
	if text := strings.TrimSpace(query.Text); text != "" {
		values.Set("q", text)
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	return list[ticketing.Event](ctx, client, "list events", "/events", values)
}

// GetEvent fetches one event. Not every platform deployment serves
// this route; callers fall back to ListEvents on a 404 or 405.
func (client *Client) GetEvent(ctx context.Context, eventID string) (*ticketing.Event, error) {
	if eventID == "" {
		return nil, fmt.Errorf("get event: event ID is required")
	}
	var event ticketing.Event
	if err := client.call(ctx, "get event", http.MethodGet, "/events/"+url.PathEscape(eventID), nil, nil, &event); err != nil {
		return nil, err
	}
	if event.ID == "" {
		return nil, &HTTPError{Op: "get event", StatusCode: http.StatusNotFound, Body: "event has no _id"}
	}
	return &event, nil
}

// IsRouteMissing reports whether err means the platform does not serve
// the requested route at all (404 or 405).
func IsRouteMissing(err error) bool {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	return httpErr.StatusCode == http.StatusNotFound || httpErr.StatusCode == http.StatusMethodNotAllowed
}

// TicketQuery selects tickets for ListTickets. Price bounds and seat
// are passed through as typed; empty fields are omitted.
type TicketQuery struct {
	EventID  string
	Seat     string
	MinPrice string
	MaxPrice string
	Limit    int
}

// Values encodes the query string for GET /tickets.
func (query TicketQuery) Values() url.Values {
	values := url.Values{}
	values.Set("eventId", query.EventID)
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Seat != "" {
		values.Set("seat", query.Seat)
	}
	if query.MinPrice != "" {
		values.Set("minPrice", query.MinPrice)
	}
	if query.MaxPrice != "" {
		values.Set("maxPrice", query.MaxPrice)
	}
	return values
}

// ListTickets returns the tickets of one event in server order.
func (client *Client) ListTickets(ctx context.Context, query TicketQuery) ([]ticketing.Ticket, error) {
	if query.EventID == "" {
		return nil, fmt.Errorf("list tickets: event ID is required")
	}
	return list[ticketing.Ticket](ctx, client, "list tickets", "/tickets", query.Values())
}

// ListUsers returns platform accounts for the direct purchase picker.
func (client *Client) ListUsers(ctx context.Context, limit int) ([]ticketing.User, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	return list[ticketing.User](ctx, client, "list users", "/users", values)
}

// Autocomplete returns search suggestions for a prefix. Cancelling ctx
// aborts the request; the returned error then wraps context.Canceled.
func (client *Client) Autocomplete(ctx context.Context, prefix string) ([]ticketing.Suggestion, error) {
	values := url.Values{}
	values.Set("q", prefix)
	return list[ticketing.Suggestion](ctx, client, "autocomplete", "/search/autocomplete", values)
}
