// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"slices"
	"strings"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// Filter narrows a ticket load. Fields hold the user's raw input; they
// are trimmed before transmission and an empty field is unconstrained.
type Filter struct {
	Seat     string
	MinPrice string
	MaxPrice string
}

// Normalized returns the filter with every field trimmed.
func (filter Filter) Normalized() Filter {
	return Filter{
		Seat:     strings.TrimSpace(filter.Seat),
		MinPrice: strings.TrimSpace(filter.MinPrice),
		MaxPrice: strings.TrimSpace(filter.MaxPrice),
	}
}

// Row is one line of the catalog view: a seated ticket, or the single
// aggregate of every general-admission ticket.
type Row struct {
	// ID is the ticket ID, or ticketing.GeneralAdmissionID for the
	// aggregate row.
	ID    string
	Type  string
	Seat  string
	Price ticketing.Price

	// Available is the ticket's own count for a seated row and the
	// sum over all GA tickets for the aggregate row.
	Available int

	Description      string
	GeneralAdmission bool

	// Tickets is the number of listings merged into the row.
	Tickets int
}

// Label is the seat, falling back to the type.
func (row Row) Label() string {
	if row.Seat != "" {
		return row.Seat
	}
	if row.Type != "" {
		return row.Type
	}
	return "Ticket"
}

// State is the lifecycle of a catalog view.
type State int

const (
	// StateIdle: nothing has been loaded yet.
	StateIdle State = iota
	StateLoading
	StateLoaded
	// StateEmpty: the load succeeded with no tickets.
	StateEmpty
	StateFailed
)

func (state State) String() string {
	switch state {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateEmpty:
		return "empty"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status messages shown in place of the ticket list.
const (
	MessageLoading = "Loading tickets..."
	MessageEmpty   = "No tickets available"
	MessageFailed  = "Failed to load tickets"
)

// View is an immutable snapshot of the catalog.
type View struct {
	State   State
	EventID string
	Filter  Filter

	// GeneralAdmission is the aggregate GA row, nil when the event
	// has no GA tickets in the current filter.
	GeneralAdmission *Row

	// Seated rows in display order.
	Seated []Row

	// Err is the load failure in StateFailed.
	Err error

	// Generation numbers the load that produced this view.
	Generation uint64
}

// Message returns the placeholder text for states without rows, or ""
// when rows should be shown.
func (view View) Message() string {
	switch view.State {
	case StateLoading:
		return MessageLoading
	case StateEmpty:
		return MessageEmpty
	case StateFailed:
		return MessageFailed
	default:
		return ""
	}
}

// Rows returns the GA aggregate (if any) followed by the seated rows.
func (view View) Rows() []Row {
	rows := make([]Row, 0, len(view.Seated)+1)
	if view.GeneralAdmission != nil {
		rows = append(rows, *view.GeneralAdmission)
	}
	return append(rows, view.Seated...)
}

// Build partitions tickets into the GA aggregate and sorted seated
// rows. The aggregate carries the lowest valid GA price and the summed
// availability of every GA ticket (1 for each that omits it).
func Build(tickets []ticketing.Ticket) (*Row, []Row) {
	sorted := slices.Clone(tickets)
	SortTickets(sorted)

	var generalAdmission *Row
	seated := make([]Row, 0, len(sorted))
	for _, ticket := range sorted {
		if !ticket.IsGeneralAdmission() {
			seated = append(seated, Row{
				ID:          ticket.ID,
				Type:        ticket.Type,
				Seat:        ticket.Seat,
				Price:       ticket.Price,
				Available:   ticket.AvailableCount(),
				Description: ticket.Description,
				Tickets:     1,
			})
			continue
		}
		if generalAdmission == nil {
			generalAdmission = &Row{
				ID:               ticketing.GeneralAdmissionID,
				Type:             ticketing.GeneralAdmissionID,
				Description:      ticket.Description,
				GeneralAdmission: true,
			}
		}
		generalAdmission.Tickets++
		generalAdmission.Available += ticket.AvailableCount()
		if ticket.Price.Valid && (!generalAdmission.Price.Valid || ticket.Price.Amount < generalAdmission.Price.Amount) {
			generalAdmission.Price = ticket.Price
		}
	}
	return generalAdmission, seated
}
