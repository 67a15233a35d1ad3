// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketing

import "strings"

// GeneralAdmissionID is the ticket identifier of the aggregate
// general-admission row and of GA add-to-cart requests.
const GeneralAdmissionID = "GA"

// Ticket is a read-only snapshot of one ticket listing.
type Ticket struct {
	ID          string `json:"_id"`
	EventID     string `json:"eventId,omitempty"`
	Type        string `json:"type"`
	Seat        string `json:"seat,omitempty"`
	Description string `json:"description,omitempty"`
	Price       Price  `json:"price"`

	// Available is nil when the platform omitted the field.
	Available *int `json:"available,omitempty"`

	GeneralAdmission bool `json:"isGeneralAdmission,omitempty"`
}

// IsGeneralAdmission reports whether the ticket is general admission:
// flagged as such, or typed "GA" in any letter case.
func (ticket Ticket) IsGeneralAdmission() bool {
	return ticket.GeneralAdmission || strings.EqualFold(strings.TrimSpace(ticket.Type), GeneralAdmissionID)
}

// AvailableCount returns Available, or 1 when the field was absent.
// Negative counts are treated as zero.
func (ticket Ticket) AvailableCount() int {
	if ticket.Available == nil {
		return 1
	}
	if *ticket.Available < 0 {
		return 0
	}
	return *ticket.Available
}

// SortKey is the seat label, falling back to the ticket type.
func (ticket Ticket) SortKey() string {
	if ticket.Seat != "" {
		return ticket.Seat
	}
	return ticket.Type
}

// TicketPage is the envelope of GET /tickets.
type TicketPage struct {
	Data []Ticket `json:"data"`
	Meta PageMeta `json:"meta,omitempty"`
}
