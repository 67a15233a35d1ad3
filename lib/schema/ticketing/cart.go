// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketing

// CartItem is one reserved ticket in the server-side cart.
type CartItem struct {
	TicketID string `json:"ticketId"`
	EventID  string `json:"eventId,omitempty"`
	Type     string `json:"type,omitempty"`
	Seat     string `json:"seat,omitempty"`
	Price    Price  `json:"price"`
}

// Cart is the GET /cart response. Total and Count are computed by the
// platform and are authoritative.
type Cart struct {
	Items []CartItem `json:"items"`
	Total Price      `json:"total"`
	Count int        `json:"count"`
}

// AddItemRequest is the POST /cart/items body. A seated add carries
// only TicketID; a general-admission add uses GeneralAdmissionID with
// a quantity and the event.
type AddItemRequest struct {
	TicketID string `json:"ticketId"`
	Quantity int    `json:"quantity,omitempty"`
	EventID  string `json:"eventId,omitempty"`
}

// IsGeneralAdmission reports whether the request adds a GA quantity.
func (request AddItemRequest) IsGeneralAdmission() bool {
	return request.TicketID == GeneralAdmissionID
}
