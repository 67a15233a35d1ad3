// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketing

// Order is the part of a created order the client keeps.
type Order struct {
	ID     string `json:"_id"`
	Status string `json:"status,omitempty"`
}

// CheckoutResponse is the 201 body of POST /cart/checkout.
type CheckoutResponse struct {
	OK    bool   `json:"ok"`
	Order *Order `json:"order"`
}

// OrderLine references one ticket in a direct order.
type OrderLine struct {
	TicketID string `json:"ticketId"`
}

// CreateOrderRequest is the POST /orders body used by the direct
// purchase path that bypasses the cart.
type CreateOrderRequest struct {
	UserID string      `json:"userId"`
	Items  []OrderLine `json:"items"`
}
