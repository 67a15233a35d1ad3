// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// Cart fetches the current server-side cart.
func (client *Client) Cart(ctx context.Context) (*ticketing.Cart, error) {
	var cart ticketing.Cart
	if err := client.call(ctx, "view cart", http.MethodGet, "/cart", nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart reserves one seated ticket.
func (client *Client) AddToCart(ctx context.Context, ticketID string) error {
	if ticketID == "" {
		return fmt.Errorf("add to cart: ticket ID is required")
	}
	request := ticketing.AddItemRequest{TicketID: ticketID}
	return client.call(ctx, "add to cart", http.MethodPost, "/cart/items", nil, request, nil)
}

// AddGeneralAdmission reserves quantity general-admission tickets of
// an event. The caller clamps quantity to availability beforehand.
func (client *Client) AddGeneralAdmission(ctx context.Context, eventID string, quantity int) error {
	if eventID == "" {
		return fmt.Errorf("add general admission: event ID is required")
	}
	if quantity < 1 {
		return fmt.Errorf("add general admission: quantity %d is below 1", quantity)
	}
	request := ticketing.AddItemRequest{
		TicketID: ticketing.GeneralAdmissionID,
		Quantity: quantity,
		EventID:  eventID,
	}
	return client.call(ctx, "add general admission", http.MethodPost, "/cart/items", nil, request, nil)
}

// RemoveFromCart releases one ticket from the cart.
func (client *Client) RemoveFromCart(ctx context.Context, ticketID string) error {
	if ticketID == "" {
		return fmt.Errorf("remove from cart: ticket ID is required")
	}
	return client.call(ctx, "remove from cart", http.MethodDelete, "/cart/items/"+url.PathEscape(ticketID), nil, nil, nil)
}

// ClearCart releases every ticket in the cart.
func (client *Client) ClearCart(ctx context.Context) error {
	return client.call(ctx, "clear cart", http.MethodPost, "/cart/clear", nil, nil, nil)
}

// SubmitResult is a completed checkout or order submission. Only
// StatusCode 201 means the order exists; every other status is shown to
// the user with Body verbatim.
type SubmitResult struct {
	StatusCode int
	Body       string

	// OrderID is the created order's identifier when the 201 body
	// carried one.
	OrderID string
}

// Created reports whether the platform created the order.
func (result *SubmitResult) Created() bool {
	return result.StatusCode == http.StatusCreated
}

// Checkout converts the cart into a paid order. The error return is
// reserved for exchanges that did not complete.
func (client *Client) Checkout(ctx context.Context) (*SubmitResult, error) {
	response, err := client.do(ctx, http.MethodPost, "/cart/checkout", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	result := &SubmitResult{StatusCode: response.statusCode, Body: string(response.body)}
	if result.Created() {
		result.OrderID = createdOrderID(response.body)
	}
	return result, nil
}

// CreateOrder places a direct order for a user, bypassing the cart.
// Like Checkout, HTTP failures are reported in the result.
func (client *Client) CreateOrder(ctx context.Context, request ticketing.CreateOrderRequest) (*SubmitResult, error) {
	if request.UserID == "" {
		return nil, fmt.Errorf("create order: user ID is required")
	}
	if len(request.Items) == 0 {
		return nil, fmt.Errorf("create order: at least one ticket is required")
	}
	response, err := client.do(ctx, http.MethodPost, "/orders", nil, request)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	result := &SubmitResult{StatusCode: response.statusCode, Body: string(response.body)}
	if result.Created() {
		result.OrderID = createdOrderID(response.body)
	}
	return result, nil
}

// createdOrderID extracts the order identifier from a 201 body, which
// is either {"order": {...}} or the order document itself.
func createdOrderID(body []byte) string {
	var created struct {
		ticketing.CheckoutResponse
		ID string `json:"_id"`
	}
	if json.Unmarshal(body, &created) != nil {
		return ""
	}
	if created.Order != nil && created.Order.ID != "" {
		return created.Order.ID
	}
	return created.ID
}
