// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"context"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
	"github.com/bureau-foundation/boxoffice/lib/storefront"
)

// Platform is the subset of the storefront client the cart needs.
// *storefront.Client satisfies it.
type Platform interface {
	Cart(ctx context.Context) (*ticketing.Cart, error)
	AddToCart(ctx context.Context, ticketID string) error
	AddGeneralAdmission(ctx context.Context, eventID string, quantity int) error
	RemoveFromCart(ctx context.Context, ticketID string) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context) (*storefront.SubmitResult, error)
	CreateOrder(ctx context.Context, request ticketing.CreateOrderRequest) (*storefront.SubmitResult, error)
}

// ClearPrompt is the question asked before clearing the cart.
const ClearPrompt = "Clear cart?"

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls function.
func (function ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return function(ctx, prompt)
}

// AlwaysConfirm accepts every question. Used by non-interactive
// callers that already obtained consent (e.g. a --yes flag).
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
