// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"github.com/bureau-foundation/boxoffice/lib/format"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// State is the lifecycle of the cart view.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
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

// Status messages shown in place of the item list.
const (
	MessageLoading = "Loading..."
	MessageEmpty   = "Your cart is empty"
	MessageFailed  = "Failed to load cart"
)

// Line is one rendered cart item.
type Line struct {
	Item  ticketing.CartItem
	Label string
	Price string
}

// View is a snapshot of the cart as last fetched.
type View struct {
	State State
	Cart  ticketing.Cart
	Lines []Line

	// TotalLine is "Total: € 55.00  (2 tickets)" for a loaded cart.
	TotalLine string

	Err error
}

// Message returns the placeholder for states without items.
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

// buildView projects a fetched cart. The total and count come from the
// platform; the item count in the total line is the number of items
// listed.
func buildView(cart *ticketing.Cart, formatter *format.Formatter) View {
	if cart == nil || len(cart.Items) == 0 {
		view := View{State: StateEmpty}
		if cart != nil {
			view.Cart = *cart
		}
		return view
	}
	lines := make([]Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		label := item.Type
		if label == "" {
			label = "Ticket"
		}
		if item.Seat != "" {
			label += " • " + item.Seat
		}
		lines = append(lines, Line{
			Item:  item,
			Label: format.Line(label),
			Price: formatter.Currency(item.Price.Value()),
		})
	}
	return View{
		State: StateLoaded,
		Cart:  *cart,
		Lines: lines,
		TotalLine: "Total: " + formatter.Currency(cart.Total.Value()) +
			"  (" + format.Plural(len(cart.Items), "ticket", "") + ")",
	}
}
