// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
	"github.com/bureau-foundation/boxoffice/lib/storefront"
)

// Outcome classifies a submission.
type Outcome int

const (
	// OutcomeBusy: refused because a submission of the same kind was
	// already in flight. Nothing was sent.
	OutcomeBusy Outcome = iota
	// OutcomeInvalid: refused before sending (no user, no tickets).
	OutcomeInvalid
	// OutcomeCreated: the platform answered 201.
	OutcomeCreated
	// OutcomeRejected: the platform answered with any other status.
	OutcomeRejected
	// OutcomeNetworkError: the exchange did not complete.
	OutcomeNetworkError
)

func (outcome Outcome) String() string {
	switch outcome {
	case OutcomeBusy:
		return "busy"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeCreated:
		return "created"
	case OutcomeRejected:
		return "rejected"
	case OutcomeNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// Result is what the user is told about a submission.
type Result struct {
	Outcome Outcome

	// OrderID is set for OutcomeCreated when the platform returned one.
	OrderID string

	// StatusCode and Body are the raw response for OutcomeCreated and
	// OutcomeRejected.
	StatusCode int
	Body       string

	// Err is the cause of OutcomeNetworkError.
	Err error

	// Message is the user-facing report.
	Message string
}

// Coordinator submits checkouts and direct orders. Each kind has its
// own single-flight guard: a second submission while one is running is
// refused with OutcomeBusy.
type Coordinator struct {
	platform Platform
	mutator  *Mutator
	logger   *slog.Logger

	checkoutInFlight atomic.Bool
	orderInFlight    atomic.Bool
}

// NewCoordinator creates a Coordinator. mutator reloads the cart after
// a successful checkout; logger may be nil.
func NewCoordinator(platform Platform, mutator *Mutator, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Coordinator{platform: platform, mutator: mutator, logger: logger}
}

// Enabled reports whether the checkout control accepts a submission.
func (coordinator *Coordinator) Enabled() bool {
	return !coordinator.checkoutInFlight.Load()
}

// OrderEnabled reports whether the direct order control accepts a
// submission.
func (coordinator *Coordinator) OrderEnabled() bool {
	return !coordinator.orderInFlight.Load()
}

// Checkout converts the cart into an order. On 201 the cart is
// reloaded (and so the badge refreshed). The call is not cancellable
// once sent beyond what ctx imposes on the exchange.
func (coordinator *Coordinator) Checkout(ctx context.Context) Result {
	if !coordinator.checkoutInFlight.CompareAndSwap(false, true) {
		return Result{Outcome: OutcomeBusy, Message: "Checkout already in progress"}
	}
	defer coordinator.checkoutInFlight.Store(false)

	response, err := coordinator.platform.Checkout(ctx)
	if err != nil {
		coordinator.logger.Error("checkout request failed", "error", err)
		return Result{
			Outcome: OutcomeNetworkError,
			Err:     err,
			Message: "Checkout error: " + rootCause(err),
		}
	}

	result := Result{StatusCode: response.StatusCode, Body: response.Body}
	if !response.Created() {
		result.Outcome = OutcomeRejected
		result.Message = fmt.Sprintf("Checkout failed: %d\n%s", response.StatusCode, bodyOrPlaceholder(response.Body))
		coordinator.logger.Info("checkout rejected", "status", response.StatusCode)
		return result
	}

	result.Outcome = OutcomeCreated
	result.OrderID = response.OrderID
	orderID := response.OrderID
	if orderID == "" {
		orderID = "?"
	}
	result.Message = "Order created with id " + orderID
	coordinator.logger.Info("checkout created order", "order_id", response.OrderID)

	if coordinator.mutator != nil {
		if _, err := coordinator.mutator.Load(ctx); err != nil {
			coordinator.logger.Warn("reloading cart after checkout failed", "error", err)
		}
	}
	return result
}

// CreateOrder places a direct order for userID, bypassing the cart.
// A missing user or an empty ticket list is refused without a request.
func (coordinator *Coordinator) CreateOrder(ctx context.Context, userID string, ticketIDs []string) Result {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Result{Outcome: OutcomeInvalid, Message: "Select a user"}
	}
	if len(ticketIDs) == 0 {
		return Result{Outcome: OutcomeInvalid, Message: "Select one or more tickets"}
	}

	if !coordinator.orderInFlight.CompareAndSwap(false, true) {
		return Result{Outcome: OutcomeBusy, Message: "Order already in progress"}
	}
	defer coordinator.orderInFlight.Store(false)

	request := ticketing.CreateOrderRequest{UserID: userID}
	for _, ticketID := range ticketIDs {
		request.Items = append(request.Items, ticketing.OrderLine{TicketID: ticketID})
	}

	response, err := coordinator.platform.CreateOrder(ctx, request)
	if err != nil {
		coordinator.logger.Error("create order request failed", "error", err)
		return Result{
			Outcome: OutcomeNetworkError,
			Err:     err,
			Message: "Error creating order: " + rootCause(err),
		}
	}

	result := Result{StatusCode: response.StatusCode, Body: response.Body, OrderID: response.OrderID}
	if !response.Created() {
		result.Outcome = OutcomeRejected
		result.Message = fmt.Sprintf("Failed: %d\n%s", response.StatusCode, bodyOrPlaceholder(response.Body))
		return result
	}
	result.Outcome = OutcomeCreated
	result.Message = "Order created"
	coordinator.logger.Info("direct order created", "order_id", response.OrderID, "user_id", userID)
	return result
}

func bodyOrPlaceholder(body string) string {
	if body == "" {
		return "<no body>"
	}
	return body
}

// rootCause is the innermost error message, without the operation
// prefixes added on the way up.
func rootCause(err error) string {
	for {
		next, ok := err.(interface{ Unwrap() error })
		if !ok || next.Unwrap() == nil {
			return err.Error()
		}
		err = next.Unwrap()
	}
}

var _ Platform = (*storefront.Client)(nil)
