// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bureau-foundation/boxoffice/lib/catalog"
	"github.com/bureau-foundation/boxoffice/lib/format"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// MutatorConfig holds Mutator collaborators. Only Indicators is
// required.
type MutatorConfig struct {
	Indicators *Indicators

	// Confirmer is asked before Clear. Nil refuses every clear.
	Confirmer Confirmer

	// Formatter renders prices. Nil uses format.Default.
	Formatter *format.Formatter

	// Logger records best-effort failures. Nil discards.
	Logger *slog.Logger
}

// Mutator issues cart mutations and keeps the cart view in step with
// the platform. Safe for concurrent use.
type Mutator struct {
	platform   Platform
	indicators *Indicators
	confirmer  Confirmer
	formatter  *format.Formatter
	logger     *slog.Logger

	mutex sync.Mutex
	view  View
}

// NewMutator creates a Mutator with an idle view.
func NewMutator(platform Platform, config MutatorConfig) *Mutator {
	formatter := config.Formatter
	if formatter == nil {
		formatter = format.Default()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	confirmer := config.Confirmer
	if confirmer == nil {
		confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })
	}
	return &Mutator{
		platform:   platform,
		indicators: config.Indicators,
		confirmer:  confirmer,
		formatter:  formatter,
		logger:     logger,
	}
}

// View returns the cart view as of the last load.
func (mutator *Mutator) View() View {
	mutator.mutex.Lock()
	defer mutator.mutex.Unlock()
	return mutator.view
}

// Load fetches the cart, replaces the view, and updates the badge from
// the platform's count. A failed fetch leaves the badge alone and puts
// the view in StateFailed.
func (mutator *Mutator) Load(ctx context.Context) (View, error) {
	cart, err := mutator.platform.Cart(ctx)
	if err != nil {
		mutator.logger.Warn("loading cart failed", "error", err)
		view := View{State: StateFailed, Err: err}
		mutator.setView(view)
		return view, fmt.Errorf("load cart: %w", err)
	}
	view := buildView(cart, mutator.formatter)
	mutator.setView(view)
	mutator.indicators.Badge().Set(badgeCount(cart))
	return view, nil
}

func (mutator *Mutator) setView(view View) {
	mutator.mutex.Lock()
	mutator.view = view
	mutator.mutex.Unlock()
}

// badgeCount prefers the platform's count and falls back to the item
// list when the count is missing.
func badgeCount(cart *ticketing.Cart) int {
	if cart.Count > 0 || len(cart.Items) == 0 {
		return cart.Count
	}
	return len(cart.Items)
}

// Failure is one add that the platform refused or that never
// completed.
type Failure struct {
	// TicketID is the seated ticket, or ticketing.GeneralAdmissionID.
	TicketID string
	// Quantity is the GA quantity requested; 1 for seated tickets.
	Quantity int
	Err      error
}

// BatchResult tallies a batch add. Added + len(Failures) == Requested.
type BatchResult struct {
	Requested int
	Added     int
	Failures  []Failure
}

// Failed is the number of adds that did not succeed.
func (result BatchResult) Failed() int {
	return len(result.Failures)
}

// Summary renders the outcome for the notice line, with one extra line
// per failure.
func (result BatchResult) Summary() string {
	if result.Requested == 0 {
		return "Nothing selected"
	}
	var builder strings.Builder
	if result.Failed() == 0 {
		fmt.Fprintf(&builder, "Added %s to cart", pluralAdds(result.Added))
		return builder.String()
	}
	fmt.Fprintf(&builder, "Added %d, %d failed", result.Added, result.Failed())
	for _, failure := range result.Failures {
		subject := failure.TicketID
		if failure.TicketID == ticketing.GeneralAdmissionID {
			subject = fmt.Sprintf("GA x%d", failure.Quantity)
		}
		fmt.Fprintf(&builder, "\n  %s: %v", subject, failure.Err)
	}
	return builder.String()
}

func pluralAdds(count int) string {
	return format.Plural(count, "item", "")
}

// AddBatch adds a catalog submission: one request per seated ticket
// plus one for the GA quantity, all issued concurrently. It waits for
// every request, then refreshes the badge from a fresh fetch and posts
// the summary as a notice. A failing add never prevents the others.
func (mutator *Mutator) AddBatch(ctx context.Context, submission catalog.Submission) BatchResult {
	type outcome struct {
		failure *Failure
	}
	outcomes := make([]outcome, submission.Len())

	var group sync.WaitGroup
	for index, ticketID := range submission.TicketIDs {
		group.Go(func() {
			if err := mutator.platform.AddToCart(ctx, ticketID); err != nil {
				outcomes[index].failure = &Failure{TicketID: ticketID, Quantity: 1, Err: err}
			}
		})
	}
	if submission.GeneralAdmission > 0 {
		index := len(submission.TicketIDs)
		group.Go(func() {
			err := mutator.platform.AddGeneralAdmission(ctx, submission.EventID, submission.GeneralAdmission)
			if err != nil {
				outcomes[index].failure = &Failure{
					TicketID: ticketing.GeneralAdmissionID,
					Quantity: submission.GeneralAdmission,
					Err:      err,
				}
			}
		})
	}
	group.Wait()

	result := BatchResult{Requested: len(outcomes)}
	for _, outcome := range outcomes {
		if outcome.failure != nil {
			result.Failures = append(result.Failures, *outcome.failure)
			mutator.logger.Info("add to cart failed",
				"ticket_id", outcome.failure.TicketID,
				"quantity", outcome.failure.Quantity,
				"error", outcome.failure.Err,
			)
			continue
		}
		result.Added++
	}

	if result.Requested > 0 {
		mutator.refresh(ctx)
	}
	mutator.indicators.Notice().Post(result.Summary())
	return result
}

// Add adds one seated ticket; see AddBatch.
func (mutator *Mutator) Add(ctx context.Context, ticketID string) BatchResult {
	return mutator.AddBatch(ctx, catalog.Submission{TicketIDs: []string{ticketID}})
}

// AddGeneralAdmission adds a GA quantity; see AddBatch. The quantity
// must already be clamped; below 1 is rejected without a request.
func (mutator *Mutator) AddGeneralAdmission(ctx context.Context, eventID string, quantity int) (BatchResult, error) {
	if quantity < 1 {
		return BatchResult{}, fmt.Errorf("general admission quantity %d is below 1", quantity)
	}
	return mutator.AddBatch(ctx, catalog.Submission{EventID: eventID, GeneralAdmission: quantity}), nil
}

// refresh reloads the cart after a mutation. Its failure is logged,
// not returned: the mutation itself already happened.
func (mutator *Mutator) refresh(ctx context.Context) View {
	view, err := mutator.Load(ctx)
	if err != nil {
		mutator.logger.Warn("refreshing cart after mutation failed", "error", err)
	}
	return view
}

// Remove deletes one item. The delete is best effort: its failure is
// logged and the cart is reloaded either way. The returned error is
// the reload's.
func (mutator *Mutator) Remove(ctx context.Context, ticketID string) (View, error) {
	if err := mutator.platform.RemoveFromCart(ctx, ticketID); err != nil {
		mutator.logger.Warn("removing cart item failed", "ticket_id", ticketID, "error", err)
	}
	return mutator.Load(ctx)
}

// Clear empties the cart after the Confirmer accepts ClearPrompt. A
// declined confirmation sends nothing and returns cleared false. The
// clear itself is best effort, followed by a reload.
func (mutator *Mutator) Clear(ctx context.Context) (cleared bool, view View, err error) {
	confirmed, err := mutator.confirmer.Confirm(ctx, ClearPrompt)
	if err != nil {
		return false, mutator.View(), fmt.Errorf("confirm clear: %w", err)
	}
	if !confirmed {
		return false, mutator.View(), nil
	}
	if err := mutator.platform.ClearCart(ctx); err != nil {
		mutator.logger.Warn("clearing cart failed", "error", err)
	}
	view, err = mutator.Load(ctx)
	return true, view, err
}
