// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/boxoffice/lib/catalog"
	"github.com/bureau-foundation/boxoffice/lib/clock"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

func newTestMutator(platform Platform, confirmer Confirmer) (*Mutator, *Indicators) {
	indicators := NewIndicators(clock.Fake(epoch), 0)
	return NewMutator(platform, MutatorConfig{Indicators: indicators, Confirmer: confirmer}), indicators
}

func TestAddBatchPartialFailure(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{refuse: map[string]bool{"a2": true, "a4": true}}
	mutator, indicators := newTestMutator(platform, nil)

	result := mutator.AddBatch(context.Background(), catalog.Submission{
		EventID:          "e1",
		TicketIDs:        []string{"a1", "a2", "a3", "a4"},
		GeneralAdmission: 2,
	})

	if result.Requested != 5 || result.Added != 3 || result.Failed() != 2 {
		t.Fatalf("result = %+v, want 5 requested, 3 added, 2 failed", result)
	}
	failed := map[string]bool{}
	for _, failure := range result.Failures {
		failed[failure.TicketID] = true
	}
	if !failed["a2"] || !failed["a4"] {
		t.Errorf("failures = %+v, want a2 and a4", result.Failures)
	}

	// a1, a3 and two GA items: the badge reflects a fresh fetch.
	if count, known := indicators.Badge().Count(); !known || count != 4 {
		t.Errorf("badge = %d (known %v), want 4", count, known)
	}
	notice := indicators.Notice().Text()
	if !strings.HasPrefix(notice, "Added 3, 2 failed") {
		t.Errorf("notice = %q", notice)
	}
	if !strings.Contains(notice, "a2: ") || !strings.Contains(notice, "a4: ") {
		t.Errorf("notice %q does not list each failure", notice)
	}
	cartCalls, addCalls, gaCalls, _, _ := platform.counts()
	if addCalls != 4 || gaCalls != 1 || cartCalls != 1 {
		t.Errorf("calls: add %d, ga %d, cart %d; want 4, 1, 1", addCalls, gaCalls, cartCalls)
	}
}

func TestAddBatchAllSucceed(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{}
	mutator, indicators := newTestMutator(platform, nil)
	result := mutator.Add(context.Background(), "b7")
	if result.Added != 1 || result.Failed() != 0 {
		t.Fatalf("result = %+v", result)
	}
	if got := indicators.Notice().Text(); got != "Added 1 item to cart" {
		t.Errorf("notice = %q", got)
	}
	view := mutator.View()
	if view.State != StateLoaded || len(view.Lines) != 1 {
		t.Fatalf("view = %+v", view)
	}
	if got := view.Lines[0].Label; got != "Seated • b7" {
		t.Errorf("line label = %q", got)
	}
}

func TestAddBatchEmpty(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{}
	mutator, indicators := newTestMutator(platform, nil)
	result := mutator.AddBatch(context.Background(), catalog.Submission{})
	if result.Requested != 0 {
		t.Fatalf("Requested = %d", result.Requested)
	}
	if got := indicators.Notice().Text(); got != "Nothing selected" {
		t.Errorf("notice = %q", got)
	}
	if cartCalls, _, _, _, _ := platform.counts(); cartCalls != 0 {
		t.Errorf("empty batch fetched the cart %d times", cartCalls)
	}
}

func TestAddGeneralAdmissionRejectsZero(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{}
	mutator, _ := newTestMutator(platform, nil)
	if _, err := mutator.AddGeneralAdmission(context.Background(), "e1", 0); err == nil {
		t.Fatal("quantity 0 was accepted")
	}
	if _, _, gaCalls, _, _ := platform.counts(); gaCalls != 0 {
		t.Errorf("GA add sent %d requests", gaCalls)
	}
}

func TestLoadTotalLine(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{items: []ticketing.CartItem{
		{TicketID: "a1", Type: "Seated", Seat: "A1", Price: ticketing.NewPrice(30)},
		{TicketID: "GA", Type: "GA", Price: ticketing.NewPrice(25)},
	}}
	mutator, _ := newTestMutator(platform, nil)
	view, err := mutator.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := "Total: € 55.00  (2 tickets)"; view.TotalLine != want {
		t.Errorf("TotalLine = %q, want %q", view.TotalLine, want)
	}
	if got := view.Lines[1].Label; got != "GA" {
		t.Errorf("GA line label = %q", got)
	}
}

func TestLoadEmptyAndFailed(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{}
	mutator, indicators := newTestMutator(platform, nil)
	view, err := mutator.Load(context.Background())
	if err != nil || view.State != StateEmpty || view.Message() != MessageEmpty {
		t.Fatalf("empty load: view %+v, err %v", view, err)
	}

	platform.mutex.Lock()
	platform.cartErr = errors.New("view cart: HTTP 500: boom")
	platform.mutex.Unlock()
	view, err = mutator.Load(context.Background())
	if err == nil || view.State != StateFailed || view.Message() != MessageFailed {
		t.Fatalf("failed load: view %+v, err %v", view, err)
	}
	if count, known := indicators.Badge().Count(); !known || count != 0 {
		t.Errorf("badge = %d (known %v) after failed load, want the previous 0", count, known)
	}
}

func TestRemoveReloadsEvenOnFailure(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{
		items:     []ticketing.CartItem{{TicketID: "a1", Price: ticketing.NewPrice(10)}},
		removeErr: errors.New("remove from cart: HTTP 404: not in cart"),
	}
	mutator, _ := newTestMutator(platform, nil)
	view, err := mutator.Remove(context.Background(), "a1")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if view.State != StateLoaded {
		t.Errorf("view state = %v, want loaded", view.State)
	}
	cartCalls, _, _, removeCalls, _ := platform.counts()
	if removeCalls != 1 || cartCalls != 1 {
		t.Errorf("remove %d, cart %d; want 1, 1", removeCalls, cartCalls)
	}
}

func TestClearDeclinedSendsNothing(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{items: []ticketing.CartItem{{TicketID: "a1"}}}
	var asked string
	mutator, _ := newTestMutator(platform, ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		asked = prompt
		return false, nil
	}))

	cleared, _, err := mutator.Clear(context.Background())
	if err != nil || cleared {
		t.Fatalf("Clear() = %v, %v", cleared, err)
	}
	if asked != ClearPrompt {
		t.Errorf("prompt = %q, want %q", asked, ClearPrompt)
	}
	if cartCalls, _, _, _, clearCalls := platform.counts(); clearCalls != 0 || cartCalls != 0 {
		t.Errorf("declined clear sent clear %d, cart %d", clearCalls, cartCalls)
	}
}

func TestClearConfirmed(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{items: []ticketing.CartItem{{TicketID: "a1"}}}
	mutator, indicators := newTestMutator(platform, AlwaysConfirm)
	cleared, view, err := mutator.Clear(context.Background())
	if err != nil || !cleared {
		t.Fatalf("Clear() = %v, %v", cleared, err)
	}
	if view.State != StateEmpty {
		t.Errorf("view state = %v, want empty", view.State)
	}
	if count, _ := indicators.Badge().Count(); count != 0 {
		t.Errorf("badge = %d after clear", count)
	}
}

func TestNilConfirmerRefuses(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{items: []ticketing.CartItem{{TicketID: "a1"}}}
	mutator, _ := newTestMutator(platform, nil)
	cleared, _, err := mutator.Clear(context.Background())
	if err != nil || cleared {
		t.Fatalf("Clear() = %v, %v, want refused", cleared, err)
	}
}
