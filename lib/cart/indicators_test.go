// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"testing"
	"time"

	"github.com/bureau-foundation/boxoffice/lib/clock"
)

var epoch = time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)

func TestIndicatorsCreatedLazily(t *testing.T) {
	t.Parallel()

	indicators := NewIndicators(clock.Fake(epoch), 0)
	if badge, notice := indicators.Created(); badge || notice {
		t.Fatalf("Created() = %v, %v before first use", badge, notice)
	}

	first := indicators.Badge()
	if badge, notice := indicators.Created(); !badge || notice {
		t.Fatalf("Created() = %v, %v after Badge()", badge, notice)
	}
	if indicators.Badge() != first {
		t.Error("Badge() returned a second instance")
	}
	if indicators.Notice() != indicators.Notice() {
		t.Error("Notice() returned a second instance")
	}
}

func TestBadgeLabel(t *testing.T) {
	t.Parallel()

	badge := NewIndicators(clock.Fake(epoch), 0).Badge()
	if got := badge.Label(); got != "Cart" {
		t.Errorf("Label() before fetch = %q, want %q", got, "Cart")
	}
	badge.Set(0)
	if got := badge.Label(); got != "Cart (0)" {
		t.Errorf("Label() = %q, want %q", got, "Cart (0)")
	}
	badge.Set(3)
	if count, known := badge.Count(); count != 3 || !known {
		t.Errorf("Count() = %d, %v, want 3, true", count, known)
	}
}

func TestNoticeExpires(t *testing.T) {
	t.Parallel()

	fake := clock.Fake(epoch)
	indicators := NewIndicators(fake, 0)
	changes := 0
	indicators.OnChange(func() { changes++ })

	notice := indicators.Notice()
	notice.Post("Added 2 items to cart")
	if got := notice.Text(); got != "Added 2 items to cart" {
		t.Fatalf("Text() = %q", got)
	}

	fake.Advance(DefaultNoticeDuration - time.Millisecond)
	if notice.Text() == "" {
		t.Fatal("notice cleared before its duration")
	}
	fake.Advance(time.Millisecond)
	if got := notice.Text(); got != "" {
		t.Fatalf("Text() after expiry = %q, want empty", got)
	}
	if changes != 2 {
		t.Errorf("OnChange ran %d times, want 2 (post and expiry)", changes)
	}
}

func TestNoticeReplaceRestartsExpiry(t *testing.T) {
	t.Parallel()

	fake := clock.Fake(epoch)
	notice := NewIndicators(fake, time.Second).Notice()

	notice.Post("first")
	fake.Advance(800 * time.Millisecond)
	notice.Post("second")
	fake.Advance(800 * time.Millisecond)
	if got := notice.Text(); got != "second" {
		t.Fatalf("Text() = %q, want the replacement to outlive the first expiry", got)
	}
	fake.Advance(200 * time.Millisecond)
	if got := notice.Text(); got != "" {
		t.Fatalf("Text() = %q after the replacement expired", got)
	}
}

func TestNoticeDismiss(t *testing.T) {
	t.Parallel()

	fake := clock.Fake(epoch)
	notice := NewIndicators(fake, 0).Notice()
	notice.Post("Nothing selected")
	notice.Dismiss()
	if notice.Text() != "" {
		t.Fatal("Dismiss left the notice visible")
	}
	if fake.Pending() != 0 {
		t.Errorf("Pending() = %d after Dismiss, want 0", fake.Pending())
	}
}
