// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"math"
	"testing"
	"time"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

func TestCurrency(t *testing.T) {
	t.Parallel()

	formatter := Default()
	tests := []struct {
		amount float64
		want   string
	}{
		{12.5, "€ 12.50"},
		{9, "€ 9.00"},
		{1234.5, "€ 1,234.50"},
		{0, "€ 0.00"},
		{math.NaN(), "€ 0.00"},
	}
	for _, test := range tests {
		if got := formatter.Currency(test.amount); got != test.want {
			t.Errorf("Currency(%v) = %q, want %q", test.amount, got, test.want)
		}
	}
}

func TestCurrencyISOCode(t *testing.T) {
	t.Parallel()

	formatter, err := New(Options{Currency: "usd", Language: "en-US"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := formatter.Currency(4); got != "$ 4.00" {
		t.Errorf("Currency(4) = %q, want %q", got, "$ 4.00")
	}
}

func TestNewRejectsUnknownCurrency(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Currency: "ZZZZ"}); err == nil {
		t.Error("expected error for malformed currency code")
	}
	if _, err := New(Options{Language: "not a tag!"}); err == nil {
		t.Error("expected error for malformed language tag")
	}
}

func TestTotal(t *testing.T) {
	t.Parallel()

	formatter := Default()
	for _, amount := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		if got := formatter.Total(amount); got != Placeholder {
			t.Errorf("Total(%v) = %q, want placeholder", amount, got)
		}
	}
	if got := formatter.Total(30); got != "€ 30.00" {
		t.Errorf("Total(30) = %q", got)
	}
}

func TestPrice(t *testing.T) {
	t.Parallel()

	formatter := Default()
	if got := formatter.Price(ticketing.Price{}); got != "Price unavailable" {
		t.Errorf("Price(invalid) = %q", got)
	}
	if got := formatter.Price(ticketing.NewPrice(45)); got != "€ 45.00" {
		t.Errorf("Price(45) = %q", got)
	}
}

func TestDate(t *testing.T) {
	t.Parallel()

	formatter, err := New(Options{TimeLayout: "2006-01-02 15:04", Location: time.UTC})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := formatter.Date("2026-05-01T20:30:00Z"); got != "2026-05-01 20:30" {
		t.Errorf("Date = %q", got)
	}
	if got := formatter.Date("sometime\nsoon"); got != "sometime soon" {
		t.Errorf("Date(free text) = %q", got)
	}
	if got := formatter.Date(""); got != "" {
		t.Errorf("Date(empty) = %q", got)
	}
}

func TestPlural(t *testing.T) {
	t.Parallel()

	tests := []struct {
		count int
		want  string
	}{
		{0, "0 tickets"},
		{1, "1 ticket"},
		{2, "2 tickets"},
	}
	for _, test := range tests {
		if got := Plural(test.count, "ticket", ""); got != test.want {
			t.Errorf("Plural(%d) = %q, want %q", test.count, got, test.want)
		}
	}
	if got := Plural(3, "category", "categories"); got != "3 categories" {
		t.Errorf("irregular plural = %q", got)
	}
}

func TestTextStripsEscapes(t *testing.T) {
	t.Parallel()

	input := "\x1b[31mRed\x1b[0m Hot\x07 Chili\tPeppers\n"
	if got := Text(input); got != "Red Hot Chili\tPeppers\n" {
		t.Errorf("Text = %q", got)
	}
	if got := Line(input); got != "Red Hot Chili Peppers" {
		t.Errorf("Line = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := Truncate("Opera Gala", 20); got != "Opera Gala" {
		t.Errorf("short Truncate = %q", got)
	}
	if got := Truncate("Opera Gala Night", 6); got != "Opera…" {
		t.Errorf("Truncate = %q, want %q", got, "Opera…")
	}
	if got := Truncate("anything", 0); got != "" {
		t.Errorf("Truncate(0) = %q", got)
	}
}
