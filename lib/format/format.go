// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// Placeholder is shown in place of a total that is zero or unparsable.
const Placeholder = "—"

// DefaultTimeLayout renders event dates when no layout is configured.
const DefaultTimeLayout = "Mon 2 Jan 2006 15:04"

// Options configures a Formatter. Empty fields take defaults.
type Options struct {
	// Currency is an ISO 4217 code. Default "EUR".
	Currency string

	// Language is a BCP 47 tag controlling digit grouping and the
	// currency symbol. Default "en".
	Language string

	// TimeLayout is a Go reference-time layout. Default
	// DefaultTimeLayout.
	TimeLayout string

	// Location converts event timestamps before rendering. Default
	// time.Local.
	Location *time.Location
}

// Formatter renders amounts and dates for one locale. It is immutable
// and safe for concurrent use.
type Formatter struct {
	unit       currency.Unit
	printer    *message.Printer
	timeLayout string
	location   *time.Location
}

// New builds a Formatter, rejecting unknown currency codes and
// malformed language tags.
func New(options Options) (*Formatter, error) {
	code := options.Currency
	if code == "" {
		code = "EUR"
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("currency %q: %w", code, err)
	}

	tag := language.English
	if options.Language != "" {
		tag, err = language.Parse(options.Language)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", options.Language, err)
		}
	}

	layout := options.TimeLayout
	if layout == "" {
		layout = DefaultTimeLayout
	}
	location := options.Location
	if location == nil {
		location = time.Local
	}

	return &Formatter{
		unit:       unit,
		printer:    message.NewPrinter(tag),
		timeLayout: layout,
		location:   location,
	}, nil
}

var defaultFormatter, _ = New(Options{})

// Default returns the euro/English formatter.
func Default() *Formatter {
	return defaultFormatter
}

// Currency renders amount with the currency symbol, e.g. "€ 12.50".
func (formatter *Formatter) Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return formatter.printer.Sprint(currency.Symbol(formatter.unit.Amount(amount)))
}

// Price renders a ticket price, or "Price unavailable" for an invalid
// one.
func (formatter *Formatter) Price(price ticketing.Price) string {
	if !price.Valid {
		return "Price unavailable"
	}
	return formatter.Currency(price.Amount)
}

// Total renders a display total. Zero, negative, and non-finite totals
// render as Placeholder.
func (formatter *Formatter) Total(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return Placeholder
	}
	return formatter.Currency(amount)
}

// Date renders a platform timestamp in the configured layout and zone.
// Unparsable input is returned sanitized as-is; empty input is empty.
func (formatter *Formatter) Date(value string) string {
	parsed, ok := ticketing.ParseTimestamp(strings.TrimSpace(value))
	if !ok {
		return Line(value)
	}
	return parsed.In(formatter.location).Format(formatter.timeLayout)
}

// Plural renders a count with its noun: "1 ticket", "2 tickets". The
// plural form is the singular plus "s" when plural is empty.
func Plural(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	if plural == "" {
		plural = singular + "s"
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Text strips terminal escape sequences and control characters other
// than newline and tab.
func Text(value string) string {
	stripped := ansi.Strip(value)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, stripped)
}

// Line is Text collapsed onto one line: runs of whitespace, including
// newlines, become a single space.
func Line(value string) string {
	return strings.Join(strings.Fields(Text(value)), " ")
}

// Truncate shortens a single line to width terminal cells, ending it
// with an ellipsis when cut.
func Truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(value) <= width {
		return value
	}
	return ansi.Truncate(value, width, "…")
}
