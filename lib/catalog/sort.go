// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// newCollator returns a case-insensitive, numeric-aware collator:
// "a2" < "A10", "b1" == "B1". Collators are not safe for concurrent
// use, so each sort builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.Loose, collate.Numeric)
}

// CompareLabels orders two seat labels the way the catalog does.
func CompareLabels(a, b string) int {
	return newCollator().CompareString(a, b)
}

// SortTickets orders tickets in place: general admission first, then
// by seat (falling back to type) with CompareLabels. Equal keys keep
// their server order.
func SortTickets(tickets []ticketing.Ticket) {
	collator := newCollator()
	slices.SortStableFunc(tickets, func(a, b ticketing.Ticket) int {
		aGA, bGA := a.IsGeneralAdmission(), b.IsGeneralAdmission()
		if aGA != bGA {
			if aGA {
				return -1
			}
			return 1
		}
		return collator.CompareString(a.SortKey(), b.SortKey())
	})
}
