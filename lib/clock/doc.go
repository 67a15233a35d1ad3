// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the injectable time source used by the
// boxoffice components that wait: the autocomplete debounce timer and
// the expiry of transient cart notices.
//
// Production code passes Real(). Tests pass Fake() and move time
// forward explicitly:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	controller := autocomplete.New(suggester, autocomplete.Options{Clock: fake})
//	controller.Input("ab")
//	fake.Advance(180 * time.Millisecond) // fires the debounce timer
//
// AfterFunc callbacks on a FakeClock run synchronously inside Advance,
// so a test observes the effect of a timer as soon as Advance returns.
package clock
