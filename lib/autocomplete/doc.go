// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package autocomplete implements the search box's suggestion state
// machine.
//
// A [Controller] receives the input text on every keystroke and
// keyboard [Action]s from the host UI. Input of at least MinChars
// characters arms a debounce timer; only the last keystroke inside the
// window issues a request. Every request carries a generation number
// and its own cancellable context, and a response is applied only if
// its generation is still current, so a slow response for an earlier
// prefix can never replace the suggestions for a later one.
//
// The controller never renders anything. Hosts subscribe with
// [Controller.Subscribe] and receive a [Snapshot] after every visible
// change; committing a suggestion (or pressing Enter on plain text)
// calls the configured search function.
//
// Time comes from a [clock.Clock], so tests drive the debounce with
// [clock.FakeClock.Advance] instead of sleeping.
package autocomplete
