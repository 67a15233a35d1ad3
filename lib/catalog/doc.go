// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog loads the tickets of one event and aggregates the
// price of a ticket selection.
//
// A [Loader] fetches tickets through a [TicketSource], partitions them
// into one aggregate general-admission row and a naturally sorted list
// of seated rows, and publishes the result as a [View]. Every load is
// numbered; a response belonging to a superseded load is rejected with
// [ErrStale] and never replaces the visible view, so a slow response to
// an old filter cannot overwrite a newer one.
//
// A [Selection] is the client-local overlay on a loaded view: which
// seated rows are checked and how many general-admission tickets are
// wanted. It keeps an explicit map from ticket ID to price and
// availability, and derives the display total from it. The total is a
// display aid only; the cart's server-computed total is authoritative.
package catalog
