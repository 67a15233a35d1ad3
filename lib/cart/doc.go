// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cart drives the server-owned shopping cart: adding a catalog
// selection, removing and clearing items, rendering the cart, and
// converting it into an order.
//
// The platform owns the cart. After every mutating call the [Mutator]
// re-fetches the cart and derives both the cart [View] and the badge
// count from that fresh snapshot; nothing here does optimistic local
// arithmetic on cart contents.
//
// A selection is added as a batch: one request per seated ticket plus
// one general-admission request, issued concurrently. Outcomes are
// tallied independently and summarized only after every request has
// settled ([BatchResult]).
//
// The [Coordinator] submits checkouts and direct orders with at most
// one submission of each kind in flight. Its control is disabled for
// the duration and re-enabled whatever the outcome.
//
// [Indicators] owns the two pieces of ambient UI state, the cart badge
// and the transient notice. Both are created lazily on first access.
package cart
