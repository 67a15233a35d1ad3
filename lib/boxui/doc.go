// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package boxui is the interactive terminal front end of boxoffice.
// Built on bubbletea (Elm architecture), it renders the event list
// with autocomplete, one event's ticket catalog with a live selection
// total, the cart, direct orders for the legacy purchase path, and the
// recommendation panels.
//
// The model owns no business state. Every screen is a projection of a
// component from lib/catalog, lib/cart, lib/autocomplete or
// lib/discover; platform calls run as tea.Cmds and their results come
// back as messages, so the bubbletea loop is the only goroutine that
// touches the model. Components that change on their own (the
// autocomplete controller after its debounce, the cart notice when it
// expires) wake the loop through a coalescing channel and the model
// re-reads their snapshots.
package boxui
