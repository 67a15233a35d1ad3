// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketing defines the wire types of the event-ticketing
// platform: events, tickets, carts, orders, search suggestions,
// recommendations, users, and the authenticated identity.
//
// The types mirror the platform's JSON. The client never mutates them;
// selection state and other client-local overlays live in the packages
// that own them (catalog, cart, autocomplete).
package ticketing
