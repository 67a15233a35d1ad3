// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Boxoffice is the terminal client for the ticketing platform. It
// provides subcommands for the session (login, logout, whoami), event
// discovery (events, event, search, tickets), the cart and checkout
// (cart), direct orders (order, users), recommendations (recommend,
// explain), and the interactive interface (ui).
package main
