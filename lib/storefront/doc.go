// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package storefront is a typed HTTP client for the ticketing
// platform's JSON API: authentication, events, tickets, the cart,
// orders, search suggestions, and graph recommendations.
//
// The platform authenticates with a session cookie set by
// POST /auth/login. The client keeps it in a cookie jar; [Client.Session]
// and [Client.RestoreSession] move it to and from the on-disk [Session]
// so that separate CLI invocations share one login.
//
// Every request carries a fresh X-Request-ID for correlation with
// platform logs. Responses are negotiated with gzip/zstd compression
// when enabled and are read through a bounded reader ([MaxResponseSize]).
//
// Non-2xx responses become [*HTTPError] values carrying the raw status
// and body. The two calls whose failure bodies are shown to the user
// verbatim, [Client.Checkout] and [Client.CreateOrder], instead return
// a [SubmitResult] for every completed exchange and reserve the error
// return for network failures.
package storefront
