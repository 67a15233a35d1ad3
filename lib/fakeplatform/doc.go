// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fakeplatform is an in-memory ticketing platform speaking the
// same HTTP+JSON contracts as the real one, built on gin.
//
// It exists for development (boxoffice-fake serves it on a port) and
// for end-to-end tests of the storefront client and everything above
// it. Behavior follows the production platform where the client can
// observe it:
//
//   - sessions are a cookie set by POST /auth/login; routes that need
//     a user answer 401 {"error":"Authentication required"} without one
//   - GET /auth/me answers 200 {"authenticated":false} when signed out
//   - prices are stored in cents and served as decimal amounts
//   - a ticket in an order or in any cart is hidden from GET /tickets
//     and refused by POST /cart/items with 409
//   - general admission tickets are listed as one "GA" row whose
//     available field counts the free GA tickets
//   - recommendation feeds answer bare JSON arrays; an explanation
//     without a path answers 404 {"error":"no path found"}
//
// Nothing is persisted: a Store lives as long as its process.
package fakeplatform
