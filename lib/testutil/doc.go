// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds the channel helpers shared by boxoffice
// tests. They wrap the select-with-timeout pattern so individual tests
// never call time.After themselves; these helpers are the only place
// in the test suite where wall-clock timeouts appear.
//
// All helpers fail the test with t.Fatalf rather than returning errors.
package testutil
