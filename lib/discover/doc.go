// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package discover is the read-only side of the client: the sign-in
// gate, the event list, single-event lookup, the user picker for direct
// orders, and the graph recommendation panels with their explanations.
//
// Every operation returns plain view values with their display strings
// already computed by [format.Formatter], so the terminal UI and the
// CLI render the same text.
package discover
