// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package format converts platform data into display strings: currency
// amounts, event dates, pluralized counts, and terminal-safe text.
//
// Everything here is a pure function of its inputs. A [Formatter]
// carries the locale choices (currency unit, language, time layout and
// zone) so callers configure them once from lib/config; the zero-config
// [Default] formatter renders euros in English.
//
// Text received from the platform is untrusted: [Text] and [Line]
// strip terminal escape sequences and control characters before the
// text reaches a terminal, the way a browser client would HTML-escape
// it.
package format
