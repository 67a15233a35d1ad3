// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides entrypoint helpers for the boxoffice
// binaries: fatal error reporting to stderr for failures that happen
// before a structured logger exists, and the matching process exit.
package process
