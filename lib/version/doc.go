// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the boxoffice
// binaries.
//
// Version information is injected at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/boxoffice/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Without ldflags, the VCS revision recorded by the Go toolchain is
// used when available.
package version
