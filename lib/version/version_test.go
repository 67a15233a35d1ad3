// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfoUsesInjectedCommit(t *testing.T) {
	original, originalDirty := GitCommit, GitDirty
	t.Cleanup(func() { GitCommit, GitDirty = original, originalDirty })

	GitCommit, GitDirty = "abc1234", "true"
	if got := Info(); !strings.HasPrefix(got, Version+" (abc1234-dirty, ") {
		t.Errorf("Info() = %q", got)
	}
	if got := Full(); !strings.Contains(got, "Go: go") {
		t.Errorf("Full() = %q, want the Go version line", got)
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); got != "boxoffice/"+Short() {
		t.Errorf("UserAgent() = %q", got)
	}
}
