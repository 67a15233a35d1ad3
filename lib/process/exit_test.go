// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"testing"
)

type codedError int

func (e codedError) Error() string { return fmt.Sprintf("coded %d", int(e)) }
func (e codedError) ExitCode() int { return int(e) }

func TestCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), 1},
		{"coded", codedError(4), 4},
		{"wrapped", fmt.Errorf("checkout: %w", codedError(5)), 5},
	}
	for _, test := range tests {
		if got := Code(test.err); got != test.want {
			t.Errorf("%s: Code = %d, want %d", test.name, got, test.want)
		}
	}
}
