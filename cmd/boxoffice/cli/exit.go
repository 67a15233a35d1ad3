// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError ends the program with Code without printing anything more.
// Commands return it after writing their own report, for example a
// checkout the platform rejected.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode is checked by main to tell a reported failure from an
// error still to be printed.
func (e *ExitError) ExitCode() int {
	return e.Code
}
