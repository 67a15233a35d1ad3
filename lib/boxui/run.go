// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boxui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// RunOptions configures Run.
type RunOptions struct {
	Options

	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer

	// Status, when set, is connected to the program so error records
	// reach the status line. The caller builds Options.Logger on it.
	Status *StatusHandler
}

// Run shows the UI until the user quits or ctx is cancelled. It
// returns the model's Err, so an unrecognized session comes back as
// an error wrapping discover.ErrUnauthenticated.
func Run(ctx context.Context, options RunOptions) error {
	// Cancelling on return releases command goroutines still waiting,
	// such as a cart clear waiting for its confirmation.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	options.Context = ctx
	model, err := NewModel(options.Options)
	if err != nil {
		return err
	}
	defer model.Close()

	programOptions := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if options.Input != nil {
		programOptions = append(programOptions, tea.WithInput(options.Input))
	}
	if options.Output != nil {
		programOptions = append(programOptions, tea.WithOutput(options.Output))
	}
	program := tea.NewProgram(model, programOptions...)
	if options.Status != nil {
		options.Status.SetProgram(program)
		defer options.Status.SetProgram(nil)
	}

	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("running terminal UI: %w", err)
	}
	if finalModel, ok := final.(Model); ok {
		return finalModel.Err()
	}
	return nil
}
