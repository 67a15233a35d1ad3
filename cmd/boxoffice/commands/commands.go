// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the boxoffice command tree.
package commands

import (
	"io"
	"os"

	"github.com/bureau-foundation/boxoffice/cmd/boxoffice/cli"
)

// Root builds the command tree writing to the process's stdout and
// reading confirmations from stdin.
func Root() *cli.Command {
	return newRoot(os.Stdout, os.Stdin)
}

func newRoot(out io.Writer, in io.Reader) *cli.Command {
	return &cli.Command{
		Name: "boxoffice",
		Description: `boxoffice: a terminal client for the ticketing platform.

Browse events, pick seats and general admission tickets, manage the
cart, check out, and see recommendations. Run "boxoffice ui" for the
interactive interface.`,
		Subcommands: []*cli.Command{
			loginCommand(out),
			logoutCommand(out),
			whoamiCommand(out),
			eventsCommand(out),
			eventCommand(out),
			searchCommand(out),
			ticketsCommand(out),
			cartCommand(out, in),
			orderCommand(out),
			usersCommand(out),
			recommendCommand(out),
			explainCommand(out),
			uiCommand(),
			versionCommand(out),
		},
		Examples: []cli.Example{
			{Description: "Sign in (saves the session locally)", Command: "boxoffice login ada@example.com"},
			{Description: "Find an event", Command: "boxoffice events rock"},
			{Description: "Seats in row B up to 45", Command: "boxoffice tickets e-rock --seat B --max-price 45"},
			{Description: "Add two general admission tickets", Command: "boxoffice cart add-ga e-rock 2"},
			{Description: "Check out", Command: "boxoffice cart checkout"},
			{Description: "Open the interactive interface", Command: "boxoffice ui"},
		},
	}
}
