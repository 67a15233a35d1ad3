// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/boxoffice/cmd/boxoffice/cli"
	"github.com/bureau-foundation/boxoffice/cmd/boxoffice/commands"
)

// TestCommandTreeSummaries walks the production command tree and
// checks that every subcommand shows up in its parent's listing with
// a summary, and that no parent has two children with the same name.
func TestCommandTreeSummaries(t *testing.T) {
	walkCommands(commands.Root(), nil, func(command *cli.Command, path []string) {
		if len(path) > 1 && command.Summary == "" {
			t.Errorf("%s: missing Summary", strings.Join(path, " "))
		}
		if command.Run == nil && len(command.Subcommands) == 0 {
			t.Errorf("%s: neither Run nor Subcommands", strings.Join(path, " "))
		}
		seen := make(map[string]bool)
		for _, sub := range command.Subcommands {
			if seen[sub.Name] {
				t.Errorf("%s: duplicate subcommand %q", strings.Join(path, " "), sub.Name)
			}
			seen[sub.Name] = true
		}
	})
}

// TestCommandTreeFlags builds every flag set once, so a params struct
// with a bad tag fails here instead of at the user's first run.
func TestCommandTreeFlags(t *testing.T) {
	walkCommands(commands.Root(), nil, func(command *cli.Command, path []string) {
		if command.Flags == nil {
			return
		}
		flagSet := command.Flags()
		if flagSet == nil {
			t.Errorf("%s: Flags returned nil", strings.Join(path, " "))
		}
	})
}

// walkCommands recursively visits every command in the tree, calling
// visit for each node with the accumulated command path.
func walkCommands(command *cli.Command, path []string, visit func(*cli.Command, []string)) {
	current := make([]string, len(path)+1)
	copy(current, path)
	current[len(path)] = command.Name
	visit(command, current)
	for _, sub := range command.Subcommands {
		walkCommands(sub, current, visit)
	}
}
