// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func run(t *testing.T, root *Command, args ...string) error {
	t.Helper()
	return root.Execute(context.Background(), args, nil)
}

func TestCommand_Execute_DispatchesNested(t *testing.T) {
	var called string
	var received []string

	root := &Command{
		Name: "boxoffice",
		Subcommands: []*Command{
			{
				Name: "cart",
				Subcommands: []*Command{
					{
						Name: "remove",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							called = "cart remove"
							received = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := run(t, root, "cart", "remove", "t-rock-A3"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if called != "cart remove" {
		t.Errorf("dispatched to %q", called)
	}
	if len(received) != 1 || received[0] != "t-rock-A3" {
		t.Errorf("args = %v, want [t-rock-A3]", received)
	}
}

func TestCommand_Execute_RunWithSubcommands(t *testing.T) {
	var called string
	root := &Command{
		Name: "cart",
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			called = "show"
			return nil
		},
		Subcommands: []*Command{
			{Name: "clear", Run: func(context.Context, []string, *slog.Logger) error {
				called = "clear"
				return nil
			}},
		},
	}

	if err := run(t, root); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if called != "show" {
		t.Errorf("bare command ran %q, want show", called)
	}
	if err := run(t, root, "clear"); err != nil || called != "clear" {
		t.Errorf("clear: called %q, err %v", called, err)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	type params struct {
		Seat     string `flag:"seat" desc:"seat prefix"`
		MaxPrice string `flag:"max-price" desc:"highest price"`
	}
	var parsed params
	var received []string
	command := &Command{
		Name:  "tickets",
		Flags: func() *pflag.FlagSet { return FlagsFromParams("tickets", &parsed) },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			received = args
			return nil
		},
	}

	if err := run(t, command, "e-rock", "--seat", "B1", "--max-price=45"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if parsed.Seat != "B1" || parsed.MaxPrice != "45" {
		t.Errorf("params = %+v", parsed)
	}
	if len(received) != 1 || received[0] != "e-rock" {
		t.Errorf("args = %v", received)
	}
}

func TestCommand_Execute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "boxoffice",
		Subcommands: []*Command{
			{Name: "checkout", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
			{Name: "events", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := run(t, root, "chekout")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), `did you mean "checkout"`) {
		t.Errorf("error = %v", err)
	}
	var toolError *ToolError
	if !errors.As(err, &toolError) || toolError.Category != CategoryValidation {
		t.Errorf("error is not a validation ToolError: %#v", err)
	}

	err = run(t, root, "zzzzzzzz")
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("far-off name: %v", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	type params struct {
		Quantity int `flag:"quantity" desc:"tickets"`
	}
	var parsed params
	command := &Command{
		Name:  "add-ga",
		Flags: func() *pflag.FlagSet { return FlagsFromParams("add-ga", &parsed) },
		Run:   func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := run(t, command, "--quantty", "2")
	if err == nil || !strings.Contains(err.Error(), "did you mean --quantity?") {
		t.Errorf("error = %v", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:       "boxoffice",
		HelpOutput: &help,
		Subcommands: []*Command{
			{Name: "events", Summary: "List events", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	if err := run(t, root); err == nil {
		t.Error("expected an error without a subcommand")
	}
	if !strings.Contains(help.String(), "events") || !strings.Contains(help.String(), "List events") {
		t.Errorf("help = %q", help.String())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	var help bytes.Buffer
	type params struct {
		Yes bool `flag:"yes,y" desc:"skip the confirmation"`
	}
	var parsed params
	ran := false
	root := &Command{
		Name:       "boxoffice",
		HelpOutput: &help,
		Subcommands: []*Command{
			{
				Name:        "clear",
				Description: "Empty the cart.",
				Flags:       func() *pflag.FlagSet { return FlagsFromParams("clear", &parsed) },
				Examples:    []Example{{Description: "Without asking", Command: "boxoffice cart clear --yes"}},
				Run: func(context.Context, []string, *slog.Logger) error {
					ran = true
					return nil
				},
			},
		},
	}

	if err := run(t, root, "clear", "--help"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ran {
		t.Error("--help ran the command")
	}
	output := help.String()
	for _, want := range []string{"Empty the cart.", "boxoffice clear [flags]", "--yes", "skip the confirmation", "boxoffice cart clear --yes"} {
		if !strings.Contains(output, want) {
			t.Errorf("help missing %q:\n%s", want, output)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "cart", 4},
		{"cart", "cart", 0},
		{"crat", "cart", 2},
		{"checkout", "chekout", 1},
		{"order", "orders", 1},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}
