// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/boxoffice/cmd/boxoffice/cli"
	"github.com/bureau-foundation/boxoffice/lib/discover"
)

type eventsParams struct {
	cli.ConnectionParams
	cli.JSONOutput
}

type eventRow struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	When     string `json:"when,omitempty"`
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
}

func eventsCommand(out io.Writer) *cli.Command {
	var params eventsParams
	return &cli.Command{
		Name:    "events",
		Summary: "List events, optionally matching a search text",
		Usage:   "boxoffice events [query] [flags]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("events", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			connection, err := params.Connect(logger)
			if err != nil {
				return err
			}
			list, err := connection.Discover().Events(ctx, strings.Join(args, " "))
			if err != nil {
				return cli.FromPlatform(err)
			}
			rows := make([]eventRow, 0, len(list.Events))
			for _, event := range list.Events {
				rows = append(rows, eventRow(event))
			}
			if done, err := params.EmitJSON(out, rows); done {
				return err
			}
			if list.Message != "" {
				fmt.Fprintln(out, list.Message)
				return nil
			}
			writer := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "ID\tTITLE\tWHEN\tCATEGORY\tLOCATION")
			for _, row := range rows {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n", row.ID, row.Title, row.When, row.Category, row.Location)
			}
			return writer.Flush()
		},
	}
}

type eventParams struct {
	cli.ConnectionParams
	cli.JSONOutput
}

type eventResult struct {
	eventRow
	Description string `json:"description,omitempty"`
}

func eventCommand(out io.Writer) *cli.Command {
	var params eventParams
	return &cli.Command{
		Name:    "event",
		Summary: "Show one event",
		Usage:   "boxoffice event <event-id> [flags]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("event", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: boxoffice event <event-id>")
			}
			connection, err := params.Connect(logger)
			if err != nil {
				return err
			}
			page, err := connection.Discover().Event(ctx, args[0])
			if errors.Is(err, discover.ErrNoEventSelected) {
				return cli.Validation("event ID is empty")
			}
			if err != nil {
				return cli.FromPlatform(err)
			}
			result := eventResult{
				eventRow: eventRow{
					ID:       page.Event.ID,
					Title:    page.Title,
					When:     page.When,
					Category: page.Event.Category,
					Location: page.Location,
				},
				Description: page.Description,
			}
			if done, err := params.EmitJSON(out, result); done {
				return err
			}
			fmt.Fprintln(out, result.Title)
			for _, detail := range []string{result.When, result.Location} {
				if detail != "" {
					fmt.Fprintf(out, "  %s\n", detail)
				}
			}
			if result.Description != "" {
				fmt.Fprintf(out, "\n%s\n", result.Description)
			}
			return nil
		},
	}
}

type searchParams struct {
	cli.ConnectionParams
	cli.JSONOutput
	Limit int `json:"limit" flag:"limit" desc:"maximum suggestions to show (0 for all)" default:"0"`
}

func searchCommand(out io.Writer) *cli.Command {
	var params searchParams
	return &cli.Command{
		Name:    "search",
		Summary: "Show autocomplete suggestions for a prefix",
		Usage:   "boxoffice search <prefix> [flags]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("search", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			prefix := strings.TrimSpace(strings.Join(args, " "))
			if prefix == "" {
				return cli.Validation("usage: boxoffice search <prefix>")
			}
			if params.Limit < 0 {
				return cli.Validation("--limit must not be negative")
			}
			connection, err := params.Connect(logger)
			if err != nil {
				return err
			}
			suggestions, err := connection.Client.Autocomplete(ctx, prefix)
			if err != nil {
				return cli.FromPlatform(err)
			}
			if params.Limit > 0 && len(suggestions) > params.Limit {
				suggestions = suggestions[:params.Limit]
			}
			if done, err := params.EmitJSON(out, suggestions); done {
				return err
			}
			for _, suggestion := range suggestions {
				fmt.Fprintln(out, suggestion.Text)
			}
			return nil
		},
	}
}
