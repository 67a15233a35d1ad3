// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/boxoffice/cmd/boxoffice/cli"
	"github.com/bureau-foundation/boxoffice/lib/discover"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// targetUser returns the explicit user, or the signed-in one.
func targetUser(ctx context.Context, connection *cli.Connection, explicit string) (string, error) {
	if user := strings.TrimSpace(explicit); user != "" {
		return user, nil
	}
	return connection.RequireIdentity(ctx)
}

func parseKind(text string) ([]ticketing.RecommendationKind, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == "all" {
		return ticketing.RecommendationKinds, nil
	}
	names := make([]string, 0, len(ticketing.RecommendationKinds))
	for _, kind := range ticketing.RecommendationKinds {
		if string(kind) == text {
			return []ticketing.RecommendationKind{kind}, nil
		}
		names = append(names, string(kind))
	}
	return nil, cli.Validation("unknown recommendation kind %q (want all, %s)", text, strings.Join(names, ", "))
}

type recommendParams struct {
	cli.ConnectionParams
	cli.JSONOutput
	Kind string `json:"kind" flag:"kind,k" desc:"feed to show: all, for-you, nearby or deep" default:"all"`
	User string `json:"user" flag:"user,u" desc:"user to recommend for (default: the signed-in user)"`
}

type pickRow struct {
	EventID  string `json:"event_id"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	When     string `json:"when,omitempty"`
	Score    string `json:"score,omitempty"`
}

type panelOutput struct {
	Kind  string    `json:"kind"`
	Title string    `json:"title"`
	Picks []pickRow `json:"picks"`
	Error string    `json:"error,omitempty"`
}

func recommendCommand(out io.Writer) *cli.Command {
	var params recommendParams
	return &cli.Command{
		Name:    "recommend",
		Summary: "Show event recommendations",
		Description: `Show the recommendation feeds for a user. Each feed is fetched
independently; a failing feed is reported without hiding the others.`,
		Usage: "boxoffice recommend [--kind <kind>] [--user <user-id>] [flags]",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("recommend", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 0 {
				return cli.Validation("recommend takes no arguments")
			}
			kinds, err := parseKind(params.Kind)
			if err != nil {
				return err
			}
			connection, err := params.Connect(logger)
			if err != nil {
				return err
			}
			userID, err := targetUser(ctx, connection, params.User)
			if err != nil {
				return err
			}

			service := connection.Discover()
			var panels []discover.Panel
			if len(kinds) == 1 {
				panels = []discover.Panel{service.Recommendations(ctx, userID, kinds[0])}
			} else {
				panels = service.Panels(ctx, userID)
			}

			outputs := make([]panelOutput, 0, len(panels))
			failed := 0
			for _, panel := range panels {
				output := panelOutput{Kind: string(panel.Kind), Title: panel.Title, Picks: make([]pickRow, 0, len(panel.Picks))}
				for _, pick := range panel.Picks {
					output.Picks = append(output.Picks, pickRow(pick))
				}
				if panel.Err != nil {
					output.Error = panel.Err.Error()
					failed++
				}
				outputs = append(outputs, output)
			}

			if done, err := params.EmitJSON(out, outputs); !done {
				for index, panel := range panels {
					if index > 0 {
						fmt.Fprintln(out)
					}
					if err := printPanel(out, panel); err != nil {
						return err
					}
				}
			} else if err != nil {
				return err
			}
			if failed == len(panels) {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func printPanel(out io.Writer, panel discover.Panel) error {
	fmt.Fprintln(out, panel.Title)
	if message := panel.Message(); message != "" {
		fmt.Fprintf(out, "  %s\n", message)
		return nil
	}
	writer := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
	for _, pick := range panel.Picks {
		fmt.Fprintf(writer, "  %s\t%s\t%s\t%s\t%s\n", pick.EventID, pick.Title, pick.Category, pick.When, pick.Score)
	}
	return writer.Flush()
}

type explainParams struct {
	cli.ConnectionParams
	cli.JSONOutput
	User string `json:"user" flag:"user,u" desc:"user the event was recommended to (default: the signed-in user)"`
}

type explainOutput struct {
	EventID  string   `json:"event_id"`
	UserID   string   `json:"user_id"`
	Steps    []string `json:"steps"`
	Distance int      `json:"distance"`
	Text     string   `json:"text"`
}

func explainCommand(out io.Writer) *cli.Command {
	var params explainParams
	return &cli.Command{
		Name:    "explain",
		Summary: "Explain why an event was recommended",
		Usage:   "boxoffice explain <event-id> [--user <user-id>] [flags]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("explain", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: boxoffice explain <event-id>")
			}
			connection, err := params.Connect(logger)
			if err != nil {
				return err
			}
			userID, err := targetUser(ctx, connection, params.User)
			if err != nil {
				return err
			}
			explanation, err := connection.Discover().Explain(ctx, userID, args[0])
			if err != nil {
				return cli.FromPlatform(err)
			}
			output := explainOutput{
				EventID:  args[0],
				UserID:   userID,
				Steps:    explanation.Steps,
				Distance: explanation.Distance,
				Text:     explanation.Text,
			}
			if output.Steps == nil {
				output.Steps = []string{}
			}
			if done, err := params.EmitJSON(out, output); done {
				return err
			}
			fmt.Fprintln(out, output.Text)
			return nil
		},
	}
}
