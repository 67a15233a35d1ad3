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
)

func orderCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "order",
		Summary: "Place orders directly, bypassing the cart",
		Subcommands: []*cli.Command{
			orderCreateCommand(out),
		},
	}
}

type orderCreateParams struct {
	cli.ConnectionParams
	cli.JSONOutput
	User string `json:"user" flag:"user,u" desc:"user the order is placed for (required)"`
}

func orderCreateCommand(out io.Writer) *cli.Command {
	var params orderCreateParams
	return &cli.Command{
		Name:    "create",
		Summary: "Create an order for a user from ticket IDs",
		Description: `Create an order for any user without going through a cart. Ticket IDs
are sent in the order given. The exit status is 0 only when the
platform created the order.`,
		Usage: "boxoffice order create --user <user-id> <ticket-id>... [flags]",
		Examples: []cli.Example{
			{Description: "Order two seats for Bo", Command: "boxoffice order create --user u-bo t-rock-B1 t-rock-B2"},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("create", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			var ticketIDs []string
			for _, arg := range args {
				if ticketID := strings.TrimSpace(arg); ticketID != "" {
					ticketIDs = append(ticketIDs, ticketID)
				}
			}
			connection, err := params.Connect(logger)
			if err != nil {
				return err
			}
			_, coordinator := connection.Cart(nil)
			return reportSubmission(out, &params.JSONOutput, coordinator.CreateOrder(ctx, params.User, ticketIDs))
		},
	}
}

type usersParams struct {
	cli.ConnectionParams
	cli.JSONOutput
}

type userRow struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func usersCommand(out io.Writer) *cli.Command {
	var params usersParams
	return &cli.Command{
		Name:    "users",
		Summary: "List the users orders can be placed for",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("users", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 0 {
				return cli.Validation("users takes no arguments")
			}
			connection, err := params.Connect(logger)
			if err != nil {
				return err
			}
			options, err := connection.Discover().Users(ctx)
			if err != nil {
				return cli.FromPlatform(err)
			}
			rows := make([]userRow, 0, len(options))
			for _, option := range options {
				rows = append(rows, userRow(option))
			}
			if done, err := params.EmitJSON(out, rows); done {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No users")
				return nil
			}
			writer := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "ID\tUSER")
			for _, row := range rows {
				fmt.Fprintf(writer, "%s\t%s\n", row.ID, row.Label)
			}
			return writer.Flush()
		},
	}
}
