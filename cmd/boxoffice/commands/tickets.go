// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/boxoffice/cmd/boxoffice/cli"
	"github.com/bureau-foundation/boxoffice/lib/catalog"
	"github.com/bureau-foundation/boxoffice/lib/format"
)

type ticketsParams struct {
	cli.ConnectionParams
	cli.JSONOutput
	Seat     string `json:"seat" flag:"seat" desc:"seat label filter (platform-side match)"`
	MinPrice string `json:"min_price" flag:"min-price" desc:"lowest price to include"`
	MaxPrice string `json:"max_price" flag:"max-price" desc:"highest price to include"`
}

type ticketRow struct {
	ID               string `json:"id"`
	Label            string `json:"label"`
	Type             string `json:"type,omitempty"`
	Price            string `json:"price"`
	Available        int    `json:"available"`
	GeneralAdmission bool   `json:"general_admission,omitempty"`
	Listings         int    `json:"listings,omitempty"`
}

func ticketsCommand(out io.Writer) *cli.Command {
	var params ticketsParams
	return &cli.Command{
		Name:    "tickets",
		Summary: "List the tickets of an event",
		Description: `List the tickets of an event. General admission tickets are merged
into one row whose availability is the sum over all GA listings; seated
tickets follow, sorted by seat.`,
		Usage: "boxoffice tickets <event-id> [flags]",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("tickets", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: boxoffice tickets <event-id>")
			}
			connection, err := params.Connect(logger)
			if err != nil {
				return err
			}
			view, err := connection.Loader().Load(ctx, args[0], catalog.Filter{
				Seat:     params.Seat,
				MinPrice: params.MinPrice,
				MaxPrice: params.MaxPrice,
			})
			if err != nil {
				return cli.FromPlatform(err)
			}

			rows := make([]ticketRow, 0, len(view.Seated)+1)
			for _, row := range view.Rows() {
				rows = append(rows, ticketRow{
					ID:               row.ID,
					Label:            row.Label(),
					Type:             row.Type,
					Price:            connection.Formatter.Price(row.Price),
					Available:        row.Available,
					GeneralAdmission: row.GeneralAdmission,
					Listings:         row.Tickets,
				})
			}
			if done, err := params.EmitJSON(out, rows); done {
				return err
			}
			if message := view.Message(); message != "" {
				fmt.Fprintln(out, message)
				return nil
			}
			writer := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "ID\tSEAT\tPRICE\tAVAILABLE")
			for _, row := range rows {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%d\n", row.ID, row.Label, row.Price, row.Available)
			}
			if err := writer.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s\n", format.Plural(len(rows), "row", ""))
			return nil
		},
	}
}
