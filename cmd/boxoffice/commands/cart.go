// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/boxoffice/cmd/boxoffice/cli"
	"github.com/bureau-foundation/boxoffice/lib/cart"
	"github.com/bureau-foundation/boxoffice/lib/catalog"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

type cartParams struct {
	cli.ConnectionParams
	cli.JSONOutput
}

type cartLine struct {
	TicketID string `json:"ticket_id"`
	EventID  string `json:"event_id,omitempty"`
	Label    string `json:"label"`
	Price    string `json:"price"`
}

type cartResult struct {
	Items []cartLine `json:"items"`
	Count int        `json:"count"`
	Total string     `json:"total"`
}

func newCartResult(connection *cli.Connection, view cart.View) cartResult {
	result := cartResult{
		Items: make([]cartLine, 0, len(view.Lines)),
		Count: view.Cart.Count,
		Total: connection.Formatter.Currency(view.Cart.Total.Value()),
	}
	for _, line := range view.Lines {
		result.Items = append(result.Items, cartLine{
			TicketID: line.Item.TicketID,
			EventID:  line.Item.EventID,
			Label:    line.Label,
			Price:    line.Price,
		})
	}
	return result
}

func printCart(out io.Writer, view cart.View) error {
	if message := view.Message(); message != "" {
		fmt.Fprintln(out, message)
		return nil
	}
	writer := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "TICKET\tITEM\tPRICE")
	for _, line := range view.Lines {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", line.Item.TicketID, line.Label, line.Price)
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s\n", view.TotalLine)
	return nil
}

// signedInCart connects, checks the session, and builds the cart
// components.
func signedInCart(ctx context.Context, params cli.ConnectionParams, logger *slog.Logger, confirmer cart.Confirmer) (*cli.Connection, *cart.Mutator, *cart.Coordinator, error) {
	connection, err := params.Connect(logger)
	if err != nil {
		return nil, nil, nil, err
	}
	if _, err := connection.RequireIdentity(ctx); err != nil {
		return nil, nil, nil, err
	}
	mutator, coordinator := connection.Cart(confirmer)
	return connection, mutator, coordinator, nil
}

func cartCommand(out io.Writer, in io.Reader) *cli.Command {
	var params cartParams
	return &cli.Command{
		Name:    "cart",
		Summary: "Show and change the shopping cart",
		Description: `Show the cart of the signed-in user. Subcommands add tickets, remove
them, clear the cart, and check out.`,
		Usage: "boxoffice cart [command] [flags]",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("cart", &params) },
		Subcommands: []*cli.Command{
			cartAddCommand(out),
			cartAddGeneralAdmissionCommand(out),
			cartRemoveCommand(out),
			cartClearCommand(out, in),
			cartCheckoutCommand(out),
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 0 {
				return cli.Validation("unknown cart command %q\n\nRun 'boxoffice cart --help' for usage.", args[0])
			}
			connection, mutator, _, err := signedInCart(ctx, params.ConnectionParams, logger, nil)
			if err != nil {
				return err
			}
			view, err := mutator.Load(ctx)
			if err != nil {
				return cli.FromPlatform(err)
			}
			if done, err := params.EmitJSON(out, newCartResult(connection, view)); done {
				return err
			}
			return printCart(out, view)
		},
	}
}

type batchFailure struct {
	TicketID string `json:"ticket_id"`
	Quantity int    `json:"quantity"`
	Error    string `json:"error"`
}

type batchOutput struct {
	Requested int            `json:"requested"`
	Added     int            `json:"added"`
	Failures  []batchFailure `json:"failures"`
	CartCount int            `json:"cart_count"`
	Summary   string         `json:"summary"`
	// Quantity is the effective GA quantity after clamping.
	Quantity int `json:"quantity,omitempty"`
}

// reportBatch prints a batch add and turns any failure into exit
// status 1.
func reportBatch(out io.Writer, params *cli.JSONOutput, mutator *cart.Mutator, result cart.BatchResult, quantity int) error {
	output := batchOutput{
		Requested: result.Requested,
		Added:     result.Added,
		Failures:  make([]batchFailure, 0, result.Failed()),
		CartCount: mutator.View().Cart.Count,
		Summary:   result.Summary(),
		Quantity:  quantity,
	}
	for _, failure := range result.Failures {
		output.Failures = append(output.Failures, batchFailure{
			TicketID: failure.TicketID,
			Quantity: failure.Quantity,
			Error:    failure.Err.Error(),
		})
	}
	if done, err := params.EmitJSON(out, output); done {
		if err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, output.Summary)
	}
	if result.Failed() > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func cartAddCommand(out io.Writer) *cli.Command {
	var params cartParams
	return &cli.Command{
		Name:    "add",
		Summary: "Add seated tickets to the cart",
		Description: `Add one or more tickets by ID. The adds run concurrently; one failing
does not stop the others. The exit status is 1 if any add failed.`,
		Usage: "boxoffice cart add <ticket-id>... [flags]",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("add", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return cli.Validation("usage: boxoffice cart add <ticket-id>...")
			}
			var ticketIDs []string
			seen := make(map[string]bool, len(args))
			for _, arg := range args {
				ticketID := strings.TrimSpace(arg)
				if ticketID == "" || seen[ticketID] {
					continue
				}
				if ticketID == ticketing.GeneralAdmissionID {
					return cli.Validation("general admission is added by quantity: boxoffice cart add-ga <event-id> <quantity>")
				}
				seen[ticketID] = true
				ticketIDs = append(ticketIDs, ticketID)
			}
			if len(ticketIDs) == 0 {
				return cli.Validation("no ticket IDs given")
			}
			_, mutator, _, err := signedInCart(ctx, params.ConnectionParams, logger, nil)
			if err != nil {
				return err
			}
			result := mutator.AddBatch(ctx, catalog.Submission{TicketIDs: ticketIDs})
			return reportBatch(out, &params.JSONOutput, mutator, result, 0)
		},
	}
}

func cartAddGeneralAdmissionCommand(out io.Writer) *cli.Command {
	var params cartParams
	return &cli.Command{
		Name:    "add-ga",
		Summary: "Add general admission tickets to the cart",
		Description: `Add a quantity of an event's general admission tickets. The quantity
is clamped to what is available; a note is printed when it was
adjusted.`,
		Usage: "boxoffice cart add-ga <event-id> <quantity> [flags]",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("add-ga", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return cli.Validation("usage: boxoffice cart add-ga <event-id> <quantity>")
			}
			eventID := strings.TrimSpace(args[0])
			connection, mutator, _, err := signedInCart(ctx, params.ConnectionParams, logger, nil)
			if err != nil {
				return err
			}
			view, err := connection.Loader().Load(ctx, eventID, catalog.Filter{})
			if err != nil {
				return cli.FromPlatform(err)
			}
			selection := catalog.NewSelection(view, connection.Formatter)
			quantity, err := selection.SetGeneralAdmissionText(args[1])
			if err != nil {
				return cli.Conflict("event %s: %w", eventID, err)
			}
			if requested := catalog.ParseQuantity(args[1]); requested != quantity && !params.OutputJSON {
				fmt.Fprintf(out, "Quantity adjusted to %d (%d available)\n", quantity, view.GeneralAdmission.Available)
			}
			result, err := mutator.AddGeneralAdmission(ctx, eventID, quantity)
			if err != nil {
				return cli.Validation("%w", err)
			}
			return reportBatch(out, &params.JSONOutput, mutator, result, quantity)
		},
	}
}

func cartRemoveCommand(out io.Writer) *cli.Command {
	var params cartParams
	return &cli.Command{
		Name:    "remove",
		Summary: "Remove tickets from the cart",
		Usage:   "boxoffice cart remove <ticket-id>... [flags]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("remove", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return cli.Validation("usage: boxoffice cart remove <ticket-id>...")
			}
			connection, mutator, _, err := signedInCart(ctx, params.ConnectionParams, logger, nil)
			if err != nil {
				return err
			}
			var view cart.View
			for _, ticketID := range args {
				view, err = mutator.Remove(ctx, strings.TrimSpace(ticketID))
				if err != nil {
					return cli.FromPlatform(err)
				}
			}
			if done, err := params.EmitJSON(out, newCartResult(connection, view)); done {
				return err
			}
			return printCart(out, view)
		},
	}
}

type cartClearParams struct {
	cli.ConnectionParams
	cli.JSONOutput
	Yes bool `json:"yes" flag:"yes,y" desc:"clear without asking"`
}

func cartClearCommand(out io.Writer, in io.Reader) *cli.Command {
	var params cartClearParams
	return &cli.Command{
		Name:    "clear",
		Summary: "Empty the cart",
		Description: `Remove every item from the cart. Asks for confirmation unless --yes
is given; without a terminal to ask on, --yes is required.`,
		Usage: "boxoffice cart clear [--yes] [flags]",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("clear", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 0 {
				return cli.Validation("clear takes no arguments")
			}
			confirmer := cart.AlwaysConfirm
			if !params.Yes {
				if file, ok := in.(*os.File); ok && !term.IsTerminal(int(file.Fd())) {
					return cli.Validation("refusing to clear the cart without confirmation: stdin is not a terminal (pass --yes)")
				}
				confirmer = promptConfirmer(out, in)
			}
			connection, mutator, _, err := signedInCart(ctx, params.ConnectionParams, logger, confirmer)
			if err != nil {
				return err
			}
			cleared, view, err := mutator.Clear(ctx)
			if err != nil {
				return cli.FromPlatform(err)
			}
			if !cleared {
				fmt.Fprintln(out, "Cart left unchanged")
				return nil
			}
			if done, err := params.EmitJSON(out, newCartResult(connection, view)); done {
				return err
			}
			return printCart(out, view)
		},
	}
}

// promptConfirmer asks on out and reads one line from in. Only "y"
// and "yes" accept.
func promptConfirmer(out io.Writer, in io.Reader) cart.Confirmer {
	reader := bufio.NewReader(in)
	return cart.ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	})
}

type checkoutOutput struct {
	Outcome    string `json:"outcome"`
	OrderID    string `json:"order_id,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
}

// reportSubmission prints a checkout or direct order result. Anything
// but a created order exits non-zero.
func reportSubmission(out io.Writer, params *cli.JSONOutput, result cart.Result) error {
	output := checkoutOutput{
		Outcome:    result.Outcome.String(),
		OrderID:    result.OrderID,
		StatusCode: result.StatusCode,
		Message:    result.Message,
	}
	if done, err := params.EmitJSON(out, output); done {
		if err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, result.Message)
	}
	switch result.Outcome {
	case cart.OutcomeCreated:
		return nil
	case cart.OutcomeInvalid:
		return &cli.ExitError{Code: 2}
	case cart.OutcomeNetworkError:
		return &cli.ExitError{Code: 6}
	default:
		return &cli.ExitError{Code: 1}
	}
}

func cartCheckoutCommand(out io.Writer) *cli.Command {
	var params cartParams
	return &cli.Command{
		Name:    "checkout",
		Summary: "Turn the cart into an order",
		Usage:   "boxoffice cart checkout [flags]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("checkout", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 0 {
				return cli.Validation("checkout takes no arguments")
			}
			_, _, coordinator, err := signedInCart(ctx, params.ConnectionParams, logger, nil)
			if err != nil {
				return err
			}
			return reportSubmission(out, &params.JSONOutput, coordinator.Checkout(ctx))
		},
	}
}
