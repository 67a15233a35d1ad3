// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/boxoffice/cmd/boxoffice/cli"
)

type loginParams struct {
	cli.ConnectionParams
	cli.JSONOutput
}

type loginResult struct {
	Email    string `json:"email"`
	UserID   string `json:"user_id"`
	UserType string `json:"user_type,omitempty"`
	APIURL   string `json:"api_url"`
}

func loginCommand(out io.Writer) *cli.Command {
	var params loginParams
	return &cli.Command{
		Name:    "login",
		Summary: "Sign in by email and save the session",
		Usage:   "boxoffice login <email> [flags]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("login", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: boxoffice login <email>")
			}
			connection, err := params.Connect(logger)
			if err != nil {
				return err
			}
			session, err := connection.Login(ctx, args[0])
			if err != nil {
				return err
			}
			result := loginResult{
				Email:    session.Email,
				UserID:   session.UserID,
				UserType: session.UserType,
				APIURL:   session.APIURL,
			}
			if done, err := params.EmitJSON(out, result); done {
				return err
			}
			fmt.Fprintf(out, "Logged in as %s (user %s)\n", result.Email, result.UserID)
			return nil
		},
	}
}

func logoutCommand(out io.Writer) *cli.Command {
	var params cli.ConnectionParams
	return &cli.Command{
		Name:    "logout",
		Summary: "End the session and delete the saved cookies",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("logout", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 0 {
				return cli.Validation("logout takes no arguments")
			}
			connection, err := params.Connect(logger)
			if err != nil {
				return err
			}
			if err := connection.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "Logged out")
			return nil
		},
	}
}

type whoamiParams struct {
	cli.ConnectionParams
	cli.JSONOutput
}

func whoamiCommand(out io.Writer) *cli.Command {
	var params whoamiParams
	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the signed-in user",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("whoami", &params) },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			connection, err := params.Connect(logger)
			if err != nil {
				return err
			}
			identity, err := connection.Discover().RequireIdentity(ctx)
			if err != nil {
				return cli.FromPlatform(err)
			}
			if done, err := params.EmitJSON(out, identity); done {
				return err
			}
			fmt.Fprintf(out, "user %s", identity.UserID)
			if identity.UserType != "" {
				fmt.Fprintf(out, " (%s)", identity.UserType)
			}
			fmt.Fprintf(out, " on %s\n", connection)
			return nil
		},
	}
}
