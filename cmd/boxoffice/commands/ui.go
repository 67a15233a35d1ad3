// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/boxoffice/cmd/boxoffice/cli"
	"github.com/bureau-foundation/boxoffice/lib/autocomplete"
	"github.com/bureau-foundation/boxoffice/lib/boxui"
)

type uiParams struct {
	cli.ConnectionParams
	LogFile string `json:"log_file" flag:"log-file" desc:"append logs to this file (the terminal is taken by the interface)"`
}

func uiCommand() *cli.Command {
	var params uiParams
	return &cli.Command{
		Name:    "ui",
		Summary: "Open the interactive interface",
		Description: `Open the full-screen interface: event list with search, event pages
with seat selection, the cart, direct orders and recommendations.
Requires a signed-in session (see "boxoffice login").

Errors are shown on the status line. Use --log-file to keep a full log.`,
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("ui", &params) },
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 0 {
				return cli.Validation("ui takes no arguments")
			}

			var inner slog.Handler = slog.DiscardHandler
			if params.LogFile != "" {
				file, err := os.OpenFile(params.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
				if err != nil {
					return cli.Validation("opening log file: %w", err)
				}
				defer file.Close()
				inner = cli.NewFileHandler(file)
			}
			status := boxui.NewStatusHandler(inner, slog.LevelError)
			logger := slog.New(status)

			connection, err := params.Connect(logger)
			if err != nil {
				return err
			}
			cfg := connection.Config
			err = boxui.Run(ctx, boxui.RunOptions{
				Options: boxui.Options{
					Platform:  connection.Client,
					Formatter: connection.Formatter,
					Autocomplete: autocomplete.Config{
						MinChars:       cfg.Autocomplete.MinChars,
						Debounce:       cfg.Debounce(),
						MaxSuggestions: cfg.Autocomplete.MaxSuggestions,
					},
					CatalogLimit:   cfg.Catalog.Limit,
					EventLimit:     cfg.Catalog.Limit,
					NoticeDuration: cfg.NoticeDuration(),
					Profile:        termenv.NewOutput(os.Stdout).EnvColorProfile(),
					Logger:         logger,
				},
				Status: status,
			})
			if err != nil {
				logger.Info("interface exited", "error", err)
				return cli.FromPlatform(fmt.Errorf("%s: %w", connection, err))
			}
			return nil
		},
	}
}
