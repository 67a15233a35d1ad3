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
	"github.com/bureau-foundation/boxoffice/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

type versionResult struct {
	Version string `json:"version"`
	Info    string `json:"info"`
}

func versionCommand(out io.Writer) *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("version", &params) },
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
			if done, err := params.EmitJSON(out, versionResult{Version: version.Short(), Info: version.Info()}); done {
				return err
			}
			fmt.Fprintln(out, version.Full())
			return nil
		},
	}
}
