// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the boxoffice binary.
//
// A [Command] tree dispatches on the first positional argument, parses
// pflag flags bound from tagged params structs ([FlagsFromParams]),
// and runs the leaf's Run function with a context and a logger.
// Unknown commands and flags get an edit-distance suggestion.
//
// Commands reach the ticketing platform through [ConnectionParams],
// which every platform-facing params struct embeds: it loads the
// configuration, builds the storefront client, and restores the saved
// session. Errors meant for scripts carry a [ToolError] category;
// [FromPlatform] maps platform responses onto those categories.
package cli
