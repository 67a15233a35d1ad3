// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Boxoffice-fake serves an in-memory ticketing platform with seeded
// users, events and orders. It implements the routes the boxoffice
// client uses (auth, events, tickets, cart, orders, autocomplete and
// recommendations) so the client can be run and demonstrated without
// a real deployment:
//
//	boxoffice-fake --listen 127.0.0.1:5000 &
//	boxoffice login ada@example.com
//	boxoffice ui
//
// State lives for the life of the process.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/boxoffice/lib/fakeplatform"
	"github.com/bureau-foundation/boxoffice/lib/process"
	"github.com/bureau-foundation/boxoffice/lib/version"
)

// shutdownTimeout bounds how long in-flight requests may take to
// finish after a signal.
const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		listenAddress      string
		compress           bool
		withoutEventLookup bool
		logLevel           string
		showVersion        bool
	)
	flags := pflag.NewFlagSet("boxoffice-fake", pflag.ContinueOnError)
	flags.StringVar(&listenAddress, "listen", "127.0.0.1:5000", "address to serve HTTP on")
	flags.BoolVar(&compress, "compress", true, "compress responses (gzip/zstd) when the client accepts it")
	flags.BoolVar(&withoutEventLookup, "without-event-lookup", false, "leave GET /events/{id} unrouted, like older deployments")
	flags.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flags.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if showVersion {
		fmt.Fprintf(os.Stdout, "boxoffice-fake %s\n", version.Info())
		return nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", listenAddress, err)
	}
	return serve(ctx, listener, fakeplatform.Config{
		Compress:           compress,
		WithoutEventLookup: withoutEventLookup,
		Logger:             logger,
	}, logger)
}

// serve runs the platform on listener until ctx is cancelled, then
// drains in-flight requests.
func serve(ctx context.Context, listener net.Listener, config fakeplatform.Config, logger *slog.Logger) error {
	platform := fakeplatform.New(config)
	server := &http.Server{
		Handler:           platform.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- server.Serve(listener)
	}()
	logger.Info("fake platform running",
		"address", listener.Addr().String(),
		"version", version.Short(),
		"compress", config.Compress,
		"event_lookup", !config.WithoutEventLookup,
	)

	select {
	case err := <-serveDone:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-serveDone; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
