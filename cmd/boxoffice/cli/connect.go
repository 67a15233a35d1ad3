// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bureau-foundation/boxoffice/lib/cart"
	"github.com/bureau-foundation/boxoffice/lib/catalog"
	"github.com/bureau-foundation/boxoffice/lib/clock"
	"github.com/bureau-foundation/boxoffice/lib/config"
	"github.com/bureau-foundation/boxoffice/lib/discover"
	"github.com/bureau-foundation/boxoffice/lib/format"
	"github.com/bureau-foundation/boxoffice/lib/storefront"
)

// ConnectionParams selects the configuration, platform and session
// file. Embed it in the params of every command that talks to the
// platform.
type ConnectionParams struct {
	ConfigFile  string `json:"-" flag:"config" desc:"configuration file (default: $BOXOFFICE_CONFIG, else built-in defaults)"`
	APIURL      string `json:"-" flag:"api-url" desc:"platform base URL, overriding the configuration"`
	SessionFile string `json:"-" flag:"session-file" desc:"session file (default: $BOXOFFICE_SESSION_FILE or ~/.config/boxoffice/session.json)"`
}

// Connection is a configured platform client with the saved session
// restored, plus the components commands drive.
type Connection struct {
	Config      *config.Config
	Client      *storefront.Client
	Formatter   *format.Formatter
	SessionFile string
	Logger      *slog.Logger
}

// Connect loads and validates the configuration, then builds the
// client. A saved session for the same platform is restored; one for
// another platform is ignored.
func (params ConnectionParams) Connect(logger *slog.Logger) (*Connection, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var cfg *config.Config
	var err error
	if params.ConfigFile != "" {
		cfg, err = config.LoadFile(params.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, Validation("%w", err)
	}
	if params.APIURL != "" {
		cfg.API.BaseURL = strings.TrimRight(params.APIURL, "/")
	}
	if err := cfg.Validate(); err != nil {
		return nil, Validation("invalid configuration: %w", err)
	}
	if level, err := cfg.SlogLevel(); err == nil {
		LogLevel.Set(level)
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, Validation("%w", err)
	}
	formatter, err := format.New(format.Options{
		Currency:   cfg.Display.Currency,
		Language:   cfg.Display.Language,
		TimeLayout: cfg.Display.TimeLayout,
		Location:   location,
	})
	if err != nil {
		return nil, Validation("display settings: %w", err)
	}

	client, err := storefront.New(storefront.Config{
		BaseURL:     cfg.API.BaseURL,
		Timeout:     cfg.RequestTimeout(),
		Compression: cfg.CompressionEnabled(),
		Logger:      logger.With("component", "storefront"),
	})
	if err != nil {
		return nil, Validation("%w", err)
	}

	sessionFile := params.SessionFile
	if sessionFile == "" {
		sessionFile = cfg.Session.File
	}
	if sessionFile == "" {
		sessionFile = storefront.SessionFilePath()
	}

	connection := &Connection{
		Config:      cfg,
		Client:      client,
		Formatter:   formatter,
		SessionFile: sessionFile,
		Logger:      logger,
	}
	connection.restoreSession()
	return connection, nil
}

func (connection *Connection) restoreSession() {
	session, err := storefront.LoadSessionFrom(connection.SessionFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			connection.Logger.Warn("ignoring unreadable session file", "path", connection.SessionFile, "error", err)
		}
		return
	}
	if err := connection.Client.RestoreSession(session); err != nil {
		connection.Logger.Debug("saved session is for another platform", "session_api_url", session.APIURL, "error", err)
	}
}

// Login signs in with email and saves the session.
func (connection *Connection) Login(ctx context.Context, email string) (*storefront.Session, error) {
	connection.Client.ForgetSession()
	response, err := connection.Client.Login(ctx, email)
	if err != nil {
		return nil, FromPlatform(err)
	}
	session := connection.Client.Session()
	if session == nil {
		return nil, Internal("login: platform set no session cookie")
	}
	session.Email = strings.TrimSpace(email)
	session.UserID = response.UserID
	session.UserType = response.UserType
	if err := storefront.SaveSessionTo(session, connection.SessionFile); err != nil {
		return nil, Internal("%w", err)
	}
	return session, nil
}

// Logout ends the platform session, best effort, and deletes the
// session file.
func (connection *Connection) Logout(ctx context.Context) error {
	if connection.Client.Session() != nil {
		if err := connection.Client.Logout(ctx); err != nil {
			connection.Logger.Warn("platform logout failed", "error", err)
		}
	}
	connection.Client.ForgetSession()
	if err := storefront.RemoveSession(connection.SessionFile); err != nil {
		return Internal("%w", err)
	}
	return nil
}

// Discover builds the discovery service.
func (connection *Connection) Discover() *discover.Service {
	return discover.New(connection.Client, discover.Config{
		Formatter:  connection.Formatter,
		Logger:     connection.Logger.With("component", "discover"),
		EventLimit: connection.Config.Catalog.Limit,
	})
}

// Loader builds a ticket catalog loader.
func (connection *Connection) Loader() *catalog.Loader {
	return catalog.NewLoader(connection.Client, catalog.LoaderConfig{
		Limit:  connection.Config.Catalog.Limit,
		Logger: connection.Logger.With("component", "catalog"),
	})
}

// Cart builds the cart mutator and checkout coordinator. confirmer is
// asked before clearing the cart; nil refuses.
func (connection *Connection) Cart(confirmer cart.Confirmer) (*cart.Mutator, *cart.Coordinator) {
	mutator := cart.NewMutator(connection.Client, cart.MutatorConfig{
		Indicators: cart.NewIndicators(clock.Real(), connection.Config.NoticeDuration()),
		Confirmer:  confirmer,
		Formatter:  connection.Formatter,
		Logger:     connection.Logger.With("component", "cart"),
	})
	return mutator, cart.NewCoordinator(connection.Client, mutator, connection.Logger.With("component", "checkout"))
}

// RequireIdentity returns the signed-in identity, or a forbidden
// error telling the user to log in.
func (connection *Connection) RequireIdentity(ctx context.Context) (string, error) {
	identity, err := connection.Discover().RequireIdentity(ctx)
	if err != nil {
		return "", FromPlatform(err)
	}
	if identity.UserID == "" {
		return "", Internal("session check: platform returned no user id")
	}
	return identity.UserID, nil
}

// String names the platform for messages.
func (connection *Connection) String() string {
	return fmt.Sprintf("%s (%s)", connection.Config.API.BaseURL, connection.Config.Environment)
}
