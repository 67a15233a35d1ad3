// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package discover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/boxoffice/lib/format"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
	"github.com/bureau-foundation/boxoffice/lib/storefront"
)

// ErrUnauthenticated is returned by RequireIdentity when the platform
// does not recognize the session.
var ErrUnauthenticated = errors.New("not signed in")

// Platform is the subset of the storefront client discover needs.
type Platform interface {
	Me(ctx context.Context) (*ticketing.Identity, error)
	ListEvents(ctx context.Context, query storefront.EventQuery) ([]ticketing.Event, error)
	GetEvent(ctx context.Context, eventID string) (*ticketing.Event, error)
	ListUsers(ctx context.Context, limit int) ([]ticketing.User, error)
	Recommendations(ctx context.Context, userID string, kind ticketing.RecommendationKind) ([]ticketing.Recommendation, error)
	Explain(ctx context.Context, userID, eventID string) (*ticketing.Explanation, error)
}

var _ Platform = (*storefront.Client)(nil)

// Config holds optional Service collaborators.
type Config struct {
	Formatter *format.Formatter
	Logger    *slog.Logger

	// EventLimit bounds event list requests, including the list used
	// by the single-event fallback.
	EventLimit int

	// UserLimit bounds the direct-order user picker.
	UserLimit int
}

// Defaults for Config limits.
const (
	DefaultEventLimit = 1000
	DefaultUserLimit  = 200
)

// Service answers discovery queries against a Platform.
type Service struct {
	platform   Platform
	formatter  *format.Formatter
	logger     *slog.Logger
	eventLimit int
	userLimit  int
}

// New creates a Service.
func New(platform Platform, config Config) *Service {
	if config.Formatter == nil {
		config.Formatter = format.Default()
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.EventLimit <= 0 {
		config.EventLimit = DefaultEventLimit
	}
	if config.UserLimit <= 0 {
		config.UserLimit = DefaultUserLimit
	}
	return &Service{
		platform:   platform,
		formatter:  config.Formatter,
		logger:     config.Logger,
		eventLimit: config.EventLimit,
		userLimit:  config.UserLimit,
	}
}

// Formatter returns the formatter views are rendered with.
func (service *Service) Formatter() *format.Formatter {
	return service.formatter
}

// RequireIdentity returns the signed-in identity, or an error wrapping
// ErrUnauthenticated. Screens that need a user call it before loading
// anything else.
func (service *Service) RequireIdentity(ctx context.Context) (*ticketing.Identity, error) {
	identity, err := service.platform.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if !identity.Authenticated || identity.UserID == "" {
		return nil, fmt.Errorf("check session: %w", ErrUnauthenticated)
	}
	return identity, nil
}

// UserOption is one entry of the direct-order user picker.
type UserOption struct {
	ID    string
	Label string
}

// Users lists the users a direct order can be placed for.
func (service *Service) Users(ctx context.Context) ([]UserOption, error) {
	users, err := service.platform.ListUsers(ctx, service.userLimit)
	if err != nil {
		return nil, err
	}
	options := make([]UserOption, 0, len(users))
	for _, user := range users {
		if user.ID == "" {
			continue
		}
		options = append(options, UserOption{ID: user.ID, Label: format.Line(user.DisplayName())})
	}
	return options, nil
}
