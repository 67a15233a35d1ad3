// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
	"github.com/bureau-foundation/boxoffice/lib/storefront"
)

// DefaultLimit is the page size requested for every ticket load.
const DefaultLimit = 1000

// ErrStale is returned by Load when a newer load was started before
// this one finished. The view is left untouched.
var ErrStale = errors.New("catalog: superseded by a newer load")

// TicketSource fetches tickets. *storefront.Client satisfies it.
type TicketSource interface {
	ListTickets(ctx context.Context, query storefront.TicketQuery) ([]ticketing.Ticket, error)
}

// LoaderConfig holds optional Loader settings.
type LoaderConfig struct {
	// Limit is the page size sent with every load. Zero means
	// DefaultLimit.
	Limit int

	// Logger records load failures. Nil discards.
	Logger *slog.Logger
}

// Loader owns the catalog view of one event screen. It is safe for
// concurrent use; concurrent loads are resolved in favour of the one
// started last.
type Loader struct {
	source TicketSource
	limit  int
	logger *slog.Logger

	mutex      sync.Mutex
	generation uint64
	view       View
}

// NewLoader creates a Loader in StateIdle.
func NewLoader(source TicketSource, config LoaderConfig) *Loader {
	limit := config.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{source: source, limit: limit, logger: logger}
}

// View returns the current snapshot.
func (loader *Loader) View() View {
	loader.mutex.Lock()
	defer loader.mutex.Unlock()
	return loader.view
}

// Load fetches the tickets of eventID matching filter and, if no newer
// load has started meanwhile, replaces the view with the result. On
// failure the view moves to StateFailed and the error is returned; a
// superseded load returns ErrStale whatever its outcome.
func (loader *Loader) Load(ctx context.Context, eventID string, filter Filter) (View, error) {
	filter = filter.Normalized()
	if eventID == "" {
		return View{}, fmt.Errorf("load tickets: event ID is required")
	}

	loader.mutex.Lock()
	loader.generation++
	generation := loader.generation
	loader.view = View{
		State:      StateLoading,
		EventID:    eventID,
		Filter:     filter,
		Generation: generation,
	}
	loader.mutex.Unlock()

	tickets, err := loader.source.ListTickets(ctx, storefront.TicketQuery{
		EventID:  eventID,
		Seat:     filter.Seat,
		MinPrice: filter.MinPrice,
		MaxPrice: filter.MaxPrice,
		Limit:    loader.limit,
	})

	loader.mutex.Lock()
	defer loader.mutex.Unlock()

	if generation != loader.generation {
		loader.logger.Debug("discarding stale ticket load",
			"event_id", eventID,
			"generation", generation,
			"current", loader.generation,
		)
		return View{}, ErrStale
	}

	if err != nil {
		loader.logger.Warn("loading tickets failed",
			"event_id", eventID,
			"error", err,
		)
		loader.view = View{
			State:      StateFailed,
			EventID:    eventID,
			Filter:     filter,
			Err:        err,
			Generation: generation,
		}
		return loader.view, fmt.Errorf("load tickets: %w", err)
	}

	generalAdmission, seated := Build(tickets)
	state := StateLoaded
	if generalAdmission == nil && len(seated) == 0 {
		state = StateEmpty
	}
	loader.view = View{
		State:            state,
		EventID:          eventID,
		Filter:           filter,
		GeneralAdmission: generalAdmission,
		Seated:           seated,
		Generation:       generation,
	}
	return loader.view, nil
}
