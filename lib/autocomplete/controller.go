// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package autocomplete

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bureau-foundation/boxoffice/lib/clock"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// Defaults for Config fields left zero.
const (
	DefaultMinChars       = 2
	DefaultDebounce       = 180 * time.Millisecond
	DefaultMaxSuggestions = 10
)

// Suggester fetches suggestions for a prefix. It must return promptly
// once ctx is cancelled. *storefront.Client satisfies it.
type Suggester interface {
	Autocomplete(ctx context.Context, prefix string) ([]ticketing.Suggestion, error)
}

// Config configures a Controller.
type Config struct {
	// Clock drives the debounce timer. Nil uses clock.Real.
	Clock clock.Clock

	// MinChars is the trimmed input length below which no request is
	// made and the list is cleared.
	MinChars int

	// Debounce is the quiet period after the last keystroke before a
	// request is issued.
	Debounce time.Duration

	// MaxSuggestions caps the visible list.
	MaxSuggestions int

	// Search is called with the committed text when the user presses
	// Enter. It runs on the goroutine calling Dispatch, outside the
	// controller's lock. Nil ignores commits.
	Search func(text string)

	Logger *slog.Logger
}

// handler applies one Action with the controller locked. It reports
// whether the visible state changed and, for commits, the text to
// search.
type handler func(controller *Controller) (changed bool, search string)

// Controller is the autocomplete state machine. Safe for concurrent
// use; observers and the search function are always called without
// the controller's lock held.
type Controller struct {
	suggester      Suggester
	clock          clock.Clock
	minChars       int
	debounce       time.Duration
	maxSuggestions int
	search         func(string)
	logger         *slog.Logger
	handlers       map[Action]handler

	mutex       sync.Mutex
	state       State
	text        string
	suggestions []ticketing.Suggestion
	active      int
	revision    uint64
	observers   map[uint64]func(Snapshot)
	nextID      uint64
	closed      bool

	// debounceSerial identifies the armed timer; a callback from a
	// replaced timer that is already running sees a different serial
	// and does nothing.
	debounceSerial uint64
	timer          *clock.Timer

	// generation identifies the current request. cancel aborts it.
	generation uint64
	cancel     context.CancelFunc
	inFlight   bool
	requests   sync.WaitGroup
}

// New creates an idle Controller.
func New(suggester Suggester, config Config) *Controller {
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.MinChars <= 0 {
		config.MinChars = DefaultMinChars
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.MaxSuggestions <= 0 {
		config.MaxSuggestions = DefaultMaxSuggestions
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	controller := &Controller{
		suggester:      suggester,
		clock:          config.Clock,
		minChars:       config.MinChars,
		debounce:       config.Debounce,
		maxSuggestions: config.MaxSuggestions,
		search:         config.Search,
		logger:         config.Logger,
		active:         -1,
		observers:      make(map[uint64]func(Snapshot)),
	}
	controller.handlers = map[Action]handler{
		ActionDown:    (*Controller).moveDown,
		ActionUp:      (*Controller).moveUp,
		ActionEnter:   (*Controller).commit,
		ActionEscape:  (*Controller).close,
		ActionDismiss: (*Controller).close,
	}
	return controller
}

// Subscribe registers an observer for snapshots and returns a function
// that removes it. Observers must not block for long: they run on
// whichever goroutine made the change.
func (controller *Controller) Subscribe(observer func(Snapshot)) (unsubscribe func()) {
	controller.mutex.Lock()
	defer controller.mutex.Unlock()
	controller.nextID++
	id := controller.nextID
	controller.observers[id] = observer
	return func() {
		controller.mutex.Lock()
		defer controller.mutex.Unlock()
		delete(controller.observers, id)
	}
}

// Snapshot returns the current visible state.
func (controller *Controller) Snapshot() Snapshot {
	controller.mutex.Lock()
	defer controller.mutex.Unlock()
	return controller.snapshotLocked()
}

// Input records the search box text after a keystroke.
func (controller *Controller) Input(text string) {
	controller.mutex.Lock()
	if controller.closed {
		controller.mutex.Unlock()
		return
	}
	controller.text = text
	prefix := strings.TrimSpace(text)

	if utf8.RuneCountInString(prefix) < controller.minChars {
		controller.abandonLocked()
		controller.suggestions = nil
		controller.active = -1
		controller.state = StateIdle
		controller.publishLocked()
		return
	}

	// The text changed, so an in-flight response is for a stale prefix.
	controller.abandonLocked()
	controller.debounceSerial++
	serial := controller.debounceSerial
	controller.timer = controller.clock.AfterFunc(controller.debounce, func() {
		controller.fire(serial, prefix)
	})
	controller.state = StatePending
	controller.publishLocked()
}

// Dispatch applies a keyboard or pointer action.
func (controller *Controller) Dispatch(action Action) {
	controller.mutex.Lock()
	apply, ok := controller.handlers[action]
	if !ok || controller.closed {
		controller.mutex.Unlock()
		return
	}
	changed, search := apply(controller)
	if changed {
		controller.publishLocked()
	} else {
		controller.mutex.Unlock()
	}
	if search != "" && controller.search != nil {
		controller.search(search)
	}
}

// Close abandons outstanding work and waits for request goroutines to
// return. The controller ignores input afterwards.
func (controller *Controller) Close() {
	controller.mutex.Lock()
	controller.closed = true
	controller.abandonLocked()
	controller.mutex.Unlock()
	controller.requests.Wait()
}

// fire runs when the debounce window closes.
func (controller *Controller) fire(serial uint64, prefix string) {
	controller.mutex.Lock()
	defer controller.mutex.Unlock()
	if serial != controller.debounceSerial || controller.closed {
		return
	}
	controller.timer = nil

	if controller.cancel != nil {
		controller.cancel()
	}
	controller.generation++
	generation := controller.generation
	ctx, cancel := context.WithCancel(context.Background())
	controller.cancel = cancel
	controller.inFlight = true

	controller.logger.Debug("autocomplete request", "prefix", prefix, "generation", generation)
	controller.requests.Go(func() {
		suggestions, err := controller.suggester.Autocomplete(ctx, prefix)
		controller.receive(ctx, generation, prefix, suggestions, err)
	})
}

func (controller *Controller) receive(ctx context.Context, generation uint64, prefix string, suggestions []ticketing.Suggestion, err error) {
	controller.mutex.Lock()
	if generation != controller.generation || ctx.Err() != nil {
		controller.mutex.Unlock()
		controller.logger.Debug("discarding stale autocomplete response", "prefix", prefix, "generation", generation)
		return
	}
	controller.cancel()
	controller.cancel = nil
	controller.inFlight = false

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			controller.logger.Warn("autocomplete request failed", "prefix", prefix, "error", err)
		}
		controller.suggestions = nil
		controller.active = -1
		controller.state = StateIdle
		controller.publishLocked()
		return
	}

	controller.suggestions = narrow(suggestions, controller.maxSuggestions)
	controller.active = -1
	if len(controller.suggestions) == 0 {
		controller.state = StateIdle
	} else {
		controller.state = StateShowing
	}
	controller.publishLocked()
}

// abandonLocked stops the debounce timer and cancels the in-flight
// request, reporting whether either was outstanding.
func (controller *Controller) abandonLocked() bool {
	outstanding := false
	controller.debounceSerial++
	if controller.timer != nil {
		controller.timer.Stop()
		controller.timer = nil
		outstanding = true
	}
	if controller.cancel != nil {
		controller.cancel()
		controller.cancel = nil
	}
	if controller.inFlight {
		outstanding = true
		controller.inFlight = false
	}
	controller.generation++
	return outstanding
}

func (controller *Controller) moveDown() (bool, string) {
	count := len(controller.suggestions)
	if count == 0 {
		return false, ""
	}
	controller.active = (controller.active + 1) % count
	return true, ""
}

func (controller *Controller) moveUp() (bool, string) {
	count := len(controller.suggestions)
	if count == 0 {
		return false, ""
	}
	if controller.active <= 0 {
		controller.active = count - 1
	} else {
		controller.active--
	}
	return true, ""
}

// commit searches the highlighted suggestion, or the typed text when
// nothing is highlighted. Either way outstanding work is cancelled and
// the list closes.
func (controller *Controller) commit() (bool, string) {
	search := strings.TrimSpace(controller.text)
	if controller.active >= 0 && controller.active < len(controller.suggestions) {
		search = controller.suggestions[controller.active].Text
		controller.text = search
	}
	controller.abandonLocked()
	controller.suggestions = nil
	controller.active = -1
	controller.state = StateIdle
	return true, search
}

func (controller *Controller) close() (bool, string) {
	wasVisible := len(controller.suggestions) > 0
	previous := controller.state
	outstanding := controller.abandonLocked()
	controller.suggestions = nil
	controller.active = -1
	if outstanding {
		controller.state = StateCancelled
	} else {
		controller.state = StateIdle
	}
	return wasVisible || previous != controller.state, ""
}

func (controller *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:       controller.state,
		Text:        controller.text,
		Suggestions: append([]ticketing.Suggestion(nil), controller.suggestions...),
		Active:      controller.active,
		Revision:    controller.revision,
	}
}

// publishLocked takes a new snapshot, releases the lock, and notifies
// observers. The caller must hold the lock and must not touch
// controller state afterwards.
func (controller *Controller) publishLocked() {
	controller.revision++
	snapshot := controller.snapshotLocked()
	observers := make([]func(Snapshot), 0, len(controller.observers))
	for _, observer := range controller.observers {
		observers = append(observers, observer)
	}
	controller.mutex.Unlock()
	for _, observer := range observers {
		observer(snapshot)
	}
}
