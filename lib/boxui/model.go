// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boxui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/boxoffice/lib/autocomplete"
	"github.com/bureau-foundation/boxoffice/lib/cart"
	"github.com/bureau-foundation/boxoffice/lib/catalog"
	"github.com/bureau-foundation/boxoffice/lib/clock"
	"github.com/bureau-foundation/boxoffice/lib/discover"
	"github.com/bureau-foundation/boxoffice/lib/format"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// Screen identifies the page being shown.
type Screen int

const (
	// ScreenEvents lists events, with the autocomplete search box.
	ScreenEvents Screen = iota
	// ScreenEvent shows one event and its ticket catalog.
	ScreenEvent
	// ScreenCart shows the server-side cart.
	ScreenCart
	// ScreenOrder places a direct order for a chosen user.
	ScreenOrder
	// ScreenForYou shows the recommendation panels.
	ScreenForYou
)

// FocusRegion identifies what receives keystrokes.
type FocusRegion int

const (
	// FocusScreen routes keys to the current screen's bindings.
	FocusScreen FocusRegion = iota
	// FocusSearch routes keys to the search box and its suggestions.
	FocusSearch
	// FocusFilter routes keys to the ticket filter fields.
	FocusFilter
	// FocusConfirm waits for a yes or no answer to a prompt.
	FocusConfirm
)

// Filter field indices.
const (
	filterSeat = iota
	filterMinPrice
	filterMaxPrice
	filterFieldCount
)

// Platform is everything the UI calls. *storefront.Client satisfies
// it.
type Platform interface {
	discover.Platform
	cart.Platform
	catalog.TicketSource
	autocomplete.Suggester
}

// Options configures a Model.
type Options struct {
	Platform Platform

	// Context bounds every platform call. Nil uses
	// context.Background.
	Context context.Context

	// Clock drives the autocomplete debounce and notice expiry. Nil
	// uses clock.Real.
	Clock clock.Clock

	Formatter *format.Formatter

	// Autocomplete tunes the search box. Its Clock, Logger and Search
	// fields are set by the Model.
	Autocomplete autocomplete.Config

	CatalogLimit   int
	EventLimit     int
	NoticeDuration time.Duration

	Theme *Theme
	Keys  *KeyMap

	// Profile is the color profile for event descriptions.
	Profile termenv.Profile

	Logger *slog.Logger
}

// Model is the top-level bubbletea model.
type Model struct {
	ctx         context.Context
	discover    *discover.Service
	loader      *catalog.Loader
	mutator     *cart.Mutator
	coordinator *cart.Coordinator
	indicators  *cart.Indicators
	completer   *autocomplete.Controller
	unsubscribe func()
	formatter   *format.Formatter
	bridge      *bridge
	theme       Theme
	keys        KeyMap
	profile     termenv.Profile
	logger      *slog.Logger

	width  int
	height int

	screen   Screen
	returnTo Screen
	focus    FocusRegion
	identity *ticketing.Identity

	// err ends the program; see Err.
	err error

	// Event list.
	search        textinput.Model
	suggestions   autocomplete.Snapshot
	events        discover.EventList
	eventsLoading bool
	eventCursor   int

	// Event screen. selection is rebuilt for every catalog load.
	eventID      string
	page         *discover.EventPage
	pageMessage  string
	catalogView  catalog.View
	selection    *catalog.Selection
	ticketCursor int
	filterInputs [filterFieldCount]textinput.Model
	filterField  int

	// Cart.
	cartView        cart.View
	cartCursor      int
	checkoutMessage string

	// Direct order.
	users        []discover.UserOption
	usersMessage string
	userCursor   int
	orderMessage string

	// Recommendations.
	panels        []discover.Panel
	panelsLoading bool
	pickCursor    int
	explanation   string

	// alert is an error line shown until dismissed.
	alert  string
	prompt *confirmRequest
}

// NewModel wires the components over options.Platform.
func NewModel(options Options) (Model, error) {
	if options.Platform == nil {
		return Model{}, errors.New("boxui: platform is required")
	}
	if options.Context == nil {
		options.Context = context.Background()
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Formatter == nil {
		options.Formatter = format.Default()
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	theme := DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	keys := DefaultKeyMap
	if options.Keys != nil {
		keys = *options.Keys
	}

	bridge := newBridge()
	indicators := cart.NewIndicators(options.Clock, options.NoticeDuration)
	indicators.OnChange(bridge.signal)
	mutator := cart.NewMutator(options.Platform, cart.MutatorConfig{
		Indicators: indicators,
		Confirmer:  bridge.confirmer(),
		Formatter:  options.Formatter,
		Logger:     options.Logger.With("component", "cart"),
	})

	completion := options.Autocomplete
	completion.Clock = options.Clock
	completion.Logger = options.Logger.With("component", "autocomplete")
	completion.Search = bridge.search
	completer := autocomplete.New(options.Platform, completion)
	unsubscribe := completer.Subscribe(func(autocomplete.Snapshot) { bridge.signal() })

	model := Model{
		ctx: options.Context,
		discover: discover.New(options.Platform, discover.Config{
			Formatter:  options.Formatter,
			Logger:     options.Logger.With("component", "discover"),
			EventLimit: options.EventLimit,
		}),
		loader: catalog.NewLoader(options.Platform, catalog.LoaderConfig{
			Limit:  options.CatalogLimit,
			Logger: options.Logger.With("component", "catalog"),
		}),
		mutator:     mutator,
		coordinator: cart.NewCoordinator(options.Platform, mutator, options.Logger.With("component", "checkout")),
		indicators:  indicators,
		completer:   completer,
		unsubscribe: unsubscribe,
		formatter:   options.Formatter,
		bridge:      bridge,
		theme:       theme,
		keys:        keys,
		profile:     options.Profile,
		logger:      options.Logger,
		search:      newInput("Search events", 64),
		suggestions: completer.Snapshot(),
	}
	model.filterInputs[filterSeat] = newInput("seat", 16)
	model.filterInputs[filterMinPrice] = newInput("min", 10)
	model.filterInputs[filterMaxPrice] = newInput("max", 10)
	return model, nil
}

func newInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Prompt = ""
	return input
}

// Err is the reason the program ended on its own, nil after a normal
// quit. It wraps discover.ErrUnauthenticated when the session was not
// recognized.
func (model Model) Err() error {
	return model.err
}

// Close stops the autocomplete controller and waits for its requests.
func (model Model) Close() {
	model.unsubscribe()
	model.completer.Close()
}

// Init checks the session before anything else is loaded.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		model.checkIdentity(),
		model.bridge.listenWake(),
		model.bridge.listenPrompts(),
	)
}

// Update applies one message.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.search.Width = max(message.Width-12, 10)
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)

	case alertMsg:
		model.alert = message.text
		return model, nil

	case wakeMsg:
		model.suggestions = model.completer.Snapshot()
		return model, model.bridge.listenWake()

	case confirmMsg:
		model.prompt = message.request
		model.focus = FocusConfirm
		return model, model.bridge.listenPrompts()

	case identityMsg:
		if message.err != nil {
			model.err = message.err
			return model, tea.Quit
		}
		model.identity = message.identity
		model.eventsLoading = true
		return model, tea.Batch(model.fetchEvents(""), model.fetchCart())

	case eventsMsg:
		model.events = message.list
		model.eventsLoading = false
		model.eventCursor = clampCursor(model.eventCursor, len(model.events.Events))
		return model, nil

	case eventPageMsg:
		if message.eventID != model.eventID {
			return model, nil
		}
		model.page = message.page
		model.pageMessage = discover.EventMessage(message.err)
		return model, nil

	case catalogMsg:
		return model.applyCatalog(message)

	case cartMsg:
		model.cartView = message.view
		model.cartCursor = clampCursor(model.cartCursor, len(model.cartView.Lines))
		return model, nil

	case batchMsg:
		model.cartView = model.mutator.View()
		if message.result.Requested == 0 || model.eventID == "" {
			return model, nil
		}
		if message.result.Failed() == 0 && model.selection != nil {
			model.selection.Reset()
		}
		// Added tickets are held now; show what is left.
		return model, model.fetchCatalog(model.eventID, model.catalogView.Filter)

	case checkoutMsg:
		model.checkoutMessage = message.result.Message
		model.cartView = model.mutator.View()
		model.cartCursor = clampCursor(model.cartCursor, len(model.cartView.Lines))
		return model, nil

	case orderMsg:
		model.orderMessage = message.result.Message
		if message.result.Outcome == cart.OutcomeCreated && model.eventID != "" {
			if model.selection != nil {
				model.selection.Reset()
			}
			return model, model.fetchCatalog(model.eventID, model.catalogView.Filter)
		}
		return model, nil

	case clearedMsg:
		if message.err != nil {
			model.alert = fmt.Sprintf("Clearing cart failed: %v", message.err)
		}
		model.cartView = model.mutator.View()
		model.cartCursor = clampCursor(model.cartCursor, len(model.cartView.Lines))
		return model, nil

	case usersMsg:
		model.users = message.users
		model.usersMessage = ""
		if message.err != nil {
			model.usersMessage = "Failed to load users"
		} else if len(message.users) == 0 {
			model.usersMessage = "No users"
		}
		model.userCursor = clampCursor(model.userCursor, len(model.users))
		return model, nil

	case panelsMsg:
		model.panels = message.panels
		model.panelsLoading = false
		model.pickCursor = clampCursor(model.pickCursor, len(model.picks()))
		return model, nil

	case explainMsg:
		switch {
		case message.err != nil:
			model.explanation = "Failed to explain recommendation"
		default:
			model.explanation = message.explanation.Text
		}
		return model, nil
	}
	return model, nil
}

// applyCatalog installs a finished load. Superseded loads and loads
// for an event no longer on screen are dropped.
func (model Model) applyCatalog(message catalogMsg) (tea.Model, tea.Cmd) {
	if errors.Is(message.err, catalog.ErrStale) || message.view.EventID != model.eventID {
		return model, nil
	}
	model.catalogView = message.view
	model.selection = catalog.NewSelection(message.view, model.formatter)
	model.ticketCursor = clampCursor(model.ticketCursor, len(message.view.Rows()))
	return model, nil
}

// openEvent switches to the event screen and loads its page and
// catalog concurrently.
func (model Model) openEvent(eventID string) (Model, tea.Cmd) {
	model.screen = ScreenEvent
	model.focus = FocusScreen
	model.eventID = eventID
	model.page = nil
	model.pageMessage = ""
	model.catalogView = catalog.View{State: catalog.StateLoading, EventID: eventID}
	model.selection = nil
	model.ticketCursor = 0
	model.orderMessage = ""
	for index := range model.filterInputs {
		model.filterInputs[index].SetValue("")
	}
	return model, tea.Batch(model.fetchEventPage(eventID), model.fetchCatalog(eventID, catalog.Filter{}))
}

// picks flattens the recommendation panels in display order.
func (model Model) picks() []discover.Pick {
	var picks []discover.Pick
	for _, panel := range model.panels {
		picks = append(picks, panel.Picks...)
	}
	return picks
}

func clampCursor(cursor, count int) int {
	if count == 0 {
		return 0
	}
	return max(0, min(cursor, count-1))
}
