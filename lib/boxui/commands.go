// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boxui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/boxoffice/lib/cart"
	"github.com/bureau-foundation/boxoffice/lib/catalog"
	"github.com/bureau-foundation/boxoffice/lib/discover"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// Results of platform calls, delivered to Update.
type (
	identityMsg struct {
		identity *ticketing.Identity
		err      error
	}

	eventsMsg struct {
		list discover.EventList
	}

	eventPageMsg struct {
		eventID string
		page    *discover.EventPage
		err     error
	}

	catalogMsg struct {
		view catalog.View
		err  error
	}

	cartMsg struct {
		view cart.View
	}

	batchMsg struct {
		result cart.BatchResult
	}

	checkoutMsg struct {
		result cart.Result
	}

	orderMsg struct {
		result cart.Result
	}

	clearedMsg struct {
		cleared bool
		err     error
	}

	usersMsg struct {
		users []discover.UserOption
		err   error
	}

	panelsMsg struct {
		panels []discover.Panel
	}

	explainMsg struct {
		eventID     string
		explanation discover.Explanation
		err         error
	}
)

func (model Model) checkIdentity() tea.Cmd {
	return func() tea.Msg {
		identity, err := model.discover.RequireIdentity(model.ctx)
		return identityMsg{identity: identity, err: err}
	}
}

func (model Model) fetchEvents(query string) tea.Cmd {
	return func() tea.Msg {
		list, _ := model.discover.Events(model.ctx, query)
		return eventsMsg{list: list}
	}
}

func (model Model) fetchEventPage(eventID string) tea.Cmd {
	return func() tea.Msg {
		page, err := model.discover.Event(model.ctx, eventID)
		return eventPageMsg{eventID: eventID, page: page, err: err}
	}
}

func (model Model) fetchCatalog(eventID string, filter catalog.Filter) tea.Cmd {
	return func() tea.Msg {
		view, err := model.loader.Load(model.ctx, eventID, filter)
		return catalogMsg{view: view, err: err}
	}
}

func (model Model) fetchCart() tea.Cmd {
	return func() tea.Msg {
		view, _ := model.mutator.Load(model.ctx)
		return cartMsg{view: view}
	}
}

// submitSelection adds every selected ticket to the cart. The mutator
// posts the summary notice and refreshes the badge itself.
func (model Model) submitSelection(submission catalog.Submission) tea.Cmd {
	return func() tea.Msg {
		return batchMsg{result: model.mutator.AddBatch(model.ctx, submission)}
	}
}

func (model Model) removeItem(ticketID string) tea.Cmd {
	return func() tea.Msg {
		view, _ := model.mutator.Remove(model.ctx, ticketID)
		return cartMsg{view: view}
	}
}

// clearCart blocks in the mutator's confirmer until the user answers
// the prompt it raises.
func (model Model) clearCart() tea.Cmd {
	return func() tea.Msg {
		cleared, _, err := model.mutator.Clear(model.ctx)
		return clearedMsg{cleared: cleared, err: err}
	}
}

func (model Model) checkout() tea.Cmd {
	return func() tea.Msg {
		return checkoutMsg{result: model.coordinator.Checkout(model.ctx)}
	}
}

func (model Model) createOrder(userID string, ticketIDs []string) tea.Cmd {
	return func() tea.Msg {
		return orderMsg{result: model.coordinator.CreateOrder(model.ctx, userID, ticketIDs)}
	}
}

func (model Model) fetchUsers() tea.Cmd {
	return func() tea.Msg {
		users, err := model.discover.Users(model.ctx)
		return usersMsg{users: users, err: err}
	}
}

func (model Model) fetchPanels(userID string) tea.Cmd {
	return func() tea.Msg {
		return panelsMsg{panels: model.discover.Panels(model.ctx, userID)}
	}
}

func (model Model) explain(userID, eventID string) tea.Cmd {
	return func() tea.Msg {
		explanation, err := model.discover.Explain(model.ctx, userID, eventID)
		return explainMsg{eventID: eventID, explanation: explanation, err: err}
	}
}
