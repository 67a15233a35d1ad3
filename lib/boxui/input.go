// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boxui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/boxoffice/lib/autocomplete"
	"github.com/bureau-foundation/boxoffice/lib/catalog"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.focus {
	case FocusConfirm:
		return model.handleConfirmKeys(message)
	case FocusSearch:
		return model.handleSearchKeys(message)
	case FocusFilter:
		return model.handleFilterKeys(message)
	}

	if key.Matches(message, model.keys.Quit) {
		return model, tea.Quit
	}
	if model.alert != "" && key.Matches(message, model.keys.DismissAlert) {
		model.alert = ""
		return model, nil
	}
	if model.identity == nil {
		// Nothing is loaded until the session check answers.
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.ShowCart) && model.screen != ScreenCart:
		model.returnTo = model.screen
		model.screen = ScreenCart
		model.checkoutMessage = ""
		return model, model.fetchCart()
	case key.Matches(message, model.keys.ShowForYou) && model.screen != ScreenForYou:
		model.screen = ScreenForYou
		model.panelsLoading = true
		model.explanation = ""
		return model, model.fetchPanels(model.identity.UserID)
	}

	switch model.screen {
	case ScreenEvents:
		return model.handleEventListKeys(message)
	case ScreenEvent:
		return model.handleEventKeys(message)
	case ScreenCart:
		return model.handleCartKeys(message)
	case ScreenOrder:
		return model.handleOrderKeys(message)
	case ScreenForYou:
		return model.handleForYouKeys(message)
	}
	return model, nil
}

func (model Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.prompt == nil {
		model.focus = FocusScreen
		return model, nil
	}
	var answer bool
	switch {
	case key.Matches(message, model.keys.ConfirmYes):
		answer = true
	case key.Matches(message, model.keys.ConfirmNo), message.Type == tea.KeyCtrlC:
	default:
		return model, nil
	}
	model.prompt.answer <- answer
	model.prompt = nil
	model.focus = FocusScreen
	return model, nil
}

// handleSearchKeys feeds the search box. Navigation keys drive the
// suggestion list; everything else edits the text, and each edit
// restarts the controller's debounce.
func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}
	if action, ok := autocomplete.ParseAction(message.String()); ok {
		model.completer.Dispatch(action)
		model.suggestions = model.completer.Snapshot()
		switch action {
		case autocomplete.ActionEnter:
			query, committed := model.bridge.takeSearch()
			if !committed {
				query = ""
			}
			model.search.SetValue(query)
			model.search.Blur()
			model.focus = FocusScreen
			model.eventsLoading = true
			model.eventCursor = 0
			return model, model.fetchEvents(query)
		case autocomplete.ActionEscape, autocomplete.ActionDismiss:
			model.search.Blur()
			model.focus = FocusScreen
		}
		return model, nil
	}

	before := model.search.Value()
	var command tea.Cmd
	model.search, command = model.search.Update(message)
	if value := model.search.Value(); value != before {
		model.completer.Input(value)
		model.suggestions = model.completer.Snapshot()
	}
	return model, command
}

func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit
	case message.Type == tea.KeyEsc:
		model.filterInputs[model.filterField].Blur()
		model.focus = FocusScreen
		return model, nil
	case message.Type == tea.KeyEnter:
		model.filterInputs[model.filterField].Blur()
		model.focus = FocusScreen
		filter := catalog.Filter{
			Seat:     model.filterInputs[filterSeat].Value(),
			MinPrice: model.filterInputs[filterMinPrice].Value(),
			MaxPrice: model.filterInputs[filterMaxPrice].Value(),
		}
		model.catalogView = catalog.View{State: catalog.StateLoading, EventID: model.eventID, Filter: filter.Normalized()}
		model.selection = nil
		return model, model.fetchCatalog(model.eventID, filter)
	case key.Matches(message, model.keys.NextField):
		model.filterInputs[model.filterField].Blur()
		model.filterField = (model.filterField + 1) % filterFieldCount
		return model, model.filterInputs[model.filterField].Focus()
	}
	var command tea.Cmd
	model.filterInputs[model.filterField], command = model.filterInputs[model.filterField].Update(message)
	return model, command
}

func (model Model) handleEventListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(model.events.Events)
	switch {
	case key.Matches(message, model.keys.Up):
		model.eventCursor = clampCursor(model.eventCursor-1, count)
	case key.Matches(message, model.keys.Down):
		model.eventCursor = clampCursor(model.eventCursor+1, count)
	case key.Matches(message, model.keys.Search):
		model.focus = FocusSearch
		return model, model.search.Focus()
	case key.Matches(message, model.keys.Reload):
		model.eventsLoading = true
		return model, model.fetchEvents(model.events.Query)
	case key.Matches(message, model.keys.Open):
		if count == 0 {
			return model, nil
		}
		return model.openEvent(model.events.Events[model.eventCursor].ID)
	}
	return model, nil
}

// currentRow is the catalog row under the cursor.
func (model Model) currentRow() (catalog.Row, bool) {
	rows := model.catalogView.Rows()
	if model.ticketCursor < 0 || model.ticketCursor >= len(rows) {
		return catalog.Row{}, false
	}
	return rows[model.ticketCursor], true
}

func (model Model) handleEventKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := len(model.catalogView.Rows())
	switch {
	case key.Matches(message, model.keys.Back):
		model.screen = ScreenEvents
		return model, nil
	case key.Matches(message, model.keys.Up):
		model.ticketCursor = clampCursor(model.ticketCursor-1, rows)
	case key.Matches(message, model.keys.Down):
		model.ticketCursor = clampCursor(model.ticketCursor+1, rows)
	case key.Matches(message, model.keys.Filter):
		model.focus = FocusFilter
		model.filterField = filterSeat
		return model, model.filterInputs[filterSeat].Focus()
	case key.Matches(message, model.keys.ClearFilter):
		for index := range model.filterInputs {
			model.filterInputs[index].SetValue("")
		}
		model.catalogView = catalog.View{State: catalog.StateLoading, EventID: model.eventID}
		model.selection = nil
		return model, model.fetchCatalog(model.eventID, catalog.Filter{})
	case key.Matches(message, model.keys.Reload):
		return model, model.fetchCatalog(model.eventID, model.catalogView.Filter)
	case key.Matches(message, model.keys.DirectOrder):
		model.screen = ScreenOrder
		model.orderMessage = ""
		return model, model.fetchUsers()
	}

	if model.selection == nil {
		return model, nil
	}
	switch {
	case key.Matches(message, model.keys.Toggle):
		model.toggleCurrent()
	case key.Matches(message, model.keys.More):
		model.adjustGeneralAdmission(+1)
	case key.Matches(message, model.keys.Fewer):
		model.adjustGeneralAdmission(-1)
	case key.Matches(message, model.keys.ResetPicks):
		model.selection.Reset()
	case key.Matches(message, model.keys.AddToCart):
		return model, model.submitSelection(model.selection.Submission())
	}
	return model, nil
}

// toggleCurrent checks or unchecks the row under the cursor. On the
// GA row it selects one ticket or drops the GA selection.
func (model Model) toggleCurrent() {
	row, ok := model.currentRow()
	if !ok {
		return
	}
	if row.ID != ticketing.GeneralAdmissionID {
		if _, err := model.selection.Toggle(row.ID); err != nil {
			model.logger.Debug("toggle failed", "ticket_id", row.ID, "error", err)
		}
		return
	}
	if model.selection.GeneralAdmission() > 0 {
		model.selection.ClearGeneralAdmission()
		return
	}
	if _, err := model.selection.SetGeneralAdmission(1); err != nil {
		model.logger.Debug("selecting general admission failed", "error", err)
	}
}

// adjustGeneralAdmission steps the GA quantity, clamped by the
// selection to what is available. Stepping below one drops it.
func (model Model) adjustGeneralAdmission(step int) {
	if model.catalogView.GeneralAdmission == nil {
		return
	}
	quantity := model.selection.GeneralAdmission() + step
	if quantity < 1 {
		model.selection.ClearGeneralAdmission()
		return
	}
	if _, err := model.selection.SetGeneralAdmission(quantity); err != nil {
		model.logger.Debug("adjusting general admission failed", "error", err)
	}
}

func (model Model) handleCartKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := len(model.cartView.Lines)
	switch {
	case key.Matches(message, model.keys.Back):
		model.screen = model.returnTo
	case key.Matches(message, model.keys.Up):
		model.cartCursor = clampCursor(model.cartCursor-1, lines)
	case key.Matches(message, model.keys.Down):
		model.cartCursor = clampCursor(model.cartCursor+1, lines)
	case key.Matches(message, model.keys.Reload):
		return model, model.fetchCart()
	case key.Matches(message, model.keys.Remove):
		if lines == 0 {
			return model, nil
		}
		return model, model.removeItem(model.cartView.Lines[model.cartCursor].Item.TicketID)
	case key.Matches(message, model.keys.ClearCart):
		return model, model.clearCart()
	case key.Matches(message, model.keys.Checkout):
		if !model.coordinator.Enabled() {
			return model, nil
		}
		model.checkoutMessage = "Checking out..."
		return model, model.checkout()
	}
	return model, nil
}

func (model Model) handleOrderKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back):
		model.screen = ScreenEvent
	case key.Matches(message, model.keys.Up):
		model.userCursor = clampCursor(model.userCursor-1, len(model.users))
	case key.Matches(message, model.keys.Down):
		model.userCursor = clampCursor(model.userCursor+1, len(model.users))
	case key.Matches(message, model.keys.Open):
		if !model.coordinator.OrderEnabled() {
			return model, nil
		}
		var userID string
		if len(model.users) > 0 {
			userID = model.users[model.userCursor].ID
		}
		var ticketIDs []string
		if model.selection != nil {
			ticketIDs = model.selection.Submission().TicketIDs
		}
		model.orderMessage = "Placing order..."
		return model, model.createOrder(userID, ticketIDs)
	}
	return model, nil
}

func (model Model) handleForYouKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	picks := model.picks()
	switch {
	case key.Matches(message, model.keys.Back):
		model.screen = ScreenEvents
	case key.Matches(message, model.keys.Up):
		model.pickCursor = clampCursor(model.pickCursor-1, len(picks))
		model.explanation = ""
	case key.Matches(message, model.keys.Down):
		model.pickCursor = clampCursor(model.pickCursor+1, len(picks))
		model.explanation = ""
	case key.Matches(message, model.keys.Open):
		if len(picks) == 0 {
			return model, nil
		}
		return model.openEvent(picks[model.pickCursor].EventID)
	case key.Matches(message, model.keys.Explain):
		if len(picks) == 0 {
			return model, nil
		}
		model.explanation = "..."
		return model, model.explain(model.identity.UserID, picks[model.pickCursor].EventID)
	}
	return model, nil
}
