// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boxui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/boxoffice/lib/autocomplete"
	"github.com/bureau-foundation/boxoffice/lib/catalog"
	"github.com/bureau-foundation/boxoffice/lib/format"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// Layout defaults before the first WindowSizeMsg.
const (
	defaultWidth  = 80
	defaultHeight = 24

	// descriptionLines caps the event description above the catalog.
	descriptionLines = 6
)

var screenTitles = map[Screen]string{
	ScreenEvents: "Events",
	ScreenEvent:  "Event",
	ScreenCart:   "Cart",
	ScreenOrder:  "Direct order",
	ScreenForYou: "For you",
}

func (model Model) size() (width, height int) {
	width, height = model.width, model.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

// View renders the header, the current screen, and the status line.
func (model Model) View() string {
	width, height := model.size()
	if model.identity == nil {
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Checking session...")
	}

	header := model.renderHeader(width)
	footer := model.renderFooter(width)
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 3)

	var body []string
	switch model.screen {
	case ScreenEvents:
		body = model.renderEventList(width, bodyHeight)
	case ScreenEvent:
		body = model.renderEvent(width, bodyHeight)
	case ScreenCart:
		body = model.renderCart(width, bodyHeight)
	case ScreenOrder:
		body = model.renderOrder(width, bodyHeight)
	case ScreenForYou:
		body = model.renderForYou(width, bodyHeight)
	}
	if len(body) > bodyHeight {
		body = body[:bodyHeight]
	}
	for len(body) < bodyHeight {
		body = append(body, "")
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(body, "\n"), footer)
}

func (model Model) renderHeader(width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).
		Render("boxoffice · " + screenTitles[model.screen])
	badge := lipgloss.NewStyle().Foreground(model.theme.BadgeForeground).
		Render(model.indicators.Badge().Label())
	gap := max(width-lipgloss.Width(title)-lipgloss.Width(badge), 1)
	line := title + strings.Repeat(" ", gap) + badge
	rule := lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render(strings.Repeat("─", width))
	return line + "\n" + rule
}

// renderFooter shows, in order of precedence, the pending prompt, the
// alert, the cart notice, or the key help.
func (model Model) renderFooter(width int) string {
	switch {
	case model.prompt != nil:
		return lipgloss.NewStyle().
			Foreground(model.theme.PromptForeground).
			Background(model.theme.PromptBackground).
			Bold(true).
			Width(width).
			Render(" " + model.prompt.prompt + " [y/n]")
	case model.alert != "":
		return lipgloss.NewStyle().Foreground(model.theme.ErrorForeground).
			Render(format.Truncate(format.Line(model.alert), width))
	}
	if notice := model.indicators.Notice().Text(); notice != "" {
		return lipgloss.NewStyle().Foreground(model.theme.NoticeForeground).
			Render(format.Truncate(format.Line(notice), width))
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render(format.Truncate(model.helpLine(), width))
}

func (model Model) helpLine() string {
	var bindings []key.Binding
	switch model.screen {
	case ScreenEvents:
		bindings = []key.Binding{model.keys.Search, model.keys.Open, model.keys.ShowCart, model.keys.ShowForYou, model.keys.Quit}
	case ScreenEvent:
		bindings = []key.Binding{model.keys.Toggle, model.keys.More, model.keys.Fewer, model.keys.AddToCart,
			model.keys.Filter, model.keys.DirectOrder, model.keys.ShowCart, model.keys.Back}
	case ScreenCart:
		bindings = []key.Binding{model.keys.Remove, model.keys.ClearCart, model.keys.Checkout, model.keys.Back}
	case ScreenOrder:
		bindings = []key.Binding{model.keys.Open, model.keys.Back}
	case ScreenForYou:
		bindings = []key.Binding{model.keys.Open, model.keys.Explain, model.keys.Back}
	}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

// scrollWindow returns the [start, end) slice of count rows that fits
// in height rows with cursor visible.
func scrollWindow(count, cursor, height int) (int, int) {
	if height <= 0 || count <= height {
		return 0, count
	}
	start := max(0, min(cursor-height/2, count-height))
	return start, start + height
}

// cursorLine renders one selectable line.
func (model Model) cursorLine(text string, selected bool, width int) string {
	text = format.Truncate(text, width-2)
	if selected {
		return lipgloss.NewStyle().
			Foreground(model.theme.SelectedForeground).
			Background(model.theme.SelectedBackground).
			Width(width).
			Render("▸ " + text)
	}
	return lipgloss.NewStyle().Foreground(model.theme.NormalText).Render("  " + text)
}

func (model Model) faint(text string) string {
	return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(text)
}

func (model Model) renderEventList(width, height int) []string {
	label := "Search: "
	if model.focus != FocusSearch && model.search.Value() == "" {
		label = "Search (/): "
	}
	lines := []string{label + model.search.View()}
	if model.focus == FocusSearch {
		lines = append(lines, model.renderSuggestions(width)...)
	}
	lines = append(lines, "")

	switch {
	case model.eventsLoading:
		return append(lines, model.faint("Loading events..."))
	case model.events.Message != "":
		return append(lines, model.faint(model.events.Message))
	}
	events := model.events.Events
	start, end := scrollWindow(len(events), model.eventCursor, height-len(lines))
	for index := start; index < end; index++ {
		event := events[index]
		text := event.Title
		for _, detail := range []string{event.When, event.Location} {
			if detail != "" {
				text += "  ·  " + detail
			}
		}
		lines = append(lines, model.cursorLine(text, index == model.eventCursor, width))
	}
	return lines
}

// renderSuggestions draws the dropdown under the search box, with the
// characters matching the typed query highlighted.
func (model Model) renderSuggestions(width int) []string {
	snapshot := model.suggestions
	if snapshot.State == autocomplete.StatePending && !snapshot.Visible() {
		return []string{model.faint("  …")}
	}
	if !snapshot.Visible() {
		return nil
	}
	pattern := []rune(strings.TrimSpace(model.search.Value()))
	base := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	match := lipgloss.NewStyle().Foreground(model.theme.MatchForeground).Bold(true)
	lines := make([]string, 0, len(snapshot.Suggestions))
	for index, suggestion := range snapshot.Suggestions {
		text := format.Truncate(format.Line(suggestion.Text), width-16)
		rendered := highlightMatches(text, FuzzyMatch(text, pattern, nil).Positions, base, match)
		if suggestion.Type != "" && suggestion.Type != ticketing.SuggestionTypeEvent {
			rendered += " " + model.faint(suggestion.Type)
		}
		marker := "  "
		if index == snapshot.Active {
			marker = lipgloss.NewStyle().Foreground(model.theme.MatchForeground).Render("▸ ")
		}
		lines = append(lines, "  "+marker+rendered)
	}
	return lines
}

func (model Model) renderEvent(width, height int) []string {
	var lines []string
	switch {
	case model.pageMessage != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(model.theme.ErrorForeground).Render(model.pageMessage))
	case model.page == nil:
		lines = append(lines, model.faint("Loading event..."))
	default:
		lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(model.page.Title))
		var details []string
		for _, detail := range []string{model.page.When, model.page.Location} {
			if detail != "" {
				details = append(details, detail)
			}
		}
		if len(details) > 0 {
			lines = append(lines, model.faint(strings.Join(details, "  ·  ")))
		}
		if description := renderDescription(model.page.Description, model.theme, width, model.profile); description != "" {
			described := strings.Split(description, "\n")
			if len(described) > descriptionLines {
				described = append(described[:descriptionLines-1], model.faint("…"))
			}
			lines = append(lines, "")
			lines = append(lines, described...)
		}
	}
	lines = append(lines, "", model.renderFilterLine())

	if message := model.catalogView.Message(); message != "" {
		return append(lines, model.faint(message))
	}
	rows := model.catalogView.Rows()
	// Reserve the total line below the rows.
	start, end := scrollWindow(len(rows), model.ticketCursor, height-len(lines)-2)
	for index := start; index < end; index++ {
		lines = append(lines, model.cursorLine(model.rowText(rows[index]), index == model.ticketCursor, width))
	}
	if model.selection != nil {
		total := model.selection.TotalLabel()
		if count := model.selection.Count(); count > 0 {
			total += "  (" + format.Plural(count, "ticket", "") + ")"
		}
		lines = append(lines, "", lipgloss.NewStyle().Bold(true).Foreground(model.theme.Price).Render(total))
	}
	return lines
}

func (model Model) renderFilterLine() string {
	if model.focus != FocusFilter {
		filter := model.catalogView.Filter
		if filter == (catalog.Filter{}) {
			return model.faint("Filter (f): none")
		}
		var parts []string
		if filter.Seat != "" {
			parts = append(parts, "seat "+filter.Seat)
		}
		if filter.MinPrice != "" {
			parts = append(parts, "from "+filter.MinPrice)
		}
		if filter.MaxPrice != "" {
			parts = append(parts, "to "+filter.MaxPrice)
		}
		return model.faint("Filter: " + strings.Join(parts, ", "))
	}
	labels := [filterFieldCount]string{"Seat", "Min", "Max"}
	parts := make([]string, 0, filterFieldCount)
	for index, input := range model.filterInputs {
		label := labels[index] + ": "
		if index == model.filterField {
			label = lipgloss.NewStyle().Bold(true).Render(label)
		}
		parts = append(parts, label+input.View())
	}
	return strings.Join(parts, "  ")
}

// rowText renders a catalog row with its selection state: a checkbox
// for seats, the chosen quantity for general admission.
func (model Model) rowText(row catalog.Row) string {
	price := model.formatter.Price(row.Price)
	if row.GeneralAdmission {
		quantity := 0
		if model.selection != nil {
			quantity = model.selection.GeneralAdmission()
		}
		mark := lipgloss.NewStyle().Foreground(model.theme.GeneralAdmission).Render("GA ")
		return fmt.Sprintf("%s%-18s ×%-3d of %-4d %s", mark, "General admission", quantity, row.Available, price)
	}
	box := "[ ]"
	if model.selection != nil && model.selection.IsChecked(row.ID) {
		box = lipgloss.NewStyle().Foreground(model.theme.Checked).Render("[x]")
	}
	return fmt.Sprintf("%s %-8s %-12s %s", box, row.Label(), format.Line(row.Type), price)
}

func (model Model) renderCart(width, height int) []string {
	var lines []string
	if message := model.cartView.Message(); message != "" {
		lines = append(lines, model.faint(message))
	} else {
		rows := model.cartView.Lines
		start, end := scrollWindow(len(rows), model.cartCursor, height-4)
		for index := start; index < end; index++ {
			line := rows[index]
			lines = append(lines, model.cursorLine(fmt.Sprintf("%-24s %s", line.Label, line.Price), index == model.cartCursor, width))
		}
		lines = append(lines, "", lipgloss.NewStyle().Bold(true).Foreground(model.theme.Price).Render(model.cartView.TotalLine))
	}
	if model.checkoutMessage != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(format.Text(model.checkoutMessage), "\n")...)
	}
	return lines
}

func (model Model) renderOrder(width, height int) []string {
	var ticketIDs []string
	if model.selection != nil {
		ticketIDs = model.selection.Submission().TicketIDs
	}
	tickets := "none selected"
	if len(ticketIDs) > 0 {
		tickets = strings.Join(ticketIDs, ", ")
	}
	lines := []string{
		model.faint("Tickets: " + format.Truncate(tickets, width-9)),
		"",
		"Order for:",
	}
	switch {
	case model.usersMessage != "":
		lines = append(lines, model.faint(model.usersMessage))
	case model.users == nil:
		lines = append(lines, model.faint("Loading users..."))
	default:
		start, end := scrollWindow(len(model.users), model.userCursor, height-len(lines)-3)
		for index := start; index < end; index++ {
			lines = append(lines, model.cursorLine(model.users[index].Label, index == model.userCursor, width))
		}
	}
	if model.orderMessage != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(format.Text(model.orderMessage), "\n")...)
	}
	return lines
}

func (model Model) renderForYou(width, height int) []string {
	if model.panelsLoading {
		return []string{model.faint("Loading recommendations...")}
	}
	var lines []string
	index := 0
	for _, panel := range model.panels {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(panel.Title))
		if message := panel.Message(); message != "" {
			lines = append(lines, model.faint("  "+message), "")
			continue
		}
		for _, pick := range panel.Picks {
			text := pick.Title
			for _, detail := range []string{pick.When, pick.Category} {
				if detail != "" {
					text += "  ·  " + detail
				}
			}
			if pick.Score != "" {
				text += "  " + model.faint("("+pick.Score+")")
			}
			lines = append(lines, model.cursorLine(text, index == model.pickCursor, width))
			index++
		}
		lines = append(lines, "")
	}
	if model.explanation != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(model.theme.LinkForeground).Render(format.Truncate(model.explanation, width)))
	}
	// Keep the explanation visible when the panels overflow.
	if len(lines) > height && model.explanation != "" {
		lines = append(lines[:height-1], lines[len(lines)-1])
	}
	return lines
}
