// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boxui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the box office UI. Bindings are
// screen-sensitive: Toggle checks a ticket on the event screen and
// does nothing elsewhere.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Back key.Binding

	// Event list.
	Search key.Binding

	// Event screen.
	Toggle      key.Binding
	More        key.Binding
	Fewer       key.Binding
	AddToCart   key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	DirectOrder key.Binding
	ResetPicks  key.Binding
	NextField   key.Binding

	// Cart.
	Remove    key.Binding
	ClearCart key.Binding
	Checkout  key.Binding

	Explain key.Binding

	// Screen switches, available everywhere outside text input.
	ShowCart   key.Binding
	ShowForYou key.Binding
	Reload     key.Binding

	ConfirmYes   key.Binding
	ConfirmNo    key.Binding
	DismissAlert key.Binding

	Quit key.Binding
}

// DefaultKeyMap uses vim-style navigation alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("Esc", "back"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "select"),
	),
	More: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "more GA"),
	),
	Fewer: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "fewer GA"),
	),
	AddToCart: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add to cart"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "clear filter"),
	),
	DirectOrder: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "order for user"),
	),
	ResetPicks: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "unselect all"),
	),
	ShowCart: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cart"),
	),
	ShowForYou: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "for you"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "reload"),
	),
	Remove: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "remove"),
	),
	ClearCart: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear cart"),
	),
	Checkout: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "checkout"),
	),
	Explain: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "why?"),
	),
	ConfirmYes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	ConfirmNo: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n", "no"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
	DismissAlert: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "dismiss"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
