// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package autocomplete

import "fmt"

// Action is a keyboard or pointer action on the suggestion list.
type Action int

const (
	// ActionDown moves the highlight to the next suggestion, wrapping.
	ActionDown Action = iota + 1
	// ActionUp moves the highlight to the previous suggestion, wrapping.
	ActionUp
	// ActionEnter commits the highlighted suggestion, or searches the
	// typed text when nothing is highlighted.
	ActionEnter
	// ActionEscape closes the list without searching.
	ActionEscape
	// ActionDismiss closes the list because focus left the search box.
	ActionDismiss
)

var actionNames = map[Action]string{
	ActionDown:    "down",
	ActionUp:      "up",
	ActionEnter:   "enter",
	ActionEscape:  "escape",
	ActionDismiss: "dismiss",
}

func (action Action) String() string {
	if name, ok := actionNames[action]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(action))
}

// ParseAction maps a key name, as bubbletea's tea.KeyMsg.String
// reports it, to an Action.
func ParseAction(key string) (Action, bool) {
	switch key {
	case "down", "ctrl+n":
		return ActionDown, true
	case "up", "ctrl+p":
		return ActionUp, true
	case "enter":
		return ActionEnter, true
	case "esc":
		return ActionEscape, true
	case "tab", "shift+tab":
		return ActionDismiss, true
	default:
		return 0, false
	}
}
