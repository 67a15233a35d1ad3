// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boxui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/boxoffice/lib/cart"
)

// bridge carries signals from component goroutines into the bubbletea
// loop. It is shared by every copy of the Model.
type bridge struct {
	// wake has capacity one: any number of changes before the loop
	// catches up collapse into a single re-read.
	wake chan struct{}

	// searches receives the text the autocomplete controller commits.
	// The controller calls Search on the goroutine calling Dispatch,
	// which is the loop itself, so the loop drains it right after.
	searches chan string

	// prompts delivers confirmation requests from the cart mutator.
	prompts chan *confirmRequest
}

func newBridge() *bridge {
	return &bridge{
		wake:     make(chan struct{}, 1),
		searches: make(chan string, 1),
		prompts:  make(chan *confirmRequest),
	}
}

func (bridge *bridge) signal() {
	select {
	case bridge.wake <- struct{}{}:
	default:
	}
}

// search replaces any undrained commit with text.
func (bridge *bridge) search(text string) {
	select {
	case <-bridge.searches:
	default:
	}
	bridge.searches <- text
}

func (bridge *bridge) takeSearch() (string, bool) {
	select {
	case text := <-bridge.searches:
		return text, true
	default:
		return "", false
	}
}

// confirmRequest is one question awaiting a yes or no from the user.
type confirmRequest struct {
	prompt string
	answer chan bool
}

// confirmer asks through the UI. Confirm blocks the calling command
// goroutine until the user answers or ctx ends.
func (bridge *bridge) confirmer() cart.Confirmer {
	return cart.ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		request := &confirmRequest{prompt: prompt, answer: make(chan bool, 1)}
		select {
		case bridge.prompts <- request:
		case <-ctx.Done():
			return false, ctx.Err()
		}
		select {
		case answer := <-request.answer:
			return answer, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	})
}

type wakeMsg struct{}

type confirmMsg struct {
	request *confirmRequest
}

func (bridge *bridge) listenWake() tea.Cmd {
	return func() tea.Msg {
		<-bridge.wake
		return wakeMsg{}
	}
}

func (bridge *bridge) listenPrompts() tea.Cmd {
	return func() tea.Msg {
		return confirmMsg{request: <-bridge.prompts}
	}
}
