// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"fmt"
	"sync"
	"time"

	"github.com/bureau-foundation/boxoffice/lib/clock"
)

// DefaultNoticeDuration is how long a notice stays visible.
const DefaultNoticeDuration = 3 * time.Second

// Indicators owns the cart badge and the transient notice. Each is
// created on first access and then reused; callers never hold a
// reference that could go stale.
type Indicators struct {
	clock    clock.Clock
	duration time.Duration

	mutex    sync.Mutex
	badge    *Badge
	notice   *Notice
	onChange func()
}

// NewIndicators creates an Indicators with neither element created.
// A non-positive duration means DefaultNoticeDuration.
func NewIndicators(clk clock.Clock, noticeDuration time.Duration) *Indicators {
	if noticeDuration <= 0 {
		noticeDuration = DefaultNoticeDuration
	}
	return &Indicators{clock: clk, duration: noticeDuration}
}

// OnChange registers a function called after the badge or notice
// changes, including when a notice expires. The function runs on the
// goroutine making the change (for expiry, the clock's timer
// goroutine) and must not block.
func (indicators *Indicators) OnChange(function func()) {
	indicators.mutex.Lock()
	defer indicators.mutex.Unlock()
	indicators.onChange = function
}

func (indicators *Indicators) changed() {
	indicators.mutex.Lock()
	function := indicators.onChange
	indicators.mutex.Unlock()
	if function != nil {
		function()
	}
}

// Badge returns the cart badge, creating it on first use.
func (indicators *Indicators) Badge() *Badge {
	indicators.mutex.Lock()
	defer indicators.mutex.Unlock()
	if indicators.badge == nil {
		indicators.badge = &Badge{changed: indicators.changed}
	}
	return indicators.badge
}

// Notice returns the transient notice, creating it on first use.
func (indicators *Indicators) Notice() *Notice {
	indicators.mutex.Lock()
	defer indicators.mutex.Unlock()
	if indicators.notice == nil {
		indicators.notice = &Notice{
			clock:    indicators.clock,
			duration: indicators.duration,
			changed:  indicators.changed,
		}
	}
	return indicators.notice
}

// Created reports which elements exist.
func (indicators *Indicators) Created() (badge, notice bool) {
	indicators.mutex.Lock()
	defer indicators.mutex.Unlock()
	return indicators.badge != nil, indicators.notice != nil
}

// Badge shows the number of tickets in the cart as last fetched.
type Badge struct {
	changed func()

	mutex sync.Mutex
	count int
	known bool
}

// Set records a freshly fetched count.
func (badge *Badge) Set(count int) {
	badge.mutex.Lock()
	badge.count = count
	badge.known = true
	badge.mutex.Unlock()
	badge.changed()
}

// Count returns the last fetched count; known is false until the cart
// has been fetched once.
func (badge *Badge) Count() (count int, known bool) {
	badge.mutex.Lock()
	defer badge.mutex.Unlock()
	return badge.count, badge.known
}

// Label renders the badge, e.g. "Cart (2)", or "Cart" before the first
// fetch.
func (badge *Badge) Label() string {
	count, known := badge.Count()
	if !known {
		return "Cart"
	}
	return fmt.Sprintf("Cart (%d)", count)
}

// Notice is a single transient message. Posting replaces the current
// message and restarts its expiry.
type Notice struct {
	clock    clock.Clock
	duration time.Duration
	changed  func()

	mutex sync.Mutex
	text  string
	// serial identifies the current message so an expiry timer from a
	// replaced message cannot clear its successor.
	serial uint64
	timer  *clock.Timer
}

// Post shows text until the notice duration elapses.
func (notice *Notice) Post(text string) {
	notice.mutex.Lock()
	notice.serial++
	serial := notice.serial
	notice.text = text
	if notice.timer != nil {
		notice.timer.Stop()
	}
	notice.timer = notice.clock.AfterFunc(notice.duration, func() {
		notice.expire(serial)
	})
	notice.mutex.Unlock()
	notice.changed()
}

func (notice *Notice) expire(serial uint64) {
	notice.mutex.Lock()
	if serial != notice.serial || notice.text == "" {
		notice.mutex.Unlock()
		return
	}
	notice.text = ""
	notice.timer = nil
	notice.mutex.Unlock()
	notice.changed()
}

// Dismiss hides the current message immediately.
func (notice *Notice) Dismiss() {
	notice.mutex.Lock()
	notice.serial++
	notice.text = ""
	if notice.timer != nil {
		notice.timer.Stop()
		notice.timer = nil
	}
	notice.mutex.Unlock()
	notice.changed()
}

// Text returns the visible message, "" when none.
func (notice *Notice) Text() string {
	notice.mutex.Lock()
	defer notice.mutex.Unlock()
	return notice.text
}
