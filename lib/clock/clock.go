// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the time operations boxoffice components use.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once d
	// has elapsed. If d <= 0 the channel is ready immediately.
	After(d time.Duration) <-chan time.Time

	// AfterFunc calls f once d has elapsed. The returned Timer can
	// cancel or reschedule the pending call.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stopFunc  func() bool
	resetFunc func(time.Duration) bool
}

// Stop prevents the call from happening. Returns false if the call
// already happened or the timer was already stopped.
func (timer *Timer) Stop() bool { return timer.stopFunc() }

// Reset reschedules the call to happen d from now. Returns true if
// the timer was still pending.
func (timer *Timer) Reset(d time.Duration) bool { return timer.resetFunc(d) }
