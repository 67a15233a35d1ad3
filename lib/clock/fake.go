// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock that reads initial until Advance is called.
func Fake(initial time.Time) *FakeClock {
	fake := &FakeClock{now: initial}
	fake.changed = sync.NewCond(&fake.mutex)
	return fake
}

// FakeClock is a manually driven Clock for tests. It is safe for
// concurrent use. AfterFunc callbacks run synchronously in the
// goroutine calling Advance, in deadline order; a callback must not
// call Advance itself.
type FakeClock struct {
	mutex   sync.Mutex
	now     time.Time
	pending []*pendingTimer
	changed *sync.Cond
}

type pendingTimer struct {
	deadline time.Time
	channel  chan time.Time // After timers.
	callback func()         // AfterFunc timers.
	stopped  bool
	fired    bool
}

// Now returns the fake current time.
func (fake *FakeClock) Now() time.Time {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()
	return fake.now
}

// After returns a channel that receives once the clock has been
// advanced past d.
func (fake *FakeClock) After(d time.Duration) <-chan time.Time {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()

	channel := make(chan time.Time, 1)
	if d <= 0 {
		channel <- fake.now
		return channel
	}
	fake.pending = append(fake.pending, &pendingTimer{
		deadline: fake.now.Add(d),
		channel:  channel,
	})
	fake.changed.Broadcast()
	return channel
}

// AfterFunc schedules f for when the clock has been advanced past d.
// If d <= 0, f runs before AfterFunc returns.
func (fake *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{
			stopFunc:  func() bool { return false },
			resetFunc: func(time.Duration) bool { return false },
		}
	}

	fake.mutex.Lock()
	timer := &pendingTimer{deadline: fake.now.Add(d), callback: f}
	fake.pending = append(fake.pending, timer)
	fake.changed.Broadcast()
	fake.mutex.Unlock()

	return &Timer{
		stopFunc: func() bool {
			fake.mutex.Lock()
			defer fake.mutex.Unlock()
			if timer.stopped || timer.fired {
				return false
			}
			timer.stopped = true
			fake.removeLocked(timer)
			return true
		},
		resetFunc: func(d time.Duration) bool {
			fake.mutex.Lock()
			defer fake.mutex.Unlock()
			wasPending := !timer.stopped && !timer.fired
			timer.deadline = fake.now.Add(d)
			if !wasPending {
				timer.stopped = false
				timer.fired = false
				fake.pending = append(fake.pending, timer)
				fake.changed.Broadcast()
			}
			return wasPending
		},
	}
}

// Advance moves the clock forward by d and fires every timer whose
// deadline is reached, earliest first.
func (fake *FakeClock) Advance(d time.Duration) {
	fake.mutex.Lock()
	fake.now = fake.now.Add(d)
	target := fake.now
	fake.mutex.Unlock()

	for {
		due := fake.takeDue(target)
		if len(due) == 0 {
			return
		}
		for _, timer := range due {
			if timer.callback != nil {
				timer.callback()
				continue
			}
			select {
			case timer.channel <- target:
			default:
			}
		}
	}
}

// takeDue removes and returns the timers due at target, sorted by
// deadline. Stopped timers are dropped.
func (fake *FakeClock) takeDue(target time.Time) []*pendingTimer {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()

	var due, remaining []*pendingTimer
	for _, timer := range fake.pending {
		switch {
		case timer.stopped:
		case timer.deadline.After(target):
			remaining = append(remaining, timer)
		default:
			timer.fired = true
			due = append(due, timer)
		}
	}
	fake.pending = remaining
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline.Before(due[j].deadline)
	})
	return due
}

// WaitForTimers blocks until at least n timers are pending. Use it to
// wait for a goroutine to register its timer before calling Advance.
func (fake *FakeClock) WaitForTimers(n int) {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()
	for fake.pendingLocked() < n {
		fake.changed.Wait()
	}
}

// Pending returns the number of timers that have neither fired nor
// been stopped.
func (fake *FakeClock) Pending() int {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()
	return fake.pendingLocked()
}

func (fake *FakeClock) removeLocked(target *pendingTimer) {
	for index, timer := range fake.pending {
		if timer == target {
			fake.pending = append(fake.pending[:index], fake.pending[index+1:]...)
			return
		}
	}
}

func (fake *FakeClock) pendingLocked() int {
	count := 0
	for _, timer := range fake.pending {
		if !timer.stopped {
			count++
		}
	}
	return count
}
