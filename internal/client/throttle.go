package client

import (
	"sync"
	"time"
)

// Throttle bounds how often a function runs: an immediate leading call
// when the interval has passed, otherwise a trailing call with the latest
// function once it does. Drag and resize streams go through this so the
// local view updates every tick while the wire only sees one mutation per
// interval.
type Throttle struct {
	mu      sync.Mutex
	wait    time.Duration
	last    time.Time
	timer   *time.Timer
	pending func()
}

func NewThrottle(wait time.Duration) *Throttle {
	return &Throttle{
		wait: wait,
	}
}

// Do runs fn now if the interval has elapsed, or schedules the most
// recent fn for the trailing edge.
func (t *Throttle) Do(fn func()) {
	t.mu.Lock()
	now := time.Now()
	remaining := t.wait - now.Sub(t.last)
	if remaining <= 0 {
		if t.timer != nil {
			t.timer.Stop()
			t.timer = nil
			t.pending = nil
		}
		t.last = now
		t.mu.Unlock()
		fn()
		return
	}

	t.pending = fn
	if t.timer == nil {
		t.timer = time.AfterFunc(remaining, t.fireTrailing)
	}
	t.mu.Unlock()
}

func (t *Throttle) fireTrailing() {
	t.mu.Lock()
	fn := t.pending
	t.pending = nil
	t.timer = nil
	t.last = time.Now()
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop cancels any scheduled trailing call.
func (t *Throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = nil
}
