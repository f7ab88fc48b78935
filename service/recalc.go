package service

import (
	"sync"
	"time"
)

// Debouncer runs the most recently triggered function once no new trigger
// has arrived for the configured delay.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, replacing any function still waiting.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels a pending function, if any. It reports whether one was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

// RequestTracker hands out monotonically increasing request tokens; only the
// latest token may publish a result. Superseded requests are not aborted,
// their results are simply discarded.
type RequestTracker struct {
	mu     sync.Mutex
	latest uint64
}

// Next issues a new token, superseding every earlier one.
func (t *RequestTracker) Next() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest++
	return t.latest
}

// IsCurrent reports whether token is still the latest.
func (t *RequestTracker) IsCurrent(token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return token == t.latest
}

// Apply runs fn only if token is still current, holding the tracker lock so
// no newer token can be issued mid-apply. It reports whether fn ran.
func (t *RequestTracker) Apply(token uint64, fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token != t.latest {
		return false
	}
	fn()
	return true
}
