package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid triggers into a single callback after a quiet
// period. A pending callback can be cancelled or forced to run early.
type Debouncer struct {
	window time.Duration
	fn     func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
}

func New(window time.Duration, fn func()) *Debouncer {
	return &Debouncer{
		window: window,
		fn:     fn,
	}
}

// Trigger (re)starts the quiet-period timer. The callback fires once the
// window elapses with no further triggers.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.mu.Unlock()

	d.fn()
}

// Flush runs the callback immediately if a trigger is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	d.fn()
}

// Cancel drops any pending trigger without running the callback. Used on
// session teardown so no write lands after logout.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Pending reports whether a trigger is waiting on the quiet period.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
