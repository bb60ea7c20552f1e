// Package debounce coalesces bursts of values so only the last one is acted on.
package debounce

import (
	"sync"
	"time"
)

// DefaultWindow matches a comfortable typing pause.
const DefaultWindow = 300 * time.Millisecond

// Debouncer delivers the last value pushed within a quiet window. Each Push
// restarts the window; fn runs on the timer's goroutine once the window
// elapses without another Push. Flush and Stop must not be called from fn.
type Debouncer[T any] struct {
	mu      sync.Mutex
	idle    *sync.Cond // signalled when firing drops to zero
	window  time.Duration
	fn      func(T)
	timer   *time.Timer
	pending T
	armed   bool
	gen     uint64
	firing  int
}

// New creates a debouncer calling fn with the settled value. A non-positive
// window uses DefaultWindow.
func New[T any](window time.Duration, fn func(T)) *Debouncer[T] {
	if window <= 0 {
		window = DefaultWindow
	}
	d := &Debouncer[T]{window: window, fn: fn}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Push records v as the pending value and restarts the window.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = v
	d.armed = true
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

// fire delivers the pending value unless a later Push, Flush or Stop
// superseded this timer.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.armed {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.armed = false
	d.firing++
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.firing--
		if d.firing == 0 {
			d.idle.Broadcast()
		}
		d.mu.Unlock()
	}()
	d.fn(v)
}

// waitIdle blocks until no timer delivery is running. d.mu must be held.
func (d *Debouncer[T]) waitIdle() {
	for d.firing > 0 {
		d.idle.Wait()
	}
}

// Flush delivers the pending value immediately on the caller's goroutine.
// If the timer is already delivering, Flush waits for it instead. It reports
// whether a value was delivered.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.armed {
		delivering := d.firing > 0
		d.waitIdle()
		d.mu.Unlock()
		return delivering
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	v := d.pending
	d.armed = false
	d.mu.Unlock()

	d.fn(v)
	return true
}

// Stop drops any pending value without delivering it and waits for a
// delivery already in progress to return.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.waitIdle()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.armed = false
	var zero T
	d.pending = zero
}

// Pending reports whether a value is waiting for its window to elapse.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}
