package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay applied to as-you-type queries.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces bursts of submissions. Only the last submission in a
// burst runs, and a result is delivered only if no newer submission arrived
// while it was running.
type Debouncer[T any] struct {
	delay time.Duration

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewDebouncer creates a debouncer. A non-positive delay uses DefaultDebounce.
func NewDebouncer[T any](delay time.Duration) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer[T]{delay: delay}
}

// Submit schedules run after the debounce delay and hands its result to deliver.
// Any pending or in-flight earlier submission is superseded.
func (d *Debouncer[T]) Submit(run func() T, deliver func(T)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		v := run()

		d.mu.Lock()
		current := gen == d.gen
		d.mu.Unlock()
		if current {
			deliver(v)
		}
	})
}

// Cancel drops the pending submission and discards any in-flight result.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
