// ABOUTME: Elapsed-time tracker for workout sessions.
// ABOUTME: Counts whole seconds while running and formats them for display.
package timer

import (
	"fmt"
	"sync"
	"time"
)

// TickSource starts a tick stream and returns it with a stop function.
type TickSource func() (ticks <-chan time.Time, stop func())

// SecondTicks is the default TickSource: one tick per real-time second.
func SecondTicks() (<-chan time.Time, func()) {
	t := time.NewTicker(time.Second)
	return t.C, t.Stop
}

// Tracker counts elapsed seconds. It starts at zero and holds its value
// while stopped. Safe for use from multiple goroutines.
type Tracker struct {
	mu      sync.Mutex
	seconds int
	running bool
	stop    chan struct{}
	done    chan struct{}
	source  TickSource
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithTickSource replaces the real-time ticker, mainly for tests.
func WithTickSource(src TickSource) Option {
	return func(t *Tracker) {
		t.source = src
	}
}

// New creates a stopped Tracker at zero.
func New(opts ...Option) *Tracker {
	t := &Tracker{source: SecondTicks}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins counting. Starting a running tracker does nothing.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}

	ticks, stopTicks := t.source()
	t.running = true
	t.stop = make(chan struct{})
	t.done = make(chan struct{})

	go t.run(ticks, stopTicks, t.stop, t.done)
}

func (t *Tracker) run(ticks <-chan time.Time, stopTicks func(), stop, done chan struct{}) {
	defer close(done)
	defer stopTicks()
	for {
		select {
		case <-stop:
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			// A received tick always counts; Stop waits on done.
			t.mu.Lock()
			t.seconds++
			t.mu.Unlock()
		}
	}
}

// Stop halts counting and waits for the ticking goroutine to exit, so no
// tick is counted after Stop returns. Stopping a stopped tracker does nothing.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	stop, done := t.stop, t.done
	t.mu.Unlock()

	close(stop)
	<-done
}

// Reset stops the tracker and sets the count back to zero.
func (t *Tracker) Reset() {
	t.Stop()
	t.mu.Lock()
	t.seconds = 0
	t.mu.Unlock()
}

// Seconds returns the elapsed whole seconds.
func (t *Tracker) Seconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seconds
}

// Running reports whether the tracker is counting.
func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// String formats the current count.
func (t *Tracker) String() string {
	return Format(t.Seconds())
}

// Format renders seconds as "1h 1m" from one hour up, else "2m 5s".
func Format(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm %ds", minutes, secs)
}
