// Package freq provides event-rate measurement for the simulation loops.
//
// Each loop owns its own Counter and is the only writer; the render side
// reads the measured rate for display. Precision carries no correctness
// requirement, so the implementation favors cheapness over exactness.
package freq

import (
	"sync"
	"time"
)

// DefaultWindow is the trailing window over which the rate is estimated.
const DefaultWindow = time.Second

// Counter measures the rate of Signal calls over a trailing window.
// It is goroutine-safe.
type Counter struct {
	mu sync.Mutex

	window      time.Duration
	windowStart time.Time
	count       uint64

	// Rate measured over the last completed window.
	frequency float64
}

// New creates a counter with the default one-second window.
func New() *Counter {
	return NewWindow(DefaultWindow)
}

// NewWindow creates a counter that estimates the rate over the given window.
func NewWindow(window time.Duration) *Counter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Counter{window: window}
}

// Signal records n events. The caller is the loop being measured; one call
// per tick with n=1 is the normal usage.
func (c *Counter) Signal(n uint64) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.windowStart.IsZero() {
		c.windowStart = now
	}

	c.count += n

	elapsed := now.Sub(c.windowStart)
	if elapsed >= c.window {
		c.frequency = float64(c.count) / elapsed.Seconds()
		c.count = 0
		c.windowStart = now
	}
}

// Frequency returns the rate measured over the last completed window, in Hz.
// Returns 0 until the first window completes.
func (c *Counter) Frequency() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frequency
}

// Reset clears all counter state.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windowStart = time.Time{}
	c.count = 0
	c.frequency = 0
}
