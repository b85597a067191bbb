package store

import (
	"sync"
	"time"
)

// Clock supplies the current time to the reload throttle.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// Throttle runs a task only when more than Min has passed since the last
// Mark. It never blocks while nothing has been marked yet.
type Throttle struct {
	Min   time.Duration
	clock Clock

	mu   sync.Mutex
	last time.Time
}

// NewThrottle returns a throttle reading time from clock.
func NewThrottle(interval time.Duration, clock Clock) *Throttle {
	if clock == nil {
		clock = SystemClock
	}
	return &Throttle{Min: interval, clock: clock}
}

// Mark records now as the last successful run.
func (t *Throttle) Mark() {
	t.mu.Lock()
	t.last = t.clock.Now()
	t.mu.Unlock()
}

// Last returns the time of the last Mark, zero if none.
func (t *Throttle) Last() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// Allow reports whether a task may run now.
func (t *Throttle) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last.IsZero() {
		return true
	}
	return t.clock.Now().Sub(t.last) > t.Min
}

// Do runs fn if Allow permits and reports whether it ran.
func (t *Throttle) Do(fn func()) bool {
	if !t.Allow() {
		return false
	}
	fn()
	return true
}
