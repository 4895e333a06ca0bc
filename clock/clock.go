// Package clock abstracts the time source used to stamp and age entries.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current time. Implementations used in production must
// return readings that carry a monotonic component so entry ages are not
// affected by wall-clock adjustments.
type Clock interface {
	Now() time.Time
}

// Real reads time.Now, which includes the monotonic clock reading.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fake is a manually driven clock. It only moves when Advance or Set is
// called, which makes expiry deterministic in tests and demos.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a Fake clock positioned at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by d and returns the new reading.
func (f *Fake) Advance(d time.Duration) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	return f.now
}

// Set positions the clock at t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}
