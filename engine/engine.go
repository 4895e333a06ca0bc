package engine

import (
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/krisalay/expiring-map/clock"
	"github.com/krisalay/expiring-map/expiration"
	"github.com/krisalay/expiring-map/types"
)

/*
Engine is the policy layer of the map.
It is responsible for the "behavior" of expiry, NOT storage.

It decides:
- What time it is (one reading per sweep)
- When an entry is expired
- How events are recorded in metrics and logs

It does NOT:
- Store data
- Handle locking
*/
type Engine struct {

	// Expiration decides when an entry is "too old".
	// If this is nil, entries never expire.
	Expiration expiration.Strategy

	// Clock stamps new entries and provides the snapshot each sweep evaluates against.
	Clock clock.Clock

	// Metrics records inserts, hits, misses, removals and expirations.
	Metrics types.Metrics

	// Logger receives a trace line for every sweep that removed something.
	Logger hclog.Logger
}

/*
NewEngine creates an Engine.

Nil collaborators are replaced with working defaults so the rest of the
code never has to check for them.
*/
func NewEngine(
	exp expiration.Strategy,
	clk clock.Clock,
	metrics types.Metrics,
	logger hclog.Logger,
) *Engine {
	if clk == nil {
		clk = clock.Real{}
	}
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Engine{
		Expiration: exp,
		Clock:      clk,
		Metrics:    metrics,
		Logger:     logger,
	}
}

// Now reads the configured clock.
func (e *Engine) Now() time.Time {
	return e.Clock.Now()
}

/*
IsExpired checks whether an entry is expired at now.

Returns false if no expiration strategy is configured.
*/
func (e *Engine) IsExpired(insertedAt, now time.Time) bool {
	return e.Expiration != nil && e.Expiration.IsExpired(insertedAt, now)
}

/*
Sweep removes every expired entry from entries and returns how many were removed.

The clock is read exactly once. Every entry is judged against that single
reading, so no entry is evaluated against two different "now" values within
one sweep. Iteration order is whatever the Go map yields; nothing observable
depends on it.
*/
func Sweep[K comparable, V any](e *Engine, entries map[K]*types.Entry[V]) int {
	if e.Expiration == nil || len(entries) == 0 {
		return 0
	}

	now := e.Now()
	removed := 0
	for key, ent := range entries {
		if e.IsExpired(ent.InsertedAt, now) {
			delete(entries, key)
			e.Metrics.Expire()
			removed++
		}
	}

	if removed > 0 {
		e.Logger.Trace("swept expired entries", "removed", removed, "remaining", len(entries))
	}
	return removed
}
