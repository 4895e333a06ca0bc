package engine

import (
	"testing"
	"time"

	"github.com/shoenig/test/must"

	"github.com/krisalay/expiring-map/clock"
	"github.com/krisalay/expiring-map/expiration"
	"github.com/krisalay/expiring-map/types"
)

type countingMetrics struct {
	types.NoopMetrics
	expired int
}

func (c *countingMetrics) Expire() { c.expired++ }

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(nil, nil, nil, nil)
	must.NotNil(t, e.Clock)
	must.NotNil(t, e.Metrics)
	must.NotNil(t, e.Logger)
	must.False(t, e.IsExpired(time.Time{}, time.Now()))
}

func TestSweep_SingleSnapshot(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	clk := clock.NewFake(start)
	m := &countingMetrics{}
	e := NewEngine(&expiration.FixedTTL{TTL: 2 * time.Second}, clk, m, nil)

	entries := map[string]*types.Entry[int]{
		"a": {Value: 1, InsertedAt: start},
		"b": {Value: 2, InsertedAt: start.Add(time.Second)},
		"c": {Value: 3, InsertedAt: start.Add(500 * time.Millisecond)},
	}

	clk.Advance(2500 * time.Millisecond)

	// a aged 2.5s, c aged exactly 2s, b aged 1.5s
	must.Eq(t, 1, Sweep(e, entries))
	must.MapNotContainsKey(t, entries, "a")
	must.MapContainsKey(t, entries, "b")
	must.MapContainsKey(t, entries, "c")
	must.Eq(t, 1, m.expired)

	// nothing further without the clock moving
	must.Eq(t, 0, Sweep(e, entries))
	must.MapLen(t, 2, entries)
}

func TestSweep_NoStrategy(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	e := NewEngine(nil, clk, nil, nil)

	entries := map[int]*types.Entry[string]{
		1: {Value: "x", InsertedAt: time.Unix(0, 0)},
	}
	clk.Advance(time.Hour)

	must.Eq(t, 0, Sweep(e, entries))
	must.MapLen(t, 1, entries)
}

type expireKeys map[time.Time]bool

func (e expireKeys) IsExpired(insertedAt, _ time.Time) bool { return e[insertedAt] }

func TestSweep_DelegatesToIsExpired(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	e := NewEngine(expireKeys{start: true}, clock.NewFake(start), nil, nil)

	entries := map[string]*types.Entry[int]{
		"gone": {Value: 1, InsertedAt: start},
		"kept": {Value: 2, InsertedAt: start.Add(time.Second)},
	}

	must.True(t, e.IsExpired(start, start))
	must.Eq(t, 1, Sweep(e, entries))
	must.MapNotContainsKey(t, entries, "gone")
	must.MapContainsKey(t, entries, "kept")
}
