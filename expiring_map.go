package expiringmap

import (
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/krisalay/expiring-map/clock"
	"github.com/krisalay/expiring-map/engine"
	"github.com/krisalay/expiring-map/expiration"
	"github.com/krisalay/expiring-map/types"
)

// ErrNegativeTTL is returned by New when ttl is below zero.
var ErrNegativeTTL = expiration.ErrNegativeTTL

/*
Map is an associative container whose entries become invisible once a fixed
time-to-live has elapsed since insertion.

Expiry is lazy. Nothing runs in the background; instead Insert, Emplace,
Remove, EvictExpired and At each perform a full sweep that drops every entry
whose age strictly exceeds the ttl. Between sweeps an expired entry is
"stale": still physically present and visible through Len, Peek and Range.

Map is not safe for concurrent use. Wrap it in syncmap.Synchronized when
several goroutines share one instance.
*/
type Map[K comparable, V any] struct {

	// entries holds pointers so that a value's address stays stable while the entry lives.
	entries map[K]*types.Entry[V]

	// engine carries the expiration rule, clock, metrics and logger.
	engine *engine.Engine

	// exp is the same strategy the engine sweeps with.
	exp *expiration.FixedTTL
}

// Option customizes a Map at construction.
type Option func(*options)

type options struct {
	clock   clock.Clock
	metrics types.Metrics
	logger  hclog.Logger
}

// WithClock replaces the monotonic system clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithMetrics records lifecycle events to m.
func WithMetrics(m types.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger sets the logger used for sweep traces.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) { o.logger = l }
}

/*
New creates an empty Map whose entries live for ttl.

A zero ttl makes every entry eligible for removal by the first sweep that
observes any time having passed since its insertion. A negative ttl is
rejected with an error wrapping ErrNegativeTTL.
*/
func New[K comparable, V any](ttl time.Duration, opts ...Option) (*Map[K, V], error) {
	exp, err := expiration.NewFixedTTL(ttl)
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Map[K, V]{
		entries: make(map[K]*types.Entry[V]),
		engine:  engine.NewEngine(exp, o.clock, o.metrics, o.logger),
		exp:     exp,
	}, nil
}

/*
Insert stores value under key if key is absent.

If key is already present, the existing entry is kept untouched (value and
insertion time) and value is discarded. The returned pointer refers to
whichever value is stored under key; inserted reports whether value was
stored. A full sweep runs after the attempt.
*/
func (m *Map[K, V]) Insert(key K, value V) (*V, bool) {
	ptr, inserted := m.insertIfAbsent(key, func() V { return value })
	m.EvictExpired()
	return ptr, inserted
}

/*
Emplace behaves like Insert but builds the value lazily.

construct is only called when key is absent. A nil construct stores the
zero value of V. A full sweep runs after the attempt.
*/
func (m *Map[K, V]) Emplace(key K, construct func() V) (*V, bool) {
	if construct == nil {
		construct = zero[V]
	}
	ptr, inserted := m.insertIfAbsent(key, construct)
	m.EvictExpired()
	return ptr, inserted
}

/*
Remove deletes key unconditionally, stale or not.

It returns 1 when an entry was removed and 0 otherwise. A full sweep runs
afterwards.
*/
func (m *Map[K, V]) Remove(key K) int {
	n := 0
	if _, ok := m.entries[key]; ok {
		delete(m.entries, key)
		m.engine.Metrics.Remove()
		n = 1
	}
	m.EvictExpired()
	return n
}

// EvictExpired sweeps every expired entry and returns how many were removed.
func (m *Map[K, V]) EvictExpired() int {
	return engine.Sweep(m.engine, m.entries)
}

/*
At returns a pointer to the value stored under key, creating it if needed.

The sweep runs first, so a stale entry for key is dropped before the lookup
and replaced by a fresh zero-valued entry stamped with the current time.
At never fails.
*/
func (m *Map[K, V]) At(key K) *V {
	m.EvictExpired()

	if ent, ok := m.entries[key]; ok {
		m.engine.Metrics.Hit()
		return &ent.Value
	}

	m.engine.Metrics.Miss()
	ent := &types.Entry[V]{InsertedAt: m.engine.Now()}
	m.entries[key] = ent
	m.engine.Metrics.Insert()
	return &ent.Value
}

// Clear drops every entry.
func (m *Map[K, V]) Clear() {
	clear(m.entries)
}

// Len returns the number of stored entries, including stale ones.
func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

// Peek reads key without sweeping. A stale entry is still returned.
func (m *Map[K, V]) Peek(key K) (V, bool) {
	ent, ok := m.entries[key]
	if !ok {
		var v V
		return v, false
	}
	return ent.Value, true
}

// InsertedAt returns the insertion time of key without sweeping.
func (m *Map[K, V]) InsertedAt(key K) (time.Time, bool) {
	ent, ok := m.entries[key]
	if !ok {
		return time.Time{}, false
	}
	return ent.InsertedAt, true
}

// Range calls fn for every stored entry, stale ones included, until fn
// returns false. fn must not mutate the map.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for k, ent := range m.entries {
		if !fn(k, ent.Value) {
			return
		}
	}
}

// TTL returns the configured time-to-live.
func (m *Map[K, V]) TTL() time.Duration {
	return m.exp.TTL
}

func (m *Map[K, V]) insertIfAbsent(key K, construct func() V) (*V, bool) {
	if ent, ok := m.entries[key]; ok {
		m.engine.Metrics.Duplicate()
		return &ent.Value, false
	}

	now := m.engine.Now()
	ent := &types.Entry[V]{Value: construct(), InsertedAt: now}
	m.entries[key] = ent
	m.engine.Metrics.Insert()
	return &ent.Value, true
}

func zero[V any]() V {
	var v V
	return v
}
