package syncmap

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	expiringmap "github.com/krisalay/expiring-map"
	"github.com/krisalay/expiring-map/types"
)

/*
Synchronized makes an expiringmap.Map safe to share between goroutines.

One mutex guards the whole structure. Every operation, and therefore every
sweep, runs while holding it, so a sweep still judges all entries against
a single clock reading and no other goroutine observes a half-swept map.

Values are handed out as copies. Mutation in place goes through Update,
which keeps the pointer from escaping the lock.
*/
type Synchronized[K comparable, V any] struct {
	mu sync.Mutex
	m  *expiringmap.Map[K, V]

	// sf prevents several goroutines from loading the same missing key at once.
	sf singleflight.Group

	// flights maps a key being loaded to its singleflight id. Ids come from a
	// counter, so two different keys never share a flight.
	flights    map[K]string
	nextFlight uint64
}

// New builds a Map with ttl and opts and wraps it.
func New[K comparable, V any](ttl time.Duration, opts ...expiringmap.Option) (*Synchronized[K, V], error) {
	m, err := expiringmap.New[K, V](ttl, opts...)
	if err != nil {
		return nil, err
	}
	return Wrap(m), nil
}

// Wrap guards an existing Map. The caller must stop using m directly.
func Wrap[K comparable, V any](m *expiringmap.Map[K, V]) *Synchronized[K, V] {
	return &Synchronized[K, V]{
		m:       m,
		flights: make(map[K]string),
	}
}

// Insert stores value if key is absent and returns the stored value.
func (s *Synchronized[K, V]) Insert(key K, value V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, inserted := s.m.Insert(key, value)
	return *p, inserted
}

// Emplace stores construct() if key is absent and returns the stored value.
// construct runs with the lock held and must not call back into s.
func (s *Synchronized[K, V]) Emplace(key K, construct func() V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, inserted := s.m.Emplace(key, construct)
	return *p, inserted
}

// Remove deletes key and reports 1 if it was present.
func (s *Synchronized[K, V]) Remove(key K) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Remove(key)
}

// EvictExpired sweeps expired entries.
func (s *Synchronized[K, V]) EvictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.EvictExpired()
}

// At returns a copy of the value under key, creating a zero value if absent.
func (s *Synchronized[K, V]) At(key K) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.m.At(key)
}

/*
Update applies fn to the value under key with At semantics and returns the result.

fn runs with the lock held and must not call back into s.
*/
func (s *Synchronized[K, V]) Update(key K, fn func(v *V)) V {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.m.At(key)
	fn(p)
	return *p
}

/*
GetOrLoad returns the live value under key, loading it when absent.

1. Sweep, then look the key up
2. On a miss, ask the loader, with concurrent loads for the same key collapsed into one
3. Insert the loaded value with insert-if-absent semantics
4. Return whatever value ended up stored

The loader runs without the lock held.
*/
func (s *Synchronized[K, V]) GetOrLoad(ctx context.Context, key K, loader types.Loader[K, V]) (V, error) {
	s.mu.Lock()
	s.m.EvictExpired()
	if v, ok := s.m.Peek(key); ok {
		s.mu.Unlock()
		return v, nil
	}
	id := s.flightIDLocked(key)
	s.mu.Unlock()

	res, err, _ := s.sf.Do(id, func() (any, error) {
		loaded, err := loader.Load(ctx, key)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.flights[key] == id {
			delete(s.flights, key)
		}
		if err != nil {
			return nil, err
		}
		p, _ := s.m.Insert(key, loaded)
		return *p, nil
	})
	if err != nil {
		var zero V
		return zero, fmt.Errorf("load %v: %w", key, err)
	}

	v, _ := res.(V)
	return v, nil
}

// flightIDLocked returns the id of the in-progress load for key, starting a new one if needed.
func (s *Synchronized[K, V]) flightIDLocked(key K) string {
	if id, ok := s.flights[key]; ok {
		return id
	}
	s.nextFlight++
	id := strconv.FormatUint(s.nextFlight, 10)
	s.flights[key] = id
	return id
}

// Clear drops every entry.
func (s *Synchronized[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.Clear()
}

// Len returns the number of stored entries, stale ones included.
func (s *Synchronized[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Len()
}

// Peek reads key without sweeping.
func (s *Synchronized[K, V]) Peek(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Peek(key)
}

// Range iterates under the lock. fn must not call back into s.
func (s *Synchronized[K, V]) Range(fn func(key K, value V) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.Range(fn)
}

// TTL returns the configured time-to-live.
func (s *Synchronized[K, V]) TTL() time.Duration {
	return s.m.TTL()
}
