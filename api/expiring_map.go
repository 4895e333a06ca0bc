package api

import "time"

/*
ExpiringMap is the part of the contract shared by expiringmap.Map and
syncmap.Synchronized: maintenance and read-only inspection.

The insertion and indexed-access methods differ between the two because the
plain map hands out pointers while the synchronized one hands out copies.
*/
type ExpiringMap[K comparable, V any] interface {

	/*
		Remove deletes a key immediately, stale or not.

		BEHAVIOR:
		---------
		- Returns 1 if the key was present, 0 otherwise
		- Sweeps expired entries afterwards
	*/
	Remove(key K) int

	/*
		EvictExpired removes every entry whose age exceeds the ttl.

		All entries are judged against one clock reading.
		Calling it twice in a row is the same as calling it once.
	*/
	EvictExpired() int

	// Clear drops every entry.
	Clear()

	/*
		Len, Peek and Range never sweep.
		Stale entries stay visible through them until the next sweep.
	*/
	Len() int
	Peek(key K) (V, bool)
	Range(fn func(key K, value V) bool)

	// TTL returns the configured time-to-live.
	TTL() time.Duration
}
