// Package expiringmap provides Map, a generic key/value container whose
// entries expire a fixed time-to-live after insertion.
//
// Expired entries are removed lazily: every mutating call, and indexed
// access through At, sweeps the whole map against one clock reading. There
// is no background goroutine. Package syncmap adds an optional lock for
// shared use.
package expiringmap
