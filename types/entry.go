package types

import "time"

// Entry is one stored value together with the moment it was inserted.
// InsertedAt is set once on insertion and never changes afterwards.
type Entry[V any] struct {
	Value      V
	InsertedAt time.Time
}
