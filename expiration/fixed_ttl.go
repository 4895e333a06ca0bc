package expiration

import (
	"errors"
	"fmt"
	"time"
)

// ErrNegativeTTL is returned when a time-to-live below zero is requested.
var ErrNegativeTTL = errors.New("time-to-live must not be negative")

/*
FixedTTL implements "expire after write" with one duration shared by every entry.
The clock starts at insertion and is never pushed forward by reads or re-inserts.
An entry stays alive while its age is less than or equal to TTL; it is expired
once its age strictly exceeds TTL.
*/
type FixedTTL struct {

	// TTL (Time-To-Live) defines how long an entry remains valid after it is inserted.
	TTL time.Duration
}

// NewFixedTTL validates ttl and returns the strategy.
func NewFixedTTL(ttl time.Duration) (*FixedTTL, error) {
	if ttl < 0 {
		return nil, fmt.Errorf("invalid ttl %s: %w", ttl, ErrNegativeTTL)
	}
	return &FixedTTL{TTL: ttl}, nil
}

// IsExpired checks whether the entry is expired at this moment.
func (f *FixedTTL) IsExpired(insertedAt, now time.Time) bool {
	return now.Sub(insertedAt) > f.TTL
}
