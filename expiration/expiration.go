// This file defines how map entries expire over time.

package expiration

import "time"

/*
Strategy is the interface that all expiration rules must follow. Instead of hard-coding
the age check into the map, we define a strategy so the sweep only asks one question.
*/
type Strategy interface {

	// IsExpired reports whether an entry inserted at insertedAt is expired at now.
	IsExpired(insertedAt, now time.Time) bool
}
