// Package common provides shared utilities for the tracker
package common

import "time"

// Freshness TTLs for data components
const (
	// FreshnessPrices is the window during which cached market prices are
	// served without revalidation.
	FreshnessPrices = 5 * time.Minute
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
