package constants

import "time"

// Cache key prefixes. Every key carries the service namespace so a shared
// Redis instance can be flushed per concern.
const (
	CACHE_KEY_VENUE      = "seatwise:venues:venue:"
	CACHE_KEY_VENUE_LIST = "seatwise:venues:list"

	PATTERN_INVALIDATE_VENUES_ALL = "seatwise:venues:*"
)

// Cache TTLs. Venue reads are hot on every booking surface; availability
// changes invalidate eagerly, so the TTLs only bound staleness after a
// missed invalidation.
const (
	TTL_VENUE      = 5 * time.Minute
	TTL_VENUE_LIST = 1 * time.Minute
)

// BuildVenueKey returns the cache key for a single venue.
func BuildVenueKey(venueID string) string {
	return CACHE_KEY_VENUE + venueID
}
