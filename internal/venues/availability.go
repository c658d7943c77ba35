package venues

import "errors"

// ErrCapacityExceeded is returned when a reservation is attempted against a
// venue with no remaining capacity. Clients surface it as "Sold Out".
var ErrCapacityExceeded = errors.New("venue is fully booked")

// The functions below are pure bookkeeping over a single venue. They carry
// no synchronization of their own: every caller that mutates a persisted
// venue must run them inside the repository's per-venue serialized update
// (a transaction holding the venue row lock), otherwise two concurrent
// confirmations can both observe remaining > 0 and overbook.

// Remaining returns how many more reservations the venue can take.
func Remaining(v *Venue) int {
	if v.BookedCount >= v.Capacity {
		return 0
	}
	return v.Capacity - v.BookedCount
}

// IsFull reports whether the venue has no remaining capacity.
func IsFull(v *Venue) bool {
	return v.BookedCount >= v.Capacity
}

// Reserve increments the booked count by one. The check and the increment
// form one step; interleaving between them is what the repository lock rules
// out.
func Reserve(v *Venue) error {
	if IsFull(v) {
		return ErrCapacityExceeded
	}
	v.BookedCount++
	return nil
}

// Release returns n seats to the pool, clamping at zero.
func Release(v *Venue, n int) {
	if n < 1 {
		n = 1
	}
	v.BookedCount -= n
	if v.BookedCount < 0 {
		v.BookedCount = 0
	}
}

// SetRemaining is the administrative override: it positions the booked count
// so that exactly remaining seats are left, clamped to [0, capacity].
func SetRemaining(v *Venue, remaining int) {
	booked := v.Capacity - remaining
	if booked < 0 {
		booked = 0
	}
	if booked > v.Capacity {
		booked = v.Capacity
	}
	v.BookedCount = booked
}
