package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"seatwise/internal/payments"
	"seatwise/internal/venues"

	"github.com/google/uuid"
)

// State is a position in the booking state machine.
type State string

const (
	// StateSelecting: no asset/slot chosen yet; also the state the machine
	// falls back to after a failed or sold-out payment attempt.
	StateSelecting State = "SELECTING"
	// StateAwaitingPayment: selection is complete, the deposit charge is in
	// flight. A timed-out charge leaves the machine here.
	StateAwaitingPayment State = "AWAITING_PAYMENT"
	StateConfirmed       State = "CONFIRMED"
)

var (
	// ErrIncompleteSelection rejects entering payment without a chosen
	// asset and a slot drawn from that asset's slot list.
	ErrIncompleteSelection = errors.New("a seating asset and one of its time slots must be selected")

	// ErrInvalidTransition rejects operations outside their state.
	ErrInvalidTransition = errors.New("operation not allowed in current booking state")
)

// ConfirmedStore is the atomic reserve-and-persist step of confirmation:
// one serialized per-venue operation that checks capacity, increments the
// booked count and inserts the booking, or fails with
// venues.ErrCapacityExceeded leaving nothing applied.
type ConfirmedStore interface {
	CreateConfirmed(ctx context.Context, booking *Booking) error
}

// Lifecycle drives one booking from selection through payment to a
// confirmed record. It is a single-request object and not safe for
// concurrent use; venue-level consistency comes from the store.
type Lifecycle struct {
	state  State
	userID uuid.UUID
	venue  *venues.Venue

	asset  *venues.SeatingAsset
	date   string
	slot   string
	guests int
}

// NewLifecycle starts a booking flow for one user against one venue.
func NewLifecycle(venue *venues.Venue, userID uuid.UUID) *Lifecycle {
	return &Lifecycle{
		state:  StateSelecting,
		userID: userID,
		venue:  venue,
	}
}

// State returns the current machine state.
func (l *Lifecycle) State() State {
	return l.state
}

// Select records the user's asset/slot choice. Selection is only possible
// while selecting; it does not validate completeness, BeginPayment does.
func (l *Lifecycle) Select(tableNumber int, date, slot string, guests int) error {
	if l.state != StateSelecting {
		return ErrInvalidTransition
	}
	l.asset = l.venue.AssetByNumber(tableNumber)
	l.date = date
	l.slot = slot
	l.guests = guests
	return nil
}

// BeginPayment moves Selecting -> AwaitingPayment. The transition requires a
// selected asset and a slot drawn from that asset's effective slot list;
// anything less is rejected with ErrIncompleteSelection and no state change.
func (l *Lifecycle) BeginPayment() error {
	if l.state != StateSelecting {
		return ErrInvalidTransition
	}
	if l.asset == nil || l.slot == "" || !l.venue.HasSlot(l.asset, l.slot) {
		return ErrIncompleteSelection
	}
	if l.guests < 1 {
		return ErrIncompleteSelection
	}
	if _, err := ParseVisitAt(l.date, l.slot); err != nil {
		return ErrIncompleteSelection
	}

	l.state = StateAwaitingPayment
	return nil
}

// ConfirmPayment resolves AwaitingPayment:
//   - charge succeeds and the seat is reserved: -> Confirmed, booking returned
//   - venue is full: -> Selecting, venues.ErrCapacityExceeded (Sold Out)
//   - charge declined or store failed: -> Selecting, availability untouched
//   - ctx cancelled/timed out before a definitive answer: stays
//     AwaitingPayment so the caller can retry the confirmation
func (l *Lifecycle) ConfirmPayment(ctx context.Context, confirmer payments.Confirmer, store ConfirmedStore, amount float64, currency string) (*Booking, error) {
	if l.state != StateAwaitingPayment {
		return nil, ErrInvalidTransition
	}

	bookingRef, err := generateBookingReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}

	confirmation, err := confirmer.Confirm(ctx, payments.ChargeRequest{
		BookingRef: bookingRef,
		Amount:     amount,
		Currency:   currency,
	})
	if err != nil {
		if ctx.Err() != nil {
			// No definitive outcome; the machine must not move.
			return nil, err
		}
		l.state = StateSelecting
		return nil, err
	}

	visitAt, err := ParseVisitAt(l.date, l.slot)
	if err != nil {
		l.state = StateSelecting
		return nil, err
	}

	booking := &Booking{
		ID:            uuid.New(),
		UserID:        l.userID,
		VenueID:       l.venue.ID,
		TableNumber:   l.asset.Number,
		Guests:        l.guests,
		BookingDate:   l.date,
		BookingTime:   l.slot,
		VisitAt:       visitAt,
		AmountPaid:    confirmation.Amount,
		Currency:      confirmation.Currency,
		Status:        StatusConfirmed,
		BookingRef:    bookingRef,
		TransactionID: confirmation.TransactionID,
	}

	if err := store.CreateConfirmed(ctx, booking); err != nil {
		l.state = StateSelecting
		if errors.Is(err, venues.ErrCapacityExceeded) {
			return nil, venues.ErrCapacityExceeded
		}
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	l.state = StateConfirmed
	return booking, nil
}

// generateBookingReference builds a short human-readable reference like
// "SW-7K2M9QX4".
func generateBookingReference() (string, error) {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	ref := make([]byte, 8)
	for i := range ref {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		ref[i] = charset[n.Int64()]
	}
	return "SW-" + string(ref), nil
}
