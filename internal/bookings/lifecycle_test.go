package bookings

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"seatwise/internal/payments"
	"seatwise/internal/venues"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore reserves seats against an in-memory venue under a mutex, playing
// the role of the repository's serialized per-venue transaction.
type memStore struct {
	mu       sync.Mutex
	venue    *venues.Venue
	bookings []*Booking
}

func (s *memStore) CreateConfirmed(ctx context.Context, booking *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := venues.Reserve(s.venue); err != nil {
		return err
	}
	s.bookings = append(s.bookings, booking)
	return nil
}

// declineGateway answers definitively with a declined charge.
type declineGateway struct{}

func (declineGateway) Confirm(ctx context.Context, req payments.ChargeRequest) (*payments.Confirmation, error) {
	return nil, payments.ErrPaymentDeclined
}

func testVenue(t *testing.T) *venues.Venue {
	t.Helper()
	v := &venues.Venue{
		ID:   uuid.New(),
		Name: "Trattoria Nonna",
		Type: venues.VenueRestaurant,
		Rows: 2,
		Cols: 2,
	}
	_, err := venues.PlaceAsset(v, 0, 0)
	require.NoError(t, err)
	venues.RecomputeCapacity(v)
	return v
}

func TestBeginPaymentRequiresCompleteSelection(t *testing.T) {
	v := testVenue(t)

	tests := []struct {
		name   string
		table  int
		date   string
		slot   string
		guests int
	}{
		{"no asset selected", 99, "2030-05-10", "19:00", 2},
		{"slot not offered by asset", 1, "2030-05-10", "18:30", 2},
		{"zero guests", 1, "2030-05-10", "19:00", 0},
		{"unparseable date", 1, "10-05-2030", "19:00", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := NewLifecycle(v, uuid.New())
			require.NoError(t, lc.Select(tt.table, tt.date, tt.slot, tt.guests))

			err := lc.BeginPayment()
			assert.ErrorIs(t, err, ErrIncompleteSelection)
			assert.Equal(t, StateSelecting, lc.State())
		})
	}
}

func TestConfirmPaymentSuccess(t *testing.T) {
	v := testVenue(t)
	store := &memStore{venue: v}
	userID := uuid.New()

	lc := NewLifecycle(v, userID)
	require.NoError(t, lc.Select(1, "2030-05-10", "19:00", 2))
	require.NoError(t, lc.BeginPayment())
	assert.Equal(t, StateAwaitingPayment, lc.State())

	booking, err := lc.ConfirmPayment(context.Background(), payments.NewMockGateway(0), store, 50, "USD")
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, lc.State())

	assert.Equal(t, userID, booking.UserID)
	assert.Equal(t, v.ID, booking.VenueID)
	assert.Equal(t, 1, booking.TableNumber)
	assert.Equal(t, StatusConfirmed, booking.Status)
	assert.True(t, strings.HasPrefix(booking.BookingRef, "SW-"))
	assert.NotEmpty(t, booking.TransactionID)
	assert.Equal(t, 50.0, booking.AmountPaid)

	wantVisit, err := ParseVisitAt("2030-05-10", "19:00")
	require.NoError(t, err)
	assert.True(t, booking.VisitAt.Equal(wantVisit))

	assert.Equal(t, 1, v.BookedCount)
	assert.Len(t, store.bookings, 1)

	// A confirmed lifecycle is finished
	_, err = lc.ConfirmPayment(context.Background(), payments.NewMockGateway(0), store, 50, "USD")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirmPaymentDeclined(t *testing.T) {
	v := testVenue(t)
	store := &memStore{venue: v}

	lc := NewLifecycle(v, uuid.New())
	require.NoError(t, lc.Select(1, "2030-05-10", "19:00", 2))
	require.NoError(t, lc.BeginPayment())

	_, err := lc.ConfirmPayment(context.Background(), declineGateway{}, store, 50, "USD")
	assert.ErrorIs(t, err, payments.ErrPaymentDeclined)

	// Definitive failure drops back to selection; nothing was reserved
	assert.Equal(t, StateSelecting, lc.State())
	assert.Equal(t, 0, v.BookedCount)
	assert.Empty(t, store.bookings)
}

func TestConfirmPaymentTimeoutKeepsAwaitingPayment(t *testing.T) {
	v := testVenue(t)
	store := &memStore{venue: v}

	lc := NewLifecycle(v, uuid.New())
	require.NoError(t, lc.Select(1, "2030-05-10", "19:00", 2))
	require.NoError(t, lc.BeginPayment())

	slow := payments.NewMockGateway(200 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := lc.ConfirmPayment(ctx, slow, store, 50, "USD")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// No definitive outcome: the machine holds its position for a retry
	assert.Equal(t, StateAwaitingPayment, lc.State())
	assert.Equal(t, 0, v.BookedCount)

	// The retry with a live context completes the booking
	booking, err := lc.ConfirmPayment(context.Background(), payments.NewMockGateway(0), store, 50, "USD")
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, lc.State())
	assert.Equal(t, 1, v.BookedCount)
	assert.NotNil(t, booking)
}

func TestConfirmPaymentSoldOut(t *testing.T) {
	v := testVenue(t)
	v.BookedCount = v.Capacity
	store := &memStore{venue: v}

	lc := NewLifecycle(v, uuid.New())
	require.NoError(t, lc.Select(1, "2030-05-10", "19:00", 2))
	require.NoError(t, lc.BeginPayment())

	_, err := lc.ConfirmPayment(context.Background(), payments.NewMockGateway(0), store, 50, "USD")
	assert.ErrorIs(t, err, venues.ErrCapacityExceeded)

	assert.Equal(t, StateSelecting, lc.State())
	assert.Equal(t, v.Capacity, v.BookedCount)
	assert.Empty(t, store.bookings)
}

// Two users race for the last seat; the serialized store admits exactly one.
func TestConfirmPaymentLastSeatRace(t *testing.T) {
	v := testVenue(t)
	v.Capacity = 10
	v.BookedCount = 9
	store := &memStore{venue: v}

	run := func() error {
		lc := NewLifecycle(v, uuid.New())
		if err := lc.Select(1, "2030-05-10", "19:00", 2); err != nil {
			return err
		}
		if err := lc.BeginPayment(); err != nil {
			return err
		}
		_, err := lc.ConfirmPayment(context.Background(), payments.NewMockGateway(time.Millisecond), store, 50, "USD")
		return err
	}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- run()
		}()
	}
	wg.Wait()
	close(errs)

	var confirmed, soldOut int
	for err := range errs {
		switch {
		case err == nil:
			confirmed++
		default:
			require.ErrorIs(t, err, venues.ErrCapacityExceeded)
			soldOut++
		}
	}

	assert.Equal(t, 1, confirmed)
	assert.Equal(t, 1, soldOut)
	assert.Equal(t, 10, v.BookedCount)
	assert.Len(t, store.bookings, 1)
}

func TestSelectOutsideSelectingState(t *testing.T) {
	v := testVenue(t)

	lc := NewLifecycle(v, uuid.New())
	require.NoError(t, lc.Select(1, "2030-05-10", "19:00", 2))
	require.NoError(t, lc.BeginPayment())

	assert.ErrorIs(t, lc.Select(1, "2030-05-11", "20:00", 3), ErrInvalidTransition)
	assert.ErrorIs(t, lc.BeginPayment(), ErrInvalidTransition)
}
