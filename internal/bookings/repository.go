package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seatwise/internal/venues"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrBookingNotFound is returned when the requested booking does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrNotCancellable is returned when cancellation targets a booking that no
// longer holds a seat (already cancelled or past its visit time).
var ErrNotCancellable = errors.New("booking can no longer be cancelled")

type Repository interface {
	// CreateConfirmed inserts a confirmed booking and increments the venue
	// booked count as one serialized per-venue transaction. The venue row
	// lock makes the capacity check and the increment a single step: two
	// concurrent confirmations against the last seat resolve to exactly one
	// success and one venues.ErrCapacityExceeded.
	CreateConfirmed(ctx context.Context, booking *Booking) error

	// CancelAndRelease marks the booking cancelled and returns its seat to
	// the venue pool, again under the venue row lock.
	CancelAndRelease(ctx context.Context, id uuid.UUID) (*Booking, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error)

	// ListPendingReview returns confirmed bookings whose visit time has
	// passed and that have not collected a rating yet.
	ListPendingReview(ctx context.Context, userID uuid.UUID, now time.Time) ([]Booking, error)

	// MarkReviewed removes a booking from the pending-review set. Idempotent:
	// marking an already-reviewed or missing booking is a no-op.
	MarkReviewed(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateConfirmed(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var venue venues.Venue
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&venue, "id = ?", booking.VenueID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return venues.ErrVenueNotFound
			}
			return fmt.Errorf("failed to lock venue: %w", err)
		}

		if err := venues.Reserve(&venue); err != nil {
			return err
		}

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		err = tx.Model(&venues.Venue{}).
			Where("id = ?", venue.ID).
			Updates(map[string]interface{}{
				"booked_count": venue.BookedCount,
				"updated_at":   time.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update venue booked count: %w", err)
		}

		return nil
	})
}

func (r *repository) CancelAndRelease(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if !booking.Status.CanBeCancelled() {
			return ErrNotCancellable
		}

		var venue venues.Venue
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&venue, "id = ?", booking.VenueID).Error
		if err != nil {
			return fmt.Errorf("failed to lock venue: %w", err)
		}

		venues.Release(&venue, 1)
		booking.Cancel()

		err = tx.Model(&Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"status":       booking.Status,
				"cancelled_at": booking.CancelledAt,
				"updated_at":   booking.UpdatedAt,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		err = tx.Model(&venues.Venue{}).
			Where("id = ?", venue.ID).
			Updates(map[string]interface{}{
				"booked_count": venue.BookedCount,
				"updated_at":   time.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update venue booked count: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var list []Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("visit_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) ListPendingReview(ctx context.Context, userID uuid.UUID, now time.Time) ([]Booking, error) {
	var list []Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", StatusConfirmed).
		Where("visit_at < ?", now).
		Where("reviewed = ?", false).
		Order("visit_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) MarkReviewed(ctx context.Context, id uuid.UUID) error {
	// Missing or already-reviewed bookings fall through silently; removal
	// from the pending-review set is idempotent.
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reviewed":   true,
			"updated_at": time.Now(),
		}).Error
}
