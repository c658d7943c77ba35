package bookings

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Wire layouts for the visit date and slot strings.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Booking is a confirmed reservation of one seating asset and time slot.
// TableNumber references the asset's per-venue number as it existed at
// booking time; later layout edits do not rewrite history.
type Booking struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	VenueID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"venue_id"`
	TableNumber   int        `gorm:"not null" json:"table_number"`
	Guests        int        `gorm:"not null" json:"guests"`
	BookingDate   string     `gorm:"type:varchar(10);not null" json:"booking_date"`
	BookingTime   string     `gorm:"type:varchar(5);not null" json:"booking_time"`
	VisitAt       time.Time  `gorm:"index;not null" json:"visit_at"`
	AmountPaid    float64    `gorm:"not null" json:"amount_paid"`
	Currency      string     `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Status        Status     `gorm:"type:varchar(20);check:status IN ('PENDING_PAYMENT', 'CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`
	BookingRef    string     `gorm:"unique;not null" json:"booking_ref"`
	TransactionID string     `json:"transaction_id"`
	Reviewed      bool       `gorm:"not null;default:false" json:"reviewed"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// ParseVisitAt combines a booking date and slot into a wall-clock time.
func ParseVisitAt(date, slot string) (time.Time, error) {
	visitAt, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+slot, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid booking date/time %q %q: %w", date, slot, err)
	}
	return visitAt, nil
}

// IsConfirmed reports whether the booking currently holds a seat.
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// Cancel marks the booking cancelled at the current time.
func (b *Booking) Cancel() {
	now := time.Now()
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.UpdatedAt = now
}

// EffectiveStatus lazily classifies confirmed bookings whose visit time has
// passed as completed. Storage keeps CONFIRMED; only the read surface sees
// COMPLETED.
func (b *Booking) EffectiveStatus(now time.Time) Status {
	if b.Status == StatusConfirmed && b.VisitAt.Before(now) {
		return StatusCompleted
	}
	return b.Status
}

// EligibleForReview reports whether the booking can still collect a rating:
// the visit happened and no rating was submitted yet.
func (b *Booking) EligibleForReview(now time.Time) bool {
	return b.EffectiveStatus(now) == StatusCompleted && !b.Reviewed
}
