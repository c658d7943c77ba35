package notifications

import (
	"encoding/json"
	"time"
)

// EventType identifies what happened to a booking.
type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
)

// BookingEvent is the message published to the external notification
// delivery system whenever a booking changes state. Delivery itself (push,
// in-app) lives outside this service.
type BookingEvent struct {
	Type       EventType `json:"type"`
	BookingID  string    `json:"booking_id"`
	BookingRef string    `json:"booking_ref"`
	VenueID    string    `json:"venue_id"`
	UserID     string    `json:"user_id"`
	VisitAt    time.Time `json:"visit_at"`
	Refunded   *bool     `json:"refunded,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToJSON serializes the event for the wire.
func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events of one venue to the same partition so
// consumers observe them in order.
func (e *BookingEvent) PartitionKey() string {
	return e.VenueID
}
