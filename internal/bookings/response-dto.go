package bookings

import "time"

// BookingResponse is a booking with its lazily derived status: confirmed
// bookings whose visit time has passed read as COMPLETED.
type BookingResponse struct {
	Booking
	Status Status `json:"status"`
}

// NewBookingResponse builds the response view of a booking at time now.
func NewBookingResponse(b *Booking, now time.Time) BookingResponse {
	return BookingResponse{
		Booking: *b,
		Status:  b.EffectiveStatus(now),
	}
}

// NewBookingListResponse builds the response view of a booking list.
func NewBookingListResponse(list []Booking, now time.Time) []BookingResponse {
	responses := make([]BookingResponse, len(list))
	for i := range list {
		responses[i] = NewBookingResponse(&list[i], now)
	}
	return responses
}
