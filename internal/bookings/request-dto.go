package bookings

// CreateBookingRequest confirms a deposit payment for one asset and slot.
type CreateBookingRequest struct {
	VenueID     string  `json:"venue_id" binding:"required,uuid"`
	TableNumber int     `json:"table_number" binding:"required,min=1"`
	Guests      int     `json:"guests" binding:"required,min=1"`
	BookingDate string  `json:"booking_date" binding:"required,datetime=2006-01-02"`
	BookingTime string  `json:"booking_time" binding:"required,timeslot"`
	AmountPaid  float64 `json:"amount_paid" binding:"required,gt=0"`
	Currency    string  `json:"currency" binding:"omitempty,len=3"`
}

// SubmitRatingRequest rates a completed visit, once per booking.
type SubmitRatingRequest struct {
	VenueID string `json:"venue_id" binding:"required,uuid"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}
