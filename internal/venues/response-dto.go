package venues

// VenueResponse is a venue enriched with the derived availability figures
// every booking surface needs.
type VenueResponse struct {
	Venue
	Remaining int  `json:"remaining"`
	IsFull    bool `json:"is_full"`
}

// NewVenueResponse builds the response view of a venue.
func NewVenueResponse(v *Venue) VenueResponse {
	return VenueResponse{
		Venue:     *v,
		Remaining: Remaining(v),
		IsFull:    IsFull(v),
	}
}

// NewVenueListResponse builds the response view of a venue list.
func NewVenueListResponse(list []Venue) []VenueResponse {
	responses := make([]VenueResponse, len(list))
	for i := range list {
		responses[i] = NewVenueResponse(&list[i])
	}
	return responses
}
