package venues

// LayoutPayload carries the grid dimensions of a venue.
type LayoutPayload struct {
	Rows int `json:"rows" binding:"required,min=1"`
	Cols int `json:"cols" binding:"required,min=1"`
}

// SeatingAssetPayload is one grid cell in an admin layout write.
type SeatingAssetPayload struct {
	Number   int      `json:"number" binding:"min=0"`
	Row      int      `json:"row" binding:"min=0"`
	Col      int      `json:"col" binding:"min=0"`
	Type     string   `json:"type" binding:"required,oneof=table single_chair meeting_room group_table"`
	Capacity int      `json:"capacity" binding:"min=0"`
	Slots    []string `json:"slots" binding:"omitempty,dive,timeslot"`
}

// VenuePayload is the whole-document venue representation the admin surface
// sends on create and update.
type VenuePayload struct {
	Name       string                `json:"name" binding:"required,min=1,max=120"`
	Type       string                `json:"type" binding:"required,oneof=restaurant coworking"`
	Layout     LayoutPayload         `json:"layout" binding:"required"`
	Tables     []SeatingAssetPayload `json:"tables" binding:"omitempty,dive"`
	PriceRange string                `json:"price_range"`
	OpenTime   string                `json:"open_time" binding:"omitempty,timeslot"`
	CloseTime  string                `json:"close_time" binding:"omitempty,timeslot"`
	Website    string                `json:"website"`
}

// CellRequest addresses one grid cell for place/cycle operations.
type CellRequest struct {
	Row *int `json:"row" binding:"required,min=0"`
	Col *int `json:"col" binding:"required,min=0"`
}

// ResizeRequest changes the grid dimensions.
type ResizeRequest struct {
	Rows int `json:"rows" binding:"required,min=1"`
	Cols int `json:"cols" binding:"required,min=1"`
}

// AdjustAvailabilityRequest is the administrative availability override.
// Guests is the remaining-seat value to force; setRemaining is the only
// supported action.
type AdjustAvailabilityRequest struct {
	Action string `json:"action" binding:"required,oneof=setRemaining"`
	Guests *int   `json:"guests" binding:"required,min=0"`
}
