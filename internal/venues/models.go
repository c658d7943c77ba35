package venues

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VenueType distinguishes the two bookable venue kinds.
type VenueType string

const (
	VenueRestaurant VenueType = "restaurant"
	VenueCoworking  VenueType = "coworking"
)

// IsValid checks if the venue type is one of the supported kinds
func (t VenueType) IsValid() bool {
	return t == VenueRestaurant || t == VenueCoworking
}

// AssetType identifies what kind of seating unit occupies a grid cell.
type AssetType string

const (
	AssetTable       AssetType = "table"
	AssetSingleChair AssetType = "single_chair"
	AssetMeetingRoom AssetType = "meeting_room"
	AssetGroupTable  AssetType = "group_table"

	// AssetNone is the cycling sentinel: reaching it removes the asset.
	AssetNone AssetType = "none"
)

// DefaultCapacity returns the seat capacity an asset of this type starts with.
func (t AssetType) DefaultCapacity() int {
	switch t {
	case AssetTable:
		return 4
	case AssetSingleChair:
		return 1
	case AssetGroupTable:
		return 6
	case AssetMeetingRoom:
		return 8
	}
	return 0
}

// SlotList is an ordered list of bookable time-of-day strings ("19:00"),
// persisted as a JSONB column.
type SlotList []string

// Value implements driver.Valuer for gorm
func (s SlotList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal slot list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for gorm
func (s *SlotList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported slot list source type %T", value)
	}
	return json.Unmarshal(data, s)
}

// Venue is a bookable location laid out as a rows x cols grid of seating
// assets. Capacity is derived from the assets at save time; BookedCount
// tracks currently confirmed reservations and never exceeds Capacity.
type Venue struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Type        VenueType `gorm:"type:varchar(20);check:type IN ('restaurant', 'coworking');not null" json:"type"`
	Capacity    int       `gorm:"not null;default:0" json:"capacity"`
	BookedCount int       `gorm:"not null;default:0" json:"booked_count"`
	Rows        int       `gorm:"not null;default:1" json:"rows"`
	Cols        int       `gorm:"not null;default:1" json:"cols"`
	Rating      float64   `gorm:"not null;default:0" json:"rating"`
	ReviewCount int       `gorm:"not null;default:0" json:"review_count"`
	PriceRange  string    `json:"price_range"`
	OpenTime    string    `json:"open_time"`
	CloseTime   string    `json:"close_time"`
	Website     string    `json:"website"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Tables []SeatingAsset `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE;" json:"tables"`
}

// SeatingAsset is a single bookable unit inside a venue grid. No two assets
// of the same venue share a (row, col) cell.
type SeatingAsset struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VenueID  uuid.UUID `gorm:"type:uuid;index;not null" json:"venue_id"`
	Number   int       `gorm:"not null" json:"number"`
	Row      int       `gorm:"not null" json:"row"`
	Col      int       `gorm:"not null" json:"col"`
	Type     AssetType `gorm:"type:varchar(20);not null" json:"type"`
	Capacity int       `gorm:"not null;default:1" json:"capacity"`
	Slots    SlotList  `gorm:"type:jsonb" json:"slots"`
}

// TableName sets the table name for Venue
func (Venue) TableName() string {
	return "venues"
}

// TableName sets the table name for SeatingAsset
func (SeatingAsset) TableName() string {
	return "seating_assets"
}

// defaultSlotsByVenueType is the venue-level fallback used when an asset
// declares no slots of its own.
var defaultSlotsByVenueType = map[VenueType]SlotList{
	VenueRestaurant: {"12:00", "13:00", "19:00", "20:00", "21:00"},
	VenueCoworking:  {"09:00", "11:00", "13:00", "15:00", "17:00"},
}

// DefaultSlots returns the default slot list for a venue of this type.
func (t VenueType) DefaultSlots() SlotList {
	slots := defaultSlotsByVenueType[t]
	out := make(SlotList, len(slots))
	copy(out, slots)
	return out
}

// EffectiveSlots returns the asset's own slots, falling back to the venue
// defaults when the asset declares none.
func (v *Venue) EffectiveSlots(asset *SeatingAsset) SlotList {
	if asset != nil && len(asset.Slots) > 0 {
		return asset.Slots
	}
	return v.Type.DefaultSlots()
}

// AssetAt returns the asset occupying (row, col), or nil when the cell is empty.
func (v *Venue) AssetAt(row, col int) *SeatingAsset {
	for i := range v.Tables {
		if v.Tables[i].Row == row && v.Tables[i].Col == col {
			return &v.Tables[i]
		}
	}
	return nil
}

// AssetByNumber returns the asset with the given per-venue number, or nil.
func (v *Venue) AssetByNumber(number int) *SeatingAsset {
	for i := range v.Tables {
		if v.Tables[i].Number == number {
			return &v.Tables[i]
		}
	}
	return nil
}

// HasSlot reports whether value is one of the asset's effective slots.
func (v *Venue) HasSlot(asset *SeatingAsset, value string) bool {
	for _, slot := range v.EffectiveSlots(asset) {
		if slot == value {
			return true
		}
	}
	return false
}
