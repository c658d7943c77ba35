package venues

import "errors"

// ErrLayoutConflict is returned when an asset placement targets a cell that
// is already occupied. Callers treat it as a recoverable no-op and use
// CycleAssetType on occupied cells instead.
var ErrLayoutConflict = errors.New("grid cell is already occupied")

// assetCycle is the state-transition table for type cycling, keyed by venue
// type. Each venue type advances through its allowed asset types in a fixed
// order, wrapping through AssetNone which removes the asset from the grid.
var assetCycle = map[VenueType]map[AssetType]AssetType{
	VenueRestaurant: {
		AssetTable: AssetNone,
		AssetNone:  AssetTable,
	},
	VenueCoworking: {
		AssetSingleChair: AssetMeetingRoom,
		AssetMeetingRoom: AssetGroupTable,
		AssetGroupTable:  AssetNone,
		AssetNone:        AssetSingleChair,
	},
}

// initialAssetType is the type a freshly placed asset starts with.
func initialAssetType(venueType VenueType) AssetType {
	if venueType == VenueCoworking {
		return AssetSingleChair
	}
	return AssetTable
}

// NextAssetType returns the type that follows current in the cycling order
// for the given venue type. Unknown combinations resolve to AssetNone so a
// stray asset of a disallowed type gets removed on its next cycle.
func NextAssetType(venueType VenueType, current AssetType) AssetType {
	transitions, ok := assetCycle[venueType]
	if !ok {
		return AssetNone
	}
	next, ok := transitions[current]
	if !ok {
		return AssetNone
	}
	return next
}

// PlaceAsset inserts a new seating asset of the venue-type default into the
// (row, col) cell. Placement on an occupied cell changes nothing and reports
// ErrLayoutConflict; placement outside the grid is rejected the same way.
func PlaceAsset(v *Venue, row, col int) (*SeatingAsset, error) {
	if row < 0 || row >= v.Rows || col < 0 || col >= v.Cols {
		return nil, ErrLayoutConflict
	}
	if v.AssetAt(row, col) != nil {
		return nil, ErrLayoutConflict
	}

	assetType := initialAssetType(v.Type)
	asset := SeatingAsset{
		VenueID:  v.ID,
		Number:   nextAssetNumber(v),
		Row:      row,
		Col:      col,
		Type:     assetType,
		Capacity: assetType.DefaultCapacity(),
		Slots:    v.Type.DefaultSlots(),
	}
	v.Tables = append(v.Tables, asset)
	return &v.Tables[len(v.Tables)-1], nil
}

// CycleAssetType advances the asset at (row, col) to the next type in the
// venue's cycling order. Reaching the AssetNone sentinel removes the asset.
// Cycling an empty cell is a no-op.
func CycleAssetType(v *Venue, row, col int) {
	for i := range v.Tables {
		if v.Tables[i].Row != row || v.Tables[i].Col != col {
			continue
		}

		next := NextAssetType(v.Type, v.Tables[i].Type)
		if next == AssetNone {
			v.Tables = append(v.Tables[:i], v.Tables[i+1:]...)
			return
		}
		v.Tables[i].Type = next
		v.Tables[i].Capacity = next.DefaultCapacity()
		return
	}
}

// Resize updates the grid dimensions and drops assets whose cell falls
// outside the new bounds.
func Resize(v *Venue, rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	v.Rows = rows
	v.Cols = cols

	kept := v.Tables[:0]
	for _, asset := range v.Tables {
		if asset.Row < rows && asset.Col < cols {
			kept = append(kept, asset)
		}
	}
	v.Tables = kept
}

// RecomputeCapacity derives the venue capacity as the sum of all asset
// capacities. Called before every layout persist so the stored capacity and
// the grid never drift apart. BookedCount is clamped down when a shrinking
// layout leaves it above the new capacity.
func RecomputeCapacity(v *Venue) {
	total := 0
	for i := range v.Tables {
		total += v.Tables[i].Capacity
	}
	v.Capacity = total
	if v.BookedCount > v.Capacity {
		v.BookedCount = v.Capacity
	}
}

// nextAssetNumber returns one past the highest asset number in the venue,
// keeping numbers sequential and unique per venue.
func nextAssetNumber(v *Venue) int {
	max := 0
	for i := range v.Tables {
		if v.Tables[i].Number > max {
			max = v.Tables[i].Number
		}
	}
	return max + 1
}
