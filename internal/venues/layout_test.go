package venues

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCoworkingVenue(rows, cols int) *Venue {
	return &Venue{
		ID:   uuid.New(),
		Name: "Hive Workspace",
		Type: VenueCoworking,
		Rows: rows,
		Cols: cols,
	}
}

func newRestaurantVenue(rows, cols int) *Venue {
	return &Venue{
		ID:   uuid.New(),
		Name: "Trattoria Nonna",
		Type: VenueRestaurant,
		Rows: rows,
		Cols: cols,
	}
}

func TestPlaceAsset(t *testing.T) {
	t.Run("places default asset for venue type", func(t *testing.T) {
		v := newRestaurantVenue(3, 3)

		asset, err := PlaceAsset(v, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, AssetTable, asset.Type)
		assert.Equal(t, 4, asset.Capacity)
		assert.Equal(t, 1, asset.Number)
		assert.Equal(t, 1, asset.Row)
		assert.Equal(t, 2, asset.Col)

		cw := newCoworkingVenue(3, 3)
		asset, err = PlaceAsset(cw, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, AssetSingleChair, asset.Type)
		assert.Equal(t, 1, asset.Capacity)
	})

	t.Run("occupied cell is rejected and unchanged", func(t *testing.T) {
		v := newRestaurantVenue(3, 3)
		_, err := PlaceAsset(v, 1, 1)
		require.NoError(t, err)

		_, err = PlaceAsset(v, 1, 1)
		assert.ErrorIs(t, err, ErrLayoutConflict)
		assert.Len(t, v.Tables, 1)
	})

	t.Run("out of bounds is rejected", func(t *testing.T) {
		v := newRestaurantVenue(2, 2)
		for _, cell := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
			_, err := PlaceAsset(v, cell[0], cell[1])
			assert.ErrorIs(t, err, ErrLayoutConflict)
		}
		assert.Empty(t, v.Tables)
	})

	t.Run("numbers stay sequential per venue", func(t *testing.T) {
		v := newCoworkingVenue(2, 2)
		a, err := PlaceAsset(v, 0, 0)
		require.NoError(t, err)
		b, err := PlaceAsset(v, 0, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, a.Number)
		assert.Equal(t, 2, b.Number)

		// Removing the highest-numbered asset frees its number
		CycleAssetType(v, 0, 1) // single_chair -> meeting_room
		CycleAssetType(v, 0, 1) // meeting_room -> group_table
		CycleAssetType(v, 0, 1) // group_table -> removed
		c, err := PlaceAsset(v, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Number)
	})
}

func TestNextAssetType(t *testing.T) {
	tests := []struct {
		name      string
		venueType VenueType
		current   AssetType
		want      AssetType
	}{
		{"coworking chair to meeting room", VenueCoworking, AssetSingleChair, AssetMeetingRoom},
		{"coworking meeting room to group table", VenueCoworking, AssetMeetingRoom, AssetGroupTable},
		{"coworking group table to removal", VenueCoworking, AssetGroupTable, AssetNone},
		{"coworking wraps back to chair", VenueCoworking, AssetNone, AssetSingleChair},
		{"restaurant table to removal", VenueRestaurant, AssetTable, AssetNone},
		{"restaurant wraps back to table", VenueRestaurant, AssetNone, AssetTable},
		{"disallowed type resolves to removal", VenueRestaurant, AssetMeetingRoom, AssetNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextAssetType(tt.venueType, tt.current))
		})
	}
}

func TestCycleAssetType(t *testing.T) {
	t.Run("advances type and capacity together", func(t *testing.T) {
		v := newCoworkingVenue(2, 2)
		_, err := PlaceAsset(v, 0, 0)
		require.NoError(t, err)

		CycleAssetType(v, 0, 0)
		asset := v.AssetAt(0, 0)
		require.NotNil(t, asset)
		assert.Equal(t, AssetMeetingRoom, asset.Type)
		assert.Equal(t, 8, asset.Capacity)

		CycleAssetType(v, 0, 0)
		asset = v.AssetAt(0, 0)
		require.NotNil(t, asset)
		assert.Equal(t, AssetGroupTable, asset.Type)
		assert.Equal(t, 6, asset.Capacity)
	})

	t.Run("cycling past the last type removes the asset", func(t *testing.T) {
		v := newCoworkingVenue(2, 2)
		_, err := PlaceAsset(v, 0, 0)
		require.NoError(t, err)

		CycleAssetType(v, 0, 0)
		CycleAssetType(v, 0, 0)
		CycleAssetType(v, 0, 0)
		assert.Nil(t, v.AssetAt(0, 0))
		assert.Empty(t, v.Tables)
	})

	t.Run("empty cell is a no-op", func(t *testing.T) {
		v := newRestaurantVenue(2, 2)
		CycleAssetType(v, 1, 1)
		assert.Empty(t, v.Tables)
	})
}

func TestResize(t *testing.T) {
	v := newRestaurantVenue(3, 3)
	_, err := PlaceAsset(v, 0, 0)
	require.NoError(t, err)
	_, err = PlaceAsset(v, 2, 2)
	require.NoError(t, err)
	_, err = PlaceAsset(v, 1, 2)
	require.NoError(t, err)

	Resize(v, 2, 2)

	assert.Equal(t, 2, v.Rows)
	assert.Equal(t, 2, v.Cols)
	require.Len(t, v.Tables, 1)
	assert.NotNil(t, v.AssetAt(0, 0))
	assert.Nil(t, v.AssetAt(2, 2))

	// Dimensions never drop below 1x1
	Resize(v, 0, -3)
	assert.Equal(t, 1, v.Rows)
	assert.Equal(t, 1, v.Cols)
}

func TestRecomputeCapacity(t *testing.T) {
	t.Run("sums asset capacities", func(t *testing.T) {
		v := newCoworkingVenue(3, 3)
		_, err := PlaceAsset(v, 0, 0) // single_chair, 1
		require.NoError(t, err)
		_, err = PlaceAsset(v, 0, 1)
		require.NoError(t, err)
		CycleAssetType(v, 0, 1) // meeting_room, 8

		RecomputeCapacity(v)
		assert.Equal(t, 9, v.Capacity)
	})

	t.Run("clamps booked count after a shrink", func(t *testing.T) {
		v := newCoworkingVenue(3, 3)
		_, err := PlaceAsset(v, 0, 0)
		require.NoError(t, err)
		_, err = PlaceAsset(v, 2, 2)
		require.NoError(t, err)
		RecomputeCapacity(v)
		v.BookedCount = 2

		Resize(v, 1, 1)
		RecomputeCapacity(v)

		assert.Equal(t, 1, v.Capacity)
		assert.Equal(t, 1, v.BookedCount)
	})
}

func TestEffectiveSlots(t *testing.T) {
	v := newRestaurantVenue(2, 2)
	asset, err := PlaceAsset(v, 0, 0)
	require.NoError(t, err)

	// Fresh assets carry the venue-type defaults
	assert.Equal(t, SlotList{"12:00", "13:00", "19:00", "20:00", "21:00"}, v.EffectiveSlots(asset))
	assert.True(t, v.HasSlot(asset, "19:00"))
	assert.False(t, v.HasSlot(asset, "18:00"))

	// An asset with its own slots overrides the defaults
	asset.Slots = SlotList{"22:00"}
	assert.Equal(t, SlotList{"22:00"}, v.EffectiveSlots(asset))
	assert.False(t, v.HasSlot(asset, "19:00"))

	cw := newCoworkingVenue(1, 1)
	chair, err := PlaceAsset(cw, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, SlotList{"09:00", "11:00", "13:00", "15:00", "17:00"}, cw.EffectiveSlots(chair))
}
