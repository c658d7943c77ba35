package venues

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	venues map[uuid.UUID]*Venue
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{venues: make(map[uuid.UUID]*Venue)}
}

func (r *fakeRepo) Create(ctx context.Context, v *Venue) error {
	r.venues[v.ID] = v
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	v, ok := r.venues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *v
	copied.Tables = append([]SeatingAsset(nil), v.Tables...)
	return &copied, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]Venue, error) {
	var out []Venue
	for _, v := range r.venues {
		out = append(out, *v)
	}
	return out, nil
}

func (r *fakeRepo) Replace(ctx context.Context, v *Venue) error {
	current, ok := r.venues[v.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Rating = current.Rating
	v.ReviewCount = current.ReviewCount
	v.BookedCount = current.BookedCount
	if v.BookedCount > v.Capacity {
		v.BookedCount = v.Capacity
	}
	r.venues[v.ID] = v
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.venues[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.venues, id)
	return nil
}

func (r *fakeRepo) SetRemaining(ctx context.Context, id uuid.UUID, remaining int) (*Venue, error) {
	v, ok := r.venues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	SetRemaining(v, remaining)
	copied := *v
	return &copied, nil
}

func (r *fakeRepo) ApplyRating(ctx context.Context, id uuid.UUID, rating int) (*Venue, error) {
	v, ok := r.venues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if err := AddRating(v, rating); err != nil {
		return nil, err
	}
	copied := *v
	return &copied, nil
}

func coworkingPayload() VenuePayload {
	return VenuePayload{
		Name: "Hive Workspace",
		Type: string(VenueCoworking),
		Layout: LayoutPayload{
			Rows: 3,
			Cols: 3,
		},
		Tables: []SeatingAssetPayload{
			{Type: string(AssetSingleChair), Row: 0, Col: 0},
			{Type: string(AssetMeetingRoom), Row: 1, Col: 1},
		},
	}
}

func TestServiceCreateVenue(t *testing.T) {
	t.Run("derives capacity from default asset capacities", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nil)

		venue, err := svc.CreateVenue(context.Background(), coworkingPayload())
		require.NoError(t, err)
		assert.Equal(t, 9, venue.Capacity) // chair 1 + meeting room 8
		assert.Equal(t, 0, venue.BookedCount)
		require.Len(t, venue.Tables, 2)
		assert.Equal(t, 1, venue.Tables[0].Number)
		assert.Equal(t, 2, venue.Tables[1].Number)
	})

	t.Run("rejects invalid layouts", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nil)

		tests := []struct {
			name   string
			mutate func(*VenuePayload)
		}{
			{"unknown venue type", func(p *VenuePayload) { p.Type = "arena" }},
			{"asset type outside the venue subset", func(p *VenuePayload) {
				p.Tables[0].Type = string(AssetTable)
			}},
			{"asset outside the grid", func(p *VenuePayload) {
				p.Tables[0].Row = 5
			}},
			{"two assets on one cell", func(p *VenuePayload) {
				p.Tables[1].Row = 0
				p.Tables[1].Col = 0
			}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				payload := coworkingPayload()
				tt.mutate(&payload)
				_, err := svc.CreateVenue(context.Background(), payload)
				assert.Error(t, err)
			})
		}
	})
}

func TestServiceLayoutEditing(t *testing.T) {
	setup := func(t *testing.T) (Service, *Venue) {
		t.Helper()
		svc := NewService(newFakeRepo(), nil)
		venue, err := svc.CreateVenue(context.Background(), coworkingPayload())
		require.NoError(t, err)
		return svc, venue
	}

	t.Run("placing an asset recomputes capacity", func(t *testing.T) {
		svc, venue := setup(t)

		updated, err := svc.PlaceAsset(context.Background(), venue.ID.String(), 2, 2)
		require.NoError(t, err)
		require.Len(t, updated.Tables, 3)
		assert.Equal(t, 10, updated.Capacity) // + single chair
	})

	t.Run("placing on an occupied cell changes nothing", func(t *testing.T) {
		svc, venue := setup(t)

		updated, err := svc.PlaceAsset(context.Background(), venue.ID.String(), 0, 0)
		require.NoError(t, err)
		assert.Len(t, updated.Tables, 2)
		assert.Equal(t, venue.Capacity, updated.Capacity)
	})

	t.Run("cycling through removal shrinks capacity", func(t *testing.T) {
		svc, venue := setup(t)

		// meeting_room -> group_table
		updated, err := svc.CycleAsset(context.Background(), venue.ID.String(), 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 7, updated.Capacity) // chair 1 + group table 6

		// group_table -> removed
		updated, err = svc.CycleAsset(context.Background(), venue.ID.String(), 1, 1)
		require.NoError(t, err)
		assert.Len(t, updated.Tables, 1)
		assert.Equal(t, 1, updated.Capacity)
	})

	t.Run("resizing drops out-of-bounds assets", func(t *testing.T) {
		svc, venue := setup(t)

		updated, err := svc.ResizeLayout(context.Background(), venue.ID.String(), 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Rows)
		assert.Equal(t, 1, updated.Cols)
		require.Len(t, updated.Tables, 1)
		assert.Equal(t, 1, updated.Capacity)
	})

	t.Run("unknown venue maps to not found", func(t *testing.T) {
		svc, _ := setup(t)
		_, err := svc.PlaceAsset(context.Background(), uuid.NewString(), 0, 0)
		assert.ErrorIs(t, err, ErrVenueNotFound)
	})
}

func TestServiceAdjustAvailability(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	venue, err := svc.CreateVenue(context.Background(), coworkingPayload())
	require.NoError(t, err)

	updated, err := svc.AdjustAvailability(context.Background(), venue.ID.String(), 3)
	require.NoError(t, err)
	assert.Equal(t, venue.Capacity-3, updated.BookedCount)

	// Overshooting remaining clamps to an empty venue
	updated, err = svc.AdjustAvailability(context.Background(), venue.ID.String(), 100)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.BookedCount)

	_, err = svc.AdjustAvailability(context.Background(), uuid.NewString(), 1)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
