package venues

import (
	"context"
	"errors"
	"fmt"

	"seatwise/internal/shared/constants"
	"seatwise/pkg/cache"
	"seatwise/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrVenueNotFound is returned when the requested venue does not exist.
var ErrVenueNotFound = errors.New("venue not found")

// allowedAssetTypes is the asset-type subset each venue type accepts.
var allowedAssetTypes = map[VenueType]map[AssetType]bool{
	VenueRestaurant: {
		AssetTable: true,
	},
	VenueCoworking: {
		AssetSingleChair: true,
		AssetMeetingRoom: true,
		AssetGroupTable:  true,
	},
}

type Service interface {
	ListVenues(ctx context.Context) ([]Venue, error)
	GetVenue(ctx context.Context, id string) (*Venue, error)

	// Admin layout surface. Every write recomputes capacity and persists
	// the venue as one replace-on-save document.
	CreateVenue(ctx context.Context, req VenuePayload) (*Venue, error)
	UpdateVenue(ctx context.Context, id string, req VenuePayload) (*Venue, error)
	DeleteVenue(ctx context.Context, id string) error
	PlaceAsset(ctx context.Context, id string, row, col int) (*Venue, error)
	CycleAsset(ctx context.Context, id string, row, col int) (*Venue, error)
	ResizeLayout(ctx context.Context, id string, rows, cols int) (*Venue, error)

	// Administrative availability override
	AdjustAvailability(ctx context.Context, id string, remaining int) (*Venue, error)
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		log:   logger.GetDefault(),
	}
}

func (s *service) ListVenues(ctx context.Context) ([]Venue, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}

	var venues []Venue
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_VENUE_LIST, constants.TTL_VENUE_LIST,
		func() (interface{}, error) {
			return s.repo.List(ctx)
		}, &venues)
	if err != nil {
		return nil, err
	}
	return venues, nil
}

func (s *service) GetVenue(ctx context.Context, id string) (*Venue, error) {
	venueID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID: %w", err)
	}

	if s.cache == nil {
		return s.getByID(ctx, venueID)
	}

	var venue Venue
	err = s.cache.GetOrSet(ctx, constants.BuildVenueKey(id), constants.TTL_VENUE,
		func() (interface{}, error) {
			return s.getByID(ctx, venueID)
		}, &venue)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (s *service) CreateVenue(ctx context.Context, req VenuePayload) (*Venue, error) {
	venue, err := venueFromPayload(uuid.New(), req)
	if err != nil {
		return nil, err
	}

	RecomputeCapacity(venue)

	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	s.invalidate(ctx)
	return venue, nil
}

// UpdateVenue replaces the venue document wholesale. Concurrent admin edits
// are last-write-wins: layout editing is a low-concurrency administrative
// operation and no merge is attempted.
func (s *service) UpdateVenue(ctx context.Context, id string, req VenuePayload) (*Venue, error) {
	venueID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID: %w", err)
	}

	venue, err := venueFromPayload(venueID, req)
	if err != nil {
		return nil, err
	}

	RecomputeCapacity(venue)

	if err := s.repo.Replace(ctx, venue); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}

	s.invalidate(ctx)
	return s.getByID(ctx, venueID)
}

func (s *service) DeleteVenue(ctx context.Context, id string) error {
	venueID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid venue ID: %w", err)
	}

	if err := s.repo.Delete(ctx, venueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVenueNotFound
		}
		return fmt.Errorf("failed to delete venue: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) PlaceAsset(ctx context.Context, id string, row, col int) (*Venue, error) {
	return s.editLayout(ctx, id, func(v *Venue) {
		// Occupied cells are a silent no-op; the admin surface cycles
		// occupied cells instead of placing into them.
		if _, err := PlaceAsset(v, row, col); errors.Is(err, ErrLayoutConflict) {
			s.log.Warn("asset placement skipped, cell occupied or out of bounds",
				"venue_id", id, "row", row, "col", col)
		}
	})
}

func (s *service) CycleAsset(ctx context.Context, id string, row, col int) (*Venue, error) {
	return s.editLayout(ctx, id, func(v *Venue) {
		CycleAssetType(v, row, col)
	})
}

func (s *service) ResizeLayout(ctx context.Context, id string, rows, cols int) (*Venue, error) {
	return s.editLayout(ctx, id, func(v *Venue) {
		Resize(v, rows, cols)
	})
}

func (s *service) AdjustAvailability(ctx context.Context, id string, remaining int) (*Venue, error) {
	venueID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID: %w", err)
	}

	venue, err := s.repo.SetRemaining(ctx, venueID, remaining)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to adjust availability: %w", err)
	}

	s.invalidate(ctx)
	return venue, nil
}

// editLayout runs one in-memory layout operation against the current venue
// document and persists the result as a whole-document replace.
func (s *service) editLayout(ctx context.Context, id string, edit func(*Venue)) (*Venue, error) {
	venueID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID: %w", err)
	}

	venue, err := s.getByID(ctx, venueID)
	if err != nil {
		return nil, err
	}

	edit(venue)
	RecomputeCapacity(venue)

	if err := s.repo.Replace(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to save layout: %w", err)
	}

	s.invalidate(ctx)
	return s.getByID(ctx, venueID)
}

func (s *service) getByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	venue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return venue, nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_VENUES_ALL); err != nil {
		s.log.Warn("failed to invalidate venue cache", "error", err)
	}
}

// venueFromPayload builds and validates a venue document from an admin
// payload. Placement and type-subset invariants are enforced here so no
// invalid layout ever reaches the repository.
func venueFromPayload(id uuid.UUID, req VenuePayload) (*Venue, error) {
	venueType := VenueType(req.Type)
	if !venueType.IsValid() {
		return nil, fmt.Errorf("invalid venue type: %s", req.Type)
	}

	venue := &Venue{
		ID:         id,
		Name:       req.Name,
		Type:       venueType,
		Rows:       req.Layout.Rows,
		Cols:       req.Layout.Cols,
		PriceRange: req.PriceRange,
		OpenTime:   req.OpenTime,
		CloseTime:  req.CloseTime,
		Website:    req.Website,
	}

	seenCells := make(map[[2]int]bool)
	seenNumbers := make(map[int]bool)
	nextNumber := 1

	for _, t := range req.Tables {
		assetType := AssetType(t.Type)
		if !allowedAssetTypes[venueType][assetType] {
			return nil, fmt.Errorf("asset type %q is not allowed for %s venues", t.Type, venueType)
		}
		if t.Row < 0 || t.Row >= venue.Rows || t.Col < 0 || t.Col >= venue.Cols {
			return nil, fmt.Errorf("asset at (%d,%d) is outside the %dx%d grid", t.Row, t.Col, venue.Rows, venue.Cols)
		}

		cell := [2]int{t.Row, t.Col}
		if seenCells[cell] {
			return nil, fmt.Errorf("duplicate asset at cell (%d,%d)", t.Row, t.Col)
		}
		seenCells[cell] = true

		number := t.Number
		if number == 0 {
			number = nextNumber
		}
		if seenNumbers[number] {
			return nil, fmt.Errorf("duplicate asset number %d", number)
		}
		seenNumbers[number] = true
		if number >= nextNumber {
			nextNumber = number + 1
		}

		capacity := t.Capacity
		if capacity <= 0 {
			capacity = assetType.DefaultCapacity()
		}

		venue.Tables = append(venue.Tables, SeatingAsset{
			VenueID:  id,
			Number:   number,
			Row:      t.Row,
			Col:      t.Col,
			Type:     assetType,
			Capacity: capacity,
			Slots:    SlotList(t.Slots),
		})
	}

	return venue, nil
}
