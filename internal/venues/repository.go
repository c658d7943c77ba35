package venues

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository interface for venue persistence. All capacity and rating
// mutations run as serialized per-venue transactions; layout writes are
// whole-document replace-on-save with last-write-wins semantics.
type Repository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	List(ctx context.Context) ([]Venue, error)
	Replace(ctx context.Context, venue *Venue) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Atomic availability / rating updates (per-venue row lock)
	SetRemaining(ctx context.Context, id uuid.UUID, remaining int) (*Venue, error)
	ApplyRating(ctx context.Context, id uuid.UUID, rating int) (*Venue, error)
}

// repository implements Repository on gorm/Postgres
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new venue repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, venue *Venue) error {
	if venue.ID == uuid.Nil {
		venue.ID = uuid.New()
	}
	for i := range venue.Tables {
		venue.Tables[i].ID = uuid.New()
		venue.Tables[i].VenueID = venue.ID
	}
	return r.db.WithContext(ctx).Create(venue).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).
		Preload("Tables", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		First(&venue, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *repository) List(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	err := r.db.WithContext(ctx).
		Preload("Tables", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Order("name ASC").
		Find(&venues).Error
	return venues, err
}

// Replace persists a layout edit as a whole-document write: the asset set is
// rebuilt from the incoming venue and the previous version survives intact
// if anything in the transaction fails. Booked count, rating aggregate and
// creation time are carried over from the stored row, never from the payload.
func (r *repository) Replace(ctx context.Context, venue *Venue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Venue
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, "id = ?", venue.ID).Error
		if err != nil {
			return err
		}

		venue.CreatedAt = current.CreatedAt
		venue.Rating = current.Rating
		venue.ReviewCount = current.ReviewCount
		venue.BookedCount = current.BookedCount
		if venue.BookedCount > venue.Capacity {
			venue.BookedCount = venue.Capacity
		}
		venue.UpdatedAt = time.Now()

		if err := tx.Where("venue_id = ?", venue.ID).Delete(&SeatingAsset{}).Error; err != nil {
			return fmt.Errorf("failed to clear seating assets: %w", err)
		}
		if err := tx.Omit("Tables").Save(venue).Error; err != nil {
			return fmt.Errorf("failed to save venue: %w", err)
		}
		for i := range venue.Tables {
			venue.Tables[i].ID = uuid.New()
			venue.Tables[i].VenueID = venue.ID
		}
		if len(venue.Tables) > 0 {
			if err := tx.Create(&venue.Tables).Error; err != nil {
				return fmt.Errorf("failed to save seating assets: %w", err)
			}
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("venue_id = ?", id).Delete(&SeatingAsset{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Venue{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SetRemaining applies the administrative availability override under the
// venue row lock.
func (r *repository) SetRemaining(ctx context.Context, id uuid.UUID, remaining int) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&venue, "id = ?", id).Error
		if err != nil {
			return err
		}

		SetRemaining(&venue, remaining)

		return tx.Model(&Venue{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"booked_count": venue.BookedCount,
				"updated_at":   time.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ApplyRating folds one rating into the venue aggregate under the venue row
// lock so concurrent submissions never lose an update.
func (r *repository) ApplyRating(ctx context.Context, id uuid.UUID, rating int) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&venue, "id = ?", id).Error
		if err != nil {
			return err
		}

		if err := AddRating(&venue, rating); err != nil {
			return err
		}

		return tx.Model(&Venue{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"rating":       venue.Rating,
				"review_count": venue.ReviewCount,
				"updated_at":   time.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
