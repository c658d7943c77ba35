package database

import (
	"seatwise/internal/bookings"
	"seatwise/internal/venues"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&venues.Venue{},
		&venues.SeatingAsset{},
		&bookings.Booking{},
	)
}
