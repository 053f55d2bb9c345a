package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the service uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Hotel{},
		&Room{},
		&Coupon{},
		&Booking{},
		&Review{},
		&Favorite{},
	)
}
