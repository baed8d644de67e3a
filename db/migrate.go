package db

import (
	"github.com/jgecalumni/room-booking-app/models"
	"gorm.io/gorm"
)

func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Image{},
		&models.Booking{},
		&models.Review{},
	)
}
