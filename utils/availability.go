package utils

import (
	"time"

	"github.com/jgecalumni/room-booking-app/models"
	"gorm.io/gorm"
)

// Overlaps reports whether two inclusive date ranges share any day:
// a.start <= b.end AND a.end >= b.start.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// IsAvailable checks whether the listing has no booking overlapping
// [start, end]. Run it on a transaction holding the listing row lock when
// the result gates an insert.
func IsAvailable(tx *gorm.DB, listingID uint, start, end time.Time) (bool, error) {
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("listing_id = ? AND start_date <= ? AND end_date >= ?", listingID, end, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// ConflictingBookings returns the bookings that overlap the range, for the
// public availability probe which reports them back to the caller.
func ConflictingBookings(tx *gorm.DB, listingID uint, start, end time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := tx.
		Where("listing_id = ? AND start_date <= ? AND end_date >= ?", listingID, end, start).
		Find(&bookings).Error
	return bookings, err
}
