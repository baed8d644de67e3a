package models

import (
	"time"
)

// Booking reserves an inclusive [StartDate, EndDate] range on a listing.
// Rows are only created after the payment signature has been verified and
// the range re-checked under a listing lock, so two persisted bookings on
// the same listing never overlap.
type Booking struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ListingID      uint      `json:"listingId"`
	Listing        Listing   `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	UserID         uint      `json:"userId"`
	User           User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Type           string    `json:"type"`
	Purpose        string    `json:"purpose"`
	NumberOfGuests int       `json:"numberOfGuests"`
	Total          float64   `json:"total"`
	Notified       bool      `json:"notified" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
