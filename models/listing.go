package models

import (
	"time"
)

type RoomType string

const (
	RoomTypeAC    RoomType = "AC"
	RoomTypeNonAC RoomType = "NON_AC"
)

type Listing struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	SingleOccupancy float64   `json:"singleOccupancy"`
	DoubleOccupancy float64   `json:"doubleOccupancy"`
	Type            RoomType  `json:"type" gorm:"type:varchar(10)"`
	UserID          uint      `json:"userId"`
	User            User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Images          []Image   `json:"images,omitempty" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	Bookings        []Booking `json:"bookings,omitempty" gorm:"foreignKey:ListingID"`
	Reviews         []Review  `json:"reviews,omitempty" gorm:"foreignKey:ListingID"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Image rows are exclusively owned by a listing; deleting the listing
// cascades here, the backing files are the storage layer's problem.
type Image struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	URL       string `json:"url"`
	ListingID uint   `json:"listingId"`
}
