package models

import (
	"time"
)

type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ListingID uint      `json:"listingId"`
	Listing   Listing   `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	UserID    uint      `json:"userId"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Content   string    `json:"content"`
	Rating    float64   `json:"rating" gorm:"type:decimal(2,1)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
