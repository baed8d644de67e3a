package models

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Name           string     `json:"name"`
	Email          string     `json:"email" gorm:"unique"`
	Password       string     `json:"password,omitempty"`
	Role           UserRole   `json:"role" gorm:"type:varchar(10);default:'USER'"`
	Phone          string     `json:"phone"`
	ResetOTP       *string    `json:"-"`
	ResetOTPExpire *time.Time `json:"-"`
	Listings       []Listing  `json:"listings,omitempty" gorm:"foreignKey:UserID"`
	Bookings       []Booking  `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
	Reviews        []Review   `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
