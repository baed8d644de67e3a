package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgecalumni/room-booking-app/models"
	"github.com/jgecalumni/room-booking-app/utils"
)

type CountController struct {
	DB *gorm.DB
}

func NewCountController(db *gorm.DB) *CountController {
	return &CountController{DB: db}
}

// CountData powers the admin dashboard: row counts plus total revenue.
func (ct *CountController) CountData(c *fiber.Ctx) error {
	var bookings, users, listings int64
	if err := ct.DB.Model(&models.Booking{}).Count(&bookings).Error; err != nil {
		return utils.Fail(c, utils.Internal("Failed to fetch counts", err))
	}
	if err := ct.DB.Model(&models.User{}).Count(&users).Error; err != nil {
		return utils.Fail(c, utils.Internal("Failed to fetch counts", err))
	}
	if err := ct.DB.Model(&models.Listing{}).Count(&listings).Error; err != nil {
		return utils.Fail(c, utils.Internal("Failed to fetch counts", err))
	}

	var totalRevenue float64
	err := ct.DB.Model(&models.Booking{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to fetch revenue", err))
	}

	return utils.OK(c, fiber.StatusOK, "All counts fetched.", fiber.Map{
		"booking":      bookings,
		"users":        users,
		"listings":     listings,
		"totalRevenue": totalRevenue,
	})
}
