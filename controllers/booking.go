package controllers

import (
	"fmt"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jgecalumni/room-booking-app/models"
	"github.com/jgecalumni/room-booking-app/payment"
	"github.com/jgecalumni/room-booking-app/utils"
)

const bookingDateFormat = "02 Jan, 2006 at 03:04 PM"

type BookingController struct {
	DB        *gorm.DB
	Payments  payment.Gateway
	Mailer    utils.Sender
	KeySecret string
}

func NewBookingController(db *gorm.DB, payments payment.Gateway, mailer utils.Sender, keySecret string) *BookingController {
	return &BookingController{DB: db, Payments: payments, Mailer: mailer, KeySecret: keySecret}
}

// CreatePayment is the order phase: check availability, then ask the
// gateway for an order over the total in paise. The gateway is never
// called for an unavailable range.
func (b *BookingController) CreatePayment(c *fiber.Ctx) error {
	input := new(struct {
		ListingID uint    `json:"listingId"`
		StartDate string  `json:"startDate"`
		EndDate   string  `json:"endDate"`
		Total     float64 `json:"total"`
	})
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse JSON"))
	}
	if input.ListingID == 0 || input.StartDate == "" || input.EndDate == "" || input.Total == 0 {
		return utils.Fail(c, utils.Validation("All fields are required"))
	}
	start, err := parseDate(input.StartDate)
	if err != nil {
		return utils.Fail(c, utils.Validation("Invalid start date"))
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		return utils.Fail(c, utils.Validation("Invalid end date"))
	}

	available, err := utils.IsAvailable(b.DB, input.ListingID, start, end)
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to check availability", err))
	}
	if !available {
		return utils.Fail(c, utils.Conflict("Room is already booked for selected dates"))
	}

	amount := int64(math.Round(input.Total * 100)) // paise
	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	order, err := b.Payments.CreateOrder(amount, "INR", receipt)
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to create payment order", err))
	}

	return utils.OK(c, fiber.StatusOK, "Payment order created", order)
}

// CreateBooking is the confirmation phase: verify the payment signature,
// then re-check availability and insert the booking inside one transaction
// holding the listing row lock, so concurrent confirmations for the same
// range cannot both commit. The confirmation mail with the PDF receipt is
// best-effort once the booking is committed.
func (b *BookingController) CreateBooking(c *fiber.Ctx) error {
	input := new(struct {
		RazorpayOrderID   string  `json:"razorpay_order_id"`
		RazorpayPaymentID string  `json:"razorpay_payment_id"`
		RazorpaySignature string  `json:"razorpay_signature"`
		StartDate         string  `json:"startDate"`
		EndDate           string  `json:"endDate"`
		Total             float64 `json:"total"`
		Type              string  `json:"type"`
		Purpose           string  `json:"purpose"`
		Guests            int     `json:"guests"`
		ReceiptID         string  `json:"receiptId"`
	})
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse JSON"))
	}
	if input.RazorpayOrderID == "" || input.RazorpayPaymentID == "" || input.RazorpaySignature == "" {
		return utils.Fail(c, utils.Validation("Missing payment details"))
	}
	if input.StartDate == "" || input.EndDate == "" || input.Total == 0 ||
		input.Type == "" || input.Purpose == "" || input.Guests == 0 || input.ReceiptID == "" {
		return utils.Fail(c, utils.Validation("All fields are required"))
	}
	if b.KeySecret == "" {
		return utils.Fail(c, utils.Internal("Payment secret is not configured", nil))
	}

	if !payment.VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature, b.KeySecret) {
		return utils.Fail(c, utils.Validation("Invalid payment signature"))
	}

	start, err := parseDate(input.StartDate)
	if err != nil {
		return utils.Fail(c, utils.Validation("Invalid start date"))
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		return utils.Fail(c, utils.Validation("Invalid end date"))
	}

	identity := mustIdentity(c)
	listingID := c.Params("id")

	var listing models.Listing
	booking := models.Booking{
		UserID:         identity.ID,
		StartDate:      start,
		EndDate:        end,
		Type:           input.Type,
		Purpose:        input.Purpose,
		NumberOfGuests: input.Guests,
		Total:          input.Total,
	}

	txErr := b.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the listing row for the check-then-insert sequence.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&listing, listingID).Error; err != nil {
			return utils.NotFound("Room not found", err)
		}

		available, err := utils.IsAvailable(tx, listing.ID, start, end)
		if err != nil {
			return err
		}
		if !available {
			return utils.Conflict("Room already booked for selected dates")
		}

		booking.ListingID = listing.ID
		return tx.Create(&booking).Error
	})
	if txErr != nil {
		return utils.Fail(c, txErr)
	}

	b.sendConfirmation(&booking, &listing, identity.Name, identity.Email, input.RazorpayOrderID, input.ReceiptID)

	return utils.OK(c, fiber.StatusOK, "Room booked successfully", nil)
}

// sendConfirmation renders the receipt and mails it. The booking is already
// committed; failures here are logged and swallowed.
func (b *BookingController) sendConfirmation(booking *models.Booking, listing *models.Listing, name, email, orderID, receiptID string) {
	log := logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"email":      email,
	})

	pdf, err := utils.GenerateReceipt(utils.ReceiptDetails{
		RoomName:  listing.Title,
		Name:      name,
		ReceiptID: receiptID,
		OrderID:   orderID,
		Date:      time.Now(),
		StartDate: booking.StartDate.Format(bookingDateFormat),
		EndDate:   booking.EndDate.Format(bookingDateFormat),
		Status:    "Paid",
		Amount:    booking.Total,
	})
	if err != nil {
		log.WithError(err).Error("failed to render booking receipt")
		return
	}

	body := utils.RoomBookingMail(
		name,
		listing.Title,
		booking.Type,
		booking.StartDate.Format(bookingDateFormat),
		booking.EndDate.Format(bookingDateFormat),
		booking.Total,
		fmt.Sprintf("%d", booking.ID),
	)
	if err := b.Mailer.SendWithAttachment(email, "Room booking confirmation", body, pdf, name); err != nil {
		log.WithError(err).Error("failed to send booking confirmation email")
	}
}

// CheckAvailability is the public date-range probe.
func (b *BookingController) CheckAvailability(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, utils.Validation("Invalid room id"))
	}

	input := new(struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	})
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse JSON"))
	}
	if input.StartDate == "" || input.EndDate == "" {
		return utils.Fail(c, utils.Validation("All fields are required"))
	}
	start, err := parseDate(input.StartDate)
	if err != nil {
		return utils.Fail(c, utils.Validation("Invalid start date"))
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		return utils.Fail(c, utils.Validation("Invalid end date"))
	}

	conflicts, err := utils.ConflictingBookings(b.DB, uint(id), start, end)
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to check availability", err))
	}
	if len(conflicts) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   true,
			Message: "Room is already booked for the selected dates.",
			Data:    conflicts,
		})
	}

	return utils.OK(c, fiber.StatusOK, "Room is available for booking.", []models.Booking{})
}

// GetAllBookings is the admin view with listing and user attached.
func (b *BookingController) GetAllBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	err := b.DB.
		Preload("Listing.Images").
		Preload("User").
		Find(&bookings).Error
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to fetch bookings", err))
	}
	for i := range bookings {
		bookings[i].User.Password = ""
	}
	return utils.OK(c, fiber.StatusOK, "All bookings fetched successfully", bookings)
}

// GetBookingsByUser lists the caller's bookings.
func (b *BookingController) GetBookingsByUser(c *fiber.Ctx) error {
	identity := mustIdentity(c)

	var bookings []models.Booking
	err := b.DB.
		Preload("Listing.Images").
		Where("user_id = ?", identity.ID).
		Find(&bookings).Error
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to fetch bookings", err))
	}
	if len(bookings) == 0 {
		return utils.Fail(c, utils.NotFound("No rooms booked by the user", nil))
	}

	return utils.OK(c, fiber.StatusOK, "All bookings fetched by the user", bookings)
}

// GetBookingByID returns one booking with its listing and images.
func (b *BookingController) GetBookingByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var booking models.Booking
	if err := b.DB.Preload("Listing.Images").First(&booking, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("No rooms booked", err))
	}

	return utils.OK(c, fiber.StatusOK, "Booking fetched", booking)
}

// UpdateBooking lets an admin move dates or adjust the total; the new
// range is re-validated against every other booking on the listing.
func (b *BookingController) UpdateBooking(c *fiber.Ctx) error {
	id := c.Params("id")

	input := new(struct {
		StartDate string  `json:"startDate"`
		EndDate   string  `json:"endDate"`
		Total     float64 `json:"total"`
	})
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse JSON"))
	}
	if input.StartDate == "" || input.EndDate == "" {
		return utils.Fail(c, utils.Validation("All fields are required"))
	}
	start, err := parseDate(input.StartDate)
	if err != nil {
		return utils.Fail(c, utils.Validation("Invalid start date"))
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		return utils.Fail(c, utils.Validation("Invalid end date"))
	}

	txErr := b.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, id).Error; err != nil {
			return utils.NotFound("Booking not found", err)
		}

		// Lock the listing so a concurrent confirmation cannot slip into
		// the range being moved onto.
		var listing models.Listing
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&listing, booking.ListingID).Error; err != nil {
			return err
		}

		var count int64
		err := tx.Model(&models.Booking{}).
			Where("listing_id = ? AND id <> ? AND start_date <= ? AND end_date >= ?",
				booking.ListingID, booking.ID, end, start).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return utils.Conflict("Please select another dates")
		}

		updates := map[string]interface{}{
			"start_date": start,
			"end_date":   end,
		}
		if input.Total != 0 {
			updates["total"] = input.Total
		}
		return tx.Model(&booking).Updates(updates).Error
	})
	if txErr != nil {
		return utils.Fail(c, txErr)
	}

	return utils.OK(c, fiber.StatusOK, "Booking updated successfully", nil)
}

// DeleteBooking removes a booking (admin action).
func (b *BookingController) DeleteBooking(c *fiber.Ctx) error {
	id := c.Params("id")

	var booking models.Booking
	if err := b.DB.First(&booking, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("Booking not found", err))
	}
	if err := b.DB.Delete(&booking).Error; err != nil {
		return utils.Fail(c, utils.Internal("Failed to delete booking", err))
	}

	return utils.OK(c, fiber.StatusOK, "Booking deleted successfully", nil)
}
