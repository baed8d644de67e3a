package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jgecalumni/room-booking-app/config"
	"github.com/jgecalumni/room-booking-app/controllers"
	"github.com/jgecalumni/room-booking-app/middleware"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(app *fiber.App, ctrl *controllers.BookingController, cfg *config.Config) {
	protected := middleware.Protected(cfg.JWTSecret)
	admin := middleware.RequireAdmin(cfg.AdminEmail)

	bookings := app.Group("/v1/api/bookings")

	bookings.Post("/create-payment", protected, ctrl.CreatePayment)
	bookings.Post("/create/:id", protected, ctrl.CreateBooking)
	bookings.Get("/", protected, admin, ctrl.GetAllBookings)
	bookings.Get("/user/:id", protected, ctrl.GetBookingsByUser)
	bookings.Patch("/update/:id", protected, admin, ctrl.UpdateBooking)
	bookings.Delete("/delete/:id", protected, admin, ctrl.DeleteBooking)
	bookings.Post("/check-availability/:id", ctrl.CheckAvailability)
	bookings.Get("/get-booking/:id", ctrl.GetBookingByID)
}
