package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jgecalumni/room-booking-app/config"
	"github.com/jgecalumni/room-booking-app/controllers"
	"github.com/jgecalumni/room-booking-app/middleware"
)

// SetupListingRoutes configures all room listing related routes
func SetupListingRoutes(app *fiber.App, ctrl *controllers.ListingController, cfg *config.Config) {
	protected := middleware.Protected(cfg.JWTSecret)
	admin := middleware.RequireAdmin(cfg.AdminEmail)

	rooms := app.Group("/v1/api/rooms")

	rooms.Get("/", ctrl.GetAllListings)
	rooms.Post("/create", protected, admin, ctrl.CreateListing)
	rooms.Patch("/update/:id", protected, admin, ctrl.UpdateListing)
	rooms.Delete("/delete/:id", protected, admin, ctrl.DeleteListing)

	rooms.Post("/create/image/:id", protected, admin, ctrl.AddImages)
	rooms.Delete("/delete/image/:id", protected, admin, ctrl.DeleteImage)

	rooms.Get("/:id", protected, ctrl.GetListingByID)
}
