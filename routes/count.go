package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jgecalumni/room-booking-app/config"
	"github.com/jgecalumni/room-booking-app/controllers"
	"github.com/jgecalumni/room-booking-app/middleware"
)

// SetupCountRoutes configures the admin dashboard count route
func SetupCountRoutes(app *fiber.App, ctrl *controllers.CountController, cfg *config.Config) {
	counts := app.Group("/v1/api/counts")
	counts.Get("/", middleware.Protected(cfg.JWTSecret), middleware.RequireAdmin(cfg.AdminEmail), ctrl.CountData)
}
