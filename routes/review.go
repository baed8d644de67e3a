package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jgecalumni/room-booking-app/config"
	"github.com/jgecalumni/room-booking-app/controllers"
	"github.com/jgecalumni/room-booking-app/middleware"
)

// SetupReviewRoutes configures all review related routes
func SetupReviewRoutes(app *fiber.App, ctrl *controllers.ReviewController, cfg *config.Config) {
	protected := middleware.Protected(cfg.JWTSecret)

	reviews := app.Group("/v1/api/reviews")

	reviews.Get("/", ctrl.GetAllReviews)
	reviews.Post("/create/:id", protected, ctrl.CreateReview)
	reviews.Delete("/delete/:id", protected, ctrl.DeleteReview)
}
