package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jgecalumni/room-booking-app/config"
	"github.com/jgecalumni/room-booking-app/controllers"
	"github.com/jgecalumni/room-booking-app/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App, ctrl *controllers.AuthController, cfg *config.Config) {
	protected := middleware.Protected(cfg.JWTSecret)
	admin := middleware.RequireAdmin(cfg.AdminEmail)

	auth := app.Group("/v1/api/auth")

	auth.Post("/register", ctrl.Register)
	auth.Post("/login", ctrl.Login)
	auth.Post("/logout", ctrl.Logout)
	auth.Get("/get-user", protected, ctrl.GetProfile)
	auth.Patch("/update", protected, ctrl.UpdateUser)

	// admin
	auth.Get("/admin/", protected, admin, ctrl.GetAllUsers)
	auth.Delete("/admin/delete", protected, admin, ctrl.DeleteUser)
	auth.Patch("/admin/update/:id", protected, admin, ctrl.UpdateUserByAdmin)

	// reset password
	auth.Post("/forget-password", ctrl.ForgotPassword)
	auth.Post("/verify-otp", ctrl.VerifyOTP)
	auth.Patch("/reset-password", ctrl.ResetPassword)
}
