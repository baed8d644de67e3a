package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jgecalumni/room-booking-app/middleware"
	"github.com/jgecalumni/room-booking-app/models"
	"github.com/jgecalumni/room-booking-app/utils"
)

const otpTTL = 10 * time.Minute

type AuthController struct {
	DB        *gorm.DB
	Mailer    utils.Sender
	JWTSecret string
}

func NewAuthController(db *gorm.DB, mailer utils.Sender, jwtSecret string) *AuthController {
	return &AuthController{DB: db, Mailer: mailer, JWTSecret: jwtSecret}
}

// Register creates a user account with a bcrypt-hashed password.
func (a *AuthController) Register(c *fiber.Ctx) error {
	input := new(struct {
		Name     string          `json:"name"`
		Email    string          `json:"email"`
		Password string          `json:"password"`
		Role     models.UserRole `json:"role"`
		Phone    string          `json:"phone"`
	})
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse JSON"))
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return utils.Fail(c, utils.Validation("All fields are required"))
	}

	var existing models.User
	if a.DB.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
		return utils.Fail(c, utils.Conflict("User already exists"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to hash password", err))
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     input.Role,
		Phone:    input.Phone,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if err := a.DB.Create(&user).Error; err != nil {
		return utils.Fail(c, utils.Internal("Failed to create user", err))
	}

	return utils.OK(c, fiber.StatusCreated, "Registered successfully", nil)
}

// Login verifies credentials and issues the 1-day identity token, both in
// the body and as the "token" cookie.
func (a *AuthController) Login(c *fiber.Ctx) error {
	input := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse JSON"))
	}
	if input.Email == "" || input.Password == "" {
		return utils.Fail(c, utils.Validation("All fields are required"))
	}

	var user models.User
	if err := a.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return utils.Fail(c, utils.NotFound("User not found", err))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Fail(c, utils.E(utils.KindAuth, "Invalid credentials", nil))
	}

	token, err := utils.GenerateToken(&user, a.JWTSecret)
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to generate token", err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(utils.TokenTTL),
		HTTPOnly: true,
		SameSite: "None",
	})

	return utils.OK(c, fiber.StatusOK, "User logged in successfully", fiber.Map{
		"token": token,
	})
}

// Logout clears the token cookie; the JWT itself stays stateless.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "None",
	})
	return utils.OK(c, fiber.StatusOK, "Logout successful", nil)
}

// GetProfile returns the caller with bookings and reviews preloaded.
func (a *AuthController) GetProfile(c *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(c)

	var user models.User
	err := a.DB.
		Preload("Bookings.Listing.Images").
		Preload("Bookings.Listing.Reviews").
		Preload("Reviews.Listing").
		First(&user, identity.ID).Error
	if err != nil {
		return utils.Fail(c, utils.NotFound("User not found", err))
	}
	user.Password = ""

	return utils.OK(c, fiber.StatusOK, "User fetched successfully", user)
}

// UpdateUser lets the caller change name, email and phone.
func (a *AuthController) UpdateUser(c *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(c)

	input := new(struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	})
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse JSON"))
	}
	if input.Name == "" || input.Email == "" || input.Phone == "" {
		return utils.Fail(c, utils.Validation("All fields are required"))
	}

	err := a.DB.Model(&models.User{}).Where("id = ?", identity.ID).Updates(map[string]interface{}{
		"name":  input.Name,
		"email": input.Email,
		"phone": input.Phone,
	}).Error
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to update user", err))
	}

	return utils.OK(c, fiber.StatusOK, "User updated successfully", nil)
}

// GetAllUsers is the admin listing of every account with its relations.
func (a *AuthController) GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	err := a.DB.
		Preload("Listings").
		Preload("Bookings").
		Preload("Reviews").
		Find(&users).Error
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to fetch users", err))
	}
	for i := range users {
		users[i].Password = ""
	}
	return utils.OK(c, fiber.StatusOK, "Users fetched successfully", users)
}

// DeleteUser removes the account given by the id query parameter.
func (a *AuthController) DeleteUser(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.Fail(c, utils.Validation("User id is required"))
	}

	var user models.User
	if err := a.DB.First(&user, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("User not found", err))
	}
	if err := a.DB.Delete(&user).Error; err != nil {
		return utils.Fail(c, utils.Internal("Failed to delete user", err))
	}

	return utils.OK(c, fiber.StatusOK, "User deleted successfully", nil)
}

// UpdateUserByAdmin edits any account, role included.
func (a *AuthController) UpdateUserByAdmin(c *fiber.Ctx) error {
	id := c.Params("id")

	input := new(struct {
		Name  string          `json:"name"`
		Email string          `json:"email"`
		Phone string          `json:"phone"`
		Role  models.UserRole `json:"role"`
	})
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse JSON"))
	}
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.Role == "" {
		return utils.Fail(c, utils.Validation("All fields are required"))
	}

	var user models.User
	if err := a.DB.First(&user, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("User not found", err))
	}
	err := a.DB.Model(&user).Updates(map[string]interface{}{
		"name":  input.Name,
		"email": input.Email,
		"phone": input.Phone,
		"role":  input.Role,
	}).Error
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to update user", err))
	}

	return utils.OK(c, fiber.StatusOK, "User updated successfully", nil)
}

// ForgotPassword stores a fresh 10-minute OTP on the user row and mails it.
func (a *AuthController) ForgotPassword(c *fiber.Ctx) error {
	input := new(struct {
		Email string `json:"email"`
	})
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse JSON"))
	}
	if input.Email == "" {
		return utils.Fail(c, utils.Validation("All fields are not provided"))
	}

	var user models.User
	if err := a.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return utils.Fail(c, utils.NotFound("User not found", err))
	}

	otp := utils.GenerateOTP()
	expire := time.Now().Add(otpTTL)
	err := a.DB.Model(&user).Updates(map[string]interface{}{
		"reset_otp":        otp,
		"reset_otp_expire": expire,
	}).Error
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to store OTP", err))
	}

	if err := a.Mailer.Send(user.Email, "OTP for Password Reset", utils.OTPMail(otp, user.Name)); err != nil {
		return utils.Fail(c, utils.Internal("Failed to send OTP email", err))
	}

	return utils.OK(c, fiber.StatusOK, "Otp sent successfully", nil)
}

// VerifyOTP checks the code and its expiry without consuming it.
func (a *AuthController) VerifyOTP(c *fiber.Ctx) error {
	input := new(struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	})
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse JSON"))
	}
	if input.Email == "" || input.OTP == "" {
		return utils.Fail(c, utils.Validation("All fields are required"))
	}

	var user models.User
	if err := a.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return utils.Fail(c, utils.NotFound("User not found", err))
	}
	if user.ResetOTP == nil || *user.ResetOTP != input.OTP ||
		user.ResetOTPExpire == nil || user.ResetOTPExpire.Before(time.Now()) {
		return utils.Fail(c, utils.Validation("Invalid or expired OTP"))
	}

	return utils.OK(c, fiber.StatusOK, "OTP verified successfully", nil)
}

// ResetPassword re-hashes the password and clears the OTP state.
func (a *AuthController) ResetPassword(c *fiber.Ctx) error {
	input := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse JSON"))
	}
	if input.Email == "" || input.Password == "" {
		return utils.Fail(c, utils.Validation("All fields are required"))
	}

	var user models.User
	if err := a.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return utils.Fail(c, utils.NotFound("User not found", err))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to hash password", err))
	}
	err = a.DB.Model(&user).Updates(map[string]interface{}{
		"password":         string(hashed),
		"reset_otp":        nil,
		"reset_otp_expire": nil,
	}).Error
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to update password", err))
	}

	logrus.WithField("user_id", user.ID).Info("password reset completed")
	return utils.OK(c, fiber.StatusOK, "Password updated successfully", nil)
}
