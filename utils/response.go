package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Error   bool        `json:"error"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Response{
		Success: true,
		Error:   false,
		Message: message,
		Data:    data,
	})
}

// Fail converts an error into the envelope. *AppError carries its own
// status and sanitized message; anything else becomes a generic 500 so raw
// fault text never leaks into the response body.
func Fail(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = Internal("Something went wrong", err)
	}

	if appErr.Err != nil {
		logrus.WithFields(logrus.Fields{
			"path":   c.Path(),
			"method": c.Method(),
			"status": appErr.Status(),
		}).WithError(appErr.Err).Error(appErr.Message)
	}

	return c.Status(appErr.Status()).JSON(Response{
		Success: false,
		Error:   true,
		Message: appErr.Message,
	})
}
