package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorKind classifies a request failure. Handlers return an *AppError and
// the central mapping in response.go picks the status code and the message
// that goes outward; the raw cause stays in server logs.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindConflict
	KindAuth
	KindForbidden
	KindInternal
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Status maps the kind to its HTTP status code.
func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindAuth:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func E(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NotFound(message string, err error) *AppError {
	return &AppError{Kind: KindNotFound, Message: message, Err: err}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}
