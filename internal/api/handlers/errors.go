package handlers

import (
	"errors"

	"fittrack/domain"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrFoodLogNotFound),
		errors.Is(err, domain.ErrActivityLogNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedAccess),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrUsernameAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrImageTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrAnalyzerNotConfigured):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadRequest
	}
}
