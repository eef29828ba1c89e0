package presenters

import (
	"fittrack/domain"

	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(domain.Response{
		Data:    data,
		Message: message,
	})
}

// ErrorResponse writes the error envelope. A nil err leaves details empty.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	body := domain.ErrorBody{
		Status:  statusCode,
		Message: message,
	}
	if err != nil {
		body.Details = err.Error()
	}
	return c.Status(statusCode).JSON(domain.ErrorResponse{Error: body})
}
