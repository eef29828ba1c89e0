package middleware

import (
	"errors"
	"strings"
	"time"

	"fittrack/domain"
	"fittrack/internal/api/presenters"
	"fittrack/internal/metrics"
	"fittrack/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		MetricsMiddleware() fiber.Handler
	}

	middleware struct {
		allowedOrigins string
	}
)

func NewMiddleware(allowedOrigins string) Middleware {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return &middleware{allowedOrigins: allowedOrigins}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: m.allowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	})
}

// AuthMiddleware requires a valid, unrevoked bearer token and stores the
// caller in Locals: "user_id", "role" and "claims".
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
		}

		claims, err := jwtService.Authenticate(c.Context(), strings.TrimSpace(token))
		if err != nil {
			if !errors.Is(err, domain.ErrTokenExpired) && !errors.Is(err, domain.ErrTokenRevoked) {
				err = domain.ErrTokenInvalid
			}
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)
		c.Locals("claims", claims)
		return c.Next()
	}
}

func (m *middleware) MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		metrics.ObserveRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
