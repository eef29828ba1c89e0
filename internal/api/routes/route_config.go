package routes

import (
	"fittrack/internal/api/handlers"
	"fittrack/internal/middleware"
	"fittrack/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App                  *fiber.App
	UserHandler          handlers.UserHandler
	FoodLogHandler       handlers.FoodLogHandler
	ActivityLogHandler   handlers.ActivityLogHandler
	ImageAnalysisHandler handlers.ImageAnalysisHandler
	DashboardHandler     handlers.DashboardHandler
	ExportHandler        handlers.ExportHandler
	Middleware           middleware.Middleware
	JWTService           jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.MetricsMiddleware())
	c.Auth()
	c.User()
	c.FoodLogs()
	c.ActivityLogs()
	c.Insights()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/local/register", c.UserHandler.Register)
		auth.Post("/local", c.UserHandler.Login)
		auth.Post("/logout", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Logout)
	}
}

func (c *Config) User() {
	user := c.App.Group("/api/users", c.Middleware.AuthMiddleware(c.JWTService))
	{
		user.Get("/me", c.UserHandler.Me)
		user.Put("/:id", c.UserHandler.UpdateProfile)
	}
}

func (c *Config) FoodLogs() {
	foodLogs := c.App.Group("/api/food-logs", c.Middleware.AuthMiddleware(c.JWTService))
	foodLogs.Get("", c.FoodLogHandler.GetFoodLogs)
	foodLogs.Post("", c.FoodLogHandler.CreateFoodLog)
	foodLogs.Delete("/:id", c.FoodLogHandler.DeleteFoodLog)
}

func (c *Config) ActivityLogs() {
	activityLogs := c.App.Group("/api/activity-logs", c.Middleware.AuthMiddleware(c.JWTService))
	activityLogs.Get("", c.ActivityLogHandler.GetActivityLogs)
	activityLogs.Post("", c.ActivityLogHandler.CreateActivityLog)
	activityLogs.Delete("/:id", c.ActivityLogHandler.DeleteActivityLog)
}

func (c *Config) Insights() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	c.App.Post("/api/image-analysis", auth, c.ImageAnalysisHandler.AnalyzeImage)
	c.App.Get("/api/dashboard", auth, c.DashboardHandler.GetDashboard)
	c.App.Get("/api/export", auth, c.ExportHandler.ExportLogs)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
