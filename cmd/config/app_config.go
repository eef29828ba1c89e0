package config

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fittrack/internal/api/handlers"
	"fittrack/internal/api/routes"
	"fittrack/internal/metrics"
	"fittrack/internal/middleware"
	"fittrack/internal/utils"
	"fittrack/internal/utils/mailing"
	"fittrack/internal/utils/storage"
	"fittrack/pkg/activitylog"
	"fittrack/pkg/analysis"
	"fittrack/pkg/dashboard"
	"fittrack/pkg/export"
	"fittrack/pkg/foodlog"
	"fittrack/pkg/jwt"
	"fittrack/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	metrics.Register()
	app := fiber.New(fiber.Config{
		BodyLimit: analysis.MaxImageSize + 1<<20,
	})
	middlewares := middleware.NewMiddleware(utils.GetConfig("ALLOWED_ORIGINS"))
	validator := utils.Validate

	// setting up logging and limiter
	logPath := utils.GetConfig("LOG_PATH")
	if err := os.MkdirAll(filepath.Dir(logPath), os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	rateLimit, err := strconv.Atoi(utils.GetConfig("RATE_LIMIT_MAX"))
	if err != nil || rateLimit <= 0 {
		rateLimit = 20
	}
	app.Use(limiter.New(limiter.Config{
		Max:        rateLimit,
		Expiration: 1 * time.Second,
	}))

	// utils
	ctx := context.Background()
	s3, err := storage.NewAwsS3(ctx,
		utils.GetConfig("AWS_S3_BUCKET"),
		utils.GetConfig("AWS_S3_REGION"),
		utils.GetConfig("AWS_ACCESS_KEY"),
		utils.GetConfig("AWS_SECRET_KEY"),
	)
	if err != nil {
		log.Warnf("photo archive disabled: %v", err)
		s3 = nil
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	analyzer := analysis.NewGeminiAnalyzer(
		utils.GetConfig("GEMINI_API_KEY"),
		utils.GetConfig("GEMINI_MODEL"),
		utils.GetConfig("GEMINI_BASE_URL"),
	)
	if analyzer == nil {
		log.Warn("GEMINI_API_KEY not set, image analysis disabled")
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	foodLogRepository := foodlog.NewFoodLogRepository(db)
	activityLogRepository := activitylog.NewActivityLogRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), tokenTTL(), newDenylist(ctx))
	userService := user.NewUserService(userRepository, jwtService, mailer, utils.GetConfig("APP_URL"))
	foodLogService := foodlog.NewFoodLogService(foodLogRepository, s3)
	activityLogService := activitylog.NewActivityLogService(activityLogRepository)
	imageAnalysisService := analysis.NewImageAnalysisService(analyzer, s3)
	dashboardService := dashboard.NewDashboardService(userService, foodLogService, activityLogService)
	exportService := export.NewExportService(foodLogService, activityLogService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	foodLogHandler := handlers.NewFoodLogHandler(foodLogService)
	activityLogHandler := handlers.NewActivityLogHandler(activityLogService)
	imageAnalysisHandler := handlers.NewImageAnalysisHandler(imageAnalysisService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	exportHandler := handlers.NewExportHandler(exportService)

	// routes
	routesConfig := routes.Config{
		App:                  app,
		UserHandler:          userHandler,
		FoodLogHandler:       foodLogHandler,
		ActivityLogHandler:   activityLogHandler,
		ImageAnalysisHandler: imageAnalysisHandler,
		DashboardHandler:     dashboardHandler,
		ExportHandler:        exportHandler,
		Middleware:           middlewares,
		JWTService:           jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func tokenTTL() time.Duration {
	minutes, err := strconv.Atoi(utils.GetConfig("JWT_TTL_MINUTES"))
	if err != nil || minutes <= 0 {
		minutes = 7 * 24 * 60
	}
	return time.Duration(minutes) * time.Minute
}

// newDenylist uses Redis when REDIS_ADDRESS answers a ping and falls back
// to memory otherwise.
func newDenylist(ctx context.Context) jwt.Denylist {
	address := utils.GetConfig("REDIS_ADDRESS")
	if address == "" {
		return jwt.NewMemoryDenylist()
	}

	db, _ := strconv.Atoi(utils.GetConfig("REDIS_DB"))
	client := jwt.NewRedisClient(address, utils.GetConfig("REDIS_PASSWORD"), db)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := jwt.Ping(pingCtx, client); err != nil {
		log.Warnf("redis unavailable at %s, using in-memory token denylist: %v", address, err)
		_ = client.Close()
		return jwt.NewMemoryDenylist()
	}
	return jwt.NewRedisDenylist(client)
}
