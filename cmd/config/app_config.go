package config

import (
	"EcoSync-Backend/internal/api/handlers"
	"EcoSync-Backend/internal/api/routes"
	"EcoSync-Backend/internal/middleware"
	"EcoSync-Backend/internal/utils"
	"EcoSync-Backend/internal/utils/mailing"
	"EcoSync-Backend/internal/utils/storage"
	"EcoSync-Backend/pkg/jwt"
	"EcoSync-Backend/pkg/notification"
	"EcoSync-Backend/pkg/pickup"
	"EcoSync-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	app.Use(recover.New())

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	// Repository
	userRepository := user.NewUserRepository(db)
	ledgerRepository := user.NewLedgerRepository(db)
	pickupRepository := pickup.NewPickupRepository(db, ledgerRepository)
	notificationRepository := notification.NewNotificationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	notificationService := notification.NewNotificationService(notificationRepository, mailer)
	pickupService := pickup.NewPickupService(pickupRepository, userRepository, s3, notificationService)

	// pending notifications are flushed before the process exits
	app.Hooks().OnShutdown(func() error {
		notificationService.Wait()
		return nil
	})

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	pickupHandler := handlers.NewPickupHandler(pickupService, validator)
	adminHandler := handlers.NewAdminHandler(pickupService, userService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		PickupHandler:       pickupHandler,
		AdminHandler:        adminHandler,
		NotificationHandler: notificationHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
