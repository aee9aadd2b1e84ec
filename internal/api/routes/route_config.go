package routes

import (
	"EcoSync-Backend/internal/api/handlers"
	"EcoSync-Backend/internal/middleware"
	"EcoSync-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	PickupHandler       handlers.PickupHandler
	AdminHandler        handlers.AdminHandler
	NotificationHandler handlers.NotificationHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.Points()
	c.Pickups()
	c.Admin()
	c.Notifications()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		auth.Put("/profile", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateProfile)
	}
}

func (c *Config) Points() {
	points := c.App.Group("/api/v1/points", c.Middleware.AuthMiddleware(c.JWTService))
	points.Get("/history", c.UserHandler.GetPointHistory)
}

func (c *Config) Pickups() {
	pickups := c.App.Group("/api/v1/pickups", c.Middleware.AuthMiddleware(c.JWTService))

	// stats must be registered before /:id
	pickups.Get("/stats", c.PickupHandler.GetUserStats)

	pickups.Get("", c.PickupHandler.GetUserPickups)
	pickups.Post("", c.PickupHandler.CreatePickup)
	pickups.Get("/:id", c.PickupHandler.GetPickupByID)
	pickups.Put("/:id", c.PickupHandler.UpdatePickup)
	pickups.Post("/:id/complete", c.PickupHandler.CompletePickup)
	pickups.Delete("/:id", c.PickupHandler.CancelPickup)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.AdminMiddleware(),
	)

	admin.Get("/stats", c.AdminHandler.GetStats)
	admin.Get("/pickups", c.AdminHandler.ListPickups)
	admin.Put("/pickups/:id", c.AdminHandler.UpdatePickupStatus)
	admin.Delete("/pickups/:id", c.AdminHandler.DeletePickup)

	admin.Get("/users", c.AdminHandler.ListUsers)
	admin.Get("/users/:id", c.AdminHandler.GetUser)
	admin.Put("/users/:id", c.AdminHandler.UpdateUser)
	admin.Delete("/users/:id", c.AdminHandler.DeleteUser)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))

	notifications.Get("", c.NotificationHandler.ListNotifications)
	notifications.Put("/read-all", c.NotificationHandler.MarkAllAsRead)
	notifications.Put("/:id/read", c.NotificationHandler.MarkAsRead)
	notifications.Delete("/:id", c.NotificationHandler.DeleteNotification)
}
