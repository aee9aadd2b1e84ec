package main

import (
	"EcoSync-Backend/cmd/config"
	migration "EcoSync-Backend/cmd/database/migrate"
	"EcoSync-Backend/cmd/database/seed"
	"EcoSync-Backend/internal/utils"
	"EcoSync-Backend/pkg/user"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before starting")
	seedAdmin := flag.Bool("seed", false, "create the admin account before starting")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if *migrate {
		if err := migration.Migrate(db); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
	}

	if *seedAdmin {
		_, err := seed.SeedAdmin(context.Background(), user.NewUserRepository(db), seed.AdminAccount{
			Name:     utils.GetConfig("ADMIN_NAME"),
			Email:    utils.GetConfig("ADMIN_EMAIL"),
			Password: utils.GetConfig("ADMIN_PASSWORD"),
		})
		if err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to create app: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Errorf("server shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
	<-done
}
