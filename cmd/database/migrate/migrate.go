package migration

import (
	"EcoSync-Backend/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		log.Errorf("Error creating uuid-ossp extension: %v", err)
		return err
	}

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Errorf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Pickup{}); err != nil {
		log.Errorf("Error migrating pickup database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PointTransaction{}); err != nil {
		log.Errorf("Error migrating point transaction database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Notification{}); err != nil {
		log.Errorf("Error migrating notification database: %v", err)
		return err
	}

	log.Info("Database migration complete")
	return nil
}
