package database

import (
	"fmt"

	"chefmarket_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	// uuid_generate_v4() для первичных ключей
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.ChefProfile{},
		&models.SubscriptionPlan{},
		&models.Payment{},
		&models.Subscription{},
		&models.Announcement{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	return nil
}
