package database

import (
	"evervoice_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MemoryProfile{},
		&models.ChatUsageDaily{},
		&models.VideoLastGenerated{},
		&models.VideoJob{},
	)
}
