package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/university-service/internal/models"
)

// AutoMigrate creates or updates the account tables. The users table goes
// first since every profile table references it.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Professor{},
		&models.Staff{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
