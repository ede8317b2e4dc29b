package repositories

import (
	"context"

	"github.com/SAP-F-2025/university-service/internal/models"
	"gorm.io/gorm"
)

// UserRepository owns the users base table
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)

	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	// CountByRole omits roles without accounts
	CountByRole(ctx context.Context, tx *gorm.DB) (map[models.UserRole]int64, error)
}
