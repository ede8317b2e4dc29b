package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/repositories"
)

type userPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &userPostgreSQL{db: db}
}

func (r *userPostgreSQL) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := getDB(r.db, tx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return handleDBError(err, "create user")
	}
	return nil
}

func (r *userPostgreSQL) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := getDB(r.db, tx)
	result := db.WithContext(ctx).
		Model(user).
		Select("email", "password_hash", "name", "updated_at").
		Updates(user)
	return requireAffected(result, "update user")
}

func (r *userPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := getDB(r.db, tx)
	result := db.WithContext(ctx).Delete(&models.User{}, id)
	return requireAffected(result, "delete user")
}

func (r *userPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	db := getDB(r.db, tx)
	var user models.User
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, handleDBError(err, "get user by id")
	}
	return &user, nil
}

func (r *userPostgreSQL) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	db := getDB(r.db, tx)
	var user models.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, handleDBError(err, "get user by email")
	}
	return &user, nil
}

func (r *userPostgreSQL) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	db := getDB(r.db, tx)
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, handleDBError(err, "check user email")
	}
	return count > 0, nil
}

func (r *userPostgreSQL) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := getDB(r.db, tx)
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count users")
	}
	return count, nil
}

func (r *userPostgreSQL) CountByRole(ctx context.Context, tx *gorm.DB) (map[models.UserRole]int64, error) {
	db := getDB(r.db, tx)
	var rows []struct {
		Role  models.UserRole
		Total int64
	}
	err := db.WithContext(ctx).
		Model(&models.User{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, handleDBError(err, "count users by role")
	}

	counts := make(map[models.UserRole]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Total
	}
	return counts, nil
}
