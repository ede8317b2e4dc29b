package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/repositories"
)

type staffPostgreSQL struct {
	*profilePostgreSQL[models.Staff]
}

func NewStaffPostgreSQL(db *gorm.DB) repositories.StaffRepository {
	return &staffPostgreSQL{
		profilePostgreSQL: &profilePostgreSQL[models.Staff]{db: db, entity: "staff"},
	}
}

func (r *staffPostgreSQL) GetSupervisorID(ctx context.Context, tx *gorm.DB, userID uint) (*uint, error) {
	db := getDB(r.db, tx)
	var staff models.Staff
	if err := db.WithContext(ctx).
		Select("user_id", "supervisor_id").
		Where("user_id = ?", userID).
		First(&staff).Error; err != nil {
		return nil, handleDBError(err, "get staff supervisor")
	}
	return staff.SupervisorID, nil
}

func (r *staffPostgreSQL) ClearSupervisor(ctx context.Context, tx *gorm.DB, supervisorID uint) (int64, error) {
	db := getDB(r.db, tx)
	result := db.WithContext(ctx).
		Model(&models.Staff{}).
		Where("supervisor_id = ?", supervisorID).
		Update("supervisor_id", nil)
	if result.Error != nil {
		return 0, handleDBError(result.Error, "clear staff supervisor")
	}
	return result.RowsAffected, nil
}
