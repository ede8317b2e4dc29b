package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/repositories"
)

// profilePostgreSQL stores one role's subtype rows keyed by user_id
type profilePostgreSQL[T models.Student | models.Professor | models.Staff] struct {
	db     *gorm.DB
	entity string
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &profilePostgreSQL[models.Student]{db: db, entity: "student"}
}

func NewProfessorPostgreSQL(db *gorm.DB) repositories.ProfessorRepository {
	return &profilePostgreSQL[models.Professor]{db: db, entity: "professor"}
}

// Associations are omitted on writes; the users row is written by UserRepository.

func (r *profilePostgreSQL[T]) Create(ctx context.Context, tx *gorm.DB, profile *T) error {
	db := getDB(r.db, tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error; err != nil {
		return handleDBError(err, "create "+r.entity)
	}
	return nil
}

func (r *profilePostgreSQL[T]) Update(ctx context.Context, tx *gorm.DB, profile *T) error {
	db := getDB(r.db, tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error; err != nil {
		return handleDBError(err, "update "+r.entity)
	}
	return nil
}

func (r *profilePostgreSQL[T]) Delete(ctx context.Context, tx *gorm.DB, userID uint) error {
	db := getDB(r.db, tx)
	result := db.WithContext(ctx).Where("user_id = ?", userID).Delete(new(T))
	return requireAffected(result, "delete "+r.entity)
}

func (r *profilePostgreSQL[T]) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*T, error) {
	db := getDB(r.db, tx)
	var profile T
	if err := db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, handleDBError(err, "get "+r.entity+" by id")
	}
	return &profile, nil
}

func (r *profilePostgreSQL[T]) List(ctx context.Context, tx *gorm.DB) ([]*T, error) {
	db := getDB(r.db, tx)
	var profiles []*T
	if err := db.WithContext(ctx).
		Preload("User").
		Order("user_id ASC").
		Find(&profiles).Error; err != nil {
		return nil, handleDBError(err, "list "+r.entity)
	}
	return profiles, nil
}
