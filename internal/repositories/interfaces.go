package repositories

import (
	"context"

	"github.com/SAP-F-2025/university-service/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository owns one role's subtype table. Reads preload the User row.
type ProfileRepository[T models.Student | models.Professor | models.Staff] interface {
	Create(ctx context.Context, tx *gorm.DB, profile *T) error
	Update(ctx context.Context, tx *gorm.DB, profile *T) error
	Delete(ctx context.Context, tx *gorm.DB, userID uint) error

	GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*T, error)
	List(ctx context.Context, tx *gorm.DB) ([]*T, error)
}

type StudentRepository interface {
	ProfileRepository[models.Student]
}

type ProfessorRepository interface {
	ProfileRepository[models.Professor]
}

type StaffRepository interface {
	ProfileRepository[models.Staff]

	// GetSupervisorID returns the supervisor of a staff member, or nil
	GetSupervisorID(ctx context.Context, tx *gorm.DB, userID uint) (*uint, error)

	// ClearSupervisor detaches every subordinate of supervisorID
	ClearSupervisor(ctx context.Context, tx *gorm.DB, supervisorID uint) (int64, error)
}
