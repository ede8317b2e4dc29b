package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/university-service/internal/auth"
	"github.com/SAP-F-2025/university-service/internal/models"
)

// CredentialStore owns account identity and password hashes
type CredentialStore interface {
	// Register inserts the users row and the profile row inside tx
	Register(ctx context.Context, tx *gorm.DB, account *models.Account, rawPassword string) error
	Verify(ctx context.Context, email, rawPassword string) (*models.Account, error)
	SetPassword(account *models.Account, rawPassword string) error
}

type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, identity auth.Identity) (*models.Account, error)
}

type StudentService interface {
	List(ctx context.Context) ([]*models.Account, error)
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	Create(ctx context.Context, req *models.StudentCreateRequest) (*models.Account, error)
	Update(ctx context.Context, id uint, req *models.StudentPatch) (*models.Account, error)
	Delete(ctx context.Context, id uint) error
}

type ProfessorService interface {
	List(ctx context.Context) ([]*models.Account, error)
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	Create(ctx context.Context, req *models.ProfessorCreateRequest) (*models.Account, error)
	Update(ctx context.Context, id uint, req *models.ProfessorPatch) (*models.Account, error)
	Delete(ctx context.Context, id uint) error
}

type StaffService interface {
	List(ctx context.Context) ([]*models.Account, error)
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	Create(ctx context.Context, req *models.StaffCreateRequest) (*models.Account, error)
	Update(ctx context.Context, id uint, req *models.StaffPatch) (*models.Account, error)
	Delete(ctx context.Context, id uint) error
}

// AccountService reads and deletes accounts without knowing their role
type AccountService interface {
	List(ctx context.Context) ([]*models.Account, error)
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*models.AccountStats, error)
}

// ExportService renders account rosters as spreadsheets
type ExportService interface {
	ExportRoster(ctx context.Context, role models.UserRole) ([]byte, error)
}

// ServiceManager wires and hands out the services
type ServiceManager interface {
	Initialize(ctx context.Context) error

	Credentials() CredentialStore
	Auth() AuthService
	Student() StudentService
	Professor() ProfessorService
	Staff() StaffService
	Accounts() AccountService
	Export() ExportService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
