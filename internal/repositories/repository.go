package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repository groups the account repositories behind one connection
type Repository interface {
	User() UserRepository
	Student() StudentRepository
	Professor() ProfessorRepository
	Staff() StaffRepository

	// WithTransaction runs fn inside one database transaction. Every
	// repository call made with the given tx joins it.
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	Shutdown(ctx context.Context) error
}
