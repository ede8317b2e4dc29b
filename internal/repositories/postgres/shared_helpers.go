package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/university-service/internal/repositories"
)

// postgres unique_violation
const uniqueViolation = "23505"

func getDB(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// handleDBError wraps a driver error with the failed operation and tags
// not-found and unique-violation errors with the repository sentinels
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s failed: %w", operation, repositories.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == uniqueViolation) {
		return fmt.Errorf("%s failed: %w: %w", operation, repositories.ErrDuplicateKey, err)
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}

// requireAffected turns a zero-row write into ErrNotFound
func requireAffected(result *gorm.DB, operation string) error {
	if result.Error != nil {
		return handleDBError(result.Error, operation)
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, operation)
	}
	return nil
}
