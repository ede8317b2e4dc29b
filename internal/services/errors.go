package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/university-service/internal/repositories"
	"github.com/SAP-F-2025/university-service/internal/validator"
)

// Service errors mapped to HTTP status codes by the handlers
var (
	ErrValidationFailed    = validator.ErrValidation
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateIdentifier = errors.New("identifier already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

type ValidationError = validator.ValidationError
type ValidationErrors = validator.ValidationErrors

// translateStoreError maps repository sentinels onto service errors.
// onDuplicate is returned for unique violations since only the caller
// knows which column was hit.
func translateStoreError(err error, onDuplicate error) error {
	switch {
	case err == nil:
		return nil
	case repositories.IsNotFoundError(err):
		return ErrNotFound
	case repositories.IsDuplicateError(err):
		return onDuplicate
	default:
		return fmt.Errorf("store error: %w", err)
	}
}
