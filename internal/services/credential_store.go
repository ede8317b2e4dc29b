package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/university-service/internal/auth"
	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/repositories"
	"github.com/SAP-F-2025/university-service/internal/validator"
)

type credentialStore struct {
	repo   repositories.Repository
	hasher auth.PasswordHasher
	logger *slog.Logger

	// compared against when the email is unknown so both paths cost one bcrypt run
	dummyHash string
}

func NewCredentialStore(repo repositories.Repository, hasher auth.PasswordHasher, logger *slog.Logger) CredentialStore {
	dummy, err := hasher.Hash("university-service-unknown-account")
	if err != nil {
		logger.Warn("Failed to derive dummy password hash", "error", err)
	}
	return &credentialStore{
		repo:      repo,
		hasher:    hasher,
		logger:    logger,
		dummyHash: dummy,
	}
}

func (s *credentialStore) Register(ctx context.Context, tx *gorm.DB, account *models.Account, rawPassword string) error {
	if err := account.Validate(); err != nil {
		return fmt.Errorf("register account: %w", err)
	}

	account.User.Email = NormalizeEmail(account.User.Email)

	exists, err := s.repo.User().ExistsByEmail(ctx, tx, account.User.Email)
	if err != nil {
		return translateStoreError(err, ErrDuplicateEmail)
	}
	if exists {
		return ErrDuplicateEmail
	}

	if err := s.SetPassword(account, rawPassword); err != nil {
		return err
	}

	// the unique index still guards a concurrent insert that passed the check
	if err := s.repo.User().Create(ctx, tx, &account.User); err != nil {
		return translateStoreError(err, ErrDuplicateEmail)
	}

	account.SyncProfile()
	return createProfile(ctx, s.repo, tx, account)
}

func (s *credentialStore) Verify(ctx context.Context, email, rawPassword string) (*models.Account, error) {
	user, err := s.repo.User().GetByEmail(ctx, nil, NormalizeEmail(email))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			_ = s.hasher.Compare(s.dummyHash, rawPassword)
			return nil, ErrInvalidCredentials
		}
		return nil, translateStoreError(err, err)
	}

	if err := s.hasher.Compare(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	account, err := loadAccount(ctx, s.repo, nil, user.Role, user.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.ErrorContext(ctx, "User has no profile row", "user_id", user.ID, "role", user.Role)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return account, nil
}

func (s *credentialStore) SetPassword(account *models.Account, rawPassword string) error {
	if rawPassword == "" {
		return validator.Single("password", "is required", nil, "required")
	}
	if len(rawPassword) > auth.MaxPasswordBytes {
		return validator.Single("password", fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes), nil, "max")
	}

	hash, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account.User.PasswordHash = hash
	return nil
}
