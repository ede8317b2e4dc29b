package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/repositories"
)

// SeedStaff creates the first staff account when the users table is empty,
// so that a token can be obtained on a fresh install. It is a no-op when
// email is empty or any account already exists.
func SeedStaff(ctx context.Context, repo repositories.Repository, staff StaffService, email, password string, logger *slog.Logger) error {
	if email == "" {
		return nil
	}

	count, err := repo.User().Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	account, err := staff.Create(ctx, &models.StaffCreateRequest{
		AccountFields: models.AccountFields{Email: email, Password: password, Name: "Administrator"},
		EmployeeID:    "ADMIN",
		Department:    "Administration",
		Position:      "Administrator",
		HireDate:      time.Now().UTC().Format(models.DateLayout),
	})
	if err != nil {
		return fmt.Errorf("create seed staff: %w", err)
	}

	logger.InfoContext(ctx, "Seed staff account created", "account_id", account.ID(), "email", account.User.Email)
	return nil
}
