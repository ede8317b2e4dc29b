package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/university-service/internal/auth"
	"github.com/SAP-F-2025/university-service/internal/cache"
	"github.com/SAP-F-2025/university-service/internal/events"
	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/validator"
)

type authService struct {
	deps Dependencies
}

func NewAuthService(deps Dependencies) AuthService {
	base := newAccountBase(deps, "")
	return &authService{deps: base.Dependencies}
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	var missing validator.ValidationErrors
	if req.Email == "" {
		missing = append(missing, validator.ValidationError{Field: "email", Message: "is required", Rule: "required"})
	}
	if req.Password == "" {
		missing = append(missing, validator.ValidationError{Field: "password", Message: "is required", Rule: "required"})
	}
	if len(missing) > 0 {
		return nil, missing
	}

	account, err := s.deps.Credentials.Verify(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.deps.Logger.InfoContext(ctx, "Login rejected")
		}
		return nil, err
	}

	token, expiresAt, err := s.deps.Tokens.Issue(auth.Identity{
		ID:    account.ID(),
		Role:  account.Role(),
		Email: account.User.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.deps.Logger.InfoContext(ctx, "Login succeeded", "account_id", account.ID(), "role", account.Role())
	if err := s.deps.Publisher.Publish(ctx, events.NewAccountEvent(events.AccountLoggedIn, account)); err != nil {
		s.deps.Logger.ErrorContext(ctx, "Failed to publish event", "event_type", events.AccountLoggedIn, "error", err)
	}

	return &models.LoginResponse{
		Success:     true,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        account.ToMap(),
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.deps.Tokens.Revoke(ctx, claims); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.deps.Logger.InfoContext(ctx, "Token revoked", "account_id", claims.UserID)
	return nil
}

// Me returns the caller's account through the same cache as the role services
func (s *authService) Me(ctx context.Context, identity auth.Identity) (*models.Account, error) {
	var account models.Account
	err := s.deps.Cache.Account.CacheOrExecute(ctx, cache.AccountKey(string(identity.Role), identity.ID), &account, cache.AccountCacheConfig.TTL,
		func() (interface{}, error) {
			return loadAccount(ctx, s.deps.Repo, nil, identity.Role, identity.ID)
		})
	if err != nil {
		return nil, err
	}
	return &account, nil
}
