package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/SAP-F-2025/university-service/internal/config"
	"github.com/SAP-F-2025/university-service/internal/models"
)

// Token errors
var (
	ErrTokenMissing   = errors.New("missing authorization token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenRevoked   = errors.New("token has been revoked")
)

// Identity is what a token proves about its bearer
type Identity struct {
	ID    uint            `json:"id"`
	Role  models.UserRole `json:"role"`
	Email string          `json:"email"`
}

type Claims struct {
	UserID uint            `json:"uid"`
	Role   models.UserRole `json:"role"`
	Email  string          `json:"email"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{ID: c.UserID, Role: c.Role, Email: c.Email}
}

// TokenService issues and validates HS256 access tokens
type TokenService struct {
	secret      []byte
	issuer      string
	ttl         time.Duration
	revocations *RevocationStore
	now         func() time.Time
}

// NewTokenService builds a token service. revocations may be nil.
func NewTokenService(cfg config.JWTConfig, revocations *RevocationStore) *TokenService {
	return &TokenService{
		secret:      []byte(cfg.Secret),
		issuer:      cfg.Issuer,
		ttl:         cfg.AccessTTL,
		revocations: revocations,
		now:         time.Now,
	}
}

// Issue signs a token for the identity and returns it with its expiry
func (s *TokenService) Issue(id Identity) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		UserID: id.ID,
		Role:   id.Role,
		Email:  id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id.ID), 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate checks signature, expiry and revocation and returns the claims
func (s *TokenService) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, mapParseError(err)
	}

	if claims.UserID == 0 || !claims.Role.IsValid() || claims.IssuedAt == nil {
		return nil, ErrTokenMalformed
	}

	if s.revocations.IsRevoked(ctx, claims) {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Revoke denylists a single token until it expires
func (s *TokenService) Revoke(ctx context.Context, claims *Claims) error {
	if claims.ExpiresAt == nil {
		return nil
	}
	return s.revocations.RevokeToken(ctx, claims.ID, claims.ExpiresAt.Time.Sub(s.now()))
}

// RevokeAccount rejects every token issued to the account up to now
func (s *TokenService) RevokeAccount(ctx context.Context, userID uint) error {
	return s.revocations.RevokeAccount(ctx, userID, s.now(), s.ttl)
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignature
	default:
		return ErrTokenMalformed
	}
}
