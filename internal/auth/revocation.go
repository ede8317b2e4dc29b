package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SAP-F-2025/university-service/internal/cache"
)

// RevocationStore keeps revoked token ids and per-account cutoffs in redis.
// Without a redis client every method is a no-op and nothing is revoked.
type RevocationStore struct {
	cache *cache.CacheHelper
}

func NewRevocationStore(helper *cache.CacheHelper) *RevocationStore {
	return &RevocationStore{cache: helper}
}

func (s *RevocationStore) Enabled() bool {
	return s != nil && s.cache.Enabled()
}

func tokenKey(jti string) string {
	return "jti:" + jti
}

func accountKey(userID uint) string {
	return fmt.Sprintf("account:%d", userID)
}

// RevokeToken denylists jti for ttl, which should cover the token's remaining life
func (s *RevocationStore) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if !s.Enabled() || jti == "" || ttl <= 0 {
		return nil
	}
	return s.cache.SetString(ctx, tokenKey(jti), "1", ttl)
}

// RevokeAccount rejects tokens for userID issued at or before cutoff. The mark
// lives for one token lifetime, after which such tokens have expired anyway.
func (s *RevocationStore) RevokeAccount(ctx context.Context, userID uint, cutoff time.Time, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	return s.cache.SetString(ctx, accountKey(userID), strconv.FormatInt(cutoff.Unix(), 10), ttl)
}

// IsRevoked reports whether claims were revoked. Cache failures are logged
// and treated as not revoked.
func (s *RevocationStore) IsRevoked(ctx context.Context, claims *Claims) bool {
	if !s.Enabled() {
		return false
	}

	if claims.ID != "" {
		revoked, err := s.cache.Exists(ctx, tokenKey(claims.ID))
		if err != nil {
			slog.WarnContext(ctx, "Token revocation lookup failed", "error", err)
		} else if revoked {
			return true
		}
	}

	value, err := s.cache.GetString(ctx, accountKey(claims.UserID))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheNotFound) {
			slog.WarnContext(ctx, "Account revocation lookup failed", "error", err, "user_id", claims.UserID)
		}
		return false
	}

	cutoff, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		slog.WarnContext(ctx, "Invalid account revocation mark", "user_id", claims.UserID)
		return false
	}
	return claims.IssuedAt != nil && claims.IssuedAt.Unix() <= cutoff
}
