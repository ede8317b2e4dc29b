package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// AccountKey is the cache key of a single account of the given role
func AccountKey(role string, id uint) string {
	return fmt.Sprintf("%s:%d", role, id)
}

// AccountListKey is the cache key of the full list for a role
func AccountListKey(role string) string {
	return fmt.Sprintf("list:%s", role)
}

// AccountStatsKey holds the per-role counts. It sits under list: so every
// account write drops it.
const AccountStatsKey = "list:stats"

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateAccountCache drops the cached account and every cached role list.
// Staff deletes touch subordinates, so all lists go.
func InvalidateAccountCache(ctx context.Context, cm *CacheManager, role string, id uint) {
	SafeDelete(ctx, cm.Account, AccountKey(role, id))
	SafeInvalidatePattern(ctx, cm.Account, "list:*")
}

// InvalidateAccountCacheLater runs InvalidateAccountCache again once delay has
// passed. A read that loaded the old rows before the write committed may
// store them after the first invalidation; this drops that entry.
func InvalidateAccountCacheLater(ctx context.Context, cm *CacheManager, role string, id uint, delay time.Duration) *time.Timer {
	if !cm.Account.Enabled() || delay <= 0 {
		return nil
	}
	ctx = context.WithoutCancel(ctx)
	return time.AfterFunc(delay, func() {
		InvalidateAccountCache(ctx, cm, role, id)
	})
}

// InvalidateRoleCache drops every cached account of a role
func InvalidateRoleCache(ctx context.Context, cm *CacheManager, role string) {
	SafeInvalidatePattern(ctx, cm.Account, role+":*")
	SafeInvalidatePattern(ctx, cm.Account, "list:*")
}
