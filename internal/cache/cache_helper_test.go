package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newTestManager(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheManager(client), mr
}

func TestCacheHelper_SetGetDelete(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, cm.Account.Set(ctx, AccountKey("student", 1), entry{ID: 1, Name: "Ana"}, time.Minute))
	assert.True(t, mr.Exists("account:student:1"))

	var got entry
	require.NoError(t, cm.Account.Get(ctx, AccountKey("student", 1), &got))
	assert.Equal(t, "Ana", got.Name)

	require.NoError(t, cm.Account.Delete(ctx, AccountKey("student", 1)))
	err := cm.Account.Get(ctx, AccountKey("student", 1), &got)
	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestCacheHelper_NilClientDegrades(t *testing.T) {
	cm := NewCacheManager(nil)
	ctx := context.Background()

	assert.False(t, cm.Account.Enabled())
	assert.NoError(t, cm.Account.Set(ctx, "k", entry{}, time.Minute))
	assert.ErrorIs(t, cm.Account.Get(ctx, "k", &entry{}), ErrCacheNotAvailable)
	assert.ErrorIs(t, cm.HealthCheck(ctx), ErrCacheNotAvailable)

	calls := 0
	var got entry
	err := cm.Account.CacheOrExecute(ctx, "k", &got, time.Minute, func() (interface{}, error) {
		calls++
		return entry{ID: 2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.ID)
	assert.Equal(t, 1, calls)
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	cm, _ := newTestManager(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return entry{ID: 3, Name: "Bo"}, nil
	}

	var first, second entry
	require.NoError(t, cm.Account.CacheOrExecute(ctx, "professor:3", &first, time.Minute, fetch))
	require.NoError(t, cm.Account.CacheOrExecute(ctx, "professor:3", &second, time.Minute, fetch))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	failing := errors.New("boom")
	err := cm.Account.CacheOrExecute(ctx, "professor:4", &first, time.Minute, func() (interface{}, error) {
		return nil, failing
	})
	assert.ErrorIs(t, err, failing)
}

func TestInvalidateAccountCache(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, cm.Account.Set(ctx, AccountKey("staff", 5), entry{ID: 5}, time.Minute))
	require.NoError(t, cm.Account.Set(ctx, AccountKey("staff", 6), entry{ID: 6}, time.Minute))
	require.NoError(t, cm.Account.Set(ctx, AccountListKey("staff"), []entry{{ID: 5}}, time.Minute))
	require.NoError(t, cm.Account.Set(ctx, AccountListKey("student"), []entry{}, time.Minute))

	InvalidateAccountCache(ctx, cm, "staff", 5)

	assert.False(t, mr.Exists("account:staff:5"))
	assert.True(t, mr.Exists("account:staff:6"))
	assert.False(t, mr.Exists("account:list:staff"))
	assert.False(t, mr.Exists("account:list:student"))

	InvalidateRoleCache(ctx, cm, "staff")
	assert.False(t, mr.Exists("account:staff:6"))
}

func TestInvalidateAccountCacheLater(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())

	InvalidateAccountCache(ctx, cm, "student", 7)
	// a slow read stores the old row after the first pass
	require.NoError(t, cm.Account.Set(ctx, AccountKey("student", 7), entry{ID: 7}, time.Minute))
	require.NoError(t, cm.Account.Set(ctx, AccountListKey("student"), []entry{{ID: 7}}, time.Minute))

	timer := InvalidateAccountCacheLater(ctx, cm, "student", 7, 10*time.Millisecond)
	require.NotNil(t, timer)
	// the request context ending must not cancel the second pass
	cancel()

	assert.Eventually(t, func() bool {
		return !mr.Exists("account:student:7") && !mr.Exists("account:list:student")
	}, time.Second, 5*time.Millisecond)

	assert.Nil(t, InvalidateAccountCacheLater(context.Background(), NewCacheManager(nil), "student", 7, time.Millisecond))
	assert.Nil(t, InvalidateAccountCacheLater(context.Background(), cm, "student", 7, 0))
}
