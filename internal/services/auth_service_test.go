package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/university-service/internal/auth"
	"github.com/SAP-F-2025/university-service/internal/events"
	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/repositories/postgres"
)

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.manager.Staff().Create(ctx, staffRequest("admin@uni.edu", "T-1", nil))
	require.NoError(t, err)

	resp, err := env.manager.Auth().Login(ctx, &models.LoginRequest{Email: "ADMIN@uni.edu", Password: "secret-pw"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, created.ID(), resp.User["id"])
	assert.Equal(t, "T-1", resp.User["employee_id"])
	assert.NotContains(t, resp.User, "password_hash")

	claims, err := env.tokens.Validate(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{ID: created.ID(), Role: models.RoleStaff, Email: "admin@uni.edu"}, claims.Identity())

	assert.Contains(t, eventTypes(env.publisher), events.AccountLoggedIn)
}

func TestAuthService_LoginFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.manager.Student().Create(ctx, studentRequest("s@uni.edu", "S-1"))
	require.NoError(t, err)

	tests := []struct {
		name string
		req  models.LoginRequest
		want error
	}{
		{name: "missing email", req: models.LoginRequest{Password: "secret-pw"}, want: ErrValidationFailed},
		{name: "missing password", req: models.LoginRequest{Email: "s@uni.edu"}, want: ErrValidationFailed},
		{name: "wrong password", req: models.LoginRequest{Email: "s@uni.edu", Password: "nope"}, want: ErrInvalidCredentials},
		{name: "unknown email", req: models.LoginRequest{Email: "who@uni.edu", Password: "secret-pw"}, want: ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.manager.Auth().Login(ctx, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_LoginReportsOnlyMissingFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	fieldsOf := func(err error) []string {
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		var fields []string
		for _, e := range verrs {
			fields = append(fields, e.Field)
		}
		return fields
	}

	_, err := env.manager.Auth().Login(ctx, &models.LoginRequest{Password: "secret-pw"})
	assert.Equal(t, []string{"email"}, fieldsOf(err))

	_, err = env.manager.Auth().Login(ctx, &models.LoginRequest{Email: "s@uni.edu"})
	assert.Equal(t, []string{"password"}, fieldsOf(err))

	_, err = env.manager.Auth().Login(ctx, &models.LoginRequest{})
	assert.Equal(t, []string{"email", "password"}, fieldsOf(err))
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.manager.Student().Create(ctx, studentRequest("s@uni.edu", "S-1"))
	require.NoError(t, err)
	resp, err := env.manager.Auth().Login(ctx, &models.LoginRequest{Email: "s@uni.edu", Password: "secret-pw"})
	require.NoError(t, err)

	claims, err := env.tokens.Validate(ctx, resp.AccessToken)
	require.NoError(t, err)
	require.NoError(t, env.manager.Auth().Logout(ctx, claims))

	_, err = env.tokens.Validate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestAuthService_DeleteRevokesOutstandingTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.manager.Professor().Create(ctx, professorRequest("p@uni.edu", "E-1"))
	require.NoError(t, err)
	resp, err := env.manager.Auth().Login(ctx, &models.LoginRequest{Email: "p@uni.edu", Password: "secret-pw"})
	require.NoError(t, err)

	require.NoError(t, env.manager.Professor().Delete(ctx, created.ID()))

	_, err = env.tokens.Validate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestAuthService_Me(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.manager.Student().Create(ctx, studentRequest("me@uni.edu", "S-9"))
	require.NoError(t, err)

	account, err := env.manager.Auth().Me(ctx, auth.Identity{ID: created.ID(), Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, "me@uni.edu", account.User.Email)

	_, err = env.manager.Auth().Me(ctx, auth.Identity{ID: created.ID(), Role: models.RoleStaff})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeedStaff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: env.db})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, SeedStaff(ctx, repo, env.manager.Staff(), "", "", logger))
	require.NoError(t, SeedStaff(ctx, repo, env.manager.Staff(), "root@uni.edu", "root-pw", logger))
	// a second run finds the table populated
	require.NoError(t, SeedStaff(ctx, repo, env.manager.Staff(), "other@uni.edu", "root-pw", logger))

	list, err := env.manager.Staff().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "root@uni.edu", list[0].User.Email)

	_, err = env.manager.Auth().Login(ctx, &models.LoginRequest{Email: "root@uni.edu", Password: "root-pw"})
	assert.NoError(t, err)
}
