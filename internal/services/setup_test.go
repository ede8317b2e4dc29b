package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/university-service/internal/auth"
	"github.com/SAP-F-2025/university-service/internal/cache"
	"github.com/SAP-F-2025/university-service/internal/config"
	"github.com/SAP-F-2025/university-service/internal/events"
	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/university-service/internal/validator"
)

type testEnv struct {
	manager   ServiceManager
	tokens    *auth.TokenService
	publisher *events.MockEventPublisher
	cache     *cache.CacheManager
	redis     *miniredis.Miniredis
	db        *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the shared in-memory database alive and serializes access
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, postgres.AutoMigrate(db))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cacheManager := cache.NewCacheManager(client)
	tokens := auth.NewTokenService(
		config.JWTConfig{Secret: "test-secret", Issuer: "university-test", AccessTTL: time.Hour},
		auth.NewRevocationStore(cacheManager.Revocation),
	)
	publisher := events.NewMockEventPublisher(log)

	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db, RedisClient: client})
	manager := NewServiceManager(repo, log, validator.New(), ServiceManagerConfig{
		Hasher:    auth.BcryptHasher{Cost: 4},
		Tokens:    tokens,
		Cache:     cacheManager,
		Publisher: publisher,
	})
	require.NoError(t, manager.Initialize(context.Background()))

	return &testEnv{manager: manager, tokens: tokens, publisher: publisher, cache: cacheManager, redis: mr, db: db}
}

func ptr[T any](v T) *T { return &v }

func studentRequest(email, studentID string) *models.StudentCreateRequest {
	return &models.StudentCreateRequest{
		AccountFields:  models.AccountFields{Email: email, Password: "secret-pw", Name: "Student " + studentID},
		StudentID:      studentID,
		Major:          ptr("Physics"),
		EnrollmentDate: "2023-09-01",
		GPA:            ptr(3.4),
	}
}

func professorRequest(email, employeeID string) *models.ProfessorCreateRequest {
	return &models.ProfessorCreateRequest{
		AccountFields: models.AccountFields{Email: email, Password: "secret-pw", Name: "Prof " + employeeID},
		EmployeeID:    employeeID,
		Department:    "Mathematics",
		Title:         ptr(models.TitleAssociate),
		HireDate:      "2015-02-01",
	}
}

func staffRequest(email, employeeID string, supervisor *uint) *models.StaffCreateRequest {
	return &models.StaffCreateRequest{
		AccountFields: models.AccountFields{Email: email, Password: "secret-pw", Name: "Staff " + employeeID},
		EmployeeID:    employeeID,
		Department:    "Registry",
		Position:      "Clerk",
		HireDate:      "2020-06-15",
		SupervisorID:  supervisor,
	}
}

func eventTypes(p *events.MockEventPublisher) []string {
	var types []string
	for _, e := range p.GetPublishedEvents() {
		types = append(types, e.Type)
	}
	return types
}
