package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/university-service/internal/auth"
	"github.com/SAP-F-2025/university-service/internal/cache"
	"github.com/SAP-F-2025/university-service/internal/events"
	"github.com/SAP-F-2025/university-service/internal/repositories"
	"github.com/SAP-F-2025/university-service/internal/validator"
)

// ServiceManagerConfig carries the collaborators that are not owned by the
// repository layer
type ServiceManagerConfig struct {
	Hasher    auth.PasswordHasher
	Tokens    *auth.TokenService
	Cache     *cache.CacheManager
	Publisher events.EventPublisher
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	// Service instances
	credentials      CredentialStore
	authService      AuthService
	studentService   StudentService
	professorService ProfessorService
	staffService     StaffService
	accountService   AccountService
	exportService    ExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if err := sm.initializeServices(); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) initializeServices() error {
	if sm.config.Tokens == nil {
		return fmt.Errorf("token service is required")
	}

	hasher := sm.config.Hasher
	if hasher == nil {
		hasher = auth.BcryptHasher{}
	}

	sm.credentials = NewCredentialStore(sm.repo, hasher, sm.logger)

	deps := Dependencies{
		Repo:        sm.repo,
		Logger:      sm.logger,
		Validator:   sm.validator,
		Credentials: sm.credentials,
		Tokens:      sm.config.Tokens,
		Cache:       sm.config.Cache,
		Publisher:   sm.config.Publisher,
	}

	sm.authService = NewAuthService(deps)
	sm.studentService = NewStudentService(deps)
	sm.professorService = NewProfessorService(deps)
	sm.staffService = NewStaffService(deps)
	sm.accountService = NewAccountService(deps, sm.studentService, sm.professorService, sm.staffService)
	sm.exportService = NewExportService(deps)
	sm.logger.Info("Account services initialized")

	return nil
}

func (sm *serviceManager) mustBeReady(name string) {
	if !sm.initialized {
		panic("service manager not initialized")
	}
	if sm.shutdown {
		panic(name + " service requested after shutdown")
	}
}

// Service getters
func (sm *serviceManager) Credentials() CredentialStore {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("credential")
	return sm.credentials
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("auth")
	return sm.authService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("student")
	return sm.studentService
}

func (sm *serviceManager) Professor() ProfessorService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("professor")
	return sm.professorService
}

func (sm *serviceManager) Staff() StaffService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("staff")
	return sm.staffService
}

func (sm *serviceManager) Accounts() AccountService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("account")
	return sm.accountService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("export")
	return sm.exportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.config.Publisher != nil {
		if err := sm.config.Publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

