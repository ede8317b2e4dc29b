package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/university-service/internal/auth"
	"github.com/SAP-F-2025/university-service/internal/cache"
	"github.com/SAP-F-2025/university-service/internal/events"
	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/repositories"
	"github.com/SAP-F-2025/university-service/internal/validator"
)

// Dependencies are shared by every account service
type Dependencies struct {
	Repo        repositories.Repository
	Logger      *slog.Logger
	Validator   *validator.Validator
	Credentials CredentialStore
	Tokens      *auth.TokenService
	Cache       *cache.CacheManager
	Publisher   events.EventPublisher
}

// accountBase carries the plumbing common to the per-role services
type accountBase struct {
	Dependencies
	role models.UserRole
}

func newAccountBase(deps Dependencies, role models.UserRole) accountBase {
	if deps.Cache == nil {
		deps.Cache = cache.NewCacheManager(nil)
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NoopEventPublisher{}
	}
	return accountBase{Dependencies: deps, role: role}
}

// NormalizeEmail trims and lowercases an address so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (b *accountBase) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return b.Repo.WithTransaction(ctx, fn)
}

// list returns all accounts of the service's role, read through the cache
func (b *accountBase) list(ctx context.Context) ([]*models.Account, error) {
	var accounts []*models.Account
	err := b.Cache.Account.CacheOrExecute(ctx, cache.AccountListKey(string(b.role)), &accounts, cache.AccountCacheConfig.TTL,
		func() (interface{}, error) {
			return listAccounts(ctx, b.Repo, nil, b.role)
		})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// get returns one account of the service's role, read through the cache
func (b *accountBase) get(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	err := b.Cache.Account.CacheOrExecute(ctx, cache.AccountKey(string(b.role), id), &account, cache.AccountCacheConfig.TTL,
		func() (interface{}, error) {
			return loadAccount(ctx, b.Repo, nil, b.role, id)
		})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// create registers the account inside one transaction. check runs first in
// the same transaction.
func (b *accountBase) create(ctx context.Context, account *models.Account, password string, check func(tx *gorm.DB) error) error {
	err := b.withTx(ctx, func(tx *gorm.DB) error {
		if check != nil {
			if err := check(tx); err != nil {
				return err
			}
		}
		return b.Credentials.Register(ctx, tx, account, password)
	})
	if err != nil {
		return err
	}

	b.Logger.InfoContext(ctx, "Account created", "account_id", account.ID(), "role", b.role)
	b.afterCommit(ctx, events.AccountCreated, account)
	return nil
}

// update loads the account, lets apply mutate it and saves both rows in one
// transaction. apply returns the names of the changed fields.
func (b *accountBase) update(ctx context.Context, id uint, patch *models.AccountPatch, apply func(tx *gorm.DB, account *models.Account) ([]string, error)) (*models.Account, error) {
	var account *models.Account
	var changed []string

	err := b.withTx(ctx, func(tx *gorm.DB) error {
		acc, err := loadAccount(ctx, b.Repo, tx, b.role, id)
		if err != nil {
			return err
		}

		changed, err = b.applyAccountPatch(ctx, tx, acc, patch)
		if err != nil {
			return err
		}

		profileChanged, err := apply(tx, acc)
		if err != nil {
			return err
		}
		changed = append(changed, profileChanged...)

		if err := saveAccount(ctx, b.Repo, tx, acc); err != nil {
			return err
		}
		account = acc
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.Logger.InfoContext(ctx, "Account updated", "account_id", id, "role", b.role, "fields", changed)
	b.afterCommit(ctx, events.AccountUpdated, account, changed...)
	return account, nil
}

// delete removes the profile and users rows in one transaction. before runs
// inside the transaction ahead of the deletes.
func (b *accountBase) delete(ctx context.Context, id uint, before func(tx *gorm.DB) error) error {
	var account *models.Account

	err := b.withTx(ctx, func(tx *gorm.DB) error {
		acc, err := loadAccount(ctx, b.Repo, tx, b.role, id)
		if err != nil {
			return err
		}
		if before != nil {
			if err := before(tx); err != nil {
				return err
			}
		}
		if err := deleteAccount(ctx, b.Repo, tx, acc); err != nil {
			return err
		}
		account = acc
		return nil
	})
	if err != nil {
		return err
	}

	if b.Tokens != nil {
		if err := b.Tokens.RevokeAccount(ctx, id); err != nil {
			b.Logger.WarnContext(ctx, "Failed to revoke tokens of deleted account", "account_id", id, "error", err)
		}
	}

	b.Logger.InfoContext(ctx, "Account deleted", "account_id", id, "role", b.role)
	b.afterCommit(ctx, events.AccountDeleted, account)
	return nil
}

// applyAccountPatch applies the identity fields of a patch
func (b *accountBase) applyAccountPatch(ctx context.Context, tx *gorm.DB, account *models.Account, patch *models.AccountPatch) ([]string, error) {
	var changed []string

	if patch.Email != nil {
		email := NormalizeEmail(*patch.Email)
		if email != account.User.Email {
			exists, err := b.Repo.User().ExistsByEmail(ctx, tx, email)
			if err != nil {
				return nil, translateStoreError(err, ErrDuplicateEmail)
			}
			if exists {
				return nil, ErrDuplicateEmail
			}
			account.User.Email = email
			changed = append(changed, "email")
		}
	}

	if patch.Name != nil {
		account.User.Name = *patch.Name
		changed = append(changed, "name")
	}

	if patch.Password != nil {
		if err := b.Credentials.SetPassword(account, *patch.Password); err != nil {
			return nil, err
		}
		changed = append(changed, "password")
	}

	return changed, nil
}

// afterCommit drops stale cache entries and publishes the event. Neither can
// fail the request. Updates and deletes invalidate a second time to catch
// reads that raced the commit.
func (b *accountBase) afterCommit(ctx context.Context, eventType string, account *models.Account, fields ...string) {
	role := string(account.Role())
	cache.InvalidateAccountCache(ctx, b.Cache, role, account.ID())
	if eventType != events.AccountCreated {
		cache.InvalidateAccountCacheLater(ctx, b.Cache, role, account.ID(), cache.AccountCacheConfig.Reinvalidate)
	}
	b.publish(ctx, events.NewAccountEvent(eventType, account, fields...))
}

func (b *accountBase) publish(ctx context.Context, event *events.Event) {
	if err := b.Publisher.Publish(ctx, event); err != nil {
		b.Logger.ErrorContext(ctx, "Failed to publish event", "event_type", event.Type, "error", err)
	}
}

// ===== STORE HELPERS =====

// loadAccount reads the profile of the given role together with its user.
// An id that belongs to another role is not found.
func loadAccount(ctx context.Context, repo repositories.Repository, tx *gorm.DB, role models.UserRole, id uint) (*models.Account, error) {
	var (
		profile models.Profile
		user    models.User
		err     error
	)

	switch role {
	case models.RoleStudent:
		var p *models.Student
		if p, err = repo.Student().GetByUserID(ctx, tx, id); err == nil {
			profile, user = p, p.User
		}
	case models.RoleProfessor:
		var p *models.Professor
		if p, err = repo.Professor().GetByUserID(ctx, tx, id); err == nil {
			profile, user = p, p.User
		}
	case models.RoleStaff:
		var p *models.Staff
		if p, err = repo.Staff().GetByUserID(ctx, tx, id); err == nil {
			profile, user = p, p.User
		}
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if err != nil {
		return nil, translateStoreError(err, err)
	}

	return models.NewAccount(user, profile), nil
}

func listAccounts(ctx context.Context, repo repositories.Repository, tx *gorm.DB, role models.UserRole) ([]*models.Account, error) {
	var accounts []*models.Account

	switch role {
	case models.RoleStudent:
		profiles, err := repo.Student().List(ctx, tx)
		if err != nil {
			return nil, translateStoreError(err, err)
		}
		for _, p := range profiles {
			accounts = append(accounts, models.NewAccount(p.User, p))
		}
	case models.RoleProfessor:
		profiles, err := repo.Professor().List(ctx, tx)
		if err != nil {
			return nil, translateStoreError(err, err)
		}
		for _, p := range profiles {
			accounts = append(accounts, models.NewAccount(p.User, p))
		}
	case models.RoleStaff:
		profiles, err := repo.Staff().List(ctx, tx)
		if err != nil {
			return nil, translateStoreError(err, err)
		}
		for _, p := range profiles {
			accounts = append(accounts, models.NewAccount(p.User, p))
		}
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	if accounts == nil {
		accounts = []*models.Account{}
	}
	return accounts, nil
}

func createProfile(ctx context.Context, repo repositories.Repository, tx *gorm.DB, account *models.Account) error {
	var err error
	switch {
	case account.Student != nil:
		err = repo.Student().Create(ctx, tx, account.Student)
	case account.Professor != nil:
		err = repo.Professor().Create(ctx, tx, account.Professor)
	case account.Staff != nil:
		err = repo.Staff().Create(ctx, tx, account.Staff)
	default:
		return models.ErrProfileMissing
	}
	return translateStoreError(err, ErrDuplicateIdentifier)
}

// saveAccount writes both rows of an existing account
func saveAccount(ctx context.Context, repo repositories.Repository, tx *gorm.DB, account *models.Account) error {
	if err := repo.User().Update(ctx, tx, &account.User); err != nil {
		return translateStoreError(err, ErrDuplicateEmail)
	}
	account.SyncProfile()

	var err error
	switch {
	case account.Student != nil:
		err = repo.Student().Update(ctx, tx, account.Student)
	case account.Professor != nil:
		err = repo.Professor().Update(ctx, tx, account.Professor)
	case account.Staff != nil:
		err = repo.Staff().Update(ctx, tx, account.Staff)
	default:
		return models.ErrProfileMissing
	}
	return translateStoreError(err, ErrDuplicateIdentifier)
}

// deleteAccount removes the profile row first, then the users row
func deleteAccount(ctx context.Context, repo repositories.Repository, tx *gorm.DB, account *models.Account) error {
	var err error
	switch account.Role() {
	case models.RoleStudent:
		err = repo.Student().Delete(ctx, tx, account.ID())
	case models.RoleProfessor:
		err = repo.Professor().Delete(ctx, tx, account.ID())
	case models.RoleStaff:
		err = repo.Staff().Delete(ctx, tx, account.ID())
	default:
		return fmt.Errorf("unknown role %q", account.Role())
	}
	if err != nil {
		return translateStoreError(err, err)
	}
	if err := repo.User().Delete(ctx, tx, account.ID()); err != nil {
		return translateStoreError(err, err)
	}
	return nil
}

// parseDateField parses a YYYY-MM-DD value, reporting failures against field
func parseDateField(field, value string) (datatypes.Date, error) {
	d, err := models.ParseDate(value)
	if err != nil {
		return datatypes.Date{}, validator.Single(field, "must be a date in YYYY-MM-DD format", value, "iso_date")
	}
	return d, nil
}
