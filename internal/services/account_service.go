package services

import (
	"cmp"
	"context"
	"slices"

	"github.com/SAP-F-2025/university-service/internal/cache"
	"github.com/SAP-F-2025/university-service/internal/models"
)

var accountRoles = []models.UserRole{models.RoleStudent, models.RoleProfessor, models.RoleStaff}

// accountService answers questions across roles. Deletes go through the
// owning role service so role-specific cleanup still runs.
type accountService struct {
	accountBase
	deleters map[models.UserRole]func(ctx context.Context, id uint) error
}

func NewAccountService(deps Dependencies, student StudentService, professor ProfessorService, staff StaffService) AccountService {
	return &accountService{
		accountBase: newAccountBase(deps, ""),
		deleters: map[models.UserRole]func(ctx context.Context, id uint) error{
			models.RoleStudent:   student.Delete,
			models.RoleProfessor: professor.Delete,
			models.RoleStaff:     staff.Delete,
		},
	}
}

// List returns every account ordered by id
func (s *accountService) List(ctx context.Context) ([]*models.Account, error) {
	var accounts []*models.Account
	err := s.Cache.Account.CacheOrExecute(ctx, cache.AccountListKey("all"), &accounts, cache.AccountCacheConfig.TTL,
		func() (interface{}, error) {
			all := []*models.Account{}
			for _, role := range accountRoles {
				byRole, err := listAccounts(ctx, s.Repo, nil, role)
				if err != nil {
					return nil, err
				}
				all = append(all, byRole...)
			}
			slices.SortFunc(all, func(a, b *models.Account) int {
				return cmp.Compare(a.ID(), b.ID())
			})
			return all, nil
		})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetByID returns the account whatever its role
func (s *accountService) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	role, err := s.roleOf(ctx, id)
	if err != nil {
		return nil, err
	}

	var account models.Account
	err = s.Cache.Account.CacheOrExecute(ctx, cache.AccountKey(string(role), id), &account, cache.AccountCacheConfig.TTL,
		func() (interface{}, error) {
			return loadAccount(ctx, s.Repo, nil, role, id)
		})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *accountService) Delete(ctx context.Context, id uint) error {
	role, err := s.roleOf(ctx, id)
	if err != nil {
		return err
	}
	return s.deleters[role](ctx, id)
}

// Stats counts accounts per role
func (s *accountService) Stats(ctx context.Context) (*models.AccountStats, error) {
	var stats models.AccountStats
	err := s.Cache.Account.CacheOrExecute(ctx, cache.AccountStatsKey, &stats, cache.AccountCacheConfig.TTL,
		func() (interface{}, error) {
			counts, err := s.Repo.User().CountByRole(ctx, nil)
			if err != nil {
				return nil, translateStoreError(err, err)
			}
			out := models.AccountStats{
				TotalStudents:   counts[models.RoleStudent],
				TotalProfessors: counts[models.RoleProfessor],
				TotalStaff:      counts[models.RoleStaff],
			}
			out.TotalAccounts = out.TotalStudents + out.TotalProfessors + out.TotalStaff
			return out, nil
		})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *accountService) roleOf(ctx context.Context, id uint) (models.UserRole, error) {
	user, err := s.Repo.User().GetByID(ctx, nil, id)
	if err != nil {
		return "", translateStoreError(err, err)
	}
	if _, ok := s.deleters[user.Role]; !ok {
		s.Logger.ErrorContext(ctx, "User has unknown role", "user_id", id, "role", user.Role)
		return "", ErrNotFound
	}
	return user.Role, nil
}
