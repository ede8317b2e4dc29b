package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/university-service/internal/cache"
	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/repositories"
	"github.com/SAP-F-2025/university-service/internal/validator"
)

type staffService struct {
	accountBase
}

func NewStaffService(deps Dependencies) StaffService {
	return &staffService{accountBase: newAccountBase(deps, models.RoleStaff)}
}

func (s *staffService) List(ctx context.Context) ([]*models.Account, error) {
	return s.list(ctx)
}

func (s *staffService) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	return s.get(ctx, id)
}

func (s *staffService) Create(ctx context.Context, req *models.StaffCreateRequest) (*models.Account, error) {
	if err := s.Validator.Validate(req); err != nil {
		return nil, err
	}

	hired, err := parseDateField("hire_date", req.HireDate)
	if err != nil {
		return nil, err
	}

	supervisorID := req.SupervisorID
	if supervisorID != nil && *supervisorID == 0 {
		supervisorID = nil
	}

	account := models.NewAccount(
		models.User{Email: req.Email, Name: req.Name},
		&models.Staff{
			EmployeeID:   req.EmployeeID,
			Department:   req.Department,
			Position:     req.Position,
			HireDate:     hired,
			SupervisorID: supervisorID,
		},
	)

	// a new member has no subordinates, so only existence needs checking
	err = s.create(ctx, account, req.Password, func(tx *gorm.DB) error {
		if supervisorID == nil {
			return nil
		}
		return s.checkSupervisor(ctx, tx, 0, *supervisorID)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *staffService) Update(ctx context.Context, id uint, req *models.StaffPatch) (*models.Account, error) {
	if err := s.Validator.Validate(req); err != nil {
		return nil, err
	}

	return s.update(ctx, id, &req.AccountPatch, func(tx *gorm.DB, account *models.Account) ([]string, error) {
		staff := account.Staff
		var changed []string

		if req.EmployeeID != nil {
			staff.EmployeeID = *req.EmployeeID
			changed = append(changed, "employee_id")
		}
		if req.Department != nil {
			staff.Department = *req.Department
			changed = append(changed, "department")
		}
		if req.Position != nil {
			staff.Position = *req.Position
			changed = append(changed, "position")
		}
		if req.HireDate != nil {
			d, err := parseDateField("hire_date", *req.HireDate)
			if err != nil {
				return nil, err
			}
			staff.HireDate = d
			changed = append(changed, "hire_date")
		}
		if req.SupervisorID != nil {
			if *req.SupervisorID == 0 {
				staff.SupervisorID = nil
			} else {
				if err := s.checkSupervisor(ctx, tx, id, *req.SupervisorID); err != nil {
					return nil, err
				}
				supervisorID := *req.SupervisorID
				staff.SupervisorID = &supervisorID
			}
			staff.Supervisor = nil
			changed = append(changed, "supervisor_id")
		}
		return changed, nil
	})
}

// Delete also detaches the member's subordinates in the same transaction
func (s *staffService) Delete(ctx context.Context, id uint) error {
	var detached int64
	err := s.delete(ctx, id, func(tx *gorm.DB) error {
		n, err := s.Repo.Staff().ClearSupervisor(ctx, tx, id)
		if err != nil {
			return translateStoreError(err, err)
		}
		detached = n
		return nil
	})
	if err != nil {
		return err
	}

	if detached > 0 {
		s.Logger.InfoContext(ctx, "Detached subordinates of deleted staff member", "account_id", id, "count", detached)
		cache.InvalidateRoleCache(ctx, s.Cache, string(models.RoleStaff))
	}
	return nil
}

// checkSupervisor verifies that supervisorID names an existing staff member
// and that making it the supervisor of staffID does not close a loop.
// staffID is 0 for a member that does not exist yet.
func (s *staffService) checkSupervisor(ctx context.Context, tx *gorm.DB, staffID, supervisorID uint) error {
	if supervisorID == staffID {
		return validator.Single("supervisor_id", "cannot be the staff member itself", supervisorID, "supervisor_self")
	}

	visited := map[uint]bool{}
	current := &supervisorID
	for current != nil {
		if *current == staffID {
			return validator.Single("supervisor_id", "would create a supervision cycle", supervisorID, "supervisor_cycle")
		}
		if visited[*current] {
			// pre-existing loop above this member; it cannot reach staffID
			break
		}
		visited[*current] = true

		next, err := s.Repo.Staff().GetSupervisorID(ctx, tx, *current)
		if err != nil {
			if repositories.IsNotFoundError(err) && *current == supervisorID {
				return validator.Single("supervisor_id", "does not reference an existing staff member", supervisorID, "supervisor_exists")
			}
			return fmt.Errorf("walk supervisor chain: %w", translateStoreError(err, err))
		}
		current = next
	}
	return nil
}
