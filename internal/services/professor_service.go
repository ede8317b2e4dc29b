package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/university-service/internal/models"
)

type professorService struct {
	accountBase
}

func NewProfessorService(deps Dependencies) ProfessorService {
	return &professorService{accountBase: newAccountBase(deps, models.RoleProfessor)}
}

func (s *professorService) List(ctx context.Context) ([]*models.Account, error) {
	return s.list(ctx)
}

func (s *professorService) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	return s.get(ctx, id)
}

func (s *professorService) Create(ctx context.Context, req *models.ProfessorCreateRequest) (*models.Account, error) {
	if err := s.Validator.Validate(req); err != nil {
		return nil, err
	}

	hired, err := parseDateField("hire_date", req.HireDate)
	if err != nil {
		return nil, err
	}

	account := models.NewAccount(
		models.User{Email: req.Email, Name: req.Name},
		&models.Professor{
			EmployeeID:   req.EmployeeID,
			Department:   req.Department,
			Title:        req.Title,
			HireDate:     hired,
			ResearchArea: req.ResearchArea,
		},
	)

	if err := s.create(ctx, account, req.Password, nil); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *professorService) Update(ctx context.Context, id uint, req *models.ProfessorPatch) (*models.Account, error) {
	if err := s.Validator.Validate(req); err != nil {
		return nil, err
	}

	return s.update(ctx, id, &req.AccountPatch, func(tx *gorm.DB, account *models.Account) ([]string, error) {
		professor := account.Professor
		var changed []string

		if req.EmployeeID != nil {
			professor.EmployeeID = *req.EmployeeID
			changed = append(changed, "employee_id")
		}
		if req.Department != nil {
			professor.Department = *req.Department
			changed = append(changed, "department")
		}
		if req.Title != nil {
			professor.Title = req.Title
			changed = append(changed, "title")
		}
		if req.HireDate != nil {
			d, err := parseDateField("hire_date", *req.HireDate)
			if err != nil {
				return nil, err
			}
			professor.HireDate = d
			changed = append(changed, "hire_date")
		}
		if req.ResearchArea != nil {
			professor.ResearchArea = req.ResearchArea
			changed = append(changed, "research_area")
		}
		return changed, nil
	})
}

func (s *professorService) Delete(ctx context.Context, id uint) error {
	return s.delete(ctx, id, nil)
}
