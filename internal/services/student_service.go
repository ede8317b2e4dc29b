package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/university-service/internal/models"
)

type studentService struct {
	accountBase
}

func NewStudentService(deps Dependencies) StudentService {
	return &studentService{accountBase: newAccountBase(deps, models.RoleStudent)}
}

func (s *studentService) List(ctx context.Context) ([]*models.Account, error) {
	return s.list(ctx)
}

func (s *studentService) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	return s.get(ctx, id)
}

func (s *studentService) Create(ctx context.Context, req *models.StudentCreateRequest) (*models.Account, error) {
	if err := s.Validator.Validate(req); err != nil {
		return nil, err
	}

	enrolled, err := parseDateField("enrollment_date", req.EnrollmentDate)
	if err != nil {
		return nil, err
	}

	account := models.NewAccount(
		models.User{Email: req.Email, Name: req.Name},
		&models.Student{
			StudentID:      req.StudentID,
			Major:          req.Major,
			EnrollmentDate: enrolled,
			GraduationYear: req.GraduationYear,
			GPA:            req.GPA,
		},
	)

	if err := s.create(ctx, account, req.Password, nil); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *studentService) Update(ctx context.Context, id uint, req *models.StudentPatch) (*models.Account, error) {
	if err := s.Validator.Validate(req); err != nil {
		return nil, err
	}

	return s.update(ctx, id, &req.AccountPatch, func(tx *gorm.DB, account *models.Account) ([]string, error) {
		student := account.Student
		var changed []string

		if req.StudentID != nil {
			student.StudentID = *req.StudentID
			changed = append(changed, "student_id")
		}
		if req.Major != nil {
			student.Major = req.Major
			changed = append(changed, "major")
		}
		if req.EnrollmentDate != nil {
			d, err := parseDateField("enrollment_date", *req.EnrollmentDate)
			if err != nil {
				return nil, err
			}
			student.EnrollmentDate = d
			changed = append(changed, "enrollment_date")
		}
		if req.GraduationYear != nil {
			student.GraduationYear = req.GraduationYear
			changed = append(changed, "graduation_year")
		}
		if req.GPA != nil {
			student.GPA = req.GPA
			changed = append(changed, "gpa")
		}
		return changed, nil
	})
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	return s.delete(ctx, id, nil)
}
