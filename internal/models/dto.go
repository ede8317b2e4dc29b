package models

import "time"

// ===== AUTH =====

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success     bool                   `json:"success"`
	AccessToken string                 `json:"access_token"`
	TokenType   string                 `json:"token_type"`
	ExpiresAt   time.Time              `json:"expires_at"`
	User        map[string]interface{} `json:"user"`
}

// AccountStats counts accounts per role
type AccountStats struct {
	TotalStudents   int64 `json:"total_students"`
	TotalProfessors int64 `json:"total_professors"`
	TotalStaff      int64 `json:"total_staff"`
	TotalAccounts   int64 `json:"total_accounts"`
}

// ===== CREATE REQUESTS =====

// AccountFields are the identity fields shared by every create request
type AccountFields struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

type StudentCreateRequest struct {
	AccountFields
	StudentID      string   `json:"student_id" validate:"required,max=20"`
	Major          *string  `json:"major" validate:"omitnil,max=100"`
	EnrollmentDate string   `json:"enrollment_date" validate:"required,iso_date"`
	GraduationYear *int     `json:"graduation_year" validate:"omitnil,min=1900,max=2200"`
	GPA            *float64 `json:"gpa" validate:"omitnil,min=0,max=5"`
}

type ProfessorCreateRequest struct {
	AccountFields
	EmployeeID   string  `json:"employee_id" validate:"required,max=20"`
	Department   string  `json:"department" validate:"required,max=100"`
	Title        *string `json:"title" validate:"omitnil,professor_title"`
	HireDate     string  `json:"hire_date" validate:"required,iso_date"`
	ResearchArea *string `json:"research_area" validate:"omitnil,max=200"`
}

type StaffCreateRequest struct {
	AccountFields
	EmployeeID   string `json:"employee_id" validate:"required,max=20"`
	Department   string `json:"department" validate:"required,max=100"`
	Position     string `json:"position" validate:"required,max=100"`
	HireDate     string `json:"hire_date" validate:"required,iso_date"`
	SupervisorID *uint  `json:"supervisor_id"`
}

// ===== PATCH REQUESTS =====
// Only the listed keys can change; anything else in the body is ignored.

type AccountPatch struct {
	Email    *string `json:"email" validate:"omitnil,email,max=255"`
	Password *string `json:"password" validate:"omitnil,min=1,max=72"`
	Name     *string `json:"name" validate:"omitnil,max=100"`
}

type StudentPatch struct {
	AccountPatch
	StudentID      *string  `json:"student_id" validate:"omitnil,min=1,max=20"`
	Major          *string  `json:"major" validate:"omitnil,max=100"`
	EnrollmentDate *string  `json:"enrollment_date" validate:"omitnil,iso_date"`
	GraduationYear *int     `json:"graduation_year" validate:"omitnil,min=1900,max=2200"`
	GPA            *float64 `json:"gpa" validate:"omitnil,min=0,max=5"`
}

type ProfessorPatch struct {
	AccountPatch
	EmployeeID   *string `json:"employee_id" validate:"omitnil,min=1,max=20"`
	Department   *string `json:"department" validate:"omitnil,min=1,max=100"`
	Title        *string `json:"title" validate:"omitnil,professor_title"`
	HireDate     *string `json:"hire_date" validate:"omitnil,iso_date"`
	ResearchArea *string `json:"research_area" validate:"omitnil,max=200"`
}

// StaffPatch treats supervisor_id 0 as "clear the supervisor"
type StaffPatch struct {
	AccountPatch
	EmployeeID   *string `json:"employee_id" validate:"omitnil,min=1,max=20"`
	Department   *string `json:"department" validate:"omitnil,min=1,max=100"`
	Position     *string `json:"position" validate:"omitnil,min=1,max=100"`
	HireDate     *string `json:"hire_date" validate:"omitnil,iso_date"`
	SupervisorID *uint   `json:"supervisor_id"`
}
