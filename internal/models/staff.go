package models

import (
	"gorm.io/datatypes"
)

var staffColumns = []string{"employee_id", "department", "position", "hire_date", "supervisor_id"}

// Staff holds the staff-specific half of a staff account. SupervisorID points
// at another staff member and is cleared when that member is deleted.
type Staff struct {
	UserID uint `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	EmployeeID   string         `json:"employee_id" gorm:"uniqueIndex;not null;size:20"`
	Department   string         `json:"department" gorm:"not null;size:100"`
	Position     string         `json:"position" gorm:"not null;size:100"`
	HireDate     datatypes.Date `json:"hire_date" gorm:"not null"`
	SupervisorID *uint          `json:"supervisor_id" gorm:"index"`
	Supervisor   *Staff         `json:"-" gorm:"foreignKey:SupervisorID;references:UserID;constraint:OnDelete:SET NULL"`
}

func (Staff) TableName() string {
	return "staff"
}

func (s *Staff) AccountRole() UserRole {
	return RoleStaff
}

func (s *Staff) Columns() []string {
	return staffColumns
}

func (s *Staff) Fields() map[string]interface{} {
	return map[string]interface{}{
		"employee_id":   s.EmployeeID,
		"department":    s.Department,
		"position":      s.Position,
		"hire_date":     FormatDate(s.HireDate),
		"supervisor_id": derefUint(s.SupervisorID),
	}
}

func (s *Staff) attach(user User) {
	s.UserID = user.ID
	s.User = user
}
