package models

import (
	"gorm.io/datatypes"
)

// Academic ranks accepted for Professor.Title
const (
	TitleAssistant = "Assistant"
	TitleAssociate = "Associate"
	TitleFull      = "Full"
)

var professorColumns = []string{"employee_id", "department", "title", "hire_date", "research_area"}

type Professor struct {
	UserID uint `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	EmployeeID   string         `json:"employee_id" gorm:"uniqueIndex;not null;size:20"`
	Department   string         `json:"department" gorm:"not null;size:100"`
	Title        *string        `json:"title" gorm:"size:50"`
	HireDate     datatypes.Date `json:"hire_date" gorm:"not null"`
	ResearchArea *string        `json:"research_area" gorm:"size:200"`
}

func (Professor) TableName() string {
	return "professors"
}

func (p *Professor) AccountRole() UserRole {
	return RoleProfessor
}

func (p *Professor) Columns() []string {
	return professorColumns
}

func (p *Professor) Fields() map[string]interface{} {
	return map[string]interface{}{
		"employee_id":   p.EmployeeID,
		"department":    p.Department,
		"title":         derefString(p.Title),
		"hire_date":     FormatDate(p.HireDate),
		"research_area": derefString(p.ResearchArea),
	}
}

func (p *Professor) attach(user User) {
	p.UserID = user.ID
	p.User = user
}
