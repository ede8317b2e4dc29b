package models

import (
	"gorm.io/datatypes"
)

var studentColumns = []string{"student_id", "major", "enrollment_date", "graduation_year", "gpa"}

// Student holds the student-specific half of a student account
type Student struct {
	UserID uint `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	StudentID      string         `json:"student_id" gorm:"uniqueIndex;not null;size:20"`
	Major          *string        `json:"major" gorm:"size:100"`
	EnrollmentDate datatypes.Date `json:"enrollment_date" gorm:"not null"`
	GraduationYear *int           `json:"graduation_year"`
	GPA            *float64       `json:"gpa"`
}

func (Student) TableName() string {
	return "students"
}

func (s *Student) AccountRole() UserRole {
	return RoleStudent
}

func (s *Student) Columns() []string {
	return studentColumns
}

func (s *Student) Fields() map[string]interface{} {
	return map[string]interface{}{
		"student_id":      s.StudentID,
		"major":           derefString(s.Major),
		"enrollment_date": FormatDate(s.EnrollmentDate),
		"graduation_year": derefInt(s.GraduationYear),
		"gpa":             derefFloat(s.GPA),
	}
}

func (s *Student) attach(user User) {
	s.UserID = user.ID
	s.User = user
}
