package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleProfessor UserRole = "professor"
	RoleStaff     UserRole = "staff"
)

// IsValid reports whether r is one of the known account roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleStaff:
		return true
	}
	return false
}

// User is the identity half of every account. The role column is the
// discriminator that selects which profile table holds the rest.
type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Name         string   `json:"name" gorm:"size:100"`
	Role         UserRole `json:"role" gorm:"not null;size:20;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
