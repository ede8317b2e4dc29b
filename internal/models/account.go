package models

import (
	"errors"
	"fmt"
)

var (
	ErrProfileMissing  = errors.New("account has no profile")
	ErrProfileMismatch = errors.New("account profile does not match role")
)

var baseColumns = []string{"id", "email", "name", "role", "created_at", "updated_at"}

// Profile is the role-specific half of an account
type Profile interface {
	AccountRole() UserRole
	Columns() []string
	Fields() map[string]interface{}
	attach(user User)
}

// Account is a User together with exactly one role profile. It is created
// and deleted as a unit.
type Account struct {
	User      User       `json:"user"`
	Student   *Student   `json:"student,omitempty"`
	Professor *Professor `json:"professor,omitempty"`
	Staff     *Staff     `json:"staff,omitempty"`
}

// NewAccount pairs a user with its profile and sets the discriminator
func NewAccount(user User, profile Profile) *Account {
	user.Role = profile.AccountRole()
	acc := &Account{User: user}
	switch p := profile.(type) {
	case *Student:
		acc.Student = p
	case *Professor:
		acc.Professor = p
	case *Staff:
		acc.Staff = p
	}
	return acc
}

func (a *Account) ID() uint {
	return a.User.ID
}

func (a *Account) Role() UserRole {
	return a.User.Role
}

// Profile returns the populated profile or nil
func (a *Account) Profile() Profile {
	switch {
	case a.Student != nil:
		return a.Student
	case a.Professor != nil:
		return a.Professor
	case a.Staff != nil:
		return a.Staff
	}
	return nil
}

// Validate checks that exactly one profile is set and that it matches the role
func (a *Account) Validate() error {
	set := 0
	for _, present := range []bool{a.Student != nil, a.Professor != nil, a.Staff != nil} {
		if present {
			set++
		}
	}
	if set == 0 {
		return ErrProfileMissing
	}
	if set > 1 {
		return fmt.Errorf("%w: %d profiles set", ErrProfileMismatch, set)
	}
	if p := a.Profile(); p.AccountRole() != a.User.Role {
		return fmt.Errorf("%w: role %q, profile %q", ErrProfileMismatch, a.User.Role, p.AccountRole())
	}
	return nil
}

// SyncProfile copies the user key into the profile after the user row is written
func (a *Account) SyncProfile() {
	if p := a.Profile(); p != nil {
		p.attach(a.User)
	}
}

// ToMap flattens the account into base fields followed by profile fields.
// Profile keys win on collision.
func (a *Account) ToMap() map[string]interface{} {
	out := map[string]interface{}{
		"id":         a.User.ID,
		"email":      a.User.Email,
		"name":       a.User.Name,
		"role":       a.User.Role,
		"created_at": a.User.CreatedAt,
		"updated_at": a.User.UpdatedAt,
	}
	if p := a.Profile(); p != nil {
		for k, v := range p.Fields() {
			out[k] = v
		}
	}
	return out
}

// AccountsToMaps flattens a list of accounts
func AccountsToMaps(accounts []*Account) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, acc.ToMap())
	}
	return out
}

// ColumnsForRole lists the flattened keys of an account of the given role, in order
func ColumnsForRole(role UserRole) []string {
	cols := append([]string{}, baseColumns...)
	switch role {
	case RoleStudent:
		cols = append(cols, studentColumns...)
	case RoleProfessor:
		cols = append(cols, professorColumns...)
	case RoleStaff:
		cols = append(cols, staffColumns...)
	}
	return cols
}
