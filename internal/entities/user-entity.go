package entities

import (
	"launch-tms/internal/authz"
	"launch-tms/pkg/types"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Phone     string    `json:"phone" db:"phone"`

	Password string `json:"-" db:"password"`

	Role string `json:"role" db:"role"`

	CompanyID    *uuid.UUID `json:"company_id" db:"company_id"`
	DivisionID   *uuid.UUID `json:"division_id" db:"division_id"`
	DepartmentID *uuid.UUID `json:"department_id" db:"department_id"`
	TerminalID   *uuid.UUID `json:"terminal_id" db:"terminal_id"`

	Theme    string `json:"theme" db:"theme"`
	Language string `json:"language" db:"language"`
	Timezone string `json:"timezone" db:"timezone"`
	IsActive bool   `json:"is_active" db:"is_active"`

	// hydrated ancestry of the assigned units, for scope-consistency checks
	// and ancestor-unit visibility
	DepartmentDivisionID *uuid.UUID `json:"-" db:"-"`
	TerminalDepartmentID *uuid.UUID `json:"-" db:"-"`
	TerminalDivisionID   *uuid.UUID `json:"-" db:"-"`

	types.BaseEntity
	types.SoftDelete
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Principal builds the per-request authorization snapshot from the user row.
func (u *User) Principal() authz.Principal {
	role, ok := authz.ParseRole(u.Role)
	if !ok {
		// unknown role carries no capabilities; scope still resolves fail-closed
		role = authz.Role(u.Role)
	}
	return authz.Principal{
		ID:                   u.ID,
		Role:                 role,
		CompanyID:            u.CompanyID,
		DivisionID:           u.DivisionID,
		DepartmentID:         u.DepartmentID,
		TerminalID:           u.TerminalID,
		DepartmentDivisionID: u.DepartmentDivisionID,
		TerminalDepartmentID: u.TerminalDepartmentID,
		TerminalDivisionID:   u.TerminalDivisionID,
	}
}

func (u *User) ScopeKeys() authz.ScopeKeys {
	return authz.ScopeKeys{
		CompanyID:    u.CompanyID,
		DivisionID:   u.DivisionID,
		DepartmentID: u.DepartmentID,
		TerminalID:   u.TerminalID,
	}
}
