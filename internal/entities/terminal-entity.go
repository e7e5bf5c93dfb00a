package entities

import (
	"launch-tms/internal/authz"
	"launch-tms/pkg/types"

	"github.com/google/uuid"
)

type Terminal struct {
	ID           uuid.UUID `json:"id" db:"id"`
	DepartmentID uuid.UUID `json:"department_id" db:"department_id"`
	Name         string    `json:"name" db:"name"`
	Code         string    `json:"code" db:"code"`

	AddressStreet string `json:"address_street" db:"address_street"`
	AddressCity   string `json:"address_city" db:"address_city"`
	AddressState  string `json:"address_state" db:"address_state"`
	AddressZip    string `json:"address_zip" db:"address_zip"`
	Phone         string `json:"phone" db:"phone"`
	ManagerEmail  string `json:"manager_email" db:"manager_email"`

	IsActive bool `json:"is_active" db:"is_active"`

	// hydrated from the departments/divisions joins
	DivisionID uuid.UUID `json:"division_id" db:"-"`
	CompanyID  uuid.UUID `json:"company_id" db:"-"`

	types.BaseEntity
}

func (t *Terminal) ScopeKeys() authz.ScopeKeys {
	return authz.ScopeKeys{
		CompanyID:    &t.CompanyID,
		DivisionID:   &t.DivisionID,
		DepartmentID: &t.DepartmentID,
		TerminalID:   &t.ID,
	}
}
