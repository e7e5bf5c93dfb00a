package entities

import (
	"launch-tms/internal/authz"
	"launch-tms/pkg/types"

	"github.com/google/uuid"
)

type Department struct {
	ID           uuid.UUID `json:"id" db:"id"`
	DivisionID   uuid.UUID `json:"division_id" db:"division_id"`
	Name         string    `json:"name" db:"name"`
	Code         string    `json:"code" db:"code"`
	ManagerEmail string    `json:"manager_email" db:"manager_email"`
	IsActive     bool      `json:"is_active" db:"is_active"`

	// hydrated from the divisions join
	CompanyID uuid.UUID `json:"company_id" db:"-"`

	types.BaseEntity
}

func (d *Department) ScopeKeys() authz.ScopeKeys {
	return authz.ScopeKeys{CompanyID: &d.CompanyID, DivisionID: &d.DivisionID, DepartmentID: &d.ID}
}
