package entities

import (
	"launch-tms/internal/authz"
	"launch-tms/pkg/types"

	"github.com/google/uuid"
)

type Division struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CompanyID    uuid.UUID `json:"company_id" db:"company_id"`
	Name         string    `json:"name" db:"name"`
	Code         string    `json:"code" db:"code"`
	ManagerEmail string    `json:"manager_email" db:"manager_email"`
	IsActive     bool      `json:"is_active" db:"is_active"`

	types.BaseEntity
}

func (d *Division) ScopeKeys() authz.ScopeKeys {
	return authz.ScopeKeys{CompanyID: &d.CompanyID, DivisionID: &d.ID}
}
