package entities

import (
	"launch-tms/internal/authz"
	"launch-tms/pkg/types"

	"github.com/google/uuid"
)

type Company struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
	Code string    `json:"code" db:"code"`

	AddressStreet string `json:"address_street" db:"address_street"`
	AddressCity   string `json:"address_city" db:"address_city"`
	AddressState  string `json:"address_state" db:"address_state"`
	AddressZip    string `json:"address_zip" db:"address_zip"`
	Phone         string `json:"phone" db:"phone"`
	Email         string `json:"email" db:"email"`

	Timezone string `json:"timezone" db:"timezone"`
	IsActive bool   `json:"is_active" db:"is_active"`

	types.BaseEntity
}

func (c *Company) ScopeKeys() authz.ScopeKeys {
	return authz.ScopeKeys{CompanyID: &c.ID}
}
