package entities

import (
	"time"

	"launch-tms/internal/authz"
	"launch-tms/pkg/types"

	"github.com/google/uuid"
)

const (
	TrailerTypeDryVan       = "dry_van"
	TrailerTypeFlatbed      = "flatbed"
	TrailerTypeRefrigerated = "refrigerated"
	TrailerTypeTanker       = "tanker"
	TrailerTypeOther        = "other"
)

type Trailer struct {
	ID            uuid.UUID `json:"id" db:"id"`
	TrailerNumber string    `json:"trailer_number" db:"trailer_number"`
	Make          string    `json:"make" db:"make"`
	Model         string    `json:"model" db:"model"`
	Year          *int      `json:"year" db:"year"`
	VIN           string    `json:"vin" db:"vin"`

	TrailerType  string   `json:"trailer_type" db:"trailer_type"`
	CapacityTons *float64 `json:"capacity_tons" db:"capacity_tons"`
	LengthFeet   *float64 `json:"length_feet" db:"length_feet"`

	Status string `json:"status" db:"status"`

	NextInspectionDue  *time.Time `json:"next_inspection_due" db:"next_inspection_due"`
	RegistrationExpiry *time.Time `json:"registration_expiry" db:"registration_expiry"`

	CompanyID      uuid.UUID  `json:"company_id" db:"company_id"`
	DivisionID     *uuid.UUID `json:"division_id" db:"division_id"`
	DepartmentID   *uuid.UUID `json:"department_id" db:"department_id"`
	HomeTerminalID *uuid.UUID `json:"home_terminal_id" db:"home_terminal_id"`

	types.BaseEntity
}

func (t *Trailer) ScopeKeys() authz.ScopeKeys {
	return authz.ScopeKeys{
		CompanyID:    &t.CompanyID,
		DivisionID:   t.DivisionID,
		DepartmentID: t.DepartmentID,
		TerminalID:   t.HomeTerminalID,
	}
}
