package dto

import (
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type CreateTrailerDTO struct {
	TrailerNumber string `json:"trailer_number" validate:"required,max=20"`
	Make          string `json:"make" validate:"omitempty,max=50"`
	Model         string `json:"model" validate:"omitempty,max=50"`
	Year          *int   `json:"year" validate:"omitempty,min=1980,max=2100"`
	VIN           string `json:"vin" validate:"required,len=17"`

	TrailerType string `json:"trailer_type" validate:"required,oneof=dry_van flatbed refrigerated tanker other"`
	Status      string `json:"status" validate:"omitempty,oneof=available assigned maintenance out_of_service"`

	CapacityTons null.Float64 `json:"capacity_tons"`
	LengthFeet   null.Float64 `json:"length_feet"`

	NextInspectionDue  null.Time `json:"next_inspection_due"`
	RegistrationExpiry null.Time `json:"registration_expiry"`

	CompanyID      uuid.UUID  `json:"company_id" validate:"required"`
	DivisionID     *uuid.UUID `json:"division_id"`
	DepartmentID   *uuid.UUID `json:"department_id"`
	HomeTerminalID *uuid.UUID `json:"home_terminal_id"`
}

type UpdateTrailerDTO struct {
	TrailerNumber *string `json:"trailer_number" validate:"omitempty,max=20"`
	Make          *string `json:"make" validate:"omitempty,max=50"`
	Model         *string `json:"model" validate:"omitempty,max=50"`
	Year          *int    `json:"year" validate:"omitempty,min=1980,max=2100"`
	VIN           *string `json:"vin" validate:"omitempty,len=17"`

	TrailerType *string `json:"trailer_type" validate:"omitempty,oneof=dry_van flatbed refrigerated tanker other"`
	Status      *string `json:"status" validate:"omitempty,oneof=available assigned maintenance out_of_service"`

	CapacityTons null.Float64 `json:"capacity_tons"`
	LengthFeet   null.Float64 `json:"length_feet"`

	NextInspectionDue  null.Time `json:"next_inspection_due"`
	RegistrationExpiry null.Time `json:"registration_expiry"`

	DivisionID     *uuid.UUID `json:"division_id"`
	DepartmentID   *uuid.UUID `json:"department_id"`
	HomeTerminalID *uuid.UUID `json:"home_terminal_id"`
}
