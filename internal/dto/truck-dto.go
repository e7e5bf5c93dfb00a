package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type CreateTruckDTO struct {
	Make         string `json:"make" validate:"required,max=50"`
	Model        string `json:"model" validate:"required,max=50"`
	Year         int    `json:"year" validate:"required,min=1980,max=2100"`
	LicensePlate string `json:"license_plate" validate:"required,max=20"`
	VIN          string `json:"vin" validate:"required,len=17"`
	Status       string `json:"status" validate:"omitempty,oneof=available assigned maintenance out_of_service"`

	Mileage            int       `json:"mileage" validate:"min=0"`
	NextMaintenanceDue null.Time `json:"next_maintenance_due"`
	RegistrationExpiry null.Time `json:"registration_expiry"`
	InsuranceExpiry    null.Time `json:"insurance_expiry"`

	CompanyID      uuid.UUID  `json:"company_id" validate:"required"`
	DivisionID     *uuid.UUID `json:"division_id"`
	DepartmentID   *uuid.UUID `json:"department_id"`
	HomeTerminalID *uuid.UUID `json:"home_terminal_id"`
}

type UpdateTruckDTO struct {
	Make         *string `json:"make" validate:"omitempty,max=50"`
	Model        *string `json:"model" validate:"omitempty,max=50"`
	Year         *int    `json:"year" validate:"omitempty,min=1980,max=2100"`
	LicensePlate *string `json:"license_plate" validate:"omitempty,max=20"`
	VIN          *string `json:"vin" validate:"omitempty,len=17"`
	Status       *string `json:"status" validate:"omitempty,oneof=available assigned maintenance out_of_service"`

	Mileage            *int      `json:"mileage" validate:"omitempty,min=0"`
	NextMaintenanceDue null.Time `json:"next_maintenance_due"`
	RegistrationExpiry null.Time `json:"registration_expiry"`
	InsuranceExpiry    null.Time `json:"insurance_expiry"`

	AssignedDriverID *uuid.UUID `json:"assigned_driver_id"`

	DivisionID     *uuid.UUID `json:"division_id"`
	DepartmentID   *uuid.UUID `json:"department_id"`
	HomeTerminalID *uuid.UUID `json:"home_terminal_id"`
}

type CreateMaintenanceRecordDTO struct {
	MaintenanceType string    `json:"maintenance_type" validate:"required,oneof=routine repair inspection emergency"`
	Description     string    `json:"description" validate:"required"`
	PerformedBy     string    `json:"performed_by" validate:"required,max=255"`
	PerformedDate   time.Time `json:"performed_date" validate:"required"`

	MileageAtService *int `json:"mileage_at_service" validate:"omitempty,min=0"`

	Cost       float64  `json:"cost" validate:"min=0"`
	PartsCost  float64  `json:"parts_cost" validate:"min=0"`
	LaborCost  float64  `json:"labor_cost" validate:"min=0"`
	LaborHours *float64 `json:"labor_hours" validate:"omitempty,min=0"`

	Notes string `json:"notes"`
}
