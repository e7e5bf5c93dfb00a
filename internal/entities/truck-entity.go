package entities

import (
	"time"

	"launch-tms/internal/authz"
	"launch-tms/pkg/types"

	"github.com/google/uuid"
)

const (
	VehicleStatusAvailable    = "available"
	VehicleStatusAssigned     = "assigned"
	VehicleStatusMaintenance  = "maintenance"
	VehicleStatusOutOfService = "out_of_service"
)

type Truck struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Make         string    `json:"make" db:"make"`
	Model        string    `json:"model" db:"model"`
	Year         int       `json:"year" db:"year"`
	LicensePlate string    `json:"license_plate" db:"license_plate"`
	VIN          string    `json:"vin" db:"vin"`

	Status string `json:"status" db:"status"`

	Mileage            int        `json:"mileage" db:"mileage"`
	NextMaintenanceDue *time.Time `json:"next_maintenance_due" db:"next_maintenance_due"`
	RegistrationExpiry *time.Time `json:"registration_expiry" db:"registration_expiry"`
	InsuranceExpiry    *time.Time `json:"insurance_expiry" db:"insurance_expiry"`

	AssignedDriverID *uuid.UUID `json:"assigned_driver_id" db:"assigned_driver_id"`

	CompanyID      uuid.UUID  `json:"company_id" db:"company_id"`
	DivisionID     *uuid.UUID `json:"division_id" db:"division_id"`
	DepartmentID   *uuid.UUID `json:"department_id" db:"department_id"`
	HomeTerminalID *uuid.UUID `json:"home_terminal_id" db:"home_terminal_id"`

	types.BaseEntity
}

func (t *Truck) IsMaintenanceDue() bool {
	return t.NextMaintenanceDue != nil && !t.NextMaintenanceDue.After(time.Now())
}

func (t *Truck) ScopeKeys() authz.ScopeKeys {
	return authz.ScopeKeys{
		CompanyID:    &t.CompanyID,
		DivisionID:   t.DivisionID,
		DepartmentID: t.DepartmentID,
		TerminalID:   t.HomeTerminalID,
	}
}
