package entities

import (
	"time"

	"launch-tms/internal/authz"
	"launch-tms/pkg/types"

	"github.com/google/uuid"
)

const (
	DriverStatusActive     = "active"
	DriverStatusInactive   = "inactive"
	DriverStatusOnLeave    = "on_leave"
	DriverStatusTerminated = "terminated"
	DriverStatusInTraining = "in_training"
)

type Driver struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`

	HireDate time.Time `json:"hire_date" db:"hire_date"`
	Status   string    `json:"status" db:"status"`

	LicenseNumber string    `json:"license_number" db:"license_number"`
	LicenseExpiry time.Time `json:"license_expiry" db:"license_expiry"`

	EmergencyContactName  string `json:"emergency_contact_name" db:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone" db:"emergency_contact_phone"`

	CompanyID      uuid.UUID  `json:"company_id" db:"company_id"`
	DivisionID     *uuid.UUID `json:"division_id" db:"division_id"`
	DepartmentID   *uuid.UUID `json:"department_id" db:"department_id"`
	HomeTerminalID *uuid.UUID `json:"home_terminal_id" db:"home_terminal_id"`

	AssignedTruckID *uuid.UUID `json:"assigned_truck_id" db:"assigned_truck_id"`

	types.BaseEntity
}

func (d *Driver) FullName() string {
	return d.FirstName + " " + d.LastName
}

func (d *Driver) IsLicenseExpired() bool {
	return d.LicenseExpiry.Before(time.Now())
}

func (d *Driver) ScopeKeys() authz.ScopeKeys {
	return authz.ScopeKeys{
		CompanyID:    &d.CompanyID,
		DivisionID:   d.DivisionID,
		DepartmentID: d.DepartmentID,
		TerminalID:   d.HomeTerminalID,
	}
}
