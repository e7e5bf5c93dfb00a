package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type CreateDriverDTO struct {
	FirstName string    `json:"first_name" validate:"required,max=100"`
	LastName  string    `json:"last_name" validate:"required,max=100"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Phone     string    `json:"phone" validate:"required,max=20"`
	HireDate  time.Time `json:"hire_date" validate:"required"`
	Status    string    `json:"status" validate:"omitempty,oneof=active inactive on_leave terminated in_training"`

	LicenseNumber string    `json:"license_number" validate:"required,max=50"`
	LicenseExpiry time.Time `json:"license_expiry" validate:"required"`

	EmergencyContactName  string `json:"emergency_contact_name" validate:"required,max=100"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"required,max=20"`

	CompanyID      uuid.UUID  `json:"company_id" validate:"required"`
	DivisionID     *uuid.UUID `json:"division_id"`
	DepartmentID   *uuid.UUID `json:"department_id"`
	HomeTerminalID *uuid.UUID `json:"home_terminal_id"`
}

type UpdateDriverDTO struct {
	FirstName *string   `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string   `json:"last_name" validate:"omitempty,max=100"`
	Email     *string   `json:"email" validate:"omitempty,email"`
	Phone     *string   `json:"phone" validate:"omitempty,max=20"`
	Status    *string   `json:"status" validate:"omitempty,oneof=active inactive on_leave terminated in_training"`
	HireDate  null.Time `json:"hire_date"`

	LicenseNumber *string   `json:"license_number" validate:"omitempty,max=50"`
	LicenseExpiry null.Time `json:"license_expiry"`

	EmergencyContactName  *string `json:"emergency_contact_name" validate:"omitempty,max=100"`
	EmergencyContactPhone *string `json:"emergency_contact_phone" validate:"omitempty,max=20"`

	DivisionID      *uuid.UUID `json:"division_id"`
	DepartmentID    *uuid.UUID `json:"department_id"`
	HomeTerminalID  *uuid.UUID `json:"home_terminal_id"`
	AssignedTruckID *uuid.UUID `json:"assigned_truck_id"`
}
