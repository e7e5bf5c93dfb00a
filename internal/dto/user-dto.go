package dto

import "github.com/google/uuid"

type CreateUserDTO struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Role      string `json:"role" validate:"required,user_role"`

	CompanyID    *uuid.UUID `json:"company_id" validate:"omitempty"`
	DivisionID   *uuid.UUID `json:"division_id" validate:"omitempty"`
	DepartmentID *uuid.UUID `json:"department_id" validate:"omitempty"`
	TerminalID   *uuid.UUID `json:"terminal_id" validate:"omitempty"`

	Theme    string `json:"theme" validate:"omitempty,oneof=light dark"`
	Language string `json:"language" validate:"omitempty,max=10"`
	Timezone string `json:"timezone" validate:"omitempty,max=50"`
}

type UpdateUserDTO struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Role      *string `json:"role" validate:"omitempty,user_role"`

	CompanyID    *uuid.UUID `json:"company_id"`
	DivisionID   *uuid.UUID `json:"division_id"`
	DepartmentID *uuid.UUID `json:"department_id"`
	TerminalID   *uuid.UUID `json:"terminal_id"`

	Theme    *string `json:"theme" validate:"omitempty,oneof=light dark"`
	Language *string `json:"language" validate:"omitempty,max=10"`
	Timezone *string `json:"timezone" validate:"omitempty,max=50"`
	IsActive *bool   `json:"is_active"`
}
