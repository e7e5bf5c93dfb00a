package dto

import "github.com/google/uuid"

type CreateDepartmentDTO struct {
	DivisionID   uuid.UUID `json:"division_id" validate:"required"`
	Name         string    `json:"name" validate:"required,min=1,max=255"`
	Code         string    `json:"code" validate:"required,org_code"`
	ManagerEmail string    `json:"manager_email" validate:"omitempty,email"`
}

type UpdateDepartmentDTO struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	ManagerEmail *string `json:"manager_email" validate:"omitempty,email"`
	IsActive     *bool   `json:"is_active"`
}
