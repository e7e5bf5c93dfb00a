package dto

import "github.com/google/uuid"

type CreateDivisionDTO struct {
	CompanyID    uuid.UUID `json:"company_id" validate:"required"`
	Name         string    `json:"name" validate:"required,min=1,max=255"`
	Code         string    `json:"code" validate:"required,org_code"`
	ManagerEmail string    `json:"manager_email" validate:"omitempty,email"`
}

type UpdateDivisionDTO struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	ManagerEmail *string `json:"manager_email" validate:"omitempty,email"`
	IsActive     *bool   `json:"is_active"`
}
