package dto

import "github.com/google/uuid"

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponseDTO struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         UserPublicDTO `json:"user"`
}

type UserPublicDTO struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         string     `json:"role"`
	CompanyID    *uuid.UUID `json:"company_id,omitempty"`
	DivisionID   *uuid.UUID `json:"division_id,omitempty"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	TerminalID   *uuid.UUID `json:"terminal_id,omitempty"`
	Theme        string     `json:"theme"`
	Language     string     `json:"language"`
	Timezone     string     `json:"timezone"`
}
