package dto

type CreateCompanyDTO struct {
	Name          string `json:"name" validate:"required,min=1,max=255"`
	Code          string `json:"code" validate:"required,org_code"`
	AddressStreet string `json:"address_street" validate:"omitempty,max=255"`
	AddressCity   string `json:"address_city" validate:"omitempty,max=100"`
	AddressState  string `json:"address_state" validate:"omitempty,us_state"`
	AddressZip    string `json:"address_zip" validate:"omitempty,max=20"`
	Phone         string `json:"phone" validate:"omitempty,max=20"`
	Email         string `json:"email" validate:"omitempty,email"`
	Timezone      string `json:"timezone" validate:"omitempty,max=50"`
}

type UpdateCompanyDTO struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=255"`
	AddressStreet *string `json:"address_street" validate:"omitempty,max=255"`
	AddressCity   *string `json:"address_city" validate:"omitempty,max=100"`
	AddressState  *string `json:"address_state" validate:"omitempty,us_state"`
	AddressZip    *string `json:"address_zip" validate:"omitempty,max=20"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Timezone      *string `json:"timezone" validate:"omitempty,max=50"`
	IsActive      *bool   `json:"is_active"`
}
