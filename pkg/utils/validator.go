package utils

import "github.com/go-playground/validator/v10"

// Validator adapts go-playground/validator to the echo.Validator interface.
type Validator struct {
	validate *validator.Validate
}

func NewValidator(validate *validator.Validate) *Validator {
	return &Validator{validate: validate}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
