package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	orgCodeRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{0,9}$`)
	usStateRegex = regexp.MustCompile(`^[A-Z]{2}$`)
)

// RegisterCustomValidations wires the project-specific validation tags into
// the shared validator instance. Called once from main.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("org_code", isOrgCode); err != nil {
		return err
	}
	if err := v.RegisterValidation("us_state", isUSState); err != nil {
		return err
	}
	if err := v.RegisterValidation("user_role", isUserRole); err != nil {
		return err
	}
	return nil
}

// org unit codes: short, uppercase, stable identifiers like "SE" or "ATL01"
func isOrgCode(fl validator.FieldLevel) bool {
	return orgCodeRegex.MatchString(fl.Field().String())
}

func isUSState(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return usStateRegex.MatchString(value)
}

func isUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "system_admin", "company_admin", "department_manager", "user":
		return true
	}
	return false
}
