package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// accountIDPattern accepts named accounts (alice.near, usdc.fakes.testnet)
// and 64 character implicit hex accounts
var accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("account_id", validateAccountID)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required", "required_if":
			errs[field] = "This field is required"
		case "account_id":
			errs[field] = "Invalid account id"
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of: %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// validateAccountID checks the account naming rules: 2 to 64 characters of
// lowercase alphanumerics separated by single '-', '_' or '.'
func validateAccountID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	// Allow empty if not required (handled by 'required' tag if needed)
	if id == "" {
		return true
	}
	if len(id) < MinAccountIDLength || len(id) > MaxAccountIDLength {
		return false
	}
	return accountIDPattern.MatchString(id)
}
