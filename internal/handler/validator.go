package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxCharacterIDLength bounds character ids taken from the path
const MaxCharacterIDLength = 64

var characterIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()
	_ = v.RegisterValidation("charid", validateCharacterID)
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
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// ValidateCharacterID checks a character id taken from the path
func (v *Validator) ValidateCharacterID(id string) error {
	return v.validate.Var(id, fmt.Sprintf("required,max=%d,charid", MaxCharacterIDLength))
}

func validateCharacterID(fl validator.FieldLevel) bool {
	return characterIDPattern.MatchString(fl.Field().String())
}

// FormatValidationError turns validation errors into a field to message map
// without leaking struct names
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
		case "required":
			errs[field] = "This field is required"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be greater than or equal to %s", e.Param())
		case "charid":
			errs[field] = "Only letters, digits, '-' and '_' are allowed"
		default:
			errs[field] = "Invalid value"
		}
	}
	return errs
}
