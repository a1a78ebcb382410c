// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var accountPattern = regexp.MustCompile(`^[a-zA-Z0-9:_-]{3,128}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("account", validateAccount)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidAccount reports whether s looks like a wallet account identifier.
// The ledger treats accounts as opaque beyond this shape check.
func ValidAccount(s string) bool {
	return accountPattern.MatchString(s)
}

func validateAccount(fl validator.FieldLevel) bool {
	return ValidAccount(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "account":
		return e.Field() + " must be a valid account identifier"
	default:
		return e.Field() + " is invalid"
	}
}
