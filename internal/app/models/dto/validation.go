package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterTagNameFunc makes gin's binding validator report JSON field names
// instead of Go struct field names. Called once during router setup.
func RegisterTagNameFunc() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// HandleValidationError converts a binding error into field errors suitable
// for the validation envelope. Non-validator errors (malformed JSON, type
// mismatches) collapse into a single body-level entry.
func HandleValidationError(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Field: "body", Message: "Invalid request body."}}
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fieldError.Field(),
			Message: validationMessage(fieldError),
		})
	}
	return fieldErrors
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", e.Field())
	case "email":
		return "Invalid email format."
	case "numeric":
		return fmt.Sprintf("%s must contain numbers only.", e.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a valid date (YYYY-MM-DD).", e.Field())
	case "gte":
		return fmt.Sprintf("%s must be a non-negative integer.", e.Field())
	case "min", "max":
		switch e.Field() {
		case "phoneNumber", "parentContact":
			return fmt.Sprintf("%s length is invalid.", e.Field())
		case "numberPlate":
			return "numberPlate must be between 3 and 20 characters."
		case "password":
			return "Password must be between 6 and 255 characters."
		}
		if e.Tag() == "max" {
			return fmt.Sprintf("%s is too long.", e.Field())
		}
		return fmt.Sprintf("%s is too short.", e.Field())
	default:
		return fmt.Sprintf("%s is invalid.", e.Field())
	}
}
