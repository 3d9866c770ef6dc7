package validators

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// TagLogLevel accepts any level name zerolog can parse ("debug", "info", ...).
const TagLogLevel = "loglevel"

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a validator with the project's custom tags registered.
func New() *Validate {
	validate := validator.New()
	// only fails on an empty tag name or nil func, both fixed here
	_ = validate.RegisterValidation(TagLogLevel, isLogLevel)
	return validate
}

func isLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	if level == "" {
		return false
	}
	_, err := zerolog.ParseLevel(level)
	return err == nil
}
