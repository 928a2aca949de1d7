// Package validation turns go-playground/validator tag failures into a
// flat field -> message map suitable for an API error body.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// instance returns the shared validator. validator.Validate caches struct
// metadata, so one instance is reused for every request.
func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// "required" accepts "   "; notblank rejects whitespace-only strings.
		if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}

		// Report fields by their JSON name ("fullName"), not the Go name.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks v against its validate:"..." tags and returns one message
// per failing field. It returns nil when v is valid.
//
// When a field breaks more than one rule the later message overwrites the
// earlier one.
func Validate(v any) map[string]string {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		// InvalidValidationError: v was not a struct. Programmer error.
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fields[e.Field()] = message(e)
	}
	return fields
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "must not be empty"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a well-formed email address"
	case "min":
		return fmt.Sprintf("size must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("size must be at most %s", e.Param())
	case "datetime":
		return fmt.Sprintf("must be a date in the format %s", e.Param())
	default:
		return "is invalid"
	}
}
