// Package validation defines the creation-payload schemas and runs them
// through a single validator instance.
//
// Each entity gets a payload struct holding exactly the fields a caller may
// set. Server-generated fields (ids, timestamps, share tokens) simply do not
// exist on the payload, so they are stripped by construction rather than by
// filtering.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tanvir/codecollab/internal/apperror"
)

// validate is process-wide and immutable after init.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Check runs struct-tag validation on a payload and converts the first
// failure into an apperror.ErrValidation with a field-level message.
func Check(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return apperror.ValidationFailed("", "invalid payload")
	}

	fe := fieldErrors[0]
	field := jsonFieldName(payload, fe.StructField())
	return apperror.ValidationFailed(field, field+" "+messageFor(fe))
}

// messageFor renders a human-readable message for a tag failure.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// jsonFieldName maps a struct field back to its json tag so error messages
// match what the caller actually sent.
func jsonFieldName(payload any, structField string) string {
	t := reflect.TypeOf(payload)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	tag := strings.Split(f.Tag.Get("json"), ",")[0]
	if tag == "" || tag == "-" {
		return strings.ToLower(structField)
	}
	return tag
}
