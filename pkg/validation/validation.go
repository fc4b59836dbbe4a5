// Package validation checks form structs with go-playground tags and collects field
// failures into a single validation error whose details map json field names to messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mt-arl/kairosMIxFront/pkg/enums"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"go.uber.org/multierr"
)

var (
	validate     = newValidator()
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("identification", func(fl validator.FieldLevel) bool {
		_, ok := enums.ClassifyIdentification(fl.Field().String())
		return ok
	})
	return v
}

// FieldError is a single failing field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Message
}

// Field reports a failure on a json field name.
func Field(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// Struct runs the tag rules of v and returns every failing field combined.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	var combined error
	for _, fe := range fieldErrs {
		combined = multierr.Append(combined, Field(fe.Field(), message(fe)))
	}
	return combined
}

// Result folds collected errors into one CodeValidation error. Field errors become
// details keyed by field; the first message per field wins.
func Result(message string, errs ...error) error {
	combined := multierr.Combine(errs...)
	if combined == nil {
		return nil
	}
	details := map[string]any{}
	for _, err := range multierr.Errors(combined) {
		var fe *FieldError
		if errors.As(err, &fe) {
			if _, seen := details[fe.Field]; !seen {
				details[fe.Field] = fe.Message
			}
			continue
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, combined, message)
	}
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(details)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid url"
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "eqfield":
		return "does not match"
	case "phone10":
		return "must be 10 digits"
	case "identification":
		return "must be a cedula (10 digits), RUC (13 digits) or passport (6-9 letters or digits)"
	}
	return "is invalid"
}
