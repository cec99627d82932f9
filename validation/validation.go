// Package validation binds request payloads and checks them against the
// struct tags of the request types, turning failures into field-level errors
// the client can act on.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"parcel-delivery/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json/query names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return ""
	})

	return v
}

// Validatable is implemented by request types that know how to validate themselves.
type Validatable interface {
	Validate() error
}

// CustomValidationError covers rules that struct tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// Struct runs the tag rules on v.
func Struct(v interface{}) error {
	return validate.Struct(v)
}

// BindAndValidate parses the JSON body into payload and validates it.
func BindAndValidate(c *fiber.Ctx, payload Validatable) error {
	if err := c.BodyParser(payload); err != nil {
		return errs.NewBadRequestError("Invalid request body", nil)
	}
	return check(payload)
}

// BindQueryAndValidate parses the query string into payload and validates it.
func BindQueryAndValidate(c *fiber.Ctx, payload Validatable) error {
	if err := c.QueryParser(payload); err != nil {
		return errs.NewBadRequestError("Invalid query parameters", nil)
	}
	return check(payload)
}

func check(payload Validatable) error {
	if err := payload.Validate(); err != nil {
		return errs.NewBadRequestError("Validation failed", extractValidationError(err))
	}
	return nil
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	for _, e := range validationErrors {
		var msg string

		switch e.Tag() {
		case "required", "required_if", "required_with", "required_without":
			msg = "is required"

		case "min":
			if e.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", e.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", e.Param())
			}

		case "max":
			if e.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", e.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", e.Param())
			}

		case "gt":
			msg = fmt.Sprintf("must be greater than %s", e.Param())

		case "gte":
			msg = fmt.Sprintf("must be at least %s", e.Param())

		case "len":
			msg = fmt.Sprintf("must be exactly %s characters", e.Param())

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", e.Param())

		case "eq":
			msg = fmt.Sprintf("must be %s", e.Param())

		case "email":
			msg = "must be a valid email address"

		case "url":
			msg = "must be a valid URL"

		case "mongodb":
			msg = "must be a valid id"

		case "datetime":
			msg = fmt.Sprintf("must match the format %s", e.Param())

		default:
			if e.Param() != "" {
				msg = fmt.Sprintf("%s:%s", e.Tag(), e.Param())
			} else {
				msg = e.Tag()
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: e.Field(),
			Error: msg,
		})
	}

	return fieldErrors
}
