// Package validation contains the logic for validating
// request data.
//
// Request payloads validate themselves with explicit rule tables,
// and this package turns the failures into field errors the client
// can understand.
package validation

import (
	"errors"
	"net/http"

	"github.com/deppfellow/pharmacy-service/internal/errs"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate returns CustomValidationErrors for field failures. Any other
// error is reported as a non-field error.
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Code    string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
//  1. c.Bind(payload) populates the struct from path params, query and body.
//  2. payload.Validate() applies validation rules.
//  3. Failures come back as *errs.HTTPError (400), with field errors when validation fails.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
	}

	return Check(payload.Validate())
}

// Check turns the result of a validation rule set into a 400 carrying
// the field errors, or nil when err is nil.
//
// Services call it directly when validation has to wait for a lookup.
func Check(err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValidationError(extractValidationError(err))
}

// bindErrorMessage extracts the client-facing part of an echo bind error.
func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
		return http.StatusText(echoErr.Code)
	}
	return "Malformed request"
}

func extractValidationError(err error) []errs.FieldError {
	var customValidationErrors CustomValidationErrors
	if !errors.As(err, &customValidationErrors) {
		return []errs.FieldError{{Field: "non_field_errors", Code: errs.FieldCodeInvalid, Error: err.Error()}}
	}

	fieldErrors := make([]errs.FieldError, 0, len(customValidationErrors))
	for _, ce := range customValidationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: ce.Field,
			Code:  ce.Code,
			Error: ce.Message,
		})
	}
	return fieldErrors
}
