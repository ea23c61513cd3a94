package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/todos/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,notblank"`)
//   - Implement Validate() error that runs Validator().Struct(req)
//   - Return validator.ValidationErrors, or CustomValidationErrors for rules
//     that cannot be expressed via tags
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// QueryOnly is implemented by payloads that take nothing from the request
// body. Their body is never read, whatever its content type.
type QueryOnly interface {
	QueryOnly()
}

// binder is Echo's default binder. Query parameters are bound for every
// method (Echo's Context.Bind only does so for GET, DELETE and HEAD).
var binder = &echo.DefaultBinder{}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. query parameters into fields tagged `query`
//  2. the body, when there is one, into fields tagged `json` (skipped for
//     QueryOnly payloads)
//  3. payload.Validate()
//
// Every failure is a 400 *errs.HTTPError; nothing here reaches the store.
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := binder.BindQueryParams(c, payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), nil, nil)
	}

	if _, queryOnly := payload.(QueryOnly); !queryOnly {
		if err := binder.BindBody(c, payload); err != nil {
			return errs.NewBadRequestError(bindErrorMessage(err), nil, nil)
		}
	}

	if err := payload.Validate(); err != nil {
		return extractValidationError(err)
	}

	return nil
}

// bindErrorMessage pulls the client-facing message out of a bind error.
func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusUnsupportedMediaType {
			return "Request body must be JSON"
		}
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
		return http.StatusText(echoErr.Code)
	}
	return err.Error()
}

func extractValidationError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	var validationErrors validator.ValidationErrors

	switch {
	case errors.As(err, &customErrors):
		for _, customErr := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: customErr.Field,
				Error: customErr.Message,
			})
		}

	case errors.As(err, &validationErrors):
		for _, fieldErr := range validationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: fieldErr.Field(),
				Error: describe(fieldErr),
			})
		}

	default:
		return errs.ValidationError(err)
	}

	return errs.NewBadRequestError(summarize(fieldErrors), nil, fieldErrors)
}

// describe turns one validator failure into a short message.
func describe(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"

	case "notblank":
		return "must not be blank"

	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	case "number", "numeric":
		return "must be a valid integer"

	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s:%s", err.Tag(), err.Param())
		}
		return err.Tag()
	}
}

// summarize builds the top-level error message,
// e.g. "Validation failed: text must not be blank".
func summarize(fieldErrors []errs.FieldError) string {
	if len(fieldErrors) == 0 {
		return "Validation failed"
	}

	parts := make([]string, 0, len(fieldErrors))
	for _, fieldErr := range fieldErrors {
		parts = append(parts, fieldErr.Field+" "+fieldErr.Error)
	}

	return "Validation failed: " + strings.Join(parts, "; ")
}
