package errs

import (
	"fmt"
	"net/http"
)

func newHTTPError(status int, message string, code *string) *HTTPError {
	// http.StatusText(404) => "Not Found" => "NOT_FOUND"
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(status))

	// A caller supplied code is used verbatim.
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  status,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	err := newHTTPError(http.StatusBadRequest, message, code)
	err.Errors = errors
	return err
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, code)
}

// NewConflictError creates a 409 Conflict HTTPError.
func NewConflictError(message string, code *string) *HTTPError {
	return newHTTPError(http.StatusConflict, message, code)
}

// NewMethodNotAllowedError creates a 405 naming the rejected method.
func NewMethodNotAllowedError(method string) *HTTPError {
	return newHTTPError(http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed", method), nil)
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests), nil)
}

// NewInternalServerError creates a 500 with the generic status text, so
// nothing about the failure leaks to the client.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
}

// NewStoreError creates a 500 carrying the message reported by the store.
func NewStoreError(message string) *HTTPError {
	if message == "" {
		return NewInternalServerError()
	}
	return newHTTPError(http.StatusInternalServerError, message, nil)
}

// ValidationError converts a generic validation error into a 400 Bad Request HTTPError.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), nil, nil)
}
