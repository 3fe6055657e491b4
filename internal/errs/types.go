package errs

import (
	"net/http"
)

// newHTTPError builds an HTTPError whose code defaults to the upper-cased
// status text, e.g. 404 -> NOT_FOUND.
func newHTTPError(status int, code *string, message string, override bool) *HTTPError {
	c := MakeUpperCaseWithUnderscores(http.StatusText(status))
	if code != nil {
		c = *code
	}
	return &HTTPError{
		Code:     c,
		Message:  message,
		Status:   status,
		Override: override,
	}
}

// NewUnauthorizedError creates a 401. override marks message as safe to
// show to end users.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, nil, message, override)
}

// NewBadRequestError creates a 400. code, errors and action are optional.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	e := newHTTPError(http.StatusBadRequest, code, message, override)
	e.Errors = errors
	e.Action = action
	return e
}

func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusNotFound, code, message, override)
}

// NewTooManyRequestsError is returned by the login rate limiter.
func NewTooManyRequestsError(message string) *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, nil, message, true)
}

// NewInternalServerError creates a generic 500. The cause only goes to
// the log.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, nil, http.StatusText(http.StatusInternalServerError), false)
}
