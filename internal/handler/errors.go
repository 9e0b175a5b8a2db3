package handler

import "net/http"

// HTTPError carries an HTTP status code, a stable machine-readable key,
// and a user-facing message.
type HTTPError struct {
	Code    int    // HTTP status code
	Key     string // stable error code (e.g. "unauthorized", "conflict")
	Message string // user-facing message
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

// WithMessage returns a copy of the error with a custom user-facing message.
func (e HTTPError) WithMessage(msg string) HTTPError {
	e.Message = msg
	return e
}

// Errors the API surface can produce.
var (
	ErrBadRequest      = HTTPError{Code: http.StatusBadRequest, Key: "bad_request", Message: http.StatusText(http.StatusBadRequest)}
	ErrUnauthorized    = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized", Message: http.StatusText(http.StatusUnauthorized)}
	ErrNotFound        = HTTPError{Code: http.StatusNotFound, Key: "not_found", Message: http.StatusText(http.StatusNotFound)}
	ErrConflict        = HTTPError{Code: http.StatusConflict, Key: "conflict", Message: http.StatusText(http.StatusConflict)}
	ErrTooManyRequests = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests", Message: http.StatusText(http.StatusTooManyRequests)}
	ErrInternal        = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error", Message: http.StatusText(http.StatusInternalServerError)}
)
