package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents an application error with an HTTP status code, a message
// safe to show callers, and an optional wrapped cause kept server-side.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Wrap attaches a cause to a copy of the given error kind.
func Wrap(kind *Error, err error) *Error {
	return &Error{Code: kind.Code, Message: kind.Message, Err: err}
}

// WithMessage returns a copy of the given error kind with a caller-facing
// message.
func WithMessage(kind *Error, message string) *Error {
	return &Error{Code: kind.Code, Message: message}
}

// As extracts an *Error from err, or wraps err as an internal server error.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternalServer, err)
}

// Common error kinds.
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden      = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrConflict       = New(http.StatusConflict, "Conflict", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Validation error kinds.
var (
	ErrValidation    = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidAmount = New(http.StatusBadRequest, "Invalid amount received", nil)
)

// Authentication error kinds.
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "invalid credentials", nil)
	ErrInvalidToken       = New(http.StatusUnauthorized, "Invalid token", nil)
)

// Upstream and persistence error kinds.
var (
	ErrPaymentProvider = New(http.StatusInternalServerError, "Payment provider error", nil)
	ErrDatabaseQuery   = New(http.StatusInternalServerError, "Database query error", nil)
)
