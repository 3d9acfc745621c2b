package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error with an HTTP status and client-facing details
type Error struct {
	Status  int
	Message string
	Errors  []string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, message string, details ...string) *Error {
	return &Error{Status: status, Message: message, Errors: details}
}

func BadRequest(message string, details ...string) *Error {
	return New(http.StatusBadRequest, message, details...)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Internal wraps an unexpected failure; the cause is kept for logs, not for clients
func Internal(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Err: err}
}

// From converts any error into an *Error, treating unknown errors as internal
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal server error", err)
}
