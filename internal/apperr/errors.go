// Package apperr defines the error kinds surfaced at the HTTP boundary.
// Services return *Error values that unwrap to one of the sentinel kinds,
// so callers can match them with errors.Is.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("unauthorized")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// Error is a kind plus the message shown to the client.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Validation(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }
func Auth(msg string) error       { return &Error{Kind: ErrAuth, Message: msg} }
func Forbidden(msg string) error  { return &Error{Kind: ErrForbidden, Message: msg} }
func NotFound(msg string) error   { return &Error{Kind: ErrNotFound, Message: msg} }
func Conflict(msg string) error   { return &Error{Kind: ErrConflict, Message: msg} }

// StatusCode maps err to the HTTP status it should be reported with.
// Anything that is not one of the known kinds is a 500.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err. Internal errors never
// leak their cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if StatusCode(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
