// Package apierror holds the errors handlers turn into JSON error envelopes.
package apierror

import (
	"errors"
	"net/http"
)

// Error is a failure that carries the HTTP status it should be reported with.
type Error struct {
	Status  int
	Message string
	Err     error // underlying cause, logged but never sent to the client
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Validation is a 400 for missing or malformed input.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Auth is a 401 for bad credentials or an invalid/stale token.
func Auth(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Internal is a 500 wrapping the cause.
func Internal(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Err: err}
}

// From returns err as an *Error. Anything that is not already one becomes a 500.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal("Internal server error", err)
}

// StatusOf reports the HTTP status err maps to.
func StatusOf(err error) int {
	return From(err).Status
}
