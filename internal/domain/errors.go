package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors carry one of these and match it with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrAccessDenied    = errors.New("access denied")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Error is a categorized failure whose Message is safe to show to the caller.
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

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NewValidationError(format string, args ...any) *Error {
	return newError(ErrValidation, format, args...)
}

func NewNotFoundError(format string, args ...any) *Error {
	return newError(ErrNotFound, format, args...)
}

func NewAccessDeniedError() *Error {
	return newError(ErrAccessDenied, "Access denied")
}

func NewUnauthenticatedError(message string) *Error {
	return newError(ErrUnauthenticated, "%s", message)
}

func NewConflictError(format string, args ...any) *Error {
	return newError(ErrConflict, format, args...)
}

// ErrVersionConflict is returned by repositories when a version-checked
// update finds a different version than the one the caller read.
var ErrVersionConflict = errors.New("order has been modified by another transaction")

// ErrRecordNotFound is returned by repositories for absent rows.
var ErrRecordNotFound = errors.New("record not found")
