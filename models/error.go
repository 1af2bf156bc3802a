package models

import (
	"errors"
	"fmt"
)

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
	Kind    string `json:",omitempty"`
}

// ErrorKind classifies an AppError so the api layer can pick a status code
type ErrorKind string

// The kinds of errors returned by the services
const (
	KindValidation      ErrorKind = "validation"
	KindNotFound        ErrorKind = "not_found"
	KindStorage         ErrorKind = "storage"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindForbidden       ErrorKind = "forbidden"
	KindConflict        ErrorKind = "conflict"
)

// Sentinel errors, one per kind. errors.Is(err, ErrNotFound) matches any
// AppError of kind not_found.
var (
	ErrValidation      = &AppError{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound        = &AppError{Kind: KindNotFound, Message: "not found"}
	ErrStorage         = &AppError{Kind: KindStorage, Message: "storage failure"}
	ErrUnauthenticated = &AppError{Kind: KindUnauthenticated, Message: "could not validate credentials"}
	ErrForbidden       = &AppError{Kind: KindForbidden, Message: "insufficient permissions"}
	ErrConflict        = &AppError{Kind: KindConflict, Message: "already exists"}
)

// AppError is a structured error carrying a kind, a user facing message and
// the underlying cause for diagnostics
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same kind
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewValidationError creates a validation error
func NewValidationError(message string, err error) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Err: err}
}

// NewNotFoundError creates a not found error for the given resource
func NewNotFoundError(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// NewStorageError wraps a persistence or file write failure
func NewStorageError(message string, err error) *AppError {
	return &AppError{Kind: KindStorage, Message: message, Err: err}
}

// NewConflictError creates a conflict error, used for duplicate identifiers
func NewConflictError(message string, err error) *AppError {
	return &AppError{Kind: KindConflict, Message: message, Err: err}
}

// KindOf returns the kind of err, or an empty kind when err is not an AppError
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// NewUnauthenticatedError wraps a token or credential failure
func NewUnauthenticatedError(err error) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: ErrUnauthenticated.Message, Err: err}
}

// NewForbiddenError reports a caller lacking every one of the required roles
func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}
