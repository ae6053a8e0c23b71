package errors

import (
	"fmt"
	"net/http"
)

// Type classifies an error so handlers can map it to an HTTP status
// without inspecting message text.
type Type uint

const (
	TypeUnknown Type = iota
	TypeValidation
	TypeAuthentication
	TypeAuthorization
	TypeNotFound
	TypeConflict
	TypeInternal
)

// Error carries a type, a user-facing message and an optional cause.
type Error struct {
	Type    Type
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on type so callers can compare with errors.Is against a
// bare typed error (e.g. NewConflict("")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func New(t Type, message string, err error) *Error {
	return &Error{Type: t, Message: message, Err: err}
}

func NewValidation(message string) *Error     { return New(TypeValidation, message, nil) }
func NewAuthentication(message string) *Error { return New(TypeAuthentication, message, nil) }
func NewAuthorization(message string) *Error  { return New(TypeAuthorization, message, nil) }
func NewNotFound(message string) *Error       { return New(TypeNotFound, message, nil) }
func NewConflict(message string) *Error       { return New(TypeConflict, message, nil) }

func NewInternal(message string, err error) *Error { return New(TypeInternal, message, err) }

// StatusCode maps the error type to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeAuthentication:
		return http.StatusUnauthorized
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Code returns a stable machine-readable error code.
func (e *Error) Code() string {
	switch e.Type {
	case TypeValidation:
		return "VALIDATION_ERROR"
	case TypeAuthentication:
		return "AUTHENTICATION_ERROR"
	case TypeAuthorization:
		return "AUTHORIZATION_ERROR"
	case TypeNotFound:
		return "NOT_FOUND"
	case TypeConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}
