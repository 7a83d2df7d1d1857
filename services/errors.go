package services

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField       = errors.New("missing field")
	ErrMalformed          = errors.New("malformed field")
	ErrInvalidReference   = errors.New("invalid reference")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrEmailTaken         = errors.New("User already exists.")
	ErrInvalidCredentials = errors.New("Invalid email or password.")
)

// ValidationError reports bad input on a single field. Kind is one of
// ErrMissingField, ErrMalformed or ErrInvalidReference.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Field)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

func missing(field string) *ValidationError {
	return &ValidationError{Kind: ErrMissingField, Field: field, Message: "All fields are required. Missing: " + field}
}

func malformed(field, message string) *ValidationError {
	return &ValidationError{Kind: ErrMalformed, Field: field, Message: message}
}

func invalidReference(field, message string) *ValidationError {
	return &ValidationError{Kind: ErrInvalidReference, Field: field, Message: message}
}

// DatabaseError wraps a failure of the underlying store.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string { return "database error: " + e.Op + ": " + e.Err.Error() }

func (e *DatabaseError) Unwrap() error { return e.Err }

func dbErr(op string, err error) error {
	return &DatabaseError{Op: op, Err: err}
}

func notFound(entity string, id uint) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
}
