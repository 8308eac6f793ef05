package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique constraint rejected the write.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput indicates a field failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrReferential indicates a foreign key did not resolve.
	ErrReferential = errors.New("referenced record does not exist")
)

// ValidationError reports a field that failed a constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Message)
	}
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ReferentialError reports a foreign key that points at a missing record.
type ReferentialError struct {
	Field string
	ID    int64
}

func (e *ReferentialError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s: %s", e.Field, ErrReferential)
	}
	return fmt.Sprintf("%s=%d: %s", e.Field, e.ID, ErrReferential)
}

func (e *ReferentialError) Unwrap() error { return ErrReferential }

// ConstraintViolation reports a unique constraint rejected by the storage engine.
type ConstraintViolation struct {
	Constraint string
	Field      string
	Err        error
}

func (e *ConstraintViolation) Error() string {
	msg := fmt.Sprintf("constraint %s violated", e.Constraint)
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s %s", msg, e.Field, ErrAlreadyExists)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both ErrAlreadyExists and the driver error.
func (e *ConstraintViolation) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAlreadyExists}
	}
	return []error{ErrAlreadyExists, e.Err}
}

// NotFoundError reports a lookup by id that returned nothing.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d %s", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// IsConstraint reports whether err is a ConstraintViolation on the named constraint.
func IsConstraint(err error, constraint string) bool {
	var cv *ConstraintViolation
	return errors.As(err, &cv) && cv.Constraint == constraint
}
