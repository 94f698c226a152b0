package resource

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// ValidationError is a missing or malformed request field. Message is shown to
// the caller as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// NotFoundError is an update or delete aimed at a record that does not exist in
// the store.
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Title) }

func NotFound(title string) error {
	return &NotFoundError{Title: title}
}

// ConflictError is a constraint violation: a delete blocked by dependents or a
// reference to a record outside the store.
type ConflictError struct {
	Message string
	// Dependent names the blocking resource for blocked deletes.
	Dependent string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(message string) error {
	return &ConflictError{Message: message}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}
