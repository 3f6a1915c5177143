package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error surfaced by the use cases wraps exactly one of these.
var (
	// ErrNotFound is returned when an entity, or an ancestor in its ownership chain, does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the acting user does not own the resolved journey.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation is returned when a domain invariant would be violated.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated is returned when a token is missing, malformed, revoked or unknown.
	ErrUnauthenticated = errors.New("could not validate credentials")
)

var (
	ErrUsernameExists            = NewValidationError("username", "username exists")
	ErrEmailExists               = NewValidationError("email", "email exists")
	ErrCorrectAnswerNotInOptions = NewValidationError("correct_answer", "correct answer must be one of the options")
	ErrInactiveUser              = NewValidationError("is_active", "inactive user")
	// ErrInvalidCredentials is returned by login on an unknown username or a wrong password.
	ErrInvalidCredentials = fmt.Errorf("%w: incorrect username or password", ErrUnauthenticated)
)

// EntityKind names an entity type in error messages.
type EntityKind string

const (
	KindUser     EntityKind = "User"
	KindJourney  EntityKind = "Journey"
	KindQuiz     EntityKind = "Quiz"
	KindQuestion EntityKind = "Question"
)

// NotFoundError carries the kind and id of the entity that did not resolve.
type NotFoundError struct {
	Kind EntityKind
	ID   string
}

func NewNotFound(kind EntityKind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError describes a rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Forbidden builds a forbidden error for the given action, e.g. "update this quiz".
func Forbidden(action string) error {
	return fmt.Errorf("%w: not authorized to %s", ErrForbidden, action)
}
