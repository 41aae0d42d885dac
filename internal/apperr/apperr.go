// Package apperr defines the failure kinds shared by the services and the
// HTTP layer. Each kind is a sentinel; concrete errors wrap one of them so
// callers can test with errors.Is.
package apperr

import (
	"errors"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrDuplicateReview = errors.New("duplicate review")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal error")
)

var kinds = []error{
	ErrValidation,
	ErrUnauthenticated,
	ErrForbidden,
	ErrNotFound,
	ErrDuplicateReview,
	ErrConflict,
	ErrInternal,
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified failure with a client-safe message.
type Error struct {
	Kind    error
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// Validation builds an ErrValidation error carrying per-field details.
func Validation(message string, fields ...FieldError) *Error {
	return &Error{Kind: ErrValidation, Message: message, Fields: fields}
}

// Internal classifies an unexpected failure. Already classified errors are
// returned unchanged.
func Internal(cause error) error {
	if cause == nil {
		return nil
	}
	var e *Error
	if errors.As(cause, &e) {
		return cause
	}
	return Wrap(ErrInternal, "internal error", cause)
}

// KindOf returns the sentinel kind of err, ErrInternal for anything
// unclassified and nil for a nil error.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}

// MessageOf returns the client-safe message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != ErrInternal {
		return e.Message
	}
	return "Internal server error"
}

// FieldsOf returns the field details of a validation error, if any.
func FieldsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
