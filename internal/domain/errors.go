package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateDate indicates that another entry already uses the date.
	ErrDuplicateDate = errors.New("an entry with this date already exists")
	// ErrEntryNotFound indicates that no entry has the requested ID.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrInvalidNumericInput indicates a measurement field that is not a number.
	ErrInvalidNumericInput = errors.New("invalid numeric input")
	// ErrInvalidDate indicates a date that is missing or not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidCircumference indicates waist and neck values the Navy method cannot use.
	ErrInvalidCircumference = errors.New("invalid circumference")
	// ErrInvalidImportFormat indicates import content that is not an array of entries.
	ErrInvalidImportFormat = errors.New("invalid import format")
	// ErrFileRead indicates that an import file could not be read.
	ErrFileRead = errors.New("file read failed")
	// ErrPersistence indicates that the blob store could not be read or written.
	ErrPersistence = errors.New("persistence failed")
)

// ValidationError is a user-facing input error. Kind is one of the sentinel
// errors above and is reachable through errors.Is.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string {
	if e.Kind == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// NewValidationError returns a *ValidationError of the given kind.
func NewValidationError(kind error, msg string) error {
	return &ValidationError{Kind: kind, Message: msg}
}
