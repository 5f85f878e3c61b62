package library

import (
	"errors"
	"fmt"
)

var (
	// ErrBookNotFound is returned when an operation targets an id that is
	// not in the catalog.
	ErrBookNotFound = errors.New("book not found")
	// ErrAlreadyBorrowed is returned by Borrow when the book already has an
	// open loan.
	ErrAlreadyBorrowed = errors.New("book already has an open loan")
	// ErrNoOpenLoan is returned by Return when there is nothing to close.
	ErrNoOpenLoan = errors.New("book has no open loan")
)

// ValidationError reports a missing required field or an out-of-range value.
// It is always surfaced to the caller directly, never retried or corrected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
