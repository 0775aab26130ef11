// Package errors defines the error taxonomy shared by the stores, the
// registry service and the console. Callers mark concrete failures with one
// of the sentinels below and test for them with errors.Is.
package errors

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrNotFound is returned when no record matches the requested key.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned on an ID or passport number conflict.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrValidation is returned when a field fails its format rules.
	ErrValidation = errors.New("validation error")
	// ErrRejected is returned when a business rule aborts the operation
	// (applicant under 18, payment not confirmed, unknown passport type).
	ErrRejected = errors.New("operation rejected")
	// ErrStorage is returned when a CSV file cannot be written.
	ErrStorage = errors.New("storage error")
	// ErrInputClosed is returned when standard input ends mid-prompt.
	ErrInputClosed = errors.New("input closed")
)

// New creates a plain error.
func New(msg string) error {
	return errors.New(msg)
}

// Newf creates a formatted error.
func Newf(format string, args ...any) error {
	return errors.Newf(format, args...)
}

// Wrap annotates err with msg. It returns nil if err is nil.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

// Mark tags err with the given sentinel so that errors.Is(err, reference) holds.
func Mark(err error, reference error) error {
	return errors.Mark(err, reference)
}

// WithHint attaches a user-facing message to err.
func WithHint(err error, hint string) error {
	return errors.WithHint(err, hint)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Hint returns the user-facing message for err: the joined hints if any were
// attached, otherwise the error text itself.
func Hint(err error) string {
	if err == nil {
		return ""
	}
	if hints := errors.FlattenHints(err); hints != "" {
		return hints
	}
	return err.Error()
}
