package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/wishlog/internal/logger"
)

// ValidationError reports caller-supplied data that violates a field constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for field.
func Validation(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an operation that targets an identifier absent from the store.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no document with id %q", e.Collection, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(collection, id string) error {
	return &NotFoundError{Collection: collection, ID: id}
}

// BatchFailure reports an atomic batch that could not commit in full.
// No constituent mutation has been applied when this is returned.
type BatchFailure struct {
	Op   string
	Size int
	Err  error
}

func (e *BatchFailure) Error() string {
	return fmt.Sprintf("batch %s of %d item(s) failed: %v", e.Op, e.Size, e.Err)
}

func (e *BatchFailure) Unwrap() error { return e.Err }

// TransientIOFailure reports store or network unavailability. Callers own any retry policy.
type TransientIOFailure struct {
	Op  string
	Err error
}

func (e *TransientIOFailure) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientIOFailure) Unwrap() error { return e.Err }

// Transient wraps err as a TransientIOFailure. A nil err stays nil.
func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransientIOFailure{Op: op, Err: err}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return stderrors.As(err, &target)
}

// IsBatchFailure reports whether err is or wraps a BatchFailure.
func IsBatchFailure(err error) bool {
	var target *BatchFailure
	return stderrors.As(err, &target)
}

// IsTransient reports whether err is or wraps a TransientIOFailure.
func IsTransient(err error) bool {
	var target *TransientIOFailure
	return stderrors.As(err, &target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
