package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/garden/internal/logger"
)

// Sentinel errors for the three failure classes every storage operation can
// report. Callers match with errors.Is.
var (
	// ErrValidation marks input rejected before any backend call
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an operation targeting a nonexistent record
	ErrNotFound = errors.New("not found")
	// ErrBackend marks a persistence-layer failure (remote or local)
	ErrBackend = errors.New("backend failure")
)

// Is reports whether any error in err's chain matches target. Re-exported so
// callers need not import both this package and the standard library one.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// New returns an error with the given text.
func New(text string) error {
	return errors.New(text)
}

// Validationf wraps ErrValidation with a formatted detail message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted detail message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Backend wraps a backend error, preserving the cause for errors.Is/As.
func Backend(cause error) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrBackend, cause)
}

// Backendf wraps ErrBackend with a formatted detail message and cause.
func Backendf(cause error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %v", ErrBackend, fmt.Sprintf(format, args...), cause)
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
