// Package errors provides structured error types for the crosslink tool.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the parser, scheduler, and resolver
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages naming the offending marker, id, or cycle
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Parse-time failures use INVALID_FORMAT and DUPLICATE_ID; resolution-time
// failures use REFERENCE_NOT_FOUND and CYCLE. UNRESOLVED_REFERENCE is an
// internal-consistency failure: it means the scheduler handed the resolver an
// entity before its references were resolved, which indicates a bug rather
// than a user input problem.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "malformed marker on line %d: %q", n, line)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle format error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "cannot read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Parse-time errors (user input problems)
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeDuplicateID   Code = "DUPLICATE_ID"

	// Resolution-time errors (user input problems)
	ErrCodeReferenceNotFound Code = "REFERENCE_NOT_FOUND"
	ErrCodeCycle             Code = "CYCLE"

	// Internal ordering-contract violation (a scheduler/resolver bug)
	ErrCodeUnresolvedReference Code = "UNRESOLVED_REFERENCE"

	// Environment errors
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeRenderFailed  Code = "RENDER_FAILED"

	// Unexpected internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFatalInput reports whether err is one of the input-problem codes that must
// abort the run: INVALID_FORMAT, DUPLICATE_ID, REFERENCE_NOT_FOUND, or CYCLE.
func IsFatalInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidFormat, ErrCodeDuplicateID, ErrCodeReferenceNotFound, ErrCodeCycle:
		return true
	}
	return false
}
