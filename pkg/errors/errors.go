// Package errors provides structured error types for the schreier module.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes identify failure categories:
//   - Algebraic misuse: INCOMPATIBLE_DEGREE, NOT_A_BIJECTION, POINT_OUT_OF_RANGE, POINT_NOT_IN_ORBIT
//   - Reduced confidence: UNVERIFIED_GROUP
//   - Adapter input: INVALID_NOTATION, INVALID_INPUT, INVALID_FORMAT
//   - Internal defects: CHAIN_INVARIANT, INTERNAL_ERROR
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotABijection, "value %d appears twice", v)
//	if errors.Is(err, errors.ErrCodeNotABijection) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode group %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Algebraic misuse: the operation is well-formed but its operands are not.
	ErrCodeIncompatibleDegree Code = "INCOMPATIBLE_DEGREE"
	ErrCodeNotABijection      Code = "NOT_A_BIJECTION"
	ErrCodePointOutOfRange    Code = "POINT_OUT_OF_RANGE"
	ErrCodePointNotInOrbit    Code = "POINT_NOT_IN_ORBIT"

	// UNVERIFIED_GROUP signals a Monte-Carlo chain that exhausted its retry
	// bound without reaching the confidence threshold. The group stays usable;
	// answers derived from it carry reduced confidence.
	ErrCodeUnverifiedGroup Code = "UNVERIFIED_GROUP"

	// CHAIN_INVARIANT signals a builder defect. It must never surface from
	// correct usage; seeing it means a bug, not a user error.
	ErrCodeChainInvariant Code = "CHAIN_INVARIANT"

	// Adapter input errors
	ErrCodeInvalidNotation Code = "INVALID_NOTATION"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
