// Package errdefs provides structured error types shared across the PrismCut
// packages.
//
// Three categories cover everything the geometry pipeline can reject:
//   - CONFIGURATION: invalid inputs caught eagerly at construction or load time
//     (negative dimensions, wrong shape kind for a channel, malformed files).
//   - GEOMETRIC_CONSTRAINT: placements or builds that violate a derived
//     geometric limit; messages carry both the offending value and the limit.
//   - UNSUPPORTED_COMBINATION: structurally valid inputs the mesh builder
//     cannot represent (unequal channel shapes, hexagonal mesh builds).
//
// All errors are fatal and non-retryable. Nothing in the pipeline swallows or
// auto-corrects them, and no partial build results are ever returned alongside
// an error.
package errdefs

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	CodeConfiguration          Code = "CONFIGURATION"
	CodeGeometricConstraint    Code = "GEOMETRIC_CONSTRAINT"
	CodeUnsupportedCombination Code = "UNSUPPORTED_COMBINATION"
	CodeNotFound               Code = "NOT_FOUND"
	CodeInternal               Code = "INTERNAL"
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

// Is reports whether err carries the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns the empty string if the error chain holds no *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
