// Package errors provides structured error types for stackchart.
//
// Every failure the chart core can report carries a machine-readable [Code]
// so callers (CLI, HTTP service, tests) can branch on the kind of failure
// without string matching:
//
//   - SHAPE_MISMATCH: input data shape does not fit the requested chart type
//   - STACK_ALIGNMENT: nested series keys diverge in a stacked layout
//   - GEOMETRY: a scale produced a non-finite pixel coordinate
//   - INVALID_*: input or configuration validation failures
//   - NOT_FOUND / INTERNAL_ERROR: storage and unexpected failures
//
// None of these are retryable: chart inputs are deterministic, so retrying
// without changing the input reproduces the same failure.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeShapeMismatch, "chart type %q needs nested series", t)
//	if errors.Is(err, errors.ErrCodeShapeMismatch) {
//	    // report to the user
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Chart core errors
	ErrCodeShapeMismatch  Code = "SHAPE_MISMATCH"
	ErrCodeStackAlignment Code = "STACK_ALIGNMENT"
	ErrCodeGeometry       Code = "GEOMETRY"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidType   Code = "INVALID_CHART_TYPE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// ShapeMismatch reports input data whose shape is incompatible with the
// requested chart type.
func ShapeMismatch(format string, args ...any) *Error {
	return New(ErrCodeShapeMismatch, format, args...)
}

// StackAlignment reports nested series whose key sequences diverge.
func StackAlignment(format string, args ...any) *Error {
	return New(ErrCodeStackAlignment, format, args...)
}

// Geometry reports a non-finite coordinate produced by a scale.
func Geometry(format string, args ...any) *Error {
	return New(ErrCodeGeometry, format, args...)
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

// IsClientError reports whether err was caused by the caller's input
// rather than by the service. The HTTP layer maps these to 4xx responses.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeShapeMismatch, ErrCodeStackAlignment, ErrCodeGeometry,
		ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidConfig, ErrCodeInvalidType:
		return true
	}
	return false
}
