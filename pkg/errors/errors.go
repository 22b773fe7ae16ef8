// Package errors provides structured error types for aptgraph.
//
// This package defines error codes and types that enable:
//   - Telling fatal collection failures apart from recoverable per-package ones
//   - Machine-readable error codes for exit-code mapping
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input and configuration validation failures
//   - *_FAILED: Failures of an external collaborator (apt, Graphviz, storage)
//   - NOT_FOUND: Resource not found (serve command)
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedLine, "line %q precedes any relation", line)
//	if errors.Is(err, errors.ErrCodeMalformedLine) {
//	    // skip the package and keep going
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFetch, origErr, "apt-cache depends %s", pkg)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidRelation Code = "INVALID_RELATION"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPackage  Code = "INVALID_PACKAGE"

	// Collection errors. Only ErrCodeCollection aborts a run.
	ErrCodeCollection    Code = "COLLECTION_FAILED"
	ErrCodeFetch         Code = "FETCH_FAILED"
	ErrCodeMalformedLine Code = "MALFORMED_DEPENDENCY_LINE"

	// Output errors
	ErrCodeRender  Code = "RENDER_FAILED"
	ErrCodeStorage Code = "STORAGE_FAILED"

	// A run finished but some packages or graphs were skipped.
	ErrCodePartial Code = "PARTIAL_RUN"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
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
// It walks the whole error tree, including errors combined with
// errors.Join, looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(*Error); ok && e.Code == code {
		return true
	}
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return Is(u.Unwrap(), code)
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			if Is(inner, code) {
				return true
			}
		}
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// IsRecoverable reports whether err only affects part of a run: a single
// package or a single graph. Fatal collection errors and anything uncoded
// are not recoverable.
func IsRecoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeFetch, ErrCodeMalformedLine, ErrCodeRender, ErrCodeStorage:
		return true
	}
	return false
}

// Join combines errs into one error, dropping nils. It returns nil when
// every err is nil.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
