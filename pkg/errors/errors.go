// Package errors provides structured error types for textgraph.
//
// Errors carry a machine-readable [Code] so that callers (the CLI, tests,
// embedding programs) can tell the three failure classes apart with
// [Code.Class]:
//
//   - Precondition violations (INVALID_*, NODE_NOT_FOUND, LENGTH_MISMATCH):
//     raised synchronously by the call that violates them. The scene is left
//     exactly as it was before the call.
//   - Missing resources (NOT_FOUND): recoverable; re-emitting a document is
//     always possible.
//   - Internal failures (INTERNAL_ERROR): unexpected encoding or I/O problems.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNodeNotFound, "non existent node %q", id)
//	if errors.Is(err, errors.ErrCodeNodeNotFound) {
//	    // Handle missing endpoint
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

// Precondition violations: the caller passed something invalid.
const (
	ErrCodeInvalidID        Code = "INVALID_ID"
	ErrCodeNodeNotFound     Code = "NODE_NOT_FOUND"
	ErrCodeLengthMismatch   Code = "LENGTH_MISMATCH"
	ErrCodeInvalidAttribute Code = "INVALID_ATTRIBUTE"
	ErrCodeInvalidExtension Code = "INVALID_EXTENSION"
	ErrCodeInvalidGraph     Code = "INVALID_GRAPH"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidOptions   Code = "INVALID_OPTIONS"
)

const (
	// ErrCodeNotFound marks a missing resource.
	ErrCodeNotFound Code = "NOT_FOUND"
	// ErrCodeInternal marks an unexpected failure.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Class is the failure class of a [Code].
type Class int

const (
	ClassUnknown Class = iota
	ClassPrecondition
	ClassMissing
	ClassInternal
)

// Class reports which failure class c belongs to.
func (c Code) Class() Class {
	switch c {
	case ErrCodeInvalidID, ErrCodeNodeNotFound, ErrCodeLengthMismatch,
		ErrCodeInvalidAttribute, ErrCodeInvalidExtension, ErrCodeInvalidGraph,
		ErrCodeInvalidConfig, ErrCodeInvalidFormat, ErrCodeInvalidOptions:
		return ClassPrecondition
	case ErrCodeNotFound:
		return ClassMissing
	case ErrCodeInternal:
		return ClassInternal
	}
	return ClassUnknown
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsPrecondition reports whether err is a caller mistake that no retry will
// fix.
func IsPrecondition(err error) bool {
	return GetCode(err).Class() == ClassPrecondition
}

// UserMessage returns the message of the outermost *Error without its code,
// or err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
