// Package errors provides structured error types for the pvr application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each failure mode of the installer core has a dedicated code: index or
// artifact fetches that come back non-2xx (FETCH_ERROR), index pages with no
// installable wheel (NO_ACCEPTABLE_FILE), a pip bootstrap process exiting
// non-zero (INSTALL_ERROR), and cache directory or file writes failing
// (CACHE_WRITE_ERROR). Environment management adds ENVIRONMENT_EXISTS and
// ENVIRONMENT_NOT_FOUND.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoAcceptableFile, "no installable files for %s", pkg)
//	if errors.Is(err, errors.ErrCodeNoAcceptableFile) {
//	    // Handle missing candidates
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFetch, origErr, "failed to fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Resolution and download errors
	ErrCodeFetch            Code = "FETCH_ERROR"
	ErrCodeNoAcceptableFile Code = "NO_ACCEPTABLE_FILE"
	ErrCodeCacheWrite       Code = "CACHE_WRITE_ERROR"

	// Installation errors
	ErrCodeInstall Code = "INSTALL_ERROR"

	// Environment management errors
	ErrCodeEnvironmentExists   Code = "ENVIRONMENT_EXISTS"
	ErrCodeEnvironmentNotFound Code = "ENVIRONMENT_NOT_FOUND"
	ErrCodeCommandNotFound     Code = "COMMAND_NOT_FOUND"

	// Configuration errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

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
