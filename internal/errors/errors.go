// Package errors defines the structured error taxonomy shared across the
// calibration orchestration services. Every worker-boundary failure is
// converted into one of these kinds before it reaches a caller.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeValidation indicates a malformed or incomplete request.
	// Reported synchronously; never retried.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeWorkerRejected indicates the compute worker responded 4xx with
	// its own diagnosis; passed through verbatim.
	ErrCodeWorkerRejected ErrorCode = "worker_rejected"
	// ErrCodeTransport indicates a network error, timeout, or unparsable
	// worker response. Implies nothing about job validity; safe to retry.
	ErrCodeTransport ErrorCode = "transport_failure"
	// ErrCodeNotFound indicates the worker or store has no record for the
	// identifier. Terminal for the query, not for the job.
	ErrCodeNotFound ErrorCode = "job_not_found"
	// ErrCodeNoMatch indicates no successful job matched the requested keys.
	// A legitimate "nothing yet" result, not a failure.
	ErrCodeNoMatch ErrorCode = "no_matching_job"
	// ErrCodeInternal indicates an unexpected local error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a local deadline was exceeded.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError is a structured application error with a code, message, optional
// cause, and the worker's original HTTP status where one was observed.
// It supports error wrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// HTTPStatus preserves the worker's original status code (0 if none)
	HTTPStatus int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// WorkerRejected creates a WorkerRejected error preserving the worker's
// status code and its own message.
func WorkerRejected(status int, message string) *AppError {
	return &AppError{Code: ErrCodeWorkerRejected, Message: message, HTTPStatus: status}
}

// Transport creates a Transport error wrapping the underlying cause.
func Transport(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeTransport, Message: message, Cause: cause}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NoMatch creates a new NoMatch error.
func NoMatch(message string) *AppError {
	return &AppError{Code: ErrCodeNoMatch, Message: message}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsWorkerRejected checks if an error is a WorkerRejected error.
func IsWorkerRejected(err error) bool {
	return isCode(err, ErrCodeWorkerRejected)
}

// IsTransport checks if an error is a Transport error.
func IsTransport(err error) bool {
	return isCode(err, ErrCodeTransport)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsNoMatch checks if an error is a NoMatch error.
func IsNoMatch(err error) bool {
	return isCode(err, ErrCodeNoMatch)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetHTTPStatus returns the preserved worker status code, or 0 if none.
func GetHTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return 0
}
