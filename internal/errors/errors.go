package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes shared by the analysis packages.
const (
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeNumericInvalid     = "NUMERIC_INVALID"
	CodeVerification       = "VERIFICATION_FAILED"
	CodeConfig             = "CONFIG"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message
func Newf(code, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context, keeping the code of the cause
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode wraps err under a new code
func WithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Code returns the code of the outermost AppError in the chain, or "" if none
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err carries the given code
func HasCode(err error, code string) bool {
	return err != nil && Code(err) == code
}

// Is forwards to the standard library so callers need a single import
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
