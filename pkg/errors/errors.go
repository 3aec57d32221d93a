package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrCanceled     ErrorCode = "CANCELED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Build errors
	ErrCompile         ErrorCode = "COMPILE"
	ErrArtifactMissing ErrorCode = "ARTIFACT_MISSING"
	ErrRelocate        ErrorCode = "RELOCATE"
	ErrWorker          ErrorCode = "WORKER"

	// Packaging errors
	ErrPackage  ErrorCode = "PACKAGE"
	ErrManifest ErrorCode = "MANIFEST"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrFileRemove   ErrorCode = "FILE_REMOVE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// ReleaseError represents a structured error with code and details
type ReleaseError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ReleaseError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ReleaseError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ReleaseError) Is(target error) bool {
	var targetErr *ReleaseError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ReleaseError with the given code and message
func New(code ErrorCode, message string) *ReleaseError {
	return &ReleaseError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ReleaseError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ReleaseError {
	return &ReleaseError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ReleaseError
func Wrap(err error, code ErrorCode, message string) *ReleaseError {
	if err == nil {
		return nil
	}
	return &ReleaseError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ReleaseError {
	if err == nil {
		return nil
	}
	return &ReleaseError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ReleaseError) WithDetail(key string, value interface{}) *ReleaseError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var releaseErr *ReleaseError
	if errors.As(err, &releaseErr) {
		return releaseErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ReleaseError
func GetErrorCode(err error) ErrorCode {
	var releaseErr *ReleaseError
	if errors.As(err, &releaseErr) {
		return releaseErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ReleaseError
func GetErrorDetails(err error) map[string]interface{} {
	var releaseErr *ReleaseError
	if errors.As(err, &releaseErr) {
		return releaseErr.Details
	}
	return nil
}
