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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Feature model errors. The first three are recoverable during rule
	// application and are reported to listeners instead of aborting.
	ErrUndefinedVariable ErrorCode = "UNDEFINED_VARIABLE"
	ErrScalarRange       ErrorCode = "SCALAR_RANGE"
	ErrInvalidScalarOp   ErrorCode = "INVALID_SCALAR_OP"
	ErrNodeAccess        ErrorCode = "NODE_ACCESS"

	// Word and cursor errors
	ErrInvalidState   ErrorCode = "INVALID_STATE"
	ErrSegmentDeleted ErrorCode = "SEGMENT_DELETED"

	// Symbol and rule errors
	ErrSpelling    ErrorCode = "SPELLING"
	ErrRuleInvalid ErrorCode = "RULE_INVALID"
)

// PhonixError represents a structured error with code and details
type PhonixError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PhonixError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PhonixError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PhonixError) Is(target error) bool {
	var targetErr *PhonixError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PhonixError with the given code and message
func New(code ErrorCode, message string) *PhonixError {
	return &PhonixError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PhonixError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PhonixError {
	return &PhonixError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PhonixError
func Wrap(err error, code ErrorCode, message string) *PhonixError {
	if err == nil {
		return nil
	}
	return &PhonixError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PhonixError {
	if err == nil {
		return nil
	}
	return &PhonixError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PhonixError) WithDetail(key string, value interface{}) *PhonixError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PhonixError) WithDetails(details map[string]interface{}) *PhonixError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var phonixErr *PhonixError
	if errors.As(err, &phonixErr) {
		return phonixErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PhonixError
func GetErrorCode(err error) ErrorCode {
	var phonixErr *PhonixError
	if errors.As(err, &phonixErr) {
		return phonixErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PhonixError
func GetErrorDetails(err error) map[string]interface{} {
	var phonixErr *PhonixError
	if errors.As(err, &phonixErr) {
		return phonixErr.Details
	}
	return nil
}

// IsRecoverable reports whether err is one of the per-attempt errors that a
// rule reports and then continues past.
func IsRecoverable(err error) bool {
	switch GetErrorCode(err) {
	case ErrUndefinedVariable, ErrScalarRange, ErrInvalidScalarOp:
		return true
	}
	return false
}
