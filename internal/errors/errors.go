package errors

import (
	"fmt"
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

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
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

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Error codes follow the batch-processing taxonomy: structural (malformed
// batch shape), row-level (missing column or field), referential (child row
// without a resolvable parent), and store (persistence boundary failures).
const (
	CodeStructural    = "STRUCTURAL_ERROR"
	CodeRowInvalid    = "ROW_INVALID"
	CodeReferential   = "REFERENTIAL_ERROR"
	CodeStore         = "STORE_ERROR"
	CodeDuplicateKey  = "DUPLICATE_KEY"
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInternalError = "INTERNAL_ERROR"
)

// Common error constructors
func Structural(message string) *AppError {
	return New(CodeStructural, message)
}

func RowInvalid(message string) *AppError {
	return New(CodeRowInvalid, message)
}

func Referential(message string) *AppError {
	return New(CodeReferential, message)
}

func StoreError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeStore,
		Message: message,
		Cause:   cause,
	}
}

func DuplicateKey(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeDuplicateKey,
		Message: message,
		Cause:   cause,
	}
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}
