package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeDatabase:
		return "database"
	case ErrorTypeInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Error codes shared by the task store, the filter compiler and the CLI.
const (
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeDatabase           = "DATABASE_ERROR"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnknownFilterField = "UNKNOWN_FILTER_FIELD"
	CodeMalformedClause    = "MALFORMED_CLAUSE"
	CodeMalformedFilter    = "MALFORMED_FILTER"
	CodeInvalidDate        = "INVALID_DATE"
	CodeInvalidUrgency     = "INVALID_URGENCY"
	CodeInvalidTag         = "INVALID_TAG"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInvalidSort        = "INVALID_SORT"
	CodeAmbiguousID        = "AMBIGUOUS_ID"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError with the same type and code.
// This lets the sentinels below be used with errors.Is.
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (interface{}, bool) {
	if e.Context == nil {
		return nil, false
	}
	value, exists := e.Context[key]
	return value, exists
}

// Sentinels for errors.Is matching. Only Type and Code are compared.
var (
	ErrNotFound           = &AppError{Type: ErrorTypeNotFound, Code: CodeNotFound}
	ErrDatabase           = &AppError{Type: ErrorTypeDatabase, Code: CodeDatabase}
	ErrValidation         = &AppError{Type: ErrorTypeValidation, Code: CodeValidationFailed}
	ErrUnknownFilterField = &AppError{Type: ErrorTypeValidation, Code: CodeUnknownFilterField}
	ErrMalformedClause    = &AppError{Type: ErrorTypeValidation, Code: CodeMalformedClause}
	ErrMalformedFilter    = &AppError{Type: ErrorTypeValidation, Code: CodeMalformedFilter}
	ErrInvalidDate        = &AppError{Type: ErrorTypeValidation, Code: CodeInvalidDate}
	ErrInvalidUrgency     = &AppError{Type: ErrorTypeValidation, Code: CodeInvalidUrgency}
	ErrInvalidTag         = &AppError{Type: ErrorTypeValidation, Code: CodeInvalidTag}
	ErrInvalidStatus      = &AppError{Type: ErrorTypeValidation, Code: CodeInvalidStatus}
	ErrInvalidSort        = &AppError{Type: ErrorTypeValidation, Code: CodeInvalidSort}
	ErrAmbiguousID        = &AppError{Type: ErrorTypeValidation, Code: CodeAmbiguousID}
)
