package errors

import (
	"errors"
	"fmt"
	"strings"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    CodeValidationFailed,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    CodeNotFound,
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    CodeDatabase,
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    CodeInvalidInput,
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewUnknownFilterFieldError reports a filter clause naming a field that cannot be filtered on.
func NewUnknownFilterFieldError(field string, validFields []string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("invalid filter field: %s. Valid fields: %s", field, strings.Join(validFields, ", ")),
		Code:    CodeUnknownFilterField,
		Context: map[string]interface{}{
			"field":        field,
			"valid_fields": validFields,
		},
	}
}

// NewMalformedClauseError reports a filter clause that is not of the form field:value.
func NewMalformedClauseError(clause string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("invalid filter clause %q: must be 'field:value'", clause),
		Code:    CodeMalformedClause,
		Context: map[string]interface{}{
			"clause": clause,
		},
	}
}

// NewMalformedFilterError reports a structural problem in a filter expression.
func NewMalformedFilterError(filter string, position int, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("invalid filter %q at position %d: %s", filter, position, reason),
		Code:    CodeMalformedFilter,
		Context: map[string]interface{}{
			"filter":   filter,
			"position": position,
			"reason":   reason,
		},
	}
}

// NewInvalidDateError reports a date expression the resolver could not understand.
func NewInvalidDateError(field string, value string) *AppError {
	return &AppError{
		Type: ErrorTypeValidation,
		Message: fmt.Sprintf("invalid %s date %q. Use YYYY-MM-DD or relative formats (e.g., 'today', 'tomorrow', '+3d', 'next monday')",
			field, value),
		Code: CodeInvalidDate,
		Context: map[string]interface{}{
			"field": field,
			"value": value,
		},
	}
}

// NewInvalidUrgencyError reports an urgency outside the seeded set.
func NewInvalidUrgencyError(value string, validOptions []string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("invalid urgency %q. Valid options are: %s", value, strings.Join(validOptions, ", ")),
		Code:    CodeInvalidUrgency,
		Context: map[string]interface{}{
			"value":         value,
			"valid_options": validOptions,
		},
	}
}

// NewInvalidTagError reports a tag name that does not match the hyphenated lowercase format.
func NewInvalidTagError(value string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("invalid tag format %q. Use lowercase letters, numbers, and hyphens (e.g., 'work', 'urgent-task')", value),
		Code:    CodeInvalidTag,
		Context: map[string]interface{}{
			"value": value,
		},
	}
}

// NewInvalidStatusError reports an unknown task status.
func NewInvalidStatusError(value string, validOptions []string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("invalid status %q. Valid options are: %s", value, strings.Join(validOptions, ", ")),
		Code:    CodeInvalidStatus,
		Context: map[string]interface{}{
			"value":         value,
			"valid_options": validOptions,
		},
	}
}

// NewInvalidSortError reports a sort spec outside the whitelist.
func NewInvalidSortError(value string, validFields []string) *AppError {
	return &AppError{
		Type: ErrorTypeValidation,
		Message: fmt.Sprintf("invalid sort: %s. Use format 'field:direction' (e.g., 'due:asc'). Valid fields: %s",
			value, strings.Join(validFields, ", ")),
		Code: CodeInvalidSort,
		Context: map[string]interface{}{
			"value":        value,
			"valid_fields": validFields,
		},
	}
}

// NewAmbiguousIDError reports an id prefix matching more than one task.
func NewAmbiguousIDError(prefix string, matches []string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("task id prefix %q is ambiguous, matches: %s", prefix, strings.Join(matches, ", ")),
		Code:    CodeAmbiguousID,
		Context: map[string]interface{}{
			"prefix":  prefix,
			"matches": matches,
		},
	}
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return false
		default:
			return true
		}
	}
	return true
}
