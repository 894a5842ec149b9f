package cli

import (
	"fmt"

	"task-cli/internal/errors"
	"task-cli/internal/logging"
	"task-cli/internal/validation"

	"github.com/charmbracelet/log"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct {
	logger *log.Logger
}

// NewErrorHandler creates a new error handler that logs through the default logger
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// WithLogger returns a handler that reports system error causes to logger
func (eh *ErrorHandler) WithLogger(logger *log.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

func (eh *ErrorHandler) log() *log.Logger {
	if eh.logger != nil {
		return eh.logger
	}
	return logging.Default()
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if appErr, ok := errors.AsAppError(err); ok {
		// The user sees a generic message; the cause goes to the debug log.
		if errors.ShouldLogError(err) {
			eh.log().Debug("command failed", "op", operation, "code", appErr.Code, "err", appErr)
		}
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("%s", validationErr.GetUserFriendlyMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}

	return err
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
