package validation

import (
	apperrors "task-cli/internal/errors"
)

// TaskValidator validates user-supplied task fields
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWithLimits creates a task validator with a configured title limit
func NewTaskValidatorWithLimits(titleMaxLength int) *TaskValidator {
	return &TaskValidator{validator: NewValidatorWithLimits(titleMaxLength)}
}

// ValidateTitle checks a title and returns the field errors found, or nil
func (tv *TaskValidator) ValidateTitle(title string) *ValidationError {
	validationError := NewValidationError()
	trimmed := tv.validator.TrimAndValidateString(title)

	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title")
		return validationError
	}
	if !tv.validator.IsValidTitleLength(trimmed) {
		validationError.AddInvalidLengthError("title", trimmed, tv.validator.TitleMaxLength())
	}
	if !tv.validator.HasNoControlCharacters(trimmed) {
		validationError.AddInvalidCharacterError("title", trimmed)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// NormalizeTitle returns the trimmed title, or a VALIDATION_FAILED error
// wrapping the field errors.
func (tv *TaskValidator) NormalizeTitle(title string) (string, error) {
	if ve := tv.ValidateTitle(title); ve != nil {
		return "", apperrors.NewValidationError(ve.GetUserFriendlyMessage(), ve).
			WithContext("field", "title")
	}
	return tv.validator.TrimAndValidateString(title), nil
}

// ValidateTaskID rejects blank task ids and id prefixes
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsNonEmptyString(id) {
		return apperrors.NewInvalidInputError("id", id, "task id cannot be empty")
	}
	if !tv.validator.HasNoControlCharacters(id) {
		return apperrors.NewInvalidInputError("id", id, "task id contains invalid characters")
	}
	return nil
}
