package validation

import (
	"errors"
	"strings"
	"testing"

	apperrors "task-cli/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskValidator_ValidateTitle(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		input       string
		expectError bool
		errorType   ValidationErrorType
	}{
		{"Valid title", "Buy milk", false, ""},
		{"Empty title", "", true, ErrorTypeRequired},
		{"Whitespace only", "   ", true, ErrorTypeRequired},
		{"Too long title", strings.Repeat("a", 256), true, ErrorTypeInvalidLength},
		{"Valid long title", strings.Repeat("a", 255), false, ""},
		{"Symbols are allowed", "Email @bob re: Q3 #budget", false, ""},
		{"Control characters", "Buy\nmilk", true, ErrorTypeInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := validator.ValidateTitle(tt.input)
			if !tt.expectError {
				if ve != nil {
					t.Errorf("ValidateTitle(%q) unexpected error: %v", tt.input, ve)
				}
				return
			}
			if ve == nil {
				t.Fatalf("ValidateTitle(%q) expected error but got nil", tt.input)
			}
			if ve.Errors[0].Type != tt.errorType {
				t.Errorf("ValidateTitle(%q) expected error type %v, got %v", tt.input, tt.errorType, ve.Errors[0].Type)
			}
		})
	}
}

func TestTaskValidator_NormalizeTitle(t *testing.T) {
	validator := NewTaskValidator()

	title, err := validator.NormalizeTitle("  Buy milk \t")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", title)

	_, err = validator.NormalizeTitle("   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "title cannot be empty")

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve), "cause should be the field error collection")
}

func TestTaskValidator_NormalizeTitle_ConfiguredLimit(t *testing.T) {
	validator := NewTaskValidatorWithLimits(4)

	_, err := validator.NormalizeTitle("Buy milk")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	title, err := validator.NormalizeTitle("Milk")
	require.NoError(t, err)
	assert.Equal(t, "Milk", title)
}

func TestTaskValidator_ValidateTaskID(t *testing.T) {
	validator := NewTaskValidator()

	assert.NoError(t, validator.ValidateTaskID("0f8fad5b"))
	assert.True(t, apperrors.IsErrorType(validator.ValidateTaskID(" "), apperrors.ErrorTypeInvalidInput))
	assert.True(t, apperrors.IsErrorType(validator.ValidateTaskID("ab\ncd"), apperrors.ErrorTypeInvalidInput))
}
