package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultTitleMaxLength is used when no limit is configured.
const DefaultTitleMaxLength = 255

// Validator provides the basic string checks shared by task validation
type Validator struct {
	titleMaxLength int
}

// NewValidator creates a validator with default limits
func NewValidator() *Validator {
	return &Validator{titleMaxLength: DefaultTitleMaxLength}
}

// NewValidatorWithLimits creates a validator with a configured title limit.
// Non-positive limits fall back to the default.
func NewValidatorWithLimits(titleMaxLength int) *Validator {
	if titleMaxLength <= 0 {
		titleMaxLength = DefaultTitleMaxLength
	}
	return &Validator{titleMaxLength: titleMaxLength}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTitleLength checks the trimmed title against the configured limit, counted in runes
func (v *Validator) IsValidTitleLength(title string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(title)) <= v.titleMaxLength
}

// HasNoControlCharacters rejects newlines, tabs and other control runes
func (v *Validator) HasNoControlCharacters(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// TitleMaxLength returns the configured limit
func (v *Validator) TitleMaxLength() int {
	return v.titleMaxLength
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
