package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("title is required")
	err := NewValidationError("invalid task title", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Code != CodeValidationFailed {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, CodeValidationFailed)
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "abc123")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: abc123" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: abc123")
	}

	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "abc123" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewDatabaseError("insert task", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewDatabaseError should wrap its cause")
	}
	if !errors.Is(err, ErrDatabase) {
		t.Errorf("NewDatabaseError should match ErrDatabase")
	}
}

func TestNewUnknownFilterFieldError(t *testing.T) {
	valid := []string{"title", "urgency", "status", "tag", "due", "id"}
	err := NewUnknownFilterFieldError("foo", valid)

	if !errors.Is(err, ErrUnknownFilterField) {
		t.Fatalf("expected ErrUnknownFilterField, got %v", err)
	}
	for _, field := range valid {
		if !strings.Contains(err.Message, field) {
			t.Errorf("message %q should list field %q", err.Message, field)
		}
	}
	field, _ := err.GetContext("field")
	if field != "foo" {
		t.Errorf("field context = %v, want foo", field)
	}
	got, _ := err.GetContext("valid_fields")
	if fields, ok := got.([]string); !ok || len(fields) != 6 {
		t.Errorf("valid_fields context = %v, want six names", got)
	}
}

func TestNewInvalidUrgencyError(t *testing.T) {
	err := NewInvalidUrgencyError("urgent", []string{"critical", "high", "medium", "low"})

	if !errors.Is(err, ErrInvalidUrgency) {
		t.Fatalf("expected ErrInvalidUrgency, got %v", err)
	}
	if !strings.Contains(err.Message, "critical, high, medium, low") {
		t.Errorf("message %q should enumerate valid options", err.Message)
	}
}

func TestSentinelsDoNotCrossMatch(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{"malformed clause", NewMalformedClauseError("status"), ErrMalformedClause, true},
		{"malformed clause is not unknown field", NewMalformedClauseError("status"), ErrUnknownFilterField, false},
		{"malformed filter", NewMalformedFilterError("(a", 2, "missing )"), ErrMalformedFilter, true},
		{"invalid date", NewInvalidDateError("due", "someday"), ErrInvalidDate, true},
		{"invalid tag", NewInvalidTagError("Bad Tag"), ErrInvalidTag, true},
		{"invalid status", NewInvalidStatusError("open", []string{"pending"}), ErrInvalidStatus, true},
		{"invalid sort", NewInvalidSortError("title:asc", []string{"due", "urgency"}), ErrInvalidSort, true},
		{"ambiguous id", NewAmbiguousIDError("ab", []string{"ab1", "ab2"}), ErrAmbiguousID, true},
		{"not found is not validation", NewNotFoundError("task", "x"), ErrValidation, false},
		{"wrapped", fmt.Errorf("list: %w", NewInvalidDateError("due", "x")), ErrInvalidDate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.sentinel); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewNotFoundError("task", "1")
	if !IsErrorType(err, ErrorTypeNotFound) {
		t.Error("IsErrorType should match not_found")
	}
	if IsErrorType(err, ErrorTypeValidation) {
		t.Error("IsErrorType should not match validation")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeNotFound) {
		t.Error("IsErrorType should be false for plain error")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", NewValidationError("title cannot be empty", nil), "title cannot be empty"},
		{"not found", NewNotFoundError("task", "1"), "task not found: 1"},
		{"database hides cause", NewDatabaseError("insert", errors.New("SQLITE_BUSY")), "A database error occurred. Please try again."},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.want {
				t.Errorf("GetUserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(NewInvalidTagError("X")); got != CodeInvalidTag {
		t.Errorf("GetErrorCode() = %v, want %v", got, CodeInvalidTag)
	}
	if got := GetErrorCode(errors.New("plain")); got != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode() = %v, want UNKNOWN_ERROR", got)
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", NewValidationError("bad", nil), false},
		{"not found", NewNotFoundError("task", "1"), false},
		{"invalid input", NewInvalidInputError("id", "", "required"), false},
		{"database", NewDatabaseError("query", errors.New("locked")), true},
		{"plain", errors.New("boom"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldLogError(tt.err); got != tt.want {
				t.Errorf("ShouldLogError() = %v, want %v", got, tt.want)
			}
		})
	}
}
