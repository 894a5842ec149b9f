package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestStatus_IsValid(t *testing.T) {
	for _, s := range ValidStatuses() {
		assert.True(t, s.IsValid(), "status %q should be valid", s)
	}
	assert.False(t, Status("open").IsValid())
	assert.False(t, Status("DONE").IsValid())
	assert.Equal(t, []string{"pending", "doing", "done"}, StatusNames())
}

func TestUrgencyNames_OrderedByRank(t *testing.T) {
	assert.Equal(t, []string{"critical", "high", "medium", "low"}, UrgencyNames())
}

func TestTask_IsOverdue(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{"no due date", Task{Status: StatusPending}, false},
		{"due yesterday", Task{Status: StatusPending, Due: strPtr("2024-05-09")}, true},
		{"due today", Task{Status: StatusDoing, Due: strPtr("2024-05-10")}, false},
		{"done tasks are never overdue", Task{Status: StatusDone, Due: strPtr("2024-01-01")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsOverdue("2024-05-10"))
		})
	}
}

func TestTask_IsHidden(t *testing.T) {
	tests := []struct {
		name      string
		hideUntil *string
		expected  bool
	}{
		{"not hidden", nil, false},
		{"hidden until tomorrow", strPtr("2024-05-11"), true},
		{"visible from today", strPtr("2024-05-10"), false},
		{"past hide date", strPtr("2024-05-01"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{HideUntil: tt.hideUntil}
			assert.Equal(t, tt.expected, task.IsHidden("2024-05-10"))
		})
	}
}

func TestTask_ShortID(t *testing.T) {
	assert.Equal(t, "0f8fad5b", Task{ID: "0f8fad5b-d9cb-469f-a165-70867728950e"}.ShortID())
	assert.Equal(t, "abc", Task{ID: "abc"}.ShortID())
}

func TestTask_IsCritical(t *testing.T) {
	assert.True(t, Task{Urgency: UrgencyCritical}.IsCritical())
	assert.False(t, Task{Urgency: UrgencyHigh}.IsCritical())
	assert.False(t, Task{}.IsCritical())
}
