package domain

import "time"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending Status = "pending"
	StatusDoing   Status = "doing"
	StatusDone    Status = "done"
)

// ValidStatuses returns all valid status values in lifecycle order.
func ValidStatuses() []Status {
	return []Status{StatusPending, StatusDoing, StatusDone}
}

// StatusNames returns the valid statuses as plain strings.
func StatusNames() []string {
	names := make([]string, 0, 3)
	for _, s := range ValidStatuses() {
		names = append(names, string(s))
	}
	return names
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Seeded urgency names, most urgent first.
const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
	UrgencyLow      = "low"
)

// UrgencyNames returns the fixed urgency vocabulary ordered by rank.
func UrgencyNames() []string {
	return []string{UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow}
}

// Urgency is a fixed-vocabulary priority label. Lower rank is more urgent.
type Urgency struct {
	ID   int64
	Name string
	Rank int
}

// Tag is a lazily created grouping label.
type Tag struct {
	ID   int64
	Name string
}

// Task is a tracked to-do item joined with its urgency and tag names.
// Dates (Due, HideUntil) are canonical YYYY-MM-DD strings.
type Task struct {
	ID          string
	CreatedAt   time.Time
	Title       string
	Due         *string
	Status      Status
	CompletedAt *time.Time
	UrgencyID   *int64
	Urgency     string
	TagID       *int64
	Tag         string
	HideUntil   *string
}

// IsOverdue reports whether an unfinished task is due before today.
func (t Task) IsOverdue(today string) bool {
	if t.Due == nil || t.Status == StatusDone {
		return false
	}
	return *t.Due < today
}

// IsHidden reports whether the task is suppressed from default listings on today.
func (t Task) IsHidden(today string) bool {
	return t.HideUntil != nil && *t.HideUntil > today
}

// IsCritical reports whether the task carries the highest urgency.
func (t Task) IsCritical() bool {
	return t.Urgency == UrgencyCritical
}

// ShortID returns the first eight characters of the id for display.
func (t Task) ShortID() string {
	if len(t.ID) <= 8 {
		return t.ID
	}
	return t.ID[:8]
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
