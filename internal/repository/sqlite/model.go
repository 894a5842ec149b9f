package sqlite

import (
	"time"

	"task-cli/internal/domain"
	"task-cli/internal/filter"
)

// Task is a row of the tasks table joined with its urgency and tag.
// Nullable columns are pointers; the joined columns are read-only.
type Task struct {
	ID          string
	CreatedAt   time.Time
	Title       string
	Due         *string
	Status      string
	CompletedAt *time.Time
	UrgencyID   *int64
	TagID       *int64
	HideUntil   *string

	UrgencyName *string
	UrgencyRank *int
	TagName     *string
}

// Tag is a row of the tags table
type Tag struct {
	ID   int64
	Name string
}

// Urgency is a row of the urgencies table
type Urgency struct {
	ID   int64
	Name string
	Rank int
}

// TaskQuery selects and orders tasks. Today is the YYYY-MM-DD date the
// hide-until rule is evaluated against.
type TaskQuery struct {
	Predicate     filter.Predicate
	Sort          domain.SortSpec
	IncludeHidden bool
	Today         string
}
