package services

import (
	"context"
	"time"

	"task-cli/internal/domain"
	"task-cli/internal/filter"

	"github.com/charmbracelet/log"
)

// CreateTaskInput carries raw user input for a new task. Empty optional
// fields are treated as absent. Due and HideUntil accept any date expression
// the resolver understands.
type CreateTaskInput struct {
	Title     string `json:"title"`
	Due       string `json:"due,omitempty"`
	Urgency   string `json:"urgency,omitempty"`
	Tag       string `json:"tag,omitempty"`
	HideUntil string `json:"hide_until,omitempty"`
}

// TaskQuery selects tasks for listing. A nil Predicate matches every task.
type TaskQuery struct {
	Predicate     filter.Predicate
	Sort          domain.SortSpec
	IncludeHidden bool
}

// TransitionResult reports a status change. Changed is false when the task
// already had the requested status.
type TransitionResult struct {
	Task     *domain.Task  `json:"task"`
	Previous domain.Status `json:"previous"`
	Changed  bool          `json:"changed"`
}

// TaskService owns the task store contract. Every mutation runs in one
// transaction and validation happens before anything is written.
type TaskService interface {
	// Task CRUD operations
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) (bool, error)

	// Task workflow operations
	TransitionTask(ctx context.Context, id string, status domain.Status) (*TransitionResult, error)
	ResolveTaskID(ctx context.Context, idOrPrefix string) (string, error)

	// Listing
	QueryTasks(ctx context.Context, q TaskQuery) ([]*domain.Task, error)

	// Reference data
	GetOrCreateTag(ctx context.Context, name string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	ListUrgencies(ctx context.Context) ([]domain.Urgency, error)

	// Today returns the service clock's current time, the reference for
	// relative dates and the hide-until rule.
	Today() time.Time
}

// Options configures a TaskService. Zero values select the wall clock,
// random v4 UUIDs, the default logger and the default title limit.
type Options struct {
	Clock          func() time.Time
	NewID          func() string
	Logger         *log.Logger
	TitleMaxLength int
}
