package services

import (
	"task-cli/internal/domain"
	"task-cli/internal/repository/sqlite"
)

// TaskMapper converts between store rows and domain tasks.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// FromDatabase converts a joined task row to a domain Task.
func (m *TaskMapper) FromDatabase(row sqlite.Task) domain.Task {
	task := domain.Task{
		ID:          row.ID,
		CreatedAt:   row.CreatedAt,
		Title:       row.Title,
		Due:         row.Due,
		Status:      domain.Status(row.Status),
		CompletedAt: row.CompletedAt,
		UrgencyID:   row.UrgencyID,
		TagID:       row.TagID,
		HideUntil:   row.HideUntil,
	}
	if row.UrgencyName != nil {
		task.Urgency = *row.UrgencyName
	}
	if row.TagName != nil {
		task.Tag = *row.TagName
	}
	return task
}

// ToDatabase converts a domain Task to a task row. Joined names are not
// written back; the foreign keys are authoritative.
func (m *TaskMapper) ToDatabase(task domain.Task) sqlite.Task {
	return sqlite.Task{
		ID:          task.ID,
		CreatedAt:   task.CreatedAt,
		Title:       task.Title,
		Due:         task.Due,
		Status:      string(task.Status),
		CompletedAt: task.CompletedAt,
		UrgencyID:   task.UrgencyID,
		TagID:       task.TagID,
		HideUntil:   task.HideUntil,
	}
}

// FromDatabaseSlice converts task rows to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(rows []*sqlite.Task) []*domain.Task {
	tasks := make([]*domain.Task, len(rows))
	for i, row := range rows {
		task := m.FromDatabase(*row)
		tasks[i] = &task
	}
	return tasks
}

// UrgenciesFromDatabase converts urgency rows, keeping rank order.
func (m *TaskMapper) UrgenciesFromDatabase(rows []*sqlite.Urgency) []domain.Urgency {
	out := make([]domain.Urgency, len(rows))
	for i, row := range rows {
		out[i] = domain.Urgency{ID: row.ID, Name: row.Name, Rank: row.Rank}
	}
	return out
}

// TagsFromDatabase converts tag rows.
func (m *TaskMapper) TagsFromDatabase(rows []*sqlite.Tag) []domain.Tag {
	out := make([]domain.Tag, len(rows))
	for i, row := range rows {
		out[i] = domain.Tag{ID: row.ID, Name: row.Name}
	}
	return out
}
