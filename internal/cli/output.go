package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"task-cli/internal/config"
	"task-cli/internal/domain"
	"task-cli/internal/errors"

	"gopkg.in/yaml.v3"
)

// taskRecord is the machine-readable shape of a listed task
type taskRecord struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Due         *string `json:"due" yaml:"due"`
	Status      string  `json:"status" yaml:"status"`
	Urgency     string  `json:"urgency,omitempty" yaml:"urgency,omitempty"`
	Tag         string  `json:"tag,omitempty" yaml:"tag,omitempty"`
	HideUntil   *string `json:"hide_until" yaml:"hide_until"`
	CreatedAt   string  `json:"created_at" yaml:"created_at"`
	CompletedAt *string `json:"completed_at" yaml:"completed_at"`
}

func newTaskRecord(task *domain.Task) taskRecord {
	rec := taskRecord{
		ID:        task.ID,
		Title:     task.Title,
		Due:       task.Due,
		Status:    string(task.Status),
		Urgency:   task.Urgency,
		Tag:       task.Tag,
		HideUntil: task.HideUntil,
		CreatedAt: task.CreatedAt.UTC().Format(time.RFC3339),
	}
	if task.CompletedAt != nil {
		completed := task.CompletedAt.UTC().Format(time.RFC3339)
		rec.CompletedAt = &completed
	}
	return rec
}

func newTaskRecords(tasks []*domain.Task) []taskRecord {
	records := make([]taskRecord, len(tasks))
	for i, task := range tasks {
		records[i] = newTaskRecord(task)
	}
	return records
}

// writeTasks writes tasks to out in format, one of config.ListFormats
func (a *App) writeTasks(out io.Writer, format string, tasks []*domain.Task, showHidden bool) error {
	switch format {
	case "table":
		return a.renderer().Tasks(tasks, showHidden)
	case "json":
		return writeJSON(out, tasks)
	case "yaml":
		return writeYAML(out, tasks)
	case "csv":
		return writeCSV(out, tasks)
	default:
		return errors.NewInvalidInputError("format", format,
			fmt.Sprintf("unsupported format, use one of: %s", strings.Join(config.ListFormats, ", ")))
	}
}

func writeJSON(out io.Writer, tasks []*domain.Task) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(newTaskRecords(tasks))
}

func writeYAML(out io.Writer, tasks []*domain.Task) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(newTaskRecords(tasks)); err != nil {
		return err
	}
	return enc.Close()
}

func writeCSV(out io.Writer, tasks []*domain.Task) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"id", "title", "due", "status", "urgency", "tag", "hide_until", "created_at", "completed_at"}); err != nil {
		return err
	}
	for _, rec := range newTaskRecords(tasks) {
		if err := w.Write([]string{
			rec.ID,
			rec.Title,
			deref(rec.Due),
			rec.Status,
			rec.Urgency,
			rec.Tag,
			deref(rec.HideUntil),
			rec.CreatedAt,
			deref(rec.CompletedAt),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
