package sqlite

import (
	"database/sql"
	"fmt"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// taskColumns must stay in step with ScanTask.
const taskColumns = `t.id, t.created_at, t.title, t.due, t.status, t.completed_at,
	t.urgency_id, u.name, u.rank, t.tag_id, g.name, t.hide_until`

const taskFrom = `FROM tasks t
	LEFT JOIN urgencies u ON u.id = t.urgency_id
	LEFT JOIN tags g ON g.id = t.tag_id`

// ScanTask scans a single joined task row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var (
		createdAt   string
		due         sql.NullString
		completedAt sql.NullString
		urgencyID   sql.NullInt64
		urgencyName sql.NullString
		urgencyRank sql.NullInt64
		tagID       sql.NullInt64
		tagName     sql.NullString
		hideUntil   sql.NullString
	)

	err := scanner.Scan(
		&task.ID,
		&createdAt,
		&task.Title,
		&due,
		&task.Status,
		&completedAt,
		&urgencyID,
		&urgencyName,
		&urgencyRank,
		&tagID,
		&tagName,
		&hideUntil,
	)
	if err != nil {
		return nil, err
	}

	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("task %s: invalid created_at %q: %w", task.ID, createdAt, err)
	}
	if task.CompletedAt, err = ParseNullTimeFromDB(completedAt); err != nil {
		return nil, fmt.Errorf("task %s: invalid completed_at %q: %w", task.ID, completedAt.String, err)
	}

	task.Due = nullStringPtr(due)
	task.UrgencyID = nullInt64Ptr(urgencyID)
	task.UrgencyName = nullStringPtr(urgencyName)
	if urgencyRank.Valid {
		rank := int(urgencyRank.Int64)
		task.UrgencyRank = &rank
	}
	task.TagID = nullInt64Ptr(tagID)
	task.TagName = nullStringPtr(tagName)
	task.HideUntil = nullStringPtr(hideUntil)

	return task, nil
}

// ScanTasks scans multiple joined task rows
func ScanTasks(rows Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// ScanTag scans a single tag row
func ScanTag(scanner Scanner) (*Tag, error) {
	tag := &Tag{}
	if err := scanner.Scan(&tag.ID, &tag.Name); err != nil {
		return nil, err
	}
	return tag, nil
}

// ScanTags scans multiple tag rows
func ScanTags(rows Rows) ([]*Tag, error) {
	var tags []*Tag
	for rows.Next() {
		tag, err := ScanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// ScanUrgency scans a single urgency row
func ScanUrgency(scanner Scanner) (*Urgency, error) {
	urgency := &Urgency{}
	if err := scanner.Scan(&urgency.ID, &urgency.Name, &urgency.Rank); err != nil {
		return nil, err
	}
	return urgency, nil
}

// ScanUrgencies scans multiple urgency rows
func ScanUrgencies(rows Rows) ([]*Urgency, error) {
	var urgencies []*Urgency
	for rows.Next() {
		urgency, err := ScanUrgency(rows)
		if err != nil {
			return nil, err
		}
		urgencies = append(urgencies, urgency)
	}
	return urgencies, rows.Err()
}

// ScanString scans a single-column string row
func ScanString(scanner Scanner) (*string, error) {
	var s string
	if err := scanner.Scan(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ScanStrings scans single-column string rows
func ScanStrings(rows Rows) ([]*string, error) {
	var out []*string
	for rows.Next() {
		s, err := ScanString(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
