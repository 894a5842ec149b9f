package sqlite

import (
	"context"
	"database/sql"
	"strings"

	apperrors "task-cli/internal/errors"
	"task-cli/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Repository defines the task store's persistence operations
type Repository interface {
	// Create operations
	CreateTask(ctx context.Context, task *Task) error
	GetOrCreateTag(ctx context.Context, name string) (*Tag, error)

	// Read operations
	GetTask(ctx context.Context, id string) (*Task, error)
	FindTaskIDsByPrefix(ctx context.Context, prefix string) ([]string, error)
	QueryTasks(ctx context.Context, q TaskQuery) ([]*Task, error)
	ListTags(ctx context.Context) ([]*Tag, error)
	ListUrgencies(ctx context.Context) ([]*Urgency, error)

	// Update operations
	UpdateTask(ctx context.Context, task *Task) error

	// Delete operations
	DeleteTask(ctx context.Context, id string) (bool, error)

	// WithTx runs fn against a repository bound to one transaction. The
	// transaction commits if fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(Repository) error) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
	q  querier
	tx *sql.Tx
}

// New opens the database at dbPath, applies pending migrations and returns
// a repository that owns the connection.
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithContext(context.Background(), dbPath)
}

// NewWithContext is New with a caller supplied context for the migrations.
func NewWithContext(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, apperrors.NewDatabaseError("open database", err)
	}
	// One connection keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, apperrors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, q: db}, nil
}

func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	if r.tx != nil {
		return nil
	}
	return r.db.Close()
}

// WithTx runs fn in a transaction. Nested calls join the outer transaction.
func (r *SQLiteRepository) WithTx(ctx context.Context, fn func(Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewDatabaseError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&SQLiteRepository{db: r.db, q: tx, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewDatabaseError("commit transaction", err)
	}
	return nil
}

// CreateTask inserts a task row
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	query := `
	INSERT INTO tasks (id, created_at, title, due, status, completed_at, urgency_id, tag_id, hide_until)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.q.ExecContext(ctx, query,
		task.ID,
		FormatTimeForDB(task.CreatedAt),
		task.Title,
		FormatStringPtrForDB(task.Due),
		task.Status,
		FormatTimePtrForDB(task.CompletedAt),
		FormatInt64PtrForDB(task.UrgencyID),
		FormatInt64PtrForDB(task.TagID),
		FormatStringPtrForDB(task.HideUntil),
	)
	if err != nil {
		return HandleDatabaseError("insert task", err)
	}
	return nil
}

// GetTask retrieves a task by exact ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*Task, error) {
	query := "SELECT " + taskColumns + "\n" + taskFrom + "\nWHERE t.id = ?"
	return QuerySingle(ctx, r.q, query, ScanTask, "task", id, id)
}

// FindTaskIDsByPrefix returns the ids starting with prefix, in id order
func (r *SQLiteRepository) FindTaskIDsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	query := `SELECT id FROM tasks WHERE id LIKE ? ESCAPE '\' ORDER BY id`
	ids, err := QueryMultiple(ctx, r.q, query, ScanStrings, "task ids", escapeLike(prefix)+"%")
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, *id)
	}
	return out, nil
}

// QueryTasks lists tasks matching q
func (r *SQLiteRepository) QueryTasks(ctx context.Context, q TaskQuery) ([]*Task, error) {
	query, args, err := buildTaskQuery(q)
	if err != nil {
		return nil, HandleDatabaseError("build task query", err)
	}
	return QueryMultiple(ctx, r.q, query, ScanTasks, "tasks", args...)
}

// UpdateTask overwrites every mutable column of an existing task
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	query := `
	UPDATE tasks
	SET title = ?, due = ?, status = ?, completed_at = ?, urgency_id = ?, tag_id = ?, hide_until = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.q, query, "task", task.ID,
		task.Title,
		FormatStringPtrForDB(task.Due),
		task.Status,
		FormatTimePtrForDB(task.CompletedAt),
		FormatInt64PtrForDB(task.UrgencyID),
		FormatInt64PtrForDB(task.TagID),
		FormatStringPtrForDB(task.HideUntil),
		task.ID,
	)
}

// DeleteTask deletes a task by exact ID and reports whether a row was removed
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) (bool, error) {
	n, err := ExecuteCountingRows(ctx, r.q, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetOrCreateTag returns the tag called name, inserting it on first use
func (r *SQLiteRepository) GetOrCreateTag(ctx context.Context, name string) (*Tag, error) {
	if _, err := r.q.ExecContext(ctx, `INSERT OR IGNORE INTO tags (name) VALUES (?)`, name); err != nil {
		return nil, HandleDatabaseError("insert tag", err)
	}
	return QuerySingle(ctx, r.q, `SELECT id, name FROM tags WHERE name = ?`, ScanTag, "tag", name, name)
}

// ListTags retrieves all tags by name
func (r *SQLiteRepository) ListTags(ctx context.Context) ([]*Tag, error) {
	return QueryMultiple(ctx, r.q, `SELECT id, name FROM tags ORDER BY name ASC`, ScanTags, "tags")
}

// ListUrgencies retrieves the urgency vocabulary, most urgent first
func (r *SQLiteRepository) ListUrgencies(ctx context.Context) ([]*Urgency, error) {
	return QueryMultiple(ctx, r.q, `SELECT id, name, rank FROM urgencies ORDER BY rank ASC`, ScanUrgencies, "urgencies")
}
