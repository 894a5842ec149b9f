package services

import (
	"context"
	"time"

	"task-cli/internal/dates"
	"task-cli/internal/domain"
	apperrors "task-cli/internal/errors"
	"task-cli/internal/logging"
	"task-cli/internal/repository/sqlite"
	"task-cli/internal/validation"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	mapper        *TaskMapper
	taskValidator *validation.TaskValidator
	clock         func() time.Time
	newID         func() string
	logger        *log.Logger
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo sqlite.Repository, opts Options) TaskService {
	s := &taskServiceImpl{
		repo:          repo,
		mapper:        NewTaskMapper(),
		taskValidator: validation.NewTaskValidatorWithLimits(opts.TitleMaxLength),
		clock:         opts.Clock,
		newID:         opts.NewID,
		logger:        opts.Logger,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	return s
}

func (s *taskServiceImpl) Today() time.Time {
	return s.clock()
}

// logFailure records system errors; user errors are reported by the caller.
func (s *taskServiceImpl) logFailure(op string, err error) error {
	if err != nil && apperrors.ShouldLogError(err) {
		s.logger.Error("task store failure", "op", op, "err", err)
	}
	return err
}

// resolveOptionalDate resolves a non-empty raw date for field.
func resolveOptionalDate(field, raw string, ref time.Time) (*string, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := validation.ResolveDate(field, raw, ref)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *taskServiceImpl) resolveUrgencyID(ctx context.Context, repo sqlite.Repository, name string) (*int64, error) {
	rows, err := repo.ListUrgencies(ctx)
	if err != nil {
		return nil, err
	}
	id, err := validation.ResolveUrgency(name, s.mapper.UrgenciesFromDatabase(rows))
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// CreateTask validates input, resolves references and inserts a pending task
func (s *taskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	now := s.clock()

	title, err := s.taskValidator.NormalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}
	due, err := resolveOptionalDate("due", input.Due, now)
	if err != nil {
		return nil, err
	}
	hideUntil, err := resolveOptionalDate("hide", input.HideUntil, now)
	if err != nil {
		return nil, err
	}

	var urgencyName, tagName string
	if input.Urgency != "" {
		if urgencyName, err = validation.NormalizeUrgencyName(input.Urgency); err != nil {
			return nil, err
		}
	}
	if input.Tag != "" {
		if tagName, err = validation.NormalizeTag(input.Tag); err != nil {
			return nil, err
		}
	}

	row := s.mapper.ToDatabase(domain.Task{
		ID:        s.newID(),
		CreatedAt: now.UTC().Truncate(time.Second),
		Title:     title,
		Due:       due,
		Status:    domain.StatusPending,
		HideUntil: hideUntil,
	})

	var created *domain.Task
	err = s.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		if urgencyName != "" {
			id, err := s.resolveUrgencyID(ctx, tx, urgencyName)
			if err != nil {
				return err
			}
			row.UrgencyID = id
		}
		if tagName != "" {
			tag, err := tx.GetOrCreateTag(ctx, tagName)
			if err != nil {
				return err
			}
			row.TagID = &tag.ID
		}
		if err := tx.CreateTask(ctx, &row); err != nil {
			return err
		}

		stored, err := tx.GetTask(ctx, row.ID)
		if err != nil {
			return err
		}
		task := s.mapper.FromDatabase(*stored)
		created = &task
		return nil
	})
	if err != nil {
		return nil, s.logFailure("create", err)
	}

	s.logger.Debug("task created", "id", created.ID, "title", created.Title)
	return created, nil
}

// GetTask retrieves a task by its exact ID
func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := s.taskValidator.ValidateTaskID(id); err != nil {
		return nil, err
	}

	row, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, s.logFailure("get", err)
	}
	task := s.mapper.FromDatabase(*row)
	return &task, nil
}

// ResolveTaskID maps an exact id or an unambiguous id prefix to a full id
func (s *taskServiceImpl) ResolveTaskID(ctx context.Context, idOrPrefix string) (string, error) {
	if err := s.taskValidator.ValidateTaskID(idOrPrefix); err != nil {
		return "", err
	}

	if _, err := s.repo.GetTask(ctx, idOrPrefix); err == nil {
		return idOrPrefix, nil
	} else if !apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
		return "", s.logFailure("resolve id", err)
	}

	matches, err := s.repo.FindTaskIDsByPrefix(ctx, idOrPrefix)
	if err != nil {
		return "", s.logFailure("resolve id", err)
	}

	switch len(matches) {
	case 0:
		return "", apperrors.NewNotFoundError("task", idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return "", apperrors.NewAmbiguousIDError(idOrPrefix, matches)
	}
}

// taskChanges is a TaskUpdate with every value validated and resolved
// except the urgency id, which needs the store.
type taskChanges struct {
	title     *string
	due       domain.Update[string]
	urgency   domain.Update[string]
	tag       domain.Update[string]
	hideUntil domain.Update[string]
}

func (s *taskServiceImpl) prepareChanges(update domain.TaskUpdate, now time.Time) (taskChanges, error) {
	var c taskChanges

	if update.Title.IsClear() {
		return c, apperrors.NewInvalidInputError("title", "", "title cannot be cleared")
	}
	if raw, ok := update.Title.Value(); ok {
		title, err := s.taskValidator.NormalizeTitle(raw)
		if err != nil {
			return c, err
		}
		c.title = &title
	}

	resolveDate := func(field string, u domain.Update[string]) (domain.Update[string], error) {
		raw, ok := u.Value()
		if !ok {
			return u, nil
		}
		d, err := validation.ResolveDate(field, raw, now)
		if err != nil {
			return u, err
		}
		return domain.Set(d), nil
	}

	var err error
	if c.due, err = resolveDate("due", update.Due); err != nil {
		return c, err
	}
	if c.hideUntil, err = resolveDate("hide", update.HideUntil); err != nil {
		return c, err
	}

	c.urgency = update.Urgency
	if raw, ok := update.Urgency.Value(); ok {
		name, err := validation.NormalizeUrgencyName(raw)
		if err != nil {
			return c, err
		}
		c.urgency = domain.Set(name)
	}

	c.tag = update.Tag
	if raw, ok := update.Tag.Value(); ok {
		name, err := validation.NormalizeTag(raw)
		if err != nil {
			return c, err
		}
		c.tag = domain.Set(name)
	}

	return c, nil
}

func applyDate(current *string, u domain.Update[string]) *string {
	if !u.IsSpecified() {
		return current
	}
	if v, ok := u.Value(); ok {
		return &v
	}
	return nil
}

// UpdateTask applies a partial update. Unspecified fields keep their value,
// cleared fields become empty and set fields take the new value.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error) {
	if err := s.taskValidator.ValidateTaskID(id); err != nil {
		return nil, err
	}
	changes, err := s.prepareChanges(update, s.clock())
	if err != nil {
		return nil, err
	}

	var updated *domain.Task
	err = s.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		row, err := tx.GetTask(ctx, id)
		if err != nil {
			return err
		}

		if changes.title != nil {
			row.Title = *changes.title
		}
		row.Due = applyDate(row.Due, changes.due)
		row.HideUntil = applyDate(row.HideUntil, changes.hideUntil)

		if changes.urgency.IsClear() {
			row.UrgencyID = nil
		} else if name, ok := changes.urgency.Value(); ok {
			if row.UrgencyID, err = s.resolveUrgencyID(ctx, tx, name); err != nil {
				return err
			}
		}

		if changes.tag.IsClear() {
			row.TagID = nil
		} else if name, ok := changes.tag.Value(); ok {
			tag, err := tx.GetOrCreateTag(ctx, name)
			if err != nil {
				return err
			}
			row.TagID = &tag.ID
		}

		if !update.IsEmpty() {
			if err := tx.UpdateTask(ctx, row); err != nil {
				return err
			}
		}

		stored, err := tx.GetTask(ctx, id)
		if err != nil {
			return err
		}
		task := s.mapper.FromDatabase(*stored)
		updated = &task
		return nil
	})
	if err != nil {
		return nil, s.logFailure("update", err)
	}

	s.logger.Debug("task updated", "id", id)
	return updated, nil
}

// TransitionTask moves a task to status. Moving to the current status is a
// successful no-op. Entering done stamps completion time; leaving done
// clears it.
func (s *taskServiceImpl) TransitionTask(ctx context.Context, id string, status domain.Status) (*TransitionResult, error) {
	if err := s.taskValidator.ValidateTaskID(id); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, apperrors.NewInvalidStatusError(string(status), domain.StatusNames())
	}

	var result *TransitionResult
	err := s.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		row, err := tx.GetTask(ctx, id)
		if err != nil {
			return err
		}

		task := s.mapper.FromDatabase(*row)
		previous := task.Status
		if previous != status {
			task.Status = status
			if status == domain.StatusDone {
				completed := s.clock().UTC().Truncate(time.Second)
				task.CompletedAt = &completed
			} else {
				task.CompletedAt = nil
			}
			updated := s.mapper.ToDatabase(task)
			if err := tx.UpdateTask(ctx, &updated); err != nil {
				return err
			}
		}

		result = &TransitionResult{Task: &task, Previous: previous, Changed: previous != status}
		return nil
	})
	if err != nil {
		return nil, s.logFailure("transition", err)
	}

	s.logger.Debug("task transitioned", "id", id, "from", result.Previous, "to", status, "changed", result.Changed)
	return result, nil
}

// DeleteTask removes a task by exact id, reporting whether it existed
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) (bool, error) {
	if err := s.taskValidator.ValidateTaskID(id); err != nil {
		return false, err
	}

	var removed bool
	err := s.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		var err error
		removed, err = tx.DeleteTask(ctx, id)
		return err
	})
	if err != nil {
		return false, s.logFailure("delete", err)
	}

	s.logger.Debug("task deleted", "id", id, "removed", removed)
	return removed, nil
}

// QueryTasks lists tasks matching q, hiding tasks whose hide-until date is
// after today unless q.IncludeHidden is set
func (s *taskServiceImpl) QueryTasks(ctx context.Context, q TaskQuery) ([]*domain.Task, error) {
	sort := q.Sort
	if sort.Field == "" {
		sort = domain.DefaultSort()
	}

	rows, err := s.repo.QueryTasks(ctx, sqlite.TaskQuery{
		Predicate:     q.Predicate,
		Sort:          sort,
		IncludeHidden: q.IncludeHidden,
		Today:         dates.Today(s.clock()),
	})
	if err != nil {
		return nil, s.logFailure("query", err)
	}
	return s.mapper.FromDatabaseSlice(rows), nil
}

// GetOrCreateTag normalizes name and returns its tag, creating it on first use
func (s *taskServiceImpl) GetOrCreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	normalized, err := validation.NormalizeTag(name)
	if err != nil {
		return nil, err
	}

	var tag *domain.Tag
	err = s.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		row, err := tx.GetOrCreateTag(ctx, normalized)
		if err != nil {
			return err
		}
		tag = &domain.Tag{ID: row.ID, Name: row.Name}
		return nil
	})
	if err != nil {
		return nil, s.logFailure("get or create tag", err)
	}
	return tag, nil
}

// ListTags returns all tags by name
func (s *taskServiceImpl) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, s.logFailure("list tags", err)
	}
	return s.mapper.TagsFromDatabase(rows), nil
}

// ListUrgencies returns the urgency vocabulary, most urgent first
func (s *taskServiceImpl) ListUrgencies(ctx context.Context) ([]domain.Urgency, error) {
	rows, err := s.repo.ListUrgencies(ctx)
	if err != nil {
		return nil, s.logFailure("list urgencies", err)
	}
	return s.mapper.UrgenciesFromDatabase(rows), nil
}
