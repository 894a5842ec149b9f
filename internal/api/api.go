package api

import (
	"context"
	"strings"

	"task-cli/internal/dates"
	"task-cli/internal/domain"
	apperrors "task-cli/internal/errors"
	"task-cli/internal/filter"
	"task-cli/internal/repository/sqlite"
	"task-cli/internal/services"
	"task-cli/internal/validation"
)

// AddOptions are the optional raw values accepted by add.
type AddOptions struct {
	Due     string
	Urgency string
	Tag     string
	Hide    string
}

// ListOptions are the raw list flags. Filter is a filter expression, Sort a
// "field[:direction]" spec and All includes hidden tasks.
type ListOptions struct {
	Filter string
	Sort   string
	All    bool
}

// EditOptions holds the edit flags. A nil field is left alone. For due,
// urgency, tag and hide an empty string clears the field.
type EditOptions struct {
	Title   *string
	Due     *string
	Urgency *string
	Tag     *string
	Hide    *string
}

// EditResult reports an edit. Changed is false when no field was supplied.
type EditResult struct {
	Task    *domain.Task `json:"task"`
	Changed bool         `json:"changed"`
}

// DeleteResult reports a delete. Deleted is false when the confirmation
// was declined.
type DeleteResult struct {
	Task    *domain.Task `json:"task"`
	Deleted bool         `json:"deleted"`
}

// ConfirmFunc asks whether task may be deleted.
type ConfirmFunc func(task *domain.Task) (bool, error)

// API is the command-layer facade. Every method takes raw CLI values and
// accepts a full task id or an unambiguous prefix where an id is expected.
type API interface {
	Add(ctx context.Context, title string, opts AddOptions) (*domain.Task, error)
	List(ctx context.Context, opts ListOptions) ([]*domain.Task, error)
	Get(ctx context.Context, idOrPrefix string) (*domain.Task, error)
	Edit(ctx context.Context, idOrPrefix string, opts EditOptions) (*EditResult, error)
	Delete(ctx context.Context, idOrPrefix string, confirm ConfirmFunc) (*DeleteResult, error)

	Doing(ctx context.Context, idOrPrefix string) (*services.TransitionResult, error)
	Done(ctx context.Context, idOrPrefix string) (*services.TransitionResult, error)
	Reopen(ctx context.Context, idOrPrefix string) (*services.TransitionResult, error)

	Tags(ctx context.Context) ([]domain.Tag, error)
	Urgencies(ctx context.Context) ([]domain.Urgency, error)

	// Today is the current date as YYYY-MM-DD.
	Today() string

	Close() error
}

type apiImpl struct {
	repo    sqlite.Repository
	service services.TaskService
}

// New creates an API that owns repo and closes it on Close.
func New(repo sqlite.Repository, opts services.Options) API {
	return &apiImpl{
		repo:    repo,
		service: services.NewTaskService(repo, opts),
	}
}

func (a *apiImpl) Close() error {
	return a.repo.Close()
}

func (a *apiImpl) Today() string {
	return dates.Today(a.service.Today())
}

func (a *apiImpl) Add(ctx context.Context, title string, opts AddOptions) (*domain.Task, error) {
	return a.service.CreateTask(ctx, services.CreateTaskInput{
		Title:     title,
		Due:       strings.TrimSpace(opts.Due),
		Urgency:   strings.TrimSpace(opts.Urgency),
		Tag:       strings.TrimSpace(opts.Tag),
		HideUntil: strings.TrimSpace(opts.Hide),
	})
}

func (a *apiImpl) List(ctx context.Context, opts ListOptions) ([]*domain.Task, error) {
	sort, err := validation.ParseSortSpec(opts.Sort)
	if err != nil {
		return nil, err
	}
	predicate, err := filter.Compile(opts.Filter, a.service.Today())
	if err != nil {
		return nil, err
	}

	return a.service.QueryTasks(ctx, services.TaskQuery{
		Predicate:     predicate,
		Sort:          sort,
		IncludeHidden: opts.All,
	})
}

func (a *apiImpl) Get(ctx context.Context, idOrPrefix string) (*domain.Task, error) {
	id, err := a.service.ResolveTaskID(ctx, strings.TrimSpace(idOrPrefix))
	if err != nil {
		return nil, err
	}
	return a.service.GetTask(ctx, id)
}

// clearable maps an edit flag to a three-state update: absent, blank (clear)
// or a value.
func clearable(v *string) domain.Update[string] {
	switch {
	case v == nil:
		return domain.Update[string]{}
	case strings.TrimSpace(*v) == "":
		return domain.Clear[string]()
	default:
		return domain.Set(strings.TrimSpace(*v))
	}
}

func (a *apiImpl) Edit(ctx context.Context, idOrPrefix string, opts EditOptions) (*EditResult, error) {
	id, err := a.service.ResolveTaskID(ctx, strings.TrimSpace(idOrPrefix))
	if err != nil {
		return nil, err
	}

	update := domain.TaskUpdate{
		Due:       clearable(opts.Due),
		Urgency:   clearable(opts.Urgency),
		Tag:       clearable(opts.Tag),
		HideUntil: clearable(opts.Hide),
	}
	// A blank title is a value the validator rejects, not a clear.
	if opts.Title != nil {
		update.Title = domain.Set(*opts.Title)
	}

	task, err := a.service.UpdateTask(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return &EditResult{Task: task, Changed: !update.IsEmpty()}, nil
}

func (a *apiImpl) Delete(ctx context.Context, idOrPrefix string, confirm ConfirmFunc) (*DeleteResult, error) {
	task, err := a.Get(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	if confirm != nil {
		ok, err := confirm(task)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &DeleteResult{Task: task}, nil
		}
	}

	deleted, err := a.service.DeleteTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		// Removed by someone else while the confirmation was pending.
		return nil, apperrors.NewNotFoundError("task", task.ID)
	}
	return &DeleteResult{Task: task, Deleted: deleted}, nil
}

func (a *apiImpl) transition(ctx context.Context, idOrPrefix string, status domain.Status) (*services.TransitionResult, error) {
	id, err := a.service.ResolveTaskID(ctx, strings.TrimSpace(idOrPrefix))
	if err != nil {
		return nil, err
	}
	return a.service.TransitionTask(ctx, id, status)
}

func (a *apiImpl) Doing(ctx context.Context, idOrPrefix string) (*services.TransitionResult, error) {
	return a.transition(ctx, idOrPrefix, domain.StatusDoing)
}

func (a *apiImpl) Done(ctx context.Context, idOrPrefix string) (*services.TransitionResult, error) {
	return a.transition(ctx, idOrPrefix, domain.StatusDone)
}

func (a *apiImpl) Reopen(ctx context.Context, idOrPrefix string) (*services.TransitionResult, error) {
	return a.transition(ctx, idOrPrefix, domain.StatusPending)
}

func (a *apiImpl) Tags(ctx context.Context) ([]domain.Tag, error) {
	return a.service.ListTags(ctx)
}

func (a *apiImpl) Urgencies(ctx context.Context) ([]domain.Urgency, error) {
	return a.service.ListUrgencies(ctx)
}
