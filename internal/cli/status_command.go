package cli

import (
	"context"
	"fmt"

	"task-cli/internal/domain"
	"task-cli/internal/services"
)

// transitionMessages are the outcome lines for one target status
type transitionMessages struct {
	operation string
	changed   string
	unchanged string
}

var statusMessages = map[domain.Status]transitionMessages{
	domain.StatusDoing: {
		operation: "mark task as in progress",
		changed:   "Task %q is now in progress.",
		unchanged: "Task %q is already in progress.",
	},
	domain.StatusDone: {
		operation: "mark task as done",
		changed:   "Task %q marked as done.",
		unchanged: "Task %q is already marked as done.",
	},
	domain.StatusPending: {
		operation: "reopen task",
		changed:   "Task %q reopened.",
		unchanged: "Task %q is already pending.",
	},
}

// StatusCommand handles doing, done and reopen
type StatusCommand struct {
	app    *App
	target domain.Status
}

// NewStatusCommand creates a handler moving tasks to target
func NewStatusCommand(app *App, target domain.Status) *StatusCommand {
	return &StatusCommand{app: app, target: target}
}

// Execute transitions the task named by id or id prefix
func (c *StatusCommand) Execute(ctx context.Context, id string) error {
	msgs := statusMessages[c.target]

	var (
		result *services.TransitionResult
		err    error
	)
	switch c.target {
	case domain.StatusDoing:
		result, err = c.app.api.Doing(ctx, id)
	case domain.StatusDone:
		result, err = c.app.api.Done(ctx, id)
	default:
		result, err = c.app.api.Reopen(ctx, id)
	}
	if err != nil {
		return c.app.errorHandler.Handle(msgs.operation, err)
	}

	format := msgs.changed
	if !result.Changed {
		format = msgs.unchanged
	}
	fmt.Fprintf(c.app.out, format+"\n", id)
	return nil
}
