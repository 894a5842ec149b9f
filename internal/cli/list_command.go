package cli

import (
	"context"

	"task-cli/internal/api"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute queries tasks and writes them in format. Empty sort and format
// fall back to the configured defaults.
func (c *ListCommand) Execute(ctx context.Context, opts api.ListOptions, format string) error {
	if opts.Sort == "" {
		opts.Sort = c.app.config.Commands.ListDefaultSort
	}
	if format == "" {
		format = c.app.config.Commands.ListDefaultFormat
	}

	tasks, err := c.app.api.List(ctx, opts)
	if err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}
	c.app.logger.Debug("listed tasks", "count", len(tasks), "filter", opts.Filter, "sort", opts.Sort)

	if err := c.app.writeTasks(c.app.out, format, tasks, opts.All); err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}
	return nil
}
