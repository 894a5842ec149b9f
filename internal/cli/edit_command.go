package cli

import (
	"context"
	"fmt"

	"task-cli/internal/api"
)

// EditCommand handles the edit command
type EditCommand struct {
	app *App
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute applies opts to the task named by id or id prefix
func (c *EditCommand) Execute(ctx context.Context, id string, opts api.EditOptions) error {
	result, err := c.app.api.Edit(ctx, id, opts)
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	if !result.Changed {
		fmt.Fprintf(c.app.out, "No changes provided for task %q.\n", id)
		return nil
	}
	fmt.Fprintf(c.app.out, "Task %q updated successfully.\n", id)
	return nil
}
