package cli

import (
	"context"
	"fmt"

	"task-cli/internal/api"
	"task-cli/internal/domain"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute deletes the task named by id or id prefix. The user confirms
// first unless skipConfirm is set or confirmation is disabled.
func (c *DeleteCommand) Execute(ctx context.Context, id string, skipConfirm bool) error {
	var confirm api.ConfirmFunc
	if !skipConfirm && c.app.config.Commands.ConfirmDelete {
		confirm = func(task *domain.Task) (bool, error) {
			return c.app.prompter.Confirm(fmt.Sprintf("Delete task %q?", task.Title))
		}
	}

	result, err := c.app.api.Delete(ctx, id, confirm)
	if err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	if !result.Deleted {
		fmt.Fprintln(c.app.out, "Delete cancelled.")
		return nil
	}
	fmt.Fprintf(c.app.out, "Task %q deleted successfully.\n", id)
	return nil
}
