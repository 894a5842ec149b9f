package cli

import (
	"context"
	"fmt"
	"strings"

	"task-cli/internal/api"
	"task-cli/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute joins args into the title and creates the task
func (c *AddCommand) Execute(ctx context.Context, args []string, opts api.AddOptions) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("title", "", `usage: task add "task title"`)
	}
	title := strings.Join(args, " ")

	task, err := c.app.api.Add(ctx, title, opts)
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Task %q added successfully with ID: %s\n", task.Title, task.ID)
	return nil
}
