package cli

import (
	"context"
	"fmt"
)

// TagsCommand prints the known tags
type TagsCommand struct {
	app *App
}

// NewTagsCommand creates a new tags command handler
func NewTagsCommand(app *App) *TagsCommand {
	return &TagsCommand{app: app}
}

func (c *TagsCommand) Execute(ctx context.Context) error {
	tags, err := c.app.api.Tags(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list tags", err)
	}
	if len(tags) == 0 {
		fmt.Fprintln(c.app.out, "No tags found.")
		return nil
	}
	for _, tag := range tags {
		fmt.Fprintln(c.app.out, tag.Name)
	}
	return nil
}

// UrgenciesCommand prints the urgency vocabulary, most urgent first
type UrgenciesCommand struct {
	app *App
}

// NewUrgenciesCommand creates a new urgencies command handler
func NewUrgenciesCommand(app *App) *UrgenciesCommand {
	return &UrgenciesCommand{app: app}
}

func (c *UrgenciesCommand) Execute(ctx context.Context) error {
	urgencies, err := c.app.api.Urgencies(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list urgencies", err)
	}
	for _, u := range urgencies {
		fmt.Fprintf(c.app.out, "%d. %s\n", u.Rank, u.Name)
	}
	return nil
}
