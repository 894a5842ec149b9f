package cli

import (
	"context"
	"io"

	"task-cli/internal/api"
	"task-cli/internal/config"

	"github.com/charmbracelet/log"
)

// APIFactory opens the task API for a loaded configuration. The returned
// API is closed when the command finishes.
type APIFactory func(ctx context.Context, cfg *config.Config, logger *log.Logger) (api.API, error)

// App carries everything a command handler needs for one invocation
type App struct {
	api          api.API
	config       *config.Config
	out          io.Writer
	errOut       io.Writer
	prompter     Prompter
	logger       *log.Logger
	errorHandler *ErrorHandler
}

// renderer builds a table renderer for the app's output and settings
func (a *App) renderer() *Renderer {
	return NewRenderer(a.out, ColorEnabled(a.out, a.config.Display.Color), a.api.Today(), a.config.Display)
}
