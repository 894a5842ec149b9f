package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Options configures the application logger.
type Options struct {
	Level           string
	Verbose         bool
	Output          io.Writer
	Prefix          string
	ReportTimestamp bool
}

// DefaultOptions logs at info level to stderr with the "task" prefix.
func DefaultOptions() Options {
	return Options{
		Level:  "info",
		Output: os.Stderr,
		Prefix: "task",
	}
}

var (
	mu            sync.RWMutex
	defaultLogger = New(DefaultOptions())
)

// New builds a text logger. Verbose or TASK_DEBUG force debug level; an
// unknown level name falls back to info.
func New(opts Options) *log.Logger {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil {
		level = log.InfoLevel
	}
	if opts.Verbose || DebugEnabled() {
		level = log.DebugLevel
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	return log.NewWithOptions(out, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Default returns the process-wide logger.
func Default() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *log.Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

// ValidLevel reports whether name is a level the logger understands.
func ValidLevel(name string) bool {
	_, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	return err == nil
}
