package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"task-cli/internal/logging"
	"task-cli/internal/validation"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration options for the task application
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Display     DisplayConfig     `toml:"display"`
	Validation  ValidationConfig  `toml:"validation"`
	Commands    CommandsConfig    `toml:"commands"`
	Application ApplicationConfig `toml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string `toml:"dir" env:"TASK_DB_DIR"`
	Filename       string `toml:"filename" env:"TASK_DB_FILENAME"`
	DirPermissions uint32 `toml:"dir_permissions" env:"TASK_DB_DIR_PERMISSIONS"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	Color      bool   `toml:"color" env:"TASK_COLOR"`
	DateFormat string `toml:"date_format" env:"TASK_DATE_FORMAT"`
	TitleWidth int    `toml:"title_width" env:"TASK_TITLE_WIDTH"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength int `toml:"title_max_length" env:"TASK_TITLE_MAX_LENGTH"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ListDefaultSort   string `toml:"list_default_sort" env:"TASK_LIST_DEFAULT_SORT"`
	ListDefaultFormat string `toml:"list_default_format" env:"TASK_LIST_DEFAULT_FORMAT"`
	ConfirmDelete     bool   `toml:"confirm_delete" env:"TASK_CONFIRM_DELETE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Verbose  bool   `toml:"verbose" env:"TASK_VERBOSE"`
	LogLevel string `toml:"log_level" env:"TASK_LOG_LEVEL"`
}

// Output formats accepted by list.
var ListFormats = []string{"table", "json", "yaml", "csv"}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            filepath.Join(homeDir, ".task-cli"),
			Filename:       "tasks.db",
			DirPermissions: 0755,
		},
		Display: DisplayConfig{
			Color:      true,
			DateFormat: "2006-01-02",
			TitleWidth: 50,
		},
		Validation: ValidationConfig{
			TitleMaxLength: validation.DefaultTitleMaxLength,
		},
		Commands: CommandsConfig{
			ListDefaultSort:   "urgency:asc",
			ListDefaultFormat: "table",
			ConfirmDelete:     true,
		},
		Application: ApplicationConfig{
			Verbose:  false,
			LogLevel: "info",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LogOptions returns the logger options selected by the configuration
func (c *Config) LogOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = c.Application.LogLevel
	opts.Verbose = c.Application.Verbose
	return opts
}

// LoadFromFile decodes a TOML file over the current values. Keys absent
// from the file keep their value.
func (c *Config) LoadFromFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("cannot read %s: %v", path, err)}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return &ConfigError{Field: "file", Message: fmt.Sprintf("unknown keys in %s: %s", path, strings.Join(keys, ", "))}
	}
	return nil
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values are ignored and keep the current setting.
func (c *Config) LoadFromEnvironment() error {
	return c.loadFromEnv(os.Getenv)
}

func (c *Config) loadFromEnv(getenv func(string) string) error {
	// Database configuration
	if dir := getenv("TASK_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := getenv("TASK_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if perms := getenv("TASK_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Display configuration
	if color := getenv("TASK_COLOR"); color != "" {
		c.Display.Color = ParseBoolWithFallback(color, c.Display.Color)
	}
	if format := getenv("TASK_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if width := getenv("TASK_TITLE_WIDTH"); width != "" {
		c.Display.TitleWidth = ParseIntWithFallback(width, c.Display.TitleWidth)
	}

	// Validation configuration
	if maxLen := getenv("TASK_TITLE_MAX_LENGTH"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}

	// Commands configuration
	if sort := getenv("TASK_LIST_DEFAULT_SORT"); sort != "" {
		c.Commands.ListDefaultSort = sort
	}
	if format := getenv("TASK_LIST_DEFAULT_FORMAT"); format != "" {
		c.Commands.ListDefaultFormat = format
	}
	if confirm := getenv("TASK_CONFIRM_DELETE"); confirm != "" {
		c.Commands.ConfirmDelete = ParseBoolWithFallback(confirm, c.Commands.ConfirmDelete)
	}

	// Application configuration
	if verbose := getenv("TASK_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if level := getenv("TASK_LOG_LEVEL"); level != "" {
		c.Application.LogLevel = strings.ToLower(level)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.DirPermissions == 0 || c.Database.DirPermissions > 0777 {
		return &ConfigError{Field: "database.dir_permissions", Message: "directory permissions must be between 0001 and 0777"}
	}

	// Validate display configuration
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if c.Display.TitleWidth < 10 {
		return &ConfigError{Field: "display.title_width", Message: "title width must be at least 10"}
	}

	// Validate validation configuration
	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}

	// Validate commands configuration
	if _, err := validation.ParseSortSpec(c.Commands.ListDefaultSort); err != nil {
		return &ConfigError{Field: "commands.list_default_sort", Message: fmt.Sprintf("invalid sort %q", c.Commands.ListDefaultSort)}
	}
	if !isListFormat(c.Commands.ListDefaultFormat) {
		return &ConfigError{
			Field:   "commands.list_default_format",
			Message: fmt.Sprintf("format must be one of: %s", strings.Join(ListFormats, ", ")),
		}
	}

	// Validate application configuration
	if !logging.ValidLevel(c.Application.LogLevel) {
		return &ConfigError{Field: "application.log_level", Message: fmt.Sprintf("unknown log level %q", c.Application.LogLevel)}
	}

	return nil
}

func isListFormat(format string) bool {
	for _, f := range ListFormats {
		if f == format {
			return true
		}
	}
	return false
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
