package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// ConfigEnv names an explicit config file. When set the file must exist.
const ConfigEnv = "TASK_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	getenv func(string) string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
		getenv: os.Getenv,
	}
}

// DefaultConfigPath returns ~/.config/task-cli/config.toml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "task-cli", "config.toml")
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if any
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	return l.load("")
}

func (l *Loader) load(explicitPath string) (*Config, error) {
	if err := l.loadFile(explicitPath); err != nil {
		return nil, err
	}

	if err := l.config.loadFromEnv(l.getenv); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFile reads the first config file found. An explicit path (flag or
// TASK_CONFIG) must exist; the default path is optional.
func (l *Loader) loadFile(explicitPath string) error {
	path := explicitPath
	if path == "" {
		path = l.getenv(ConfigEnv)
	}
	if path != "" {
		return l.config.LoadFromFile(path)
	}

	path = DefaultConfigPath()
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return l.config.LoadFromFile(path)
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	var explicitPath string
	if overrides != nil && overrides.ConfigPath != nil {
		explicitPath = *overrides.ConfigPath
	}

	// Load base configuration
	config, err := l.load(explicitPath)
	if err != nil {
		return nil, err
	}

	// Apply command line overrides
	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	ConfigPath *string

	// Database overrides
	DBDir      *string
	DBFilename *string

	// Display overrides
	Color *bool

	// Application overrides
	Verbose  *bool
	LogLevel *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}

	// Display overrides
	if overrides.Color != nil {
		config.Display.Color = *overrides.Color
	}

	// Application overrides
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
