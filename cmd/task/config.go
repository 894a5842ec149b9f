package main

import (
	"context"
	"fmt"
	"os"

	"task-cli/internal/api"
	"task-cli/internal/cli"
	"task-cli/internal/config"
	"task-cli/internal/logging"
	"task-cli/internal/repository/sqlite"
	"task-cli/internal/services"

	"github.com/charmbracelet/log"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// EnvironmentVar selects the repository environment
const EnvironmentVar = "TASK_ENV"

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository(ctx context.Context, cfg *config.Config) (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		return rf.createDevelopmentRepository(ctx)
	case Testing:
		return rf.createTestingRepository(ctx)
	default:
		return rf.createProductionRepository(ctx, cfg)
	}
}

// createDevelopmentRepository uses a database file in the working directory
func (rf *RepositoryFactory) createDevelopmentRepository(ctx context.Context) (sqlite.Repository, error) {
	logging.Debugf("using development database tasks.db")
	repo, err := sqlite.NewWithContext(ctx, "tasks.db")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}

// createTestingRepository uses a private in-memory database
func (rf *RepositoryFactory) createTestingRepository(ctx context.Context) (sqlite.Repository, error) {
	repo, err := sqlite.NewWithContext(ctx, sqlite.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize testing database: %w", err)
	}
	return repo, nil
}

// createProductionRepository uses the configured database location
func (rf *RepositoryFactory) createProductionRepository(ctx context.Context, cfg *config.Config) (sqlite.Repository, error) {
	logging.Debugf("using database %s", cfg.GetDatabasePath())
	repo, err := config.CreateRepository(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize production database: %w", err)
	}
	return repo, nil
}

// APIFactory opens a repository and wraps it in the task API
func (rf *RepositoryFactory) APIFactory() cli.APIFactory {
	return func(ctx context.Context, cfg *config.Config, logger *log.Logger) (api.API, error) {
		repo, err := rf.CreateRepository(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return api.New(repo, services.Options{
			Logger:         logger,
			TitleMaxLength: cfg.Validation.TitleMaxLength,
		}), nil
	}
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch Environment(os.Getenv(EnvironmentVar)) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}
