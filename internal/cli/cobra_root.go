package cli

import (
	"context"
	"io"
	"os"

	"task-cli/internal/api"
	"task-cli/internal/config"
	"task-cli/internal/domain"
	"task-cli/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// needsStore marks commands that open the task database
const needsStore = "needs-store"

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd      *cobra.Command
	factory  APIFactory
	app      *App
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	prompter Prompter
}

// Option customizes a RootCommand
type Option func(*RootCommand)

// WithOutput redirects command output and diagnostics
func WithOutput(out, errOut io.Writer) Option {
	return func(r *RootCommand) {
		r.out = out
		r.errOut = errOut
	}
}

// WithInput sets the reader confirmation answers are read from
func WithInput(in io.Reader) Option {
	return func(r *RootCommand) { r.in = in }
}

// WithPrompter replaces the stdin prompter
func WithPrompter(p Prompter) Option {
	return func(r *RootCommand) { r.prompter = p }
}

// NewRootCommand creates the root cobra command with global flags. The
// store is opened through factory once flags and configuration are known.
func NewRootCommand(factory APIFactory, opts ...Option) *RootCommand {
	root := &RootCommand{
		factory: factory,
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   "task",
		Short: "A command-line task tracker",
		Long: `task is a personal command-line task tracker.

Tasks have a title and optionally a due date, an urgency (critical, high,
medium, low), a tag and a hide-until date before which they are left out of
the default listing.

EXAMPLES:
  task add "Buy milk" --due tomorrow --urgency high --tag errands
  task list --filter "(status:pending OR status:doing) AND urgency:high"
  task list --sort due:desc --all
  task doing 0f8fad5b
  task done 0f8f
  task edit 0f8f --tag "" --due "next friday"
  task delete 0f8f --yes

DATES:
  YYYY-MM-DD, today, tomorrow, next <weekday>, or a signed offset such as
  +3d, -1w, +1m, +1y. Month and year offsets clamp to the end of the month.

FILTERS:
  field:value clauses joined by AND / OR, with parentheses for grouping.
  AND binds tighter than OR. Fields: title, urgency, status, tag, due, id.
  title matches a case-insensitive substring; the others match exactly.

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Config file: $TASK_CONFIG or ~/.config/task-cli/config.toml
    TASK_DB_DIR                Database directory (default: ~/.task-cli)
    TASK_DB_FILENAME           Database filename (default: tasks.db)
    TASK_COLOR                 Colour output (default: true, NO_COLOR disables)
    TASK_DATE_FORMAT           Date layout in tables (default: 2006-01-02)
    TASK_TITLE_WIDTH           Title column width (default: 50)
    TASK_TITLE_MAX_LENGTH      Maximum title length (default: 255)
    TASK_LIST_DEFAULT_SORT     Default list sort (default: urgency:asc)
    TASK_LIST_DEFAULT_FORMAT   Default list format (default: table)
    TASK_CONFIRM_DELETE        Ask before deleting (default: true)
    TASK_VERBOSE               Debug logging (default: false)
    TASK_LOG_LEVEL             Log level (default: info)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[needsStore] == "" {
				return nil
			}
			return root.open(cmd.Context())
		},
	}
	root.cmd.SetIn(root.in)
	root.cmd.SetOut(root.out)
	root.cmd.SetErr(root.errOut)

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Command exposes the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// SetArgs sets the arguments the next Execute parses
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command and closes the store afterwards
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.app != nil {
		if closeErr := r.app.api.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.app = nil
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides TASK_CONFIG)")
	flags.String("db-dir", "", "Database directory (overrides TASK_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TASK_DB_FILENAME)")
	flags.BoolP("verbose", "v", false, "Enable debug logging (overrides TASK_VERBOSE)")
	flags.Bool("no-color", false, "Disable colour output")
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides TASK_LOG_LEVEL)")
}

// overridesFromFlags collects the global flags the user actually set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	overrides.ConfigPath = optionalString(flags, "config")
	overrides.DBDir = optionalString(flags, "db-dir")
	overrides.DBFilename = optionalString(flags, "db-filename")
	overrides.LogLevel = optionalString(flags, "log-level")

	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		color := false
		overrides.Color = &color
	}
	return overrides
}

// open loads configuration, configures logging and opens the store
func (r *RootCommand) open(ctx context.Context) error {
	cfg, err := config.NewLoader().LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return err
	}

	logOpts := cfg.LogOptions()
	logOpts.Output = r.errOut
	logger := logging.New(logOpts)
	logging.SetDefault(logger)
	logger.Debug("configuration loaded", "db", cfg.GetDatabasePath())

	apiInstance, err := r.factory(ctx, cfg, logger)
	if err != nil {
		return err
	}

	prompter := r.prompter
	if prompter == nil {
		prompter = NewStdioPrompter(r.in, r.errOut)
	}

	r.app = &App{
		api:          apiInstance,
		config:       cfg,
		out:          r.out,
		errOut:       r.errOut,
		prompter:     prompter,
		logger:       logger,
		errorHandler: NewErrorHandler().WithLogger(logger),
	}
	return nil
}

// optionalString returns a pointer to the flag value when the flag was set,
// so an explicit empty value is distinguishable from an absent flag
func optionalString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func storeCommand(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[needsStore] = "true"
	return cmd
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Add command
	var addOpts api.AddOptions
	addCmd := storeCommand(&cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Long: `Add a new pending task. Words after "add" form the title.

Examples:
  task add Buy milk
  task add "Write report" --due "next friday" --urgency high --tag work
  task add "Renew passport" --hide +2m`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewAddCommand(r.app).Execute(cmd.Context(), args, addOpts)
		},
	})
	addCmd.Flags().StringVar(&addOpts.Due, "due", "", "Due date (YYYY-MM-DD or relative, e.g. tomorrow, +3d)")
	addCmd.Flags().StringVar(&addOpts.Urgency, "urgency", "", "Urgency (critical, high, medium, low)")
	addCmd.Flags().StringVar(&addOpts.Tag, "tag", "", "Tag for the task")
	addCmd.Flags().StringVar(&addOpts.Hide, "hide", "", "Hide the task until this date")

	// List command
	var listOpts api.ListOptions
	var listFormat string
	listCmd := storeCommand(&cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks, most urgent first. Tasks hidden until a future date are
left out unless --all is given.

Examples:
  task list
  task list --filter "status:done AND due:today"
  task list --filter "tag:work OR tag:home" --sort due:asc
  task list --all --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewListCommand(r.app).Execute(cmd.Context(), listOpts, listFormat)
		},
	})
	listCmd.Flags().StringVarP(&listOpts.Filter, "filter", "f", "", "Filter expression, e.g. 'status:pending AND tag:work'")
	listCmd.Flags().StringVarP(&listOpts.Sort, "sort", "s", "", "Sort by due or urgency, e.g. due:asc, urgency:desc")
	listCmd.Flags().BoolVarP(&listOpts.All, "all", "a", false, "Show all tasks, including hidden ones")
	listCmd.Flags().StringVarP(&listFormat, "format", "o", "", "Output format: table, json, yaml, csv")

	// Status commands
	statusCmd := func(use, short string, target domain.Status) *cobra.Command {
		return storeCommand(&cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Long:  short + ". The id may be any unambiguous prefix of the task id.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return NewStatusCommand(r.app, target).Execute(cmd.Context(), args[0])
			},
		})
	}
	doingCmd := statusCmd("doing", "Mark a task as in progress", domain.StatusDoing)
	doneCmd := statusCmd("done", "Mark a task as done", domain.StatusDone)
	reopenCmd := statusCmd("reopen", "Mark a task as pending again", domain.StatusPending)

	// Delete command
	var skipConfirm bool
	deleteCmd := storeCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long: `Delete a task. You are asked to confirm unless --yes is given or
TASK_CONFIRM_DELETE is false. This cannot be undone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewDeleteCommand(r.app).Execute(cmd.Context(), args[0], skipConfirm)
		},
	})
	deleteCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Delete without asking")

	// Edit command
	editCmd := storeCommand(&cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Edit a task. Only the given flags change. An empty value clears
--due, --urgency, --tag and --hide.

Examples:
  task edit 0f8f --title "Buy oat milk"
  task edit 0f8f --urgency critical --due today
  task edit 0f8f --tag ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			opts := api.EditOptions{
				Title:   optionalString(flags, "title"),
				Due:     optionalString(flags, "due"),
				Urgency: optionalString(flags, "urgency"),
				Tag:     optionalString(flags, "tag"),
				Hide:    optionalString(flags, "hide"),
			}
			return NewEditCommand(r.app).Execute(cmd.Context(), args[0], opts)
		},
	})
	editCmd.Flags().String("title", "", "New task title")
	editCmd.Flags().String("due", "", "New due date, empty to clear")
	editCmd.Flags().String("urgency", "", "New urgency, empty to clear")
	editCmd.Flags().String("tag", "", "New tag, empty to clear")
	editCmd.Flags().String("hide", "", "New hide-until date, empty to clear")

	// Reference data
	tagsCmd := storeCommand(&cobra.Command{
		Use:   "tags",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewTagsCommand(r.app).Execute(cmd.Context())
		},
	})
	urgenciesCmd := storeCommand(&cobra.Command{
		Use:   "urgencies",
		Short: "List urgency levels, most urgent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewUrgenciesCommand(r.app).Execute(cmd.Context())
		},
	})

	// Add all subcommands to root
	r.cmd.AddCommand(
		addCmd,
		listCmd,
		doingCmd,
		doneCmd,
		reopenCmd,
		deleteCmd,
		editCmd,
		tagsCmd,
		urgenciesCmd,
	)
}
