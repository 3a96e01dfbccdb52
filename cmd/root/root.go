// Package root contains the root command for the application
package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/config"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/container"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
)

// GlobalFlags represents the flags shared by every command
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	Output     string
	BaseURL    string
}

// ErrNotInitialized is returned when a command runs before the container is built.
var ErrNotInitialized = errors.New("application is not initialized")

var (
	// Log is the shared logger instance for commands
	Log = logging.Nop()

	// Flags holds the persistent flag values
	Flags = GlobalFlags{}

	app *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "expensewise",
		Short: "A CLI client for the ExpenseWise personal finance backend.",
		Long: `expensewise is a CLI client for the ExpenseWise backend.
It records expenses and income, shows the dashboard with per-category
totals, and suggests categories while you describe an expense.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app != nil {
				return nil
			}
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			c, err := container.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			SetContainer(c)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app == nil {
				return
			}
			if err := app.Close(); err != nil {
				Log.WithError(err).Warn("Failed to release resources")
			}
			app = nil
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&Flags.ConfigFile, "config", "", "Config file (default searches $HOME/.expensewise, .expensewise and .)")
	Cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVarP(&Flags.Output, "output", "o", "", "Output format (text, json, yaml)")
	Cmd.PersistentFlags().StringVar(&Flags.BaseURL, "base-url", "", "ExpenseWise backend URL")
}

// LoadConfig reads the configuration and applies command-line overrides.
func LoadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if Flags.ConfigFile != "" {
		cfg, err = config.InitializeConfigFromFile(Flags.ConfigFile)
	} else {
		cfg, err = config.InitializeConfig()
	}
	if err != nil {
		return nil, err
	}

	if Flags.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(Flags.LogLevel)
	}
	if Flags.Output != "" {
		cfg.Output.Format = strings.ToLower(Flags.Output)
	}
	if Flags.BaseURL != "" {
		cfg.API.BaseURL = strings.TrimRight(Flags.BaseURL, "/")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// SetContainer installs c for the commands that follow.
func SetContainer(c *container.Container) {
	app = c
	if c != nil {
		Log = c.GetLogger()
	}
}

// Container returns the application container.
func Container() (*container.Container, error) {
	if app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}
