// Package cmd provides the CLI commands for spellfinder.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BubbleCoding/spellfinder/internal/config"
	"github.com/BubbleCoding/spellfinder/internal/version"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	dbPath     string
	logLevel   string
}

// NewRootCmd creates the root command for the spellfinder CLI.
func NewRootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "spellfinder",
		Short: "Search a spell corpus database",
		Long: `spellfinder searches a read-only spell corpus by free text,
field:value clauses and facet filters.

Run 'spellfinder serve' for the HTTP API or 'spellfinder search' for a
one-off query.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file (default: config/$ENV.yaml)")
	cmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "Path to the spell corpus database (overrides config)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(newServeCmd(&flags))
	cmd.AddCommand(newSearchCmd(&flags))
	cmd.AddCommand(newFiltersCmd(&flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// loadConfig resolves configuration: an explicit file wins, a bare --db
// uses defaults, otherwise config/$ENV.yaml is read. --db always overrides
// the database path.
func loadConfig(flags *globalFlags) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	switch {
	case flags.configPath != "":
		cfg, err = config.LoadFile(flags.configPath)
	case flags.dbPath != "":
		cfg = config.Default(flags.dbPath)
	default:
		cfg, err = config.Load(config.GetEnv())
	}
	if err != nil {
		return config.Config{}, err
	}

	if flags.dbPath != "" {
		cfg.Database.Path = flags.dbPath
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
