// Package cli defines the command-line interface for barcut.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/piwi3910/barcut/internal/config"
	"github.com/piwi3910/barcut/internal/logging"
	"github.com/piwi3910/barcut/internal/model"
	"github.com/piwi3910/barcut/internal/project"
)

// Options stores global CLI options shared between commands. The loaded
// environment, app config and stock catalog are filled in before any
// subcommand runs.
type Options struct {
	ConfigPath  string
	CatalogPath string
	EnvFile     string
	LogLevel    string

	Env     config.Env
	App     model.AppConfig
	Catalog model.StockCatalog
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, slog.LevelInfo)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCommand(&Options{}, logger)
	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(ctx)
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "barcut",
		Short:         "barcut plans how to cut parts from stock bars",
		Long:          "barcut reads part lists, groups them by material and packs the pieces onto as few stock bars as possible, then writes cut lists, reports and labels.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.load(); err != nil {
				return err
			}

			levelName := opts.App.LogLevel
			if opts.Env.LogLevel != "" {
				levelName = opts.Env.LogLevel
			}
			if cmd.Flags().Changed("log-level") {
				levelName = opts.LogLevel
			}
			level, err := logging.ParseLevel(levelName)
			if err != nil {
				return err
			}

			logger = logging.NewLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level, "config", opts.ConfigPath, "catalog", opts.CatalogPath)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config.json (default ~/.barcut/config.json)")
	cmd.PersistentFlags().StringVar(&opts.CatalogPath, "catalog", "", "Path to the stock catalog (default ~/.barcut/stock.json)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", config.DefaultEnvFile, "Dotenv file with BARCUT_* overrides")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newOptimizeCommand(opts),
		newCompareCommand(opts),
		newEstimateCommand(opts),
		newReportCommand(opts),
		newConfigCommand(opts),
		newStockCommand(opts),
	)

	return cmd
}

// load reads the environment overrides, the app config and the stock
// catalog. BARCUT_CONFIG only applies when --config is not given.
func (o *Options) load() error {
	e, err := config.Load(o.EnvFile)
	if err != nil {
		return err
	}
	o.Env = e

	if o.ConfigPath == "" {
		o.ConfigPath = e.ConfigPath
	}
	if o.ConfigPath == "" {
		o.ConfigPath = project.DefaultConfigPath()
	}
	if o.CatalogPath == "" {
		o.CatalogPath = project.DefaultCatalogPath()
	}

	if o.App, err = project.LoadAppConfig(o.ConfigPath); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if o.Catalog, err = project.LoadCatalog(o.CatalogPath); err != nil {
		return fmt.Errorf("load stock catalog: %w", err)
	}
	return nil
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, slog.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, slog.LevelInfo)
}

// newGroupCommand builds a cobra.Command that groups subcommands.
func newGroupCommand(use, short string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	if len(subcommands) > 0 {
		cmd.AddCommand(subcommands...)
	}
	return cmd
}
