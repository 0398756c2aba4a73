package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/barcut/internal/model"
	"github.com/piwi3910/barcut/internal/project"
)

// newConfigCommand groups the commands that manage ~/.barcut/config.json.
func newConfigCommand(opts *Options) *cobra.Command {
	return newGroupCommand("config", "Show, create, back up and restore configuration",
		newConfigShowCommand(opts),
		newConfigInitCommand(opts),
		newConfigExportCommand(opts),
		newConfigImportCommand(opts),
	)
}

func newConfigShowCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := model.DefaultSettings()
			opts.App.ApplyToSettings(&s)
			opts.Catalog.ApplyToSettings(&s)
			opts.Env.Apply(&s)

			out := struct {
				ConfigPath  string          `json:"config_path"`
				CatalogPath string          `json:"catalog_path"`
				Config      model.AppConfig `json:"config"`
				Settings    model.Settings  `json:"settings"`
			}{opts.ConfigPath, opts.CatalogPath, opts.App, s}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

func newConfigInitCommand(opts *Options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			if _, err := os.Stat(opts.ConfigPath); err == nil && !force {
				return fmt.Errorf("config %s already exists (use --force to overwrite)", opts.ConfigPath)
			}
			if err := project.SaveAppConfig(opts.ConfigPath, model.DefaultAppConfig()); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			logger.Info("config written", "path", opts.ConfigPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigExportCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Back up the config and stock catalog to one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := project.ExportAllData(args[0], opts.App, opts.Catalog); err != nil {
				return err
			}
			LoggerFromContext(cmd.Context()).Info("backup written", "path", args[0], "stocks", len(opts.Catalog.Stocks))
			return nil
		},
	}
}

func newConfigImportCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore the config and stock catalog from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(opts.ConfigPath, backup.Config); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			if err := project.SaveCatalog(opts.CatalogPath, backup.Catalog); err != nil {
				return fmt.Errorf("write stock catalog: %w", err)
			}
			opts.App, opts.Catalog = backup.Config, backup.Catalog

			LoggerFromContext(cmd.Context()).Info("backup restored",
				"from", args[0], "created_at", backup.CreatedAt, "stocks", len(backup.Catalog.Stocks))
			return nil
		},
	}
}
