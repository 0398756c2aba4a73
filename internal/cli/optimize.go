package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/piwi3910/barcut/internal/engine"
	"github.com/piwi3910/barcut/internal/model"
	"github.com/piwi3910/barcut/internal/project"
)

// newOptimizeCommand creates the "optimize" subcommand: import part lists,
// plan the cuts and write the requested reports.
func newOptimizeCommand(opts *Options) *cobra.Command {
	var (
		settings settingsFlags
		outputs  outputFlags
		saveJob  string
	)

	cmd := &cobra.Command{
		Use:   "optimize <file>...",
		Short: "Plan cuts for part lists (CSV, XLSX, JSON or YAML)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			s, err := settings.resolve(cmd, opts)
			if err != nil {
				return err
			}

			records, err := importRecords(logger, args)
			if err != nil {
				return err
			}

			result, err := engine.New(s, logger).Optimize(cmd.Context(), records)
			if err != nil {
				if !errors.Is(err, cmd.Context().Err()) {
					return err
				}
				logger.Warn("optimisation interrupted, reporting finished materials", "materials", len(result.Materials))
			}
			logResult(logger, result)

			if err := outputs.write(cmd, logger, result, opts.App.OutputDir); err != nil {
				return err
			}

			if saveJob != "" {
				path := resolvePath(saveJob, opts.App.OutputDir)
				if err := project.SaveJob(path, args, records, result); err != nil {
					return err
				}
				logger.Info("job saved", "path", path)

				opts.App.AddRecentJob(path)
				if err := project.SaveAppConfig(opts.ConfigPath, opts.App); err != nil {
					logger.Warn("could not record recent job", "error", err)
				}
			}
			return nil
		},
	}

	settings.bind(cmd)
	outputs.bind(cmd)
	cmd.Flags().StringVar(&saveJob, "save-job", "", "Save inputs and plan as a job file for later reports")

	return cmd
}

// logResult summarises a run at info level and repeats each material's
// warnings.
func logResult(logger *slog.Logger, result model.PlanResult) {
	for _, mp := range result.Materials {
		logger.Info("material planned",
			"material", mp.Material,
			"bars", len(mp.Bars),
			"lower_bound", mp.LowerBound,
			"source", mp.Source,
			"exact", mp.ExactOutcome,
			"utilization", fmt.Sprintf("%.1f%%", mp.Utilization()),
		)
		for _, w := range mp.Warnings {
			logger.Warn(w, "material", mp.Material)
		}
	}

	offcuts := model.DetectAllOffcuts(result, result.Settings.MinReusableOffcut)
	logger.Info("run complete",
		"run", result.RunID,
		"bars", result.TotalBars(),
		"reusable_offcuts", len(offcuts),
		"non_cuttable", len(result.NonCuttable),
		"kanban", len(result.Kanban),
		"skipped", len(result.Skipped),
	)
}
