package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/barcut/internal/project"
)

// newReportCommand creates the "report" subcommand that regenerates
// reports from a saved job without optimising again.
func newReportCommand(opts *Options) *cobra.Command {
	var outputs outputFlags

	cmd := &cobra.Command{
		Use:   "report <job.json>",
		Short: "Regenerate reports from a saved job file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			job, err := project.LoadJob(args[0])
			if err != nil {
				return err
			}
			logger.Info("job loaded", "run", job.Result.RunID, "saved_at", job.SavedAt, "inputs", job.Inputs)

			return outputs.write(cmd, logger, job.Result, opts.App.OutputDir)
		},
	}

	outputs.bind(cmd)
	return cmd
}
