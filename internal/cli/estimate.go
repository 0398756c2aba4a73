package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/barcut/internal/engine"
	"github.com/piwi3910/barcut/internal/model"
)

// newEstimateCommand creates the "estimate" subcommand: a purchasing
// estimate from total length alone, without packing.
func newEstimateCommand(opts *Options) *cobra.Command {
	var (
		settings settingsFlags
		waste    float64
	)

	cmd := &cobra.Command{
		Use:   "estimate <file>...",
		Short: "Estimate bars to buy per material from total length",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			if waste < 0 {
				return fmt.Errorf("waste must not be negative, got %v", waste)
			}
			s, err := settings.resolve(cmd, opts)
			if err != nil {
				return err
			}
			records, err := importRecords(logger, args)
			if err != nil {
				return err
			}

			agg := engine.Aggregate(records, s)
			if len(agg.NonCuttable) > 0 || len(agg.Skipped) > 0 {
				logger.Warn("records left out of the estimate", "non_cuttable", len(agg.NonCuttable), "skipped", len(agg.Skipped))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Material\tBar\tTotal Length\tLongest\tBars (min)\tBars (+waste)")
			for _, md := range agg.Demand {
				est := model.CalculateBarEstimate(md, s.BarLength(md.Material), waste)
				fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%d\t%d\n",
					est.Material, est.BarLength, est.TotalLength, est.LongestPiece, est.BarsMin, est.BarsWithWaste)
			}
			return tw.Flush()
		},
	}

	settings.bind(cmd)
	cmd.Flags().Float64Var(&waste, "waste", 10, "Extra percentage added for saw waste and mistakes")
	return cmd
}
