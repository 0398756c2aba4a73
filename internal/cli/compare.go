package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/barcut/internal/engine"
)

// newCompareCommand creates the "compare" subcommand that runs the same
// part lists under several strategies and prints the bar counts side by side.
func newCompareCommand(opts *Options) *cobra.Command {
	var settings settingsFlags

	cmd := &cobra.Command{
		Use:   "compare <file>...",
		Short: "Compare heuristic and exact bar counts per material",
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

			results, err := engine.CompareScenarios(cmd.Context(), engine.BuildDefaultScenarios(s), records, logger)
			if err != nil {
				return err
			}
			return writeComparison(cmd.OutOrStdout(), results)
		},
	}

	settings.bind(cmd)
	return cmd
}

// writeComparison prints one row per scenario with totals followed by the
// bar count of every material.
func writeComparison(w io.Writer, results []engine.ComparisonResult) error {
	materialSet := make(map[string]bool)
	for _, r := range results {
		for m := range r.BarsByMaterial {
			materialSet[m] = true
		}
	}
	materials := make([]string, 0, len(materialSet))
	for m := range materialSet {
		materials = append(materials, m)
	}
	sort.Strings(materials)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := append([]string{"Scenario", "Bars", "Cuts", "Waste %"}, materials...)
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, r := range results {
		row := []string{
			r.Scenario.Name,
			fmt.Sprint(r.BarsUsed),
			fmt.Sprint(r.TotalCuts),
			fmt.Sprintf("%.1f", r.WastePercent),
		}
		for _, m := range materials {
			row = append(row, fmt.Sprint(r.BarsByMaterial[m]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
