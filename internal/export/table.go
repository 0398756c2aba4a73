package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/piwi3910/barcut/internal/model"
)

// WriteTable prints the plan as aligned text tables: one cut sequence per
// material, then the side sections and a summary.
func WriteTable(w io.Writer, result model.PlanResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, mp := range result.Materials {
		fmt.Fprintf(tw, "=== Material: %s (bar %s) ===\n", mp.Material, formatLength(mp.MasterLength))
		writeTabRow(tw, CutHeaders[1:])
		for _, row := range MaterialRows(mp) {
			writeTabRow(tw, row.Strings()[1:])
		}
		for _, warn := range mp.Warnings {
			fmt.Fprintf(tw, "warning: %s\n", warn)
		}
		fmt.Fprintln(tw)
	}

	for _, section := range Extras(result) {
		fmt.Fprintf(tw, "=== %s ===\n", section.Title)
		writeTabRow(tw, ExtraHeaders)
		for _, row := range section.Rows {
			writeTabRow(tw, row)
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintln(tw, "=== Summary ===")
	writeTabRow(tw, summaryHeaders)
	for _, mp := range result.Materials {
		writeTabRow(tw, summarize(mp).strings())
	}
	fmt.Fprintf(tw, "Total bars: %d\n", result.TotalBars())

	return tw.Flush()
}

func writeTabRow(w io.Writer, cells []string) {
	fmt.Fprintln(w, strings.Join(cells, "\t"))
}
