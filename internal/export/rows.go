// Package export writes cutting plans to the formats the shop floor uses:
// console tables, CSV, Excel workbooks, paginated PDF reports, QR-coded cut
// labels and DXF bar diagrams. Exporters only read model.PlanResult.
package export

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/barcut/internal/model"
)

// CutHeaders are the columns of a cut sequence, in output order.
var CutHeaders = []string{"Material", "Bar #", "Cut #", "Length", "Part No.", "Part Name", "Source Tag", "Remaining Offcut"}

// CutRow is one line of a cut sequence. Offcut is only set on the first cut
// of each bar.
type CutRow struct {
	Material  string
	Bar       int
	Cut       int
	Length    float64
	PartNo    string
	PartName  string
	SourceTag string
	Offcut    *float64
}

// Strings renders the row in CutHeaders order.
func (r CutRow) Strings() []string {
	offcut := ""
	if r.Offcut != nil {
		offcut = formatLength(*r.Offcut)
	}
	return []string{
		r.Material,
		strconv.Itoa(r.Bar),
		strconv.Itoa(r.Cut),
		formatLength(r.Length),
		r.PartNo,
		r.PartName,
		r.SourceTag,
		offcut,
	}
}

// MaterialRows flattens one material plan into cut rows.
func MaterialRows(mp model.MaterialPlan) []CutRow {
	rows := make([]CutRow, 0, mp.CutCount())
	for b, bar := range mp.Bars {
		for c, cut := range bar.Cuts {
			row := CutRow{
				Material:  mp.Material,
				Bar:       b + 1,
				Cut:       c + 1,
				Length:    cut.Length,
				PartNo:    cut.PartNo,
				PartName:  cut.PartName,
				SourceTag: cut.SourceTag,
			}
			if c == 0 {
				offcut := bar.Offcut
				row.Offcut = &offcut
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// ExtraHeaders are the columns of the KANBAN, non-cuttable and skipped
// sections.
var ExtraHeaders = []string{"Material", "Length", "Quantity", "Part No.", "Part Name", "Source Tag", "Note"}

// ExtraSection is a titled list of records reported next to the plan.
type ExtraSection struct {
	Title string
	Rows  [][]string
}

// Extras returns the non-empty side sections of a result, in the order
// KANBAN, non-cuttable, skipped.
func Extras(result model.PlanResult) []ExtraSection {
	var sections []ExtraSection

	if len(result.Kanban) > 0 {
		s := ExtraSection{Title: "KANBAN Items"}
		for _, r := range result.Kanban {
			s.Rows = append(s.Rows, recordRow(r, r.Remarks))
		}
		sections = append(sections, s)
	}

	if len(result.NonCuttable) > 0 {
		s := ExtraSection{Title: "Non-Cuttable Items"}
		for _, nc := range result.NonCuttable {
			row := recordRow(nc.Record, nc.Reason)
			row[0] = nc.Material
			s.Rows = append(s.Rows, row)
		}
		sections = append(sections, s)
	}

	if len(result.Skipped) > 0 {
		s := ExtraSection{Title: "Skipped Records"}
		for _, f := range result.Skipped {
			s.Rows = append(s.Rows, recordRow(f.Record, fmt.Sprintf("record %d: %s", f.Index+1, f.Reason)))
		}
		sections = append(sections, s)
	}

	return sections
}

func recordRow(r model.RawRecord, note string) []string {
	return []string{r.Material, r.Length, r.Quantity, r.PartNo, r.PartName, r.SourceTag, note}
}

// formatLength prints a length without trailing zeros: 130, 14.4, 72.004.
// Rounding to four decimals only strips float residue from sums; it never
// hides a digit a part list can carry.
func formatLength(v float64) string {
	return decimal.NewFromFloat(v).Round(4).String()
}

func decimalRound2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// planSummary is the per-material line shared by the table, PDF and
// workbook summaries.
type planSummary struct {
	Material    string
	BarLength   float64
	Bars        int
	Cuts        int
	Utilization float64
	Offcut      float64
	Source      model.PlanSource
	Exact       model.ExactOutcome
}

func summarize(mp model.MaterialPlan) planSummary {
	return planSummary{
		Material:    mp.Material,
		BarLength:   mp.MasterLength,
		Bars:        len(mp.Bars),
		Cuts:        mp.CutCount(),
		Utilization: mp.Utilization(),
		Offcut:      mp.TotalOffcut(),
		Source:      mp.Source,
		Exact:       mp.ExactOutcome,
	}
}

var summaryHeaders = []string{"Material", "Bar Length", "Bars", "Cuts", "Utilization", "Total Offcut", "Source", "Exact"}

func (s planSummary) strings() []string {
	return []string{
		s.Material,
		formatLength(s.BarLength),
		strconv.Itoa(s.Bars),
		strconv.Itoa(s.Cuts),
		fmt.Sprintf("%.1f%%", s.Utilization),
		formatLength(s.Offcut),
		string(s.Source),
		string(s.Exact),
	}
}
