package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/barcut/internal/model"
)

const (
	summarySheet   = "Summary"
	maxSheetName   = 31
	sheetNameChars = `:\/?*[]`
)

// ExportXLSX writes a workbook with a Summary sheet, one sheet per material
// holding its cut sequence, and one sheet per non-empty side section.
func ExportXLSX(path string, result model.PlanResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	w := &workbook{f: f, header: header, used: map[string]bool{summarySheet: true}}

	summary := [][]interface{}{toRow(summaryHeaders)}
	for _, mp := range result.Materials {
		s := summarize(mp)
		summary = append(summary, []interface{}{
			s.Material, s.BarLength, s.Bars, s.Cuts, round2(s.Utilization), s.Offcut, string(s.Source), string(s.Exact),
		})
	}
	summary = append(summary, nil, []interface{}{"Total bars", result.TotalBars()}, []interface{}{"Run", result.RunID})
	if err := w.fill(summarySheet, summary); err != nil {
		return err
	}

	for _, mp := range result.Materials {
		rows := [][]interface{}{toRow(CutHeaders[1:])}
		for _, r := range MaterialRows(mp) {
			var offcut interface{} = ""
			if r.Offcut != nil {
				offcut = *r.Offcut
			}
			rows = append(rows, []interface{}{r.Bar, r.Cut, r.Length, r.PartNo, r.PartName, r.SourceTag, offcut})
		}
		if err := w.addSheet(mp.Material, rows); err != nil {
			return err
		}
	}

	for _, section := range Extras(result) {
		rows := [][]interface{}{toRow(ExtraHeaders)}
		for _, r := range section.Rows {
			rows = append(rows, toRow(r))
		}
		if err := w.addSheet(section.Title, rows); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

type workbook struct {
	f      *excelize.File
	header int
	used   map[string]bool
}

func (w *workbook) addSheet(name string, rows [][]interface{}) error {
	sheet := w.uniqueName(SheetName(name))
	if _, err := w.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", sheet, err)
	}
	return w.fill(sheet, rows)
}

// fill writes rows starting at A1 and styles the first one as a header.
func (w *workbook) fill(sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := w.f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := w.f.SetCellStyle(sheet, "A1", last, w.header); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	return w.f.SetColWidth(sheet, "A", lastCol, 16)
}

// uniqueName appends " (2)", " (3)"... when two materials collapse to the
// same sheet name after sanitising.
func (w *workbook) uniqueName(name string) string {
	candidate := name
	for n := 2; w.used[candidate]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(name)
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	w.used[candidate] = true
	return candidate
}

// SheetName turns a material key into a valid worksheet name: forbidden
// characters become '-', and the result is cut to 31 characters.
func SheetName(name string) string {
	s := strings.Map(func(r rune) rune {
		if strings.ContainsRune(sheetNameChars, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	s = strings.Trim(s, "'")
	if s == "" {
		s = model.DefaultMaterial
	}
	if r := []rune(s); len(r) > maxSheetName {
		s = string(r[:maxSheetName])
	}
	return s
}

func toRow(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

func round2(v float64) float64 {
	f, _ := decimalRound2(v).Float64()
	return f
}
