package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/barcut/internal/model"
)

// ExportCSV writes the cut sequence of every material to a CSV file,
// followed by the KANBAN, non-cuttable and skipped sections.
func ExportCSV(path string, result model.PlanResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes the CSV layout to w. Each side section starts after a
// blank line with a one-cell title row and its own header.
func WriteCSV(w io.Writer, result model.PlanResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CutHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, mp := range result.Materials {
		for _, row := range MaterialRows(mp) {
			if err := cw.Write(row.Strings()); err != nil {
				return fmt.Errorf("write cut row: %w", err)
			}
		}
	}

	for _, section := range Extras(result) {
		rows := [][]string{{}, {section.Title}, ExtraHeaders}
		rows = append(rows, section.Rows...)
		if err := cw.WriteAll(rows); err != nil {
			return fmt.Errorf("write %s: %w", section.Title, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
