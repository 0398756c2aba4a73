package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/barcut/internal/export"
	"github.com/piwi3910/barcut/internal/importer"
	"github.com/piwi3910/barcut/internal/model"
)

// importRecords reads every input file and logs what the importer
// reported. Row-level problems are warnings; a run with no usable records
// at all is an error.
func importRecords(logger *slog.Logger, paths []string) ([]model.RawRecord, error) {
	res := importer.ImportFiles(paths)
	for _, w := range res.Warnings {
		logger.Debug("import", "warning", w)
	}
	for _, e := range res.Errors {
		logger.Warn("import", "error", e)
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("no part records found in %d input file(s)", len(paths))
	}
	logger.Info("imported part records", "files", len(paths), "records", len(res.Records))
	return res.Records, nil
}

// outputFlags are the report destinations shared by optimize and report.
type outputFlags struct {
	csv    string
	pdf    string
	xlsx   string
	labels string
	dxf    string
	quiet  bool
}

func (f *outputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.csv, "csv", "", "Write the cut list as CSV")
	cmd.Flags().StringVar(&f.pdf, "pdf", "", "Write the paginated PDF report")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "Write an Excel workbook, one sheet per material")
	cmd.Flags().StringVar(&f.labels, "labels", "", "Write QR cut labels as PDF")
	cmd.Flags().StringVar(&f.dxf, "dxf", "", "Write a DXF drawing of the bars")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Do not print the cut table")
}

// resolvePath places a bare file name in the configured output directory.
func resolvePath(path, outputDir string) string {
	if path == "" || filepath.IsAbs(path) || outputDir == "" || filepath.Dir(path) != "." {
		return path
	}
	return filepath.Join(outputDir, path)
}

// write prints the table and writes every requested report. It stops at
// the first failing writer.
func (f *outputFlags) write(cmd *cobra.Command, logger *slog.Logger, result model.PlanResult, outputDir string) error {
	if !f.quiet {
		if err := export.WriteTable(cmd.OutOrStdout(), result); err != nil {
			return fmt.Errorf("print table: %w", err)
		}
	}

	writers := []struct {
		kind  string
		path  string
		write func(string, model.PlanResult) error
	}{
		{"csv", f.csv, export.ExportCSV},
		{"pdf", f.pdf, export.ExportPDF},
		{"xlsx", f.xlsx, export.ExportXLSX},
		{"labels", f.labels, export.ExportLabels},
		{"dxf", f.dxf, export.ExportDXF},
	}
	for _, w := range writers {
		if w.path == "" {
			continue
		}
		path := resolvePath(w.path, outputDir)
		if err := w.write(path, result); err != nil {
			return fmt.Errorf("write %s: %w", w.kind, err)
		}
		logger.Info("report written", "kind", w.kind, "path", path)
	}
	return nil
}
