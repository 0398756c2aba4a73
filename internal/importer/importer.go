// Package importer reads part lists into raw records. It supports CSV with
// automatic delimiter detection, Excel workbooks, and the JSON/YAML documents
// produced by the drawing extraction step. Values are kept as text; parsing
// and validation happen in the engine so every source is treated alike.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/barcut/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Records  []model.RawRecord
	Errors   []string
	Warnings []string
}

// Merge appends another result, keeping record order.
func (r *ImportResult) Merge(other ImportResult) {
	r.Records = append(r.Records, other.Records...)
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// ColumnMapping maps record fields to their indices in the data.
type ColumnMapping struct {
	Material  int
	Length    int
	Quantity  int
	PartNo    int
	PartName  int
	SourceTag int
	Remarks   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"material":   {"material", "mat", "stock", "raw material", "bar stock"},
	"length":     {"length", "len", "size", "cut length", "length (in)"},
	"quantity":   {"quantity", "qty", "qty.", "unit qty", "unit qty.", "unit_qty", "count", "pcs", "pieces"},
	"part_no":    {"part no", "part no.", "part_no", "part number", "part #", "part", "pn"},
	"part_name":  {"part name", "part_name", "name", "description", "desc"},
	"source_tag": {"source tag", "source_tag", "mtg", "mtg #", "mtg no", "mtg_no", "mtg number", "tag", "drawing"},
	"remarks":    {"remarks", "remark", "notes", "note", "comments"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. Matching
// is case-insensitive against the known aliases; the first matching column
// wins for each field. Without a recognisable header the positional layout
// Material, Length, Quantity, Part No, Part Name, Source Tag, Remarks is
// returned together with false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1}
	slots := map[string]*int{
		"material":   &mapping.Material,
		"length":     &mapping.Length,
		"quantity":   &mapping.Quantity,
		"part_no":    &mapping.PartNo,
		"part_name":  &mapping.PartName,
		"source_tag": &mapping.SourceTag,
		"remarks":    &mapping.Remarks,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if *slots[role] == -1 {
						*slots[role] = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Material:  0,
			Length:    1,
			Quantity:  2,
			PartNo:    3,
			PartName:  4,
			SourceTag: 5,
			Remarks:   6,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	_, err := decimal.NewFromString(strings.TrimSpace(s))
	return err == nil
}

// Import reads a part list, choosing the reader by file extension.
func Import(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	case ".json", ".yaml", ".yml":
		return ImportDocument(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type: %s", filepath.Base(path))}}
	}
}

// ImportFiles imports several files in order and merges the results.
func ImportFiles(paths []string) ImportResult {
	var result ImportResult
	for _, p := range paths {
		r := Import(p)
		for i, e := range r.Errors {
			r.Errors[i] = fmt.Sprintf("%s: %s", filepath.Base(p), e)
		}
		for i, w := range r.Warnings {
			r.Warnings[i] = fmt.Sprintf("%s: %s", filepath.Base(p), w)
		}
		result.Merge(r)
	}
	return result
}

// ImportCSV imports records from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	r := ImportCSVFromReader(bytes.NewReader(data), delimiter)
	r.Warnings = append(result.Warnings, r.Warnings...)
	return r
}

// ImportCSVFromReader imports records from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	rows, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(rows, "Line")
}

// ImportExcel imports records from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row")
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "Quantity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
		if mapping.Material == -1 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("No material column, using %s", model.DefaultMaterial))
		}
	} else if len(rows[0]) >= 3 && !isNumeric(cleanSize(rows[0][1])) {
		// Unrecognised header: skip it but keep the positional mapping
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rec := model.RawRecord{
			Material:  getCell(row, mapping.Material),
			Length:    cleanSize(getCell(row, mapping.Length)),
			Quantity:  getCell(row, mapping.Quantity),
			PartNo:    getCell(row, mapping.PartNo),
			PartName:  getCell(row, mapping.PartName),
			SourceTag: getCell(row, mapping.SourceTag),
			Remarks:   getCell(row, mapping.Remarks),
		}
		if rec.Quantity == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s %d: Missing quantity value", rowPrefix, i+1))
		}
		result.Records = append(result.Records, rec)
	}

	if len(result.Records) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}

	return result
}

// cleanSize strips the unit decorations drawings put on lengths, such as
// `13.19" LG.` or `12 IN`, leaving the number.
func cleanSize(s string) string {
	out := strings.TrimSpace(s)
	for _, suffix := range []string{"LG.", "LG", "IN.", "IN", "INCHES", `"`} {
		n := len(out) - len(suffix)
		if n > 0 && strings.EqualFold(out[n:], suffix) {
			out = strings.TrimSpace(out[:n])
		}
	}
	return out
}
