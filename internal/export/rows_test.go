package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFormatLength(t *testing.T) {
	tests := map[float64]string{
		130:      "130",
		14.4:     "14.4",
		13.19:    "13.19",
		0:        "0",
		72.004:   "72.004",
		12.3456:  "12.3456",
		12.34567: "12.3457",
	}
	for in, want := range tests {
		if got := formatLength(in); got != want {
			t.Errorf("formatLength(%v) = %q, want %q", in, got, want)
		}
	}

	// Float residue from summing is dropped.
	a, b := 0.1, 0.2
	if got := formatLength(a + b); got != "0.3" {
		t.Errorf("formatLength(0.1+0.2) = %q, want \"0.3\"", got)
	}
}

func TestMaterialRows_OffcutOnFirstCutOnly(t *testing.T) {
	result := buildTestResult()
	rows := MaterialRows(result.Materials[0])

	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	want := []string{"CU 1/4", "1", "1", "100", "P1", "Bus", "MTG1", "14"}
	if got := rows[0].Strings(); !reflect.DeepEqual(got, want) {
		t.Errorf("first row = %v, want %v", got, want)
	}
	if rows[1].Offcut != nil {
		t.Error("expected no offcut on second cut of a bar")
	}
	if rows[2].Bar != 2 || rows[2].Cut != 1 || rows[2].Offcut == nil {
		t.Errorf("expected bar 2 cut 1 with offcut, got %+v", rows[2])
	}
}

func TestExtras_Order(t *testing.T) {
	sections := Extras(buildTestResult())

	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	want := []string{"KANBAN Items", "Non-Cuttable Items", "Skipped Records"}
	if !reflect.DeepEqual(titles, want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
	if sections[1].Rows[0][0] != "CU 1/4" {
		t.Errorf("expected normalised material on non-cuttable row, got %q", sections[1].Rows[0][0])
	}
	if !strings.Contains(sections[2].Rows[0][6], "record 5") {
		t.Errorf("expected 1-based record number in note, got %q", sections[2].Rows[0][6])
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, buildTestResult()); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if !reflect.DeepEqual(records[0], CutHeaders) {
		t.Errorf("header = %v", records[0])
	}
	if records[2][7] != "" {
		t.Errorf("expected empty offcut on second cut, got %q", records[2][7])
	}
	if records[5][0] != "BRASS" || records[5][7] != "0" {
		t.Errorf("unexpected brass row %v", records[5])
	}

	titles := map[string]bool{}
	for _, rec := range records {
		if len(rec) == 1 {
			titles[rec[0]] = true
		}
	}
	for _, title := range []string{"KANBAN Items", "Non-Cuttable Items", "Skipped Records"} {
		if !titles[title] {
			t.Errorf("missing section %q", title)
		}
	}
}

func TestExportCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.csv")
	if err := ExportCSV(path, buildTestResult()); err != nil {
		t.Fatalf("ExportCSV returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "Material,Bar #,Cut #") {
		t.Errorf("unexpected file start: %q", string(data[:30]))
	}
}

func TestExportCSV_BadPath(t *testing.T) {
	if err := ExportCSV(filepath.Join(t.TempDir(), "missing", "plan.csv"), buildTestResult()); err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, buildTestResult()); err != nil {
		t.Fatalf("WriteTable returned error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"=== Material: CU 1/4 (bar 144) ===",
		"=== Material: BRASS (bar 144) ===",
		"warning: example warning",
		"=== KANBAN Items ===",
		"=== Summary ===",
		"Total bars: 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
