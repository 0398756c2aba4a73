package importer

import (
	"strings"
	"testing"
)

func TestImportDocumentBytes_JSONPage(t *testing.T) {
	data := `{
  "table_found": true,
  "mtg_no": "MTG292158",
  "parts": [
    {"part_no": "2", "part_name": "GROUND BUS", "material": "1/8 X 3/4 PLATED CU", "size": "13.19\" LG.", "unit_qty": 1},
    {"part_no": 3, "part_name": "RISER", "material": "1/8 X 3/4 PLATED CU", "size": 24, "unit_qty": "4", "remarks": "KANBAN in lots of 20"}
  ]
}`
	result := ImportDocumentBytes([]byte(data))

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Records))
	}

	r := result.Records[0]
	if r.Length != "13.19" {
		t.Errorf("expected size to be cleaned to 13.19, got %q", r.Length)
	}
	if r.Quantity != "1" || r.PartNo != "2" || r.SourceTag != "MTG292158" {
		t.Errorf("unexpected record %+v", r)
	}
	if result.Records[1].PartNo != "3" || result.Records[1].Length != "24" {
		t.Errorf("expected bare numbers as text, got %+v", result.Records[1])
	}
	if result.Records[1].Remarks != "KANBAN in lots of 20" {
		t.Errorf("expected remarks, got %q", result.Records[1].Remarks)
	}
}

func TestImportDocumentBytes_YAMLPages(t *testing.T) {
	data := `
- mtg_no: MTG1
  parts:
    - {part_no: "1", material: CU, size: "10", unit_qty: 2}
- table_found: false
- source_tag: JOB-7
  parts:
    - part_no: "9"
      material: BRASS
      size: "5.5"
      unit_qty: 1
      mtg_no: MTG9
    - part_no: "10"
      material: BRASS
      size: "6"
      unit_qty: 1
`
	result := ImportDocumentBytes([]byte(data))

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(result.Records))
	}
	if result.Records[0].SourceTag != "MTG1" {
		t.Errorf("expected page tag, got %q", result.Records[0].SourceTag)
	}
	if result.Records[1].SourceTag != "MTG9" {
		t.Errorf("expected part tag to override page tag, got %q", result.Records[1].SourceTag)
	}
	if result.Records[2].SourceTag != "JOB-7" {
		t.Errorf("expected source_tag, got %q", result.Records[2].SourceTag)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "Page 2") {
		t.Errorf("expected warning for page without table, got %v", result.Warnings)
	}
}

func TestImportDocumentBytes_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "  "},
		{"malformed", `{"parts": [`},
		{"scalar", `"just a string"`},
		{"no parts", `{"mtg_no": "MTG1", "parts": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ImportDocumentBytes([]byte(tt.data))
			if len(result.Errors) == 0 {
				t.Errorf("expected error, got records %v", result.Records)
			}
		})
	}
}

func TestCleanSize(t *testing.T) {
	tests := map[string]string{
		`13.19" LG.`: "13.19",
		"12 IN":      "12",
		"12in":       "12",
		` 7.5" `:     "7.5",
		"20 INCHES":  "20",
		"":           "",
		"abc":        "abc",
	}
	for in, want := range tests {
		if got := cleanSize(in); got != want {
			t.Errorf("cleanSize(%q) = %q, want %q", in, got, want)
		}
	}
}
