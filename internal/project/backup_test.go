package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/barcut/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultMasterLength = 240
	cfg.Units = "mm"
	catalog := model.DefaultStockCatalog()
	catalog.Upsert(model.NewStockPreset("Brass", "BRASS", 240))

	if err := ExportAllData(path, cfg, catalog); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultMasterLength != 240 {
		t.Errorf("expected DefaultMasterLength=240, got %f", backup.Config.DefaultMasterLength)
	}
	if backup.Config.Units != "mm" {
		t.Errorf("expected Units=mm, got %s", backup.Config.Units)
	}
	if len(backup.Catalog.Stocks) != 1 {
		t.Errorf("expected 1 preset, got %d", len(backup.Catalog.Stocks))
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}
