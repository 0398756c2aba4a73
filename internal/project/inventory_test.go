package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/barcut/internal/model"
)

func TestDefaultCatalogPath(t *testing.T) {
	path := DefaultCatalogPath()
	if filepath.Base(path) != "stock.json" {
		t.Errorf("expected stock.json, got %s", filepath.Base(path))
	}
}

func TestSaveAndLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock.json")

	catalog := model.DefaultStockCatalog()
	catalog.Upsert(model.NewStockPreset("Copper 12ft", "cu 1/4", 144))
	catalog.Upsert(model.NewStockPreset("Brass 20ft", "brass", 240))

	if err := SaveCatalog(path, catalog); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}

	loaded, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if len(loaded.Stocks) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(loaded.Stocks))
	}
	brass := loaded.FindByMaterial("BRASS")
	if brass == nil || brass.BarLength != 240 {
		t.Errorf("expected brass preset of 240, got %+v", brass)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock.json")

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if catalog.Stocks == nil || len(catalog.Stocks) != 0 {
		t.Errorf("expected empty non-nil catalog, got %+v", catalog.Stocks)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("loading a missing catalog must not create it")
	}
}

func TestImportCatalogMerges(t *testing.T) {
	dir := t.TempDir()
	importPath := filepath.Join(dir, "import.json")

	incoming := model.DefaultStockCatalog()
	incoming.Upsert(model.NewStockPreset("Copper 10ft", "CU 1/4", 120))
	incoming.Upsert(model.NewStockPreset("Alu", "AL", 192))
	if err := SaveCatalog(importPath, incoming); err != nil {
		t.Fatal(err)
	}

	existing := model.DefaultStockCatalog()
	existing.Upsert(model.NewStockPreset("Copper 12ft", "CU 1/4", 144))
	originalID := existing.Stocks[0].ID

	merged, err := ImportCatalog(importPath, existing)
	if err != nil {
		t.Fatalf("ImportCatalog failed: %v", err)
	}
	if len(merged.Stocks) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(merged.Stocks))
	}
	cu := merged.FindByMaterial("CU 1/4")
	if cu.BarLength != 120 {
		t.Errorf("expected imported bar length 120, got %f", cu.BarLength)
	}
	if cu.ID != originalID {
		t.Error("expected existing preset ID to be kept")
	}
}

func TestImportCatalogMissingFile(t *testing.T) {
	existing := model.DefaultStockCatalog()
	if _, err := ImportCatalog(filepath.Join(t.TempDir(), "nope.json"), existing); err == nil {
		t.Fatal("expected error for missing import file")
	}
}
