package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/barcut/internal/model"
)

// DefaultCatalogPath returns the default file path for the stock catalog,
// ~/.barcut/stock.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "stock.json")
}

// SaveCatalog writes the stock catalog to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveCatalog(path string, catalog model.StockCatalog) error {
	return writeJSON(path, catalog)
}

// LoadCatalog reads the stock catalog from the specified JSON file.
// A missing file yields the empty default catalog; nothing is written.
func LoadCatalog(path string) (model.StockCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultStockCatalog(), nil
		}
		return model.StockCatalog{}, err
	}
	var catalog model.StockCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return model.StockCatalog{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if catalog.Stocks == nil {
		catalog.Stocks = []model.StockPreset{}
	}
	return catalog, nil
}

// ImportCatalog merges presets from a JSON file into an existing catalog.
// Presets for a material already in the catalog replace its bar length;
// new materials are appended. Unlike LoadCatalog, a missing file is an error.
func ImportCatalog(path string, existing model.StockCatalog) (model.StockCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.StockCatalog
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, p := range imported.Stocks {
		existing.Upsert(p)
	}
	return existing, nil
}
