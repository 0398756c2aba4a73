package model

import (
	"sort"

	"github.com/google/uuid"
)

// StockPreset describes the stock bar carried for one material.
type StockPreset struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Material  string  `json:"material"`
	BarLength float64 `json:"bar_length"`
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name, material string, barLength float64) StockPreset {
	return StockPreset{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Material:  NormalizeMaterial(material),
		BarLength: barLength,
	}
}

// StockCatalog holds the saved stock presets. Each material has at most one
// bar length; the optimiser never mixes bar sizes within a material.
type StockCatalog struct {
	Stocks []StockPreset `json:"stocks"`
}

// DefaultStockCatalog returns an empty catalog: every material uses the
// configured master length until a preset is added.
func DefaultStockCatalog() StockCatalog {
	return StockCatalog{Stocks: []StockPreset{}}
}

// Upsert adds a preset or replaces the existing preset for the same material.
func (c *StockCatalog) Upsert(p StockPreset) {
	p.Material = NormalizeMaterial(p.Material)
	for i := range c.Stocks {
		if c.Stocks[i].Material == p.Material {
			p.ID = c.Stocks[i].ID
			c.Stocks[i] = p
			return
		}
	}
	c.Stocks = append(c.Stocks, p)
}

// FindByMaterial returns a pointer to the preset for a material, or nil.
func (c *StockCatalog) FindByMaterial(material string) *StockPreset {
	key := NormalizeMaterial(material)
	for i := range c.Stocks {
		if c.Stocks[i].Material == key {
			return &c.Stocks[i]
		}
	}
	return nil
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (c *StockCatalog) FindByID(id string) *StockPreset {
	for i := range c.Stocks {
		if c.Stocks[i].ID == id {
			return &c.Stocks[i]
		}
	}
	return nil
}

// Materials returns the catalogued material keys in sorted order.
func (c *StockCatalog) Materials() []string {
	names := make([]string, 0, len(c.Stocks))
	for _, s := range c.Stocks {
		names = append(names, s.Material)
	}
	sort.Strings(names)
	return names
}

// ApplyToSettings copies every preset's bar length into the per-material
// overrides of s. Presets with a non-positive length are ignored.
func (c StockCatalog) ApplyToSettings(s *Settings) {
	for _, p := range c.Stocks {
		if p.BarLength <= 0 {
			continue
		}
		if s.BarLengths == nil {
			s.BarLengths = make(map[string]float64)
		}
		s.BarLengths[NormalizeMaterial(p.Material)] = p.BarLength
	}
}
