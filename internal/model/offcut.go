package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut is a bar remnant long enough to go back on the rack as stock.
type Offcut struct {
	ID       string  `json:"id"`
	Material string  `json:"material"`
	BarIndex int     `json:"bar_index"` // 1-based bar number within the material plan
	Length   float64 `json:"length"`
}

// DetectOffcuts returns the reusable remnants of a material plan, longest
// first. Remnants shorter than minLength are scrap.
func DetectOffcuts(mp MaterialPlan, minLength float64) []Offcut {
	var offcuts []Offcut
	for i, bar := range mp.Bars {
		if bar.Offcut <= 0 || bar.Offcut < minLength {
			continue
		}
		offcuts = append(offcuts, Offcut{
			ID:       uuid.New().String()[:8],
			Material: mp.Material,
			BarIndex: i + 1,
			Length:   bar.Offcut,
		})
	}

	// Longest first, bar order on ties
	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Length > offcuts[j].Length
	})
	return offcuts
}

// DetectAllOffcuts finds reusable offcuts across all materials in a result.
func DetectAllOffcuts(result PlanResult, minLength float64) []Offcut {
	var all []Offcut
	for _, mp := range result.Materials {
		all = append(all, DetectOffcuts(mp, minLength)...)
	}
	return all
}

// TotalOffcutLength returns the summed length of the given offcuts.
func TotalOffcutLength(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Length
	}
	return total
}
