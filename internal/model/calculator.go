package model

import "math"

// BarEstimate holds the results of a stock purchasing calculation for one
// material.
type BarEstimate struct {
	Material      string  `json:"material"`
	TotalLength   float64 `json:"total_length"`    // Summed length of every piece
	BarLength     float64 `json:"bar_length"`      // Capacity of one stock bar
	BarsExact     float64 `json:"bars_exact"`      // Exact fractional number of bars
	BarsMin       int     `json:"bars_min"`        // Lower bound on bars (ceiling of exact)
	BarsWithWaste int     `json:"bars_with_waste"` // Recommended purchase including waste factor
	WastePercent  float64 `json:"waste_percent"`   // Waste factor applied (e.g., 10 for 10%)
	LongestPiece  float64 `json:"longest_piece"`   // Longest single piece requested
}

// CalculateBarEstimate computes how many bars to buy for a material's demand.
// BarsMin is the classic L1 bound for one-dimensional bin packing: no
// packing can use fewer bars.
func CalculateBarEstimate(md MaterialDemand, barLength, wastePercent float64) BarEstimate {
	est := BarEstimate{
		Material:     md.Material,
		TotalLength:  md.TotalLength(),
		BarLength:    barLength,
		WastePercent: wastePercent,
	}
	for _, p := range md.Parts {
		if p.Length > est.LongestPiece {
			est.LongestPiece = p.Length
		}
	}

	if barLength <= 0 || est.TotalLength <= 0 {
		return est
	}

	est.BarsExact = est.TotalLength / barLength
	// Guard against 143.99999 style float noise pushing the bound up by one.
	est.BarsMin = int(math.Ceil(est.BarsExact - 1e-9))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	est.BarsWithWaste = int(math.Ceil(est.BarsExact*wasteFactor - 1e-9))
	if est.BarsWithWaste < est.BarsMin {
		est.BarsWithWaste = est.BarsMin
	}
	return est
}
