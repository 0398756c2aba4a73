package engine

import (
	"github.com/shopspring/decimal"
)

// quantizer converts real lengths to the integer units used by both packers.
// Pieces round up and bars round down, so whatever fits in units also fits
// in real length, and 10 x 14.4 still fits 144 exactly. Lengths handed to
// the data model are the snapped values, which keeps every reported length
// equal to what the packers compared.
type quantizer struct {
	scale decimal.Decimal
}

func newQuantizer(scale int64) quantizer {
	if scale <= 0 {
		scale = 1
	}
	return quantizer{scale: decimal.NewFromInt(scale)}
}

// units returns a piece length in fixed-point units, rounded up.
func (q quantizer) units(length float64) int64 {
	return decimal.NewFromFloat(length).Mul(q.scale).Ceil().IntPart()
}

// capacity returns a bar length in fixed-point units, rounded down.
func (q quantizer) capacity(length float64) int64 {
	return decimal.NewFromFloat(length).Mul(q.scale).Floor().IntPart()
}

// length converts fixed-point units back to real units.
func (q quantizer) length(units int64) float64 {
	f, _ := decimal.NewFromInt(units).Div(q.scale).Float64()
	return f
}
