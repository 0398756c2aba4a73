package engine

import (
	"context"
	"errors"

	"github.com/piwi3910/barcut/internal/model"
)

var (
	// ErrTimeLimit is returned when the exact search runs out of time before
	// finding any packing.
	ErrTimeLimit = errors.New("engine: exact search time limit reached")
	// ErrNoSolution is returned when the exact search proves that no packing
	// exists within its candidate bin bound.
	ErrNoSolution = errors.New("engine: exact search found no solution")
	// ErrInvalidCapacity is returned for a non-positive bar capacity.
	ErrInvalidCapacity = errors.New("engine: bar capacity must be positive")
	// ErrItemTooLong is returned when an item cannot fit on an empty bar.
	ErrItemTooLong = errors.New("engine: item longer than bar capacity")
)

// Item is one unit piece after quantity expansion. Units is the fixed-point
// length the packers compare; Cut carries the real length and identity.
type Item struct {
	Units int64
	Cut   model.Cut
}

// Packing is a raw bin assignment: each bin lists indices into the item
// slice that was packed, in placement order.
type Packing struct {
	Bins    [][]int
	Optimal bool // Proven minimal
}

// BinCount returns the number of non-empty bins.
func (p Packing) BinCount() int {
	n := 0
	for _, b := range p.Bins {
		if len(b) > 0 {
			n++
		}
	}
	return n
}

// Packer assigns items to bins of the given capacity.
type Packer interface {
	Name() string
	Pack(ctx context.Context, items []Item, capacity int64) (Packing, error)
}

// expand turns a material's demand into unit items, preserving part order
// and the order of repeated pieces. Cut lengths are snapped to the unit grid.
func expand(md model.MaterialDemand, q quantizer) []Item {
	items := make([]Item, 0, md.UnitCount())
	for _, p := range md.Parts {
		u := q.units(p.Length)
		cut := p.Cut()
		cut.Length = q.length(u)
		for i := 0; i < p.Quantity; i++ {
			items = append(items, Item{Units: u, Cut: cut})
		}
	}
	return items
}

// lowerBound returns ceil(sum/capacity), the L1 bound on bin count.
func lowerBound(items []Item, capacity int64) int {
	if capacity <= 0 {
		return 0
	}
	var sum int64
	for _, it := range items {
		sum += it.Units
	}
	return int((sum + capacity - 1) / capacity)
}
