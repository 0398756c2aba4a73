package engine

import (
	"context"
	"fmt"
	"sort"
)

// FirstFitDecreasing is the heuristic packer: pieces longest first, each into
// the first open bar with room, a new bar when none has. Deterministic for a
// given input order; O(n*b) for n pieces and b bars.
type FirstFitDecreasing struct{}

func (FirstFitDecreasing) Name() string { return "first-fit-decreasing" }

// Pack never fails for valid input. The context is unused: the pass has no
// suspension points.
func (FirstFitDecreasing) Pack(_ context.Context, items []Item, capacity int64) (Packing, error) {
	if capacity <= 0 {
		return Packing{}, ErrInvalidCapacity
	}
	for i, it := range items {
		if it.Units > capacity {
			return Packing{}, fmt.Errorf("item %d (%d units): %w", i, it.Units, ErrItemTooLong)
		}
	}

	// Sort indices by length descending; SliceStable keeps insertion order
	// on ties.
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return items[order[a]].Units > items[order[b]].Units
	})

	var bins [][]int
	var remaining []int64

	for _, idx := range order {
		u := items[idx].Units
		placed := false
		for b := range bins {
			if remaining[b] >= u {
				bins[b] = append(bins[b], idx)
				remaining[b] -= u
				placed = true
				break
			}
		}
		if !placed {
			bins = append(bins, []int{idx})
			remaining = append(remaining, capacity-u)
		}
	}

	return Packing{Bins: bins}, nil
}
