// Branch-and-bound exact packer.
//
// The model is the classic assignment formulation: every piece goes to
// exactly one of at most B candidate bars, no bar exceeds capacity, and the
// number of bars in use is minimised. It is searched depth-first:
//
//  1. Pieces are visited longest first (stable on ties).
//  2. A piece either joins an open bar or opens the next one. Bars are
//     therefore labelled by the first piece they receive, which removes the
//     B! relabelling symmetry.
//  3. Two open bars with the same load are interchangeable; only the first
//     is tried. A run of equal pieces is placed in non-decreasing bar order.
//  4. Lower bound: open bars + ceil((remaining length - free room)/capacity).
//     A branch is pruned when it cannot beat the incumbent.
//  5. The search stops early once the incumbent meets ceil(total/capacity).
//
// Existing bars are tried before opening a new one, so the first leaf reached
// is the first-fit-decreasing packing and an incumbent exists almost at once.
// The deadline is checked every 1024 nodes.

package engine

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// BranchAndBound is the exact packer. A zero TimeLimit leaves the deadline
// to the caller's context. UpperBound caps the number of candidate bars;
// zero means one per piece.
type BranchAndBound struct {
	TimeLimit  time.Duration
	UpperBound int
}

func (BranchAndBound) Name() string { return "branch-and-bound" }

// bbEngine holds the search state for one Pack call.
type bbEngine struct {
	ctx      context.Context
	capacity int64

	units  []int64 // piece lengths in visiting order
	order  []int   // visiting position -> caller's item index
	suffix []int64 // suffix[i] = sum of units[i:]
	lb     int     // global lower bound

	loads   []int64
	loadSum int64
	open    int
	assign  []int // visiting position -> bar

	best       int // incumbent bar count; the search looks for fewer
	bestAssign []int
	found      bool

	steps   int
	expired bool
	proven  bool // incumbent meets the global lower bound
}

// Pack searches for a packing with the fewest bars. Outcomes:
//   - Packing{Optimal: true}, nil: proven minimal.
//   - Packing{Optimal: false}, nil: deadline hit with an incumbent in hand.
//   - ErrTimeLimit: deadline hit before any packing was found.
//   - ErrNoSolution: no packing fits within UpperBound bars.
func (b BranchAndBound) Pack(ctx context.Context, items []Item, capacity int64) (Packing, error) {
	if capacity <= 0 {
		return Packing{}, ErrInvalidCapacity
	}
	for i, it := range items {
		if it.Units > capacity {
			return Packing{}, fmt.Errorf("item %d (%d units): %w", i, it.Units, ErrItemTooLong)
		}
	}
	if len(items) == 0 {
		return Packing{Optimal: true}, nil
	}

	if b.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.TimeLimit)
		defer cancel()
	}

	n := len(items)
	maxBins := n
	if b.UpperBound > 0 && b.UpperBound < n {
		maxBins = b.UpperBound
	}

	e := bbEngine{
		ctx:        ctx,
		capacity:   capacity,
		units:      make([]int64, n),
		order:      make([]int, n),
		suffix:     make([]int64, n+1),
		loads:      make([]int64, maxBins),
		assign:     make([]int, n),
		best:       maxBins + 1,
		bestAssign: make([]int, n),
	}
	for i := range e.order {
		e.order[i] = i
	}
	sort.SliceStable(e.order, func(a, c int) bool {
		return items[e.order[a]].Units > items[e.order[c]].Units
	})
	for pos, idx := range e.order {
		e.units[pos] = items[idx].Units
	}
	for i := n - 1; i >= 0; i-- {
		e.suffix[i] = e.suffix[i+1] + e.units[i]
	}
	e.lb = lowerBound(items, capacity)

	if ctx.Err() != nil {
		return Packing{}, ErrTimeLimit
	}

	e.dfs(0)

	if !e.found {
		if e.expired {
			return Packing{}, ErrTimeLimit
		}
		return Packing{}, ErrNoSolution
	}
	return Packing{Bins: e.bins(), Optimal: !e.expired}, nil
}

// dfs places the piece at visiting position i and recurses.
func (e *bbEngine) dfs(i int) {
	if e.proven || e.expired {
		return
	}
	e.steps++
	if e.steps&1023 == 0 && e.ctx.Err() != nil {
		e.expired = true
		return
	}

	if i == len(e.units) {
		e.best = e.open
		copy(e.bestAssign, e.assign)
		e.found = true
		if e.best <= e.lb {
			e.proven = true
		}
		return
	}

	// Prune: pieces left over after filling every open bar need new bars.
	free := int64(e.open)*e.capacity - e.loadSum
	extra := 0
	if need := e.suffix[i] - free; need > 0 {
		extra = int((need + e.capacity - 1) / e.capacity)
	}
	if e.open+extra >= e.best {
		return
	}

	u := e.units[i]
	start := 0
	if i > 0 && e.units[i-1] == u {
		start = e.assign[i-1]
	}

	for bar := start; bar < e.open; bar++ {
		if e.loads[bar]+u > e.capacity || e.sameLoadBefore(start, bar) {
			continue
		}
		e.loads[bar] += u
		e.loadSum += u
		e.assign[i] = bar
		e.dfs(i + 1)
		e.loads[bar] -= u
		e.loadSum -= u
		if e.proven || e.expired {
			return
		}
	}

	if e.open+1 < e.best && e.open < len(e.loads) {
		bar := e.open
		e.loads[bar] = u
		e.loadSum += u
		e.open++
		e.assign[i] = bar
		e.dfs(i + 1)
		e.open--
		e.loadSum -= u
		e.loads[bar] = 0
	}
}

// sameLoadBefore reports whether a bar in [start, bar) has the same load as
// bar, in which case bar's subtree mirrors one already explored.
func (e *bbEngine) sameLoadBefore(start, bar int) bool {
	for k := start; k < bar; k++ {
		if e.loads[k] == e.loads[bar] {
			return true
		}
	}
	return false
}

// bins converts the incumbent into caller item indices, in placement order.
func (e *bbEngine) bins() [][]int {
	bins := make([][]int, e.best)
	for pos, bar := range e.bestAssign {
		bins[bar] = append(bins[bar], e.order[pos])
	}
	return bins
}
