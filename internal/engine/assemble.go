package engine

import (
	"github.com/piwi3910/barcut/internal/model"
)

// Assemble converts a raw bin assignment into cut plans. Empty bins are
// dropped and the order of cuts within a bin is kept as packed. Used length
// and offcut are computed in fixed-point units and converted back, so a bar
// packed exactly full reports an offcut of 0 rather than float residue.
// Assemble is pure: the same packing always yields the same plans.
func Assemble(items []Item, packing Packing, capacity, scale int64) []model.CutPlan {
	q := newQuantizer(scale)
	plans := make([]model.CutPlan, 0, len(packing.Bins))
	for _, bin := range packing.Bins {
		if len(bin) == 0 {
			continue
		}
		cuts := make([]model.Cut, 0, len(bin))
		var used int64
		for _, idx := range bin {
			cuts = append(cuts, items[idx].Cut)
			used += items[idx].Units
		}
		plans = append(plans, model.CutPlan{
			Cuts:       cuts,
			UsedLength: q.length(used),
			Offcut:     q.length(capacity - used),
		})
	}
	return plans
}

// Select picks the plan to keep for a material. The exact plan wins only
// when it exists and uses strictly fewer bars.
func Select(heuristic, exact []model.CutPlan, exactOK bool) ([]model.CutPlan, model.PlanSource) {
	if exactOK && len(exact) < len(heuristic) {
		return exact, model.SourceExact
	}
	return heuristic, model.SourceHeuristic
}
