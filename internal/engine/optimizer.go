package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/barcut/internal/model"
)

// Optimizer runs the packing pipeline for every material group.
type Optimizer struct {
	Settings model.Settings
	Logger   *slog.Logger
}

func New(settings model.Settings, logger *slog.Logger) *Optimizer {
	return &Optimizer{Settings: settings, Logger: logger}
}

func (o *Optimizer) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// Policy decides whether the exact packer is worth running for a material.
// The heuristic always runs; the exact search only runs for small groups
// where the heuristic has not already reached the lower bound, which keeps
// the worst-case runtime bounded independently of the solver deadline.
type Policy struct {
	ExactEnabled  bool
	ExactMaxItems int
}

// RunExact reports whether to attempt the exact search, and why not.
func (p Policy) RunExact(items, heuristicBars, lowerBound int) (bool, string) {
	switch {
	case !p.ExactEnabled:
		return false, "exact search disabled"
	case items > p.ExactMaxItems:
		return false, fmt.Sprintf("%d pieces above exact threshold %d", items, p.ExactMaxItems)
	case heuristicBars <= lowerBound:
		return false, "heuristic meets lower bound"
	}
	return true, ""
}

func (o *Optimizer) policy() Policy {
	return Policy{ExactEnabled: o.Settings.ExactEnabled, ExactMaxItems: o.Settings.ExactMaxItems}
}

// Optimize validates raw records, packs each material and returns the full
// result. A cancelled context stops further materials from being started;
// plans already finished are still returned together with ctx.Err().
func (o *Optimizer) Optimize(ctx context.Context, records []model.RawRecord) (model.PlanResult, error) {
	log := o.logger()
	agg := Aggregate(records, o.Settings)

	for _, s := range agg.Skipped {
		log.Warn("skipped record", "index", s.Index, "part_no", s.Record.PartNo, "reason", s.Reason)
	}
	if len(agg.NonCuttable) > 0 {
		log.Info("non-cuttable records set aside", "count", len(agg.NonCuttable))
	}
	if len(agg.Kanban) > 0 {
		log.Info("kanban records set aside", "count", len(agg.Kanban))
	}
	if agg.Rounded > 0 {
		log.Info("lengths rounded up to the measuring grid", "parts", agg.Rounded, "step", 1/float64(max(o.Settings.Scale, 1)))
	}

	plans, err := o.Run(ctx, agg.Demand)

	result := model.PlanResult{
		RunID:       uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		Settings:    o.Settings,
		Materials:   plans,
		NonCuttable: agg.NonCuttable,
		Kanban:      agg.Kanban,
		Skipped:     agg.Skipped,
	}
	return result, err
}

// Run packs every material on a bounded pool of workers. Materials share no
// state, so no coordination is needed beyond collecting results in input
// order.
func (o *Optimizer) Run(ctx context.Context, demand model.DemandSet) ([]model.MaterialPlan, error) {
	if len(demand) == 0 {
		return []model.MaterialPlan{}, nil
	}

	workers := o.Settings.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(demand) {
		workers = len(demand)
	}

	results := make([]*model.MaterialPlan, len(demand))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				mp := o.PlanMaterial(ctx, demand[i])
				results[i] = &mp
			}
		}()
	}

	var err error
	for i := range demand {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
		}
		if err != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	plans := make([]model.MaterialPlan, 0, len(demand))
	for _, mp := range results {
		if mp != nil {
			plans = append(plans, *mp)
		}
	}
	if err != nil {
		o.logger().Warn("run cancelled", "completed", len(plans), "total", len(demand), "error", err)
	}
	return plans, err
}

// PlanMaterial packs one material: heuristic first, then at most one
// bounded exact attempt, keeping whichever uses fewer bars. It never fails;
// problems with the exact search become warnings on the plan.
func (o *Optimizer) PlanMaterial(ctx context.Context, md model.MaterialDemand) model.MaterialPlan {
	log := o.logger().With("material", md.Material)
	q := newQuantizer(o.Settings.Scale)
	barLength := o.Settings.BarLength(md.Material)
	capacity := q.capacity(barLength)

	mp := model.MaterialPlan{
		Material:     md.Material,
		MasterLength: q.length(capacity),
		Bars:         []model.CutPlan{},
		Source:       model.SourceHeuristic,
		ExactOutcome: model.ExactSkipped,
	}

	items := expand(md, q)
	if len(items) == 0 {
		log.Debug("empty demand")
		return mp
	}
	mp.LowerBound = lowerBound(items, capacity)

	heuristic, err := FirstFitDecreasing{}.Pack(ctx, items, capacity)
	if err != nil {
		// Aggregate keeps oversize pieces out, so this is a caller bug.
		log.Error("heuristic packing failed", "error", err)
		mp.Warnings = append(mp.Warnings, fmt.Sprintf("heuristic packing failed: %v", err))
		return mp
	}
	hPlans := Assemble(items, heuristic, capacity, o.Settings.Scale)
	mp.Bars = hPlans
	mp.HeuristicBars = len(hPlans)
	log.Debug("heuristic done", "pieces", len(items), "bars", len(hPlans), "lower_bound", mp.LowerBound)

	run, reason := o.policy().RunExact(len(items), len(hPlans), mp.LowerBound)
	if !run {
		log.Debug("exact search skipped", "reason", reason)
		return mp
	}

	exact := BranchAndBound{TimeLimit: o.Settings.ExactTimeLimit, UpperBound: len(hPlans)}
	start := time.Now()
	packing, err := exact.Pack(ctx, items, capacity)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, ErrTimeLimit):
		mp.ExactOutcome = model.ExactNone
		msg := fmt.Sprintf("exact search timed out after %s; using heuristic plan", o.Settings.ExactTimeLimit)
		mp.Warnings = append(mp.Warnings, msg)
		log.Warn("exact search timed out", "limit", o.Settings.ExactTimeLimit)
		return mp
	case err != nil:
		mp.ExactOutcome = model.ExactNone
		mp.Warnings = append(mp.Warnings, fmt.Sprintf("exact search failed: %v; using heuristic plan", err))
		log.Warn("exact search failed", "error", err)
		return mp
	}

	mp.ExactOutcome = model.ExactFeasible
	if packing.Optimal {
		mp.ExactOutcome = model.ExactOptimal
	}
	ePlans := Assemble(items, packing, capacity, o.Settings.Scale)
	mp.Bars, mp.Source = Select(hPlans, ePlans, true)
	log.Info("exact search done",
		"outcome", mp.ExactOutcome,
		"heuristic_bars", len(hPlans),
		"exact_bars", len(ePlans),
		"source", mp.Source,
		"elapsed", elapsed,
	)
	return mp
}
