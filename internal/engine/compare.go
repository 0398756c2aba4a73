package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/piwi3910/barcut/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the plan and summary figures for one scenario.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Result       model.PlanResult
	BarsUsed     int
	TotalCuts    int
	WastePercent float64
	// BarsByMaterial maps material key to bars used, for per-material diffs.
	BarsByMaterial map[string]int
}

// CompareScenarios optimises the same records once per scenario and returns
// the results in scenario order. A cancelled context stops the comparison
// and returns the scenarios finished so far.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, records []model.RawRecord, logger *slog.Logger) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		opt := New(scenario.Settings, logger)
		result, err := opt.Optimize(ctx, records)
		if err != nil {
			return results, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		var used, stock float64
		cuts := 0
		byMaterial := make(map[string]int, len(result.Materials))
		for _, mp := range result.Materials {
			cuts += mp.CutCount()
			used += mp.UsedLength()
			stock += mp.MasterLength * float64(len(mp.Bars))
			byMaterial[mp.Material] = len(mp.Bars)
		}

		waste := 0.0
		if stock > 0 {
			waste = 100.0 - used/stock*100.0
		}

		results = append(results, ComparisonResult{
			Scenario:       scenario,
			Result:         result,
			BarsUsed:       result.TotalBars(),
			TotalCuts:      cuts,
			WastePercent:   waste,
			BarsByMaterial: byMaterial,
		})
	}

	return results, nil
}

// BuildDefaultScenarios derives what-if alternatives from the current
// settings: heuristic only, and heuristic plus exact search.
func BuildDefaultScenarios(base model.Settings) []ComparisonScenario {
	heuristic := base
	heuristic.ExactEnabled = false

	exact := base
	exact.ExactEnabled = true

	scenarios := []ComparisonScenario{
		{Name: "Heuristic Only", Settings: heuristic},
		{Name: "Heuristic + Exact", Settings: exact},
	}

	// Scenario: let the exact search see every material
	if base.ExactMaxItems > 0 && base.ExactMaxItems < 80 {
		wide := exact
		wide.ExactMaxItems = base.ExactMaxItems * 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Exact up to %d pieces", wide.ExactMaxItems),
			Settings: wide,
		})
	}

	return scenarios
}
