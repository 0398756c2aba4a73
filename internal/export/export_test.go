package export

import (
	"time"

	"github.com/piwi3910/barcut/internal/model"
)

// buildTestResult creates a small two-material plan with every side section.
func buildTestResult() model.PlanResult {
	cut := func(l float64, no, name, tag string) model.Cut {
		return model.Cut{Length: l, PartNo: no, PartName: name, SourceTag: tag}
	}
	return model.PlanResult{
		RunID:     "0f8fad5b-d9cb-469f-a165-70867728950e",
		CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Settings:  model.DefaultSettings(),
		Materials: []model.MaterialPlan{
			{
				Material:     "CU 1/4",
				MasterLength: 144,
				Source:       model.SourceHeuristic,
				ExactOutcome: model.ExactSkipped,
				Bars: []model.CutPlan{
					{Cuts: []model.Cut{cut(100, "P1", "Bus", "MTG1"), cut(30, "P2", "Riser", "MTG1")}, UsedLength: 130, Offcut: 14},
					{Cuts: []model.Cut{cut(80, "P3", "Strap", "MTG2"), cut(50, "P4", "Link", "MTG2")}, UsedLength: 130, Offcut: 14},
				},
			},
			{
				Material:     "BRASS",
				MasterLength: 144,
				Source:       model.SourceExact,
				ExactOutcome: model.ExactOptimal,
				Bars: []model.CutPlan{
					{Cuts: []model.Cut{cut(72, "A", "Half", "MTG3"), cut(72, "A", "Half", "MTG3")}, UsedLength: 144, Offcut: 0},
				},
				Warnings: []string{"example warning"},
			},
		},
		Kanban: []model.RawRecord{
			{Material: "CU 1/4", Length: "10", Quantity: "20", PartNo: "K1", PartName: "Clip", SourceTag: "MTG1", Remarks: "KANBAN in lots of 20"},
		},
		NonCuttable: []model.NonCuttable{
			{Record: model.RawRecord{Material: "cu 1/4", Length: "150", Quantity: "1", PartNo: "L1"}, Material: "CU 1/4", Length: 150, Quantity: 1, Reason: "longer than stock bar"},
		},
		Skipped: []model.ParseFailure{
			{Index: 4, Record: model.RawRecord{Material: "CU 1/4", Length: "abc", Quantity: "1", PartNo: "S1"}, Reason: `invalid length "abc"`},
		},
	}
}
