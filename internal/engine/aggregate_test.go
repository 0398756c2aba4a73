package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/barcut/internal/model"
)

func rec(material, length, qty, partNo string) model.RawRecord {
	return model.RawRecord{Material: material, Length: length, Quantity: qty, PartNo: partNo, PartName: "Part " + partNo, SourceTag: "MTG-1"}
}

func TestAggregate_GroupsByMaterialInFirstSeenOrder(t *testing.T) {
	records := []model.RawRecord{
		rec("copper 1/4", "12.5", "2", "A"),
		rec("Brass", "10", "1", "B"),
		rec(" COPPER 1/4 ", "20", "3", "C"),
	}
	agg := Aggregate(records, model.DefaultSettings())

	require.Len(t, agg.Demand, 2)
	assert.Equal(t, "COPPER 1/4", agg.Demand[0].Material)
	assert.Equal(t, "BRASS", agg.Demand[1].Material)

	copper := agg.Demand[0]
	require.Len(t, copper.Parts, 2)
	assert.Equal(t, "A", copper.Parts[0].PartNo)
	assert.Equal(t, 12.5, copper.Parts[0].Length)
	assert.Equal(t, 2, copper.Parts[0].Quantity)
	assert.Equal(t, "C", copper.Parts[1].PartNo)
	assert.Equal(t, 5, copper.UnitCount())

	assert.Empty(t, agg.NonCuttable)
	assert.Empty(t, agg.Skipped)
	assert.Empty(t, agg.Kanban)
}

func TestAggregate_Defaults(t *testing.T) {
	r := model.RawRecord{Length: " 12 ", Quantity: "1", PartNo: "X"}
	agg := Aggregate([]model.RawRecord{r}, model.DefaultSettings())

	require.Len(t, agg.Demand, 1)
	assert.Equal(t, model.DefaultMaterial, agg.Demand[0].Material)
	assert.Equal(t, model.DefaultSourceTag, agg.Demand[0].Parts[0].SourceTag)
	assert.Equal(t, 12.0, agg.Demand[0].Parts[0].Length)
}

func TestAggregate_LengthFormats(t *testing.T) {
	for _, in := range []string{"12.50", `12.5"`, "12.5in", " 12.5 "} {
		agg := Aggregate([]model.RawRecord{rec("CU", in, "1", "A")}, model.DefaultSettings())
		require.Len(t, agg.Demand, 1, "input %q", in)
		assert.Equal(t, 12.5, agg.Demand[0].Parts[0].Length, "input %q", in)
	}
}

func TestAggregate_QuantityParsing(t *testing.T) {
	agg := Aggregate([]model.RawRecord{rec("CU", "10", "3.0", "A")}, model.DefaultSettings())
	require.Len(t, agg.Demand, 1)
	assert.Equal(t, 3, agg.Demand[0].Parts[0].Quantity)

	for _, bad := range []string{"", "two", "2.5", "0", "-1", "1e19", "18446744073709551617", "10001"} {
		agg := Aggregate([]model.RawRecord{rec("CU", "10", bad, "A")}, model.DefaultSettings())
		assert.Empty(t, agg.Demand, "quantity %q", bad)
		require.Len(t, agg.Skipped, 1, "quantity %q", bad)
		assert.Equal(t, 0, agg.Skipped[0].Index)
	}
}

func TestAggregate_QuantityLimit(t *testing.T) {
	agg := Aggregate([]model.RawRecord{rec("CU", "10", "10000", "A")}, model.DefaultSettings())
	require.Len(t, agg.Demand, 1)
	assert.Equal(t, 10000, agg.Demand[0].UnitCount())

	s := model.DefaultSettings()
	s.MaxQuantity = 5
	agg = Aggregate([]model.RawRecord{rec("CU", "10", "6", "A"), rec("CU", "10", "5", "B")}, s)
	require.Len(t, agg.Skipped, 1)
	assert.Contains(t, agg.Skipped[0].Reason, "limit of 5")
	require.Len(t, agg.Demand, 1)
	assert.Equal(t, "B", agg.Demand[0].Parts[0].PartNo)

	// Zero falls back to the default limit.
	s.MaxQuantity = 0
	agg = Aggregate([]model.RawRecord{rec("CU", "10", "20000", "A")}, s)
	assert.Len(t, agg.Skipped, 1)
}

func TestAggregate_UnparseableLengthIsSkipped(t *testing.T) {
	records := []model.RawRecord{
		rec("CU", "10", "1", "A"),
		rec("CU", "ten", "1", "B"),
	}
	agg := Aggregate(records, model.DefaultSettings())

	require.Len(t, agg.Skipped, 1)
	assert.Equal(t, 1, agg.Skipped[0].Index)
	assert.Equal(t, "B", agg.Skipped[0].Record.PartNo)
	assert.Contains(t, agg.Skipped[0].Reason, "invalid length")
	require.Len(t, agg.Demand, 1)
	assert.Len(t, agg.Demand[0].Parts, 1)
}

func TestAggregate_NonCuttableRouting(t *testing.T) {
	records := []model.RawRecord{
		rec("CU", "", "1", "EMPTY"),
		rec("CU", "0", "1", "ZERO"),
		rec("CU", "-3", "1", "NEG"),
		rec("CU", "150", "2", "LONG"),
		rec("CU", "144", "1", "EXACT"),
		rec("CU", "144.004", "1", "OVER"),
	}
	agg := Aggregate(records, model.DefaultSettings())

	require.Len(t, agg.NonCuttable, 5)
	assert.Equal(t, ReasonMissingLength, agg.NonCuttable[0].Reason)
	assert.Equal(t, ReasonMissingLength, agg.NonCuttable[1].Reason)
	assert.Equal(t, ReasonMissingLength, agg.NonCuttable[2].Reason)
	assert.Equal(t, ReasonTooLong, agg.NonCuttable[3].Reason)
	assert.Equal(t, 150.0, agg.NonCuttable[3].Length)
	assert.Equal(t, 2, agg.NonCuttable[3].Quantity)
	assert.Equal(t, "OVER", agg.NonCuttable[4].Record.PartNo)
	assert.Equal(t, ReasonTooLong, agg.NonCuttable[4].Reason)
	assert.Equal(t, 144.004, agg.NonCuttable[4].Length)

	// A piece exactly as long as the bar still fits.
	require.Len(t, agg.Demand, 1)
	assert.Equal(t, "EXACT", agg.Demand[0].Parts[0].PartNo)
}

func TestAggregate_SnapsLengthsUp(t *testing.T) {
	records := []model.RawRecord{
		rec("CU", "72.004", "2", "A"),
		rec("CU", "14.4", "1", "B"),
		rec("CU", "143.996", "1", "C"),
	}
	agg := Aggregate(records, model.DefaultSettings())

	require.Len(t, agg.Demand, 1)
	parts := agg.Demand[0].Parts
	require.Len(t, parts, 3)
	assert.Equal(t, 72.01, parts[0].Length)
	assert.Equal(t, 14.4, parts[1].Length)
	assert.Equal(t, 144.0, parts[2].Length)
	assert.Equal(t, 2, agg.Rounded)
}

func TestAggregate_BarLengthRoundsDown(t *testing.T) {
	s := model.DefaultSettings()
	s.MasterLength = 143.996

	agg := Aggregate([]model.RawRecord{rec("CU", "143.99", "1", "A"), rec("CU", "143.995", "1", "B")}, s)
	require.Len(t, agg.Demand, 1)
	assert.Equal(t, "A", agg.Demand[0].Parts[0].PartNo)
	// 143.995 needs 14400 units but the bar only has 14399.
	require.Len(t, agg.NonCuttable, 1)
	assert.Equal(t, ReasonTooLong, agg.NonCuttable[0].Reason)
}

func TestAggregate_PerMaterialBarLength(t *testing.T) {
	settings := model.DefaultSettings()
	settings.BarLengths = map[string]float64{"BRASS": 240}

	records := []model.RawRecord{
		rec("brass", "200", "1", "B"),
		rec("copper", "200", "1", "C"),
	}
	agg := Aggregate(records, settings)

	require.Len(t, agg.Demand, 1)
	assert.Equal(t, "BRASS", agg.Demand[0].Material)
	require.Len(t, agg.NonCuttable, 1)
	assert.Equal(t, "COPPER", agg.NonCuttable[0].Material)
}

func TestAggregate_KanbanRouting(t *testing.T) {
	k := rec("CU", "10", "1", "K")
	k.Remarks = "stock item - Kanban"
	agg := Aggregate([]model.RawRecord{k, rec("CU", "10", "1", "A")}, model.DefaultSettings())

	require.Len(t, agg.Kanban, 1)
	assert.Equal(t, "K", agg.Kanban[0].PartNo)
	require.Len(t, agg.Demand, 1)
	assert.Len(t, agg.Demand[0].Parts, 1)
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil, model.DefaultSettings())
	assert.Empty(t, agg.Demand)
	assert.Empty(t, agg.NonCuttable)
}
