package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/barcut/internal/model"
)

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.DefaultSettings()
	scenarios := BuildDefaultScenarios(base)

	require.Len(t, scenarios, 3)
	assert.False(t, scenarios[0].Settings.ExactEnabled)
	assert.True(t, scenarios[1].Settings.ExactEnabled)
	assert.Equal(t, 80, scenarios[2].Settings.ExactMaxItems)

	base.ExactMaxItems = 100
	assert.Len(t, BuildDefaultScenarios(base), 2)
}

func TestCompareScenarios(t *testing.T) {
	s := testSettings()
	s.MasterLength = 10
	records := []model.RawRecord{
		rec("CU", "5", "1", "A"),
		rec("CU", "4", "1", "B"),
		rec("CU", "3", "3", "C"),
		rec("CU", "2", "1", "D"),
	}

	results, err := CompareScenarios(context.Background(), BuildDefaultScenarios(s), records, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 3, results[0].BarsUsed)
	assert.Equal(t, 2, results[1].BarsUsed)
	assert.Equal(t, 2, results[1].BarsByMaterial["CU"])
	assert.Equal(t, 6, results[1].TotalCuts)
	assert.InDelta(t, 0.0, results[1].WastePercent, 1e-9)
	assert.InDelta(t, 100.0/3.0, results[0].WastePercent, 1e-9)
}
