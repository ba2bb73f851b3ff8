package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leilaShen/BoxStack/internal/model"
)

func TestDefaultScenarios_CoversEveryEngine(t *testing.T) {
	scenarios := DefaultScenarios(model.DefaultSettings())

	require.Len(t, scenarios, len(model.FitRules)+2)

	engines := map[model.Engine]int{}
	for _, sc := range scenarios {
		engines[sc.Settings.Engine]++
		assert.NotEmpty(t, sc.Name)
	}
	assert.Equal(t, len(model.FitRules), engines[model.EngineGuillotine])
	assert.Equal(t, 1, engines[model.EngineMaxRects])
	assert.Equal(t, 1, engines[model.EngineGenetic])
}

func TestDefaultScenarios_KeepBaseSettings(t *testing.T) {
	base := model.DefaultSettings()
	base.Merge = false
	base.SupportThreshold = 0.6

	for _, sc := range DefaultScenarios(base) {
		assert.False(t, sc.Settings.Merge, "%s lost merge override", sc.Name)
		assert.InDelta(t, 0.6, sc.Settings.SupportThreshold, 1e-9, "%s lost threshold override", sc.Name)
	}
}

func TestCompareScenarios_RunsEveryScenario(t *testing.T) {
	boxes := []model.BoxRequest{model.NewBoxRequest("Cube", 100, 100, 100, 4)}
	containers := []model.Container{model.NewContainer("Bin", 200, 200, 100, 2)}

	results := CompareScenarios(DefaultScenarios(model.DefaultSettings()), boxes, containers)

	require.Len(t, results, len(model.FitRules)+2)
	for _, r := range results {
		assert.Equal(t, 4, r.PlacedCount, "%s should place everything", r.Scenario.Name)
		assert.Zero(t, r.UnplacedCount)
		assert.Equal(t, r.PlacedCount, r.Result.PlacedCount())
	}
}

func TestCompareScenarios_SortsBestFirst(t *testing.T) {
	scenarios := []ComparisonScenario{
		{Name: "a", Settings: model.DefaultSettings()},
		{Name: "b", Settings: model.DefaultSettings()},
		{Name: "c", Settings: model.DefaultSettings()},
	}
	boxes := []model.BoxRequest{model.NewBoxRequest("Cube", 100, 100, 100, 3)}
	containers := []model.Container{model.NewContainer("Bin", 300, 100, 100, 1)}

	results := CompareScenarios(scenarios, boxes, containers)

	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		if prev.PlacedCount != cur.PlacedCount {
			assert.Greater(t, prev.PlacedCount, cur.PlacedCount)
			continue
		}
		if prev.ContainersUsed != cur.ContainersUsed {
			assert.Less(t, prev.ContainersUsed, cur.ContainersUsed)
			continue
		}
		assert.LessOrEqual(t, prev.WastePercent, cur.WastePercent)
	}
}
