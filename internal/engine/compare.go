package engine

import (
	"sort"

	"github.com/leilaShen/BoxStack/internal/model"
)

// ComparisonScenario is one settings variant to evaluate.
type ComparisonScenario struct {
	Name     string
	Settings model.PackSettings
}

// ComparisonResult summarizes one scenario's outcome.
type ComparisonResult struct {
	Scenario       ComparisonScenario
	Result         model.PackResult
	ContainersUsed int
	PlacedCount    int
	UnplacedCount  int
	WastePercent   float64
}

// CompareScenarios runs every scenario over the same input and returns the
// results sorted best first: most boxes placed, then fewest containers, then
// least waste.
func CompareScenarios(scenarios []ComparisonScenario, boxes []model.BoxRequest, containers []model.Container) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))
	for _, sc := range scenarios {
		result := New(sc.Settings).Optimize(boxes, containers)
		results = append(results, ComparisonResult{
			Scenario:       sc,
			Result:         result,
			ContainersUsed: len(result.Containers),
			PlacedCount:    result.PlacedCount(),
			UnplacedCount:  len(result.Unplaced),
			WastePercent:   100.0 - result.TotalVolumeEfficiency(),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.PlacedCount != b.PlacedCount {
			return a.PlacedCount > b.PlacedCount
		}
		if a.ContainersUsed != b.ContainersUsed {
			return a.ContainersUsed < b.ContainersUsed
		}
		return a.WastePercent < b.WastePercent
	})
	return results
}

// DefaultScenarios sweeps the guillotine fit rules plus the maxrects and
// genetic engines, all starting from the given base settings.
func DefaultScenarios(base model.PackSettings) []ComparisonScenario {
	var scenarios []ComparisonScenario

	for _, rule := range model.FitRules {
		s := base
		s.Engine = model.EngineGuillotine
		s.FitRule = rule
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "guillotine/" + string(rule),
			Settings: s,
		})
	}

	mr := base
	mr.Engine = model.EngineMaxRects
	scenarios = append(scenarios, ComparisonScenario{Name: "maxrects/BottomLeft", Settings: mr})

	ga := base
	ga.Engine = model.EngineGenetic
	scenarios = append(scenarios, ComparisonScenario{Name: "genetic", Settings: ga})

	return scenarios
}
