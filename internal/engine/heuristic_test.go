package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leilaShen/BoxStack/internal/model"
)

func TestScoreByRule_WorstIsNegatedBest(t *testing.T) {
	region := model.Box{Width: 500, Height: 400, Depth: 300}

	pairs := []struct {
		best, worst model.FitRule
	}{
		{model.BestAreaFit, model.WorstAreaFit},
		{model.BestShortSideFit, model.WorstShortSideFit},
		{model.BestLongSideFit, model.WorstLongSideFit},
	}
	for _, p := range pairs {
		best := scoreByRule(200, 100, 50, region, p.best)
		worst := scoreByRule(200, 100, 50, region, p.worst)
		assert.Equal(t, -best, worst, "%s vs %s", p.best, p.worst)
	}
}

func TestScoreByRule_TighterFitScoresLower(t *testing.T) {
	tight := model.Box{Width: 210, Height: 110, Depth: 60}
	roomy := model.Box{Width: 500, Height: 400, Depth: 300}

	for _, rule := range []model.FitRule{model.BestAreaFit, model.BestShortSideFit, model.BestLongSideFit} {
		assert.Less(t,
			scoreByRule(200, 100, 50, tight, rule),
			scoreByRule(200, 100, 50, roomy, rule),
			"rule %s", rule)
	}
}

func TestScoreByRule_ExactFitScoresZero(t *testing.T) {
	region := model.Box{Width: 200, Height: 100, Depth: 50}

	for _, rule := range []model.FitRule{model.BestAreaFit, model.BestShortSideFit, model.BestLongSideFit} {
		assert.Zero(t, scoreByRule(200, 100, 50, region, rule), "rule %s", rule)
	}
}

func TestScoreByRule_UnknownRuleIsWorstPossible(t *testing.T) {
	region := model.Box{Width: 500, Height: 400, Depth: 300}

	assert.Equal(t, scoreMax, scoreByRule(200, 100, 50, region, model.FitRule("ContactPointFit")))
}

func TestParseEngine(t *testing.T) {
	e, err := ParseEngine("maxrects")
	require.NoError(t, err)
	assert.Equal(t, model.EngineMaxRects, e)

	_, err = ParseEngine("skyline")
	assert.Error(t, err)
}

func TestParseFitRule(t *testing.T) {
	for _, rule := range model.FitRules {
		parsed, err := ParseFitRule(string(rule))
		require.NoError(t, err)
		assert.Equal(t, rule, parsed)
	}

	_, err := ParseFitRule("bestareafit")
	assert.Error(t, err)
}

func TestParseSplitRule(t *testing.T) {
	for _, rule := range model.SplitRules {
		parsed, err := ParseSplitRule(string(rule))
		require.NoError(t, err)
		assert.Equal(t, rule, parsed)
	}

	_, err := ParseSplitRule("Diagonal")
	assert.Error(t, err)
}
