package engine

import (
	"fmt"
	"math"

	"github.com/leilaShen/BoxStack/internal/model"
)

// scoreMax marks "no placement found"; every real score is strictly smaller.
const scoreMax = math.MaxInt

// scoreByRule returns the heuristic score for placing a width*height*depth
// box into region. Lower is better. Does not try to rotate; callers score
// each orientation separately.
func scoreByRule(width, height, depth int, region model.Box, rule model.FitRule) int {
	switch rule {
	case model.BestAreaFit:
		return scoreBestAreaFit(width, height, depth, region)
	case model.BestShortSideFit:
		return scoreBestShortSideFit(width, height, depth, region)
	case model.BestLongSideFit:
		return scoreBestLongSideFit(width, height, depth, region)
	case model.WorstAreaFit:
		return -scoreBestAreaFit(width, height, depth, region)
	case model.WorstShortSideFit:
		return -scoreBestShortSideFit(width, height, depth, region)
	case model.WorstLongSideFit:
		return -scoreBestLongSideFit(width, height, depth, region)
	default:
		return scoreMax
	}
}

// scoreBestAreaFit is the leftover volume after the placement.
func scoreBestAreaFit(width, height, depth int, region model.Box) int {
	return region.Volume() - width*height*depth
}

// scoreBestShortSideFit is the smallest of the three per-axis leftovers.
func scoreBestShortSideFit(width, height, depth int, region model.Box) int {
	leftoverW := abs(region.Width - width)
	leftoverH := abs(region.Height - height)
	leftoverD := abs(region.Depth - depth)
	return min(min(leftoverW, leftoverH), leftoverD)
}

// scoreBestLongSideFit is the largest of the three per-axis leftovers.
func scoreBestLongSideFit(width, height, depth int, region model.Box) int {
	leftoverW := abs(region.Width - width)
	leftoverH := abs(region.Height - height)
	leftoverD := abs(region.Depth - depth)
	return max(max(leftoverW, leftoverH), leftoverD)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ParseEngine resolves a config string into an Engine.
func ParseEngine(s string) (model.Engine, error) {
	switch model.Engine(s) {
	case model.EngineGuillotine, model.EngineMaxRects, model.EngineGenetic:
		return model.Engine(s), nil
	}
	return "", fmt.Errorf("unknown engine %q (want guillotine, maxrects or genetic)", s)
}

// ParseFitRule resolves a config string into a FitRule.
func ParseFitRule(s string) (model.FitRule, error) {
	for _, r := range model.FitRules {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown fit rule %q", s)
}

// ParseSplitRule resolves a config string into a SplitRule.
func ParseSplitRule(s string) (model.SplitRule, error) {
	for _, r := range model.SplitRules {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown split rule %q", s)
}
