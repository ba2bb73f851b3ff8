package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leilaShen/BoxStack/internal/model"
)

func TestMaxRects_FirstInsertAtOrigin(t *testing.T) {
	m := NewMaxRects(1500, 1500, 800, true)

	box := m.Insert(510, 290, 210, model.PlacementBottomLeft)

	require.False(t, box.IsEmpty())
	assert.Equal(t, model.Box{X: 0, Y: 0, Z: 0, Width: 510, Height: 290, Depth: 210}, box)
}

func TestMaxRects_SecondInsertGoesRightBeforeUp(t *testing.T) {
	// Bottom-left ordering is (y, z, x): the region to the right of the first
	// box sits at z=0 and must be preferred over stacking on top of it.
	m := NewMaxRects(1500, 1500, 800, true)
	m.Insert(510, 290, 210, model.PlacementBottomLeft)

	second := m.Insert(510, 290, 210, model.PlacementBottomLeft)

	require.False(t, second.IsEmpty())
	assert.Equal(t, model.Box{X: 510, Y: 0, Z: 0, Width: 510, Height: 290, Depth: 210}, second)
}

func TestMaxRects_InsertFailureReturnsZeroBoxAndKeepsState(t *testing.T) {
	m := NewMaxRects(100, 100, 100, true)
	before := m.FreeRegions()

	box := m.Insert(200, 200, 50, model.PlacementBottomLeft)

	assert.True(t, box.IsEmpty())
	assert.Equal(t, before, m.FreeRegions())
	assert.Empty(t, m.UsedBoxes())
}

func TestMaxRects_UnknownPlacementRuleRejected(t *testing.T) {
	m := NewMaxRects(100, 100, 100, true)

	box := m.Insert(50, 50, 50, model.PlacementRule("BestFit"))

	assert.True(t, box.IsEmpty())
	assert.Empty(t, m.UsedBoxes())
}

func TestMaxRects_SupportThresholdRejectsOverhang(t *testing.T) {
	// A 100x100 box leaves a 200x200 slab above it whose only footing is the
	// box's top face. A full-footprint second box is 25% supported, below the
	// default threshold, so it must be rejected.
	m := NewMaxRects(200, 200, 100, true)
	first := m.Insert(100, 100, 50, model.PlacementBottomLeft)
	require.Equal(t, model.Box{Width: 100, Height: 100, Depth: 50}, first)

	box := m.Insert(200, 200, 50, model.PlacementBottomLeft)

	assert.True(t, box.IsEmpty())
}

func TestMaxRects_LowerThresholdAllowsOverhang(t *testing.T) {
	m := NewMaxRects(200, 200, 100, true)
	m.SetSupportThreshold(0.5)
	m.Insert(100, 100, 50, model.PlacementBottomLeft)

	box := m.Insert(200, 200, 50, model.PlacementBottomLeft)

	require.False(t, box.IsEmpty())
	assert.Equal(t, model.Box{X: 0, Y: 0, Z: 50, Width: 200, Height: 200, Depth: 50}, box)
}

func TestMaxRects_BlockedColumnRejected(t *testing.T) {
	// A permissive threshold lets a wide box bridge over a half-width column,
	// leaving free space underneath the overhang. That space cannot be filled
	// from above, so a candidate there must be rejected.
	m := NewMaxRects(200, 200, 200, true)
	m.SetSupportThreshold(0.5)

	require.False(t, m.Insert(100, 200, 100, model.PlacementBottomLeft).IsEmpty())
	bridge := m.Insert(200, 200, 100, model.PlacementBottomLeft)
	require.Equal(t, model.Box{X: 0, Y: 0, Z: 100, Width: 200, Height: 200, Depth: 100}, bridge)

	box := m.Insert(100, 200, 50, model.PlacementBottomLeft)

	assert.True(t, box.IsEmpty())
}

func TestMaxRects_FlipDisabled(t *testing.T) {
	m := NewMaxRects(300, 600, 100, false)

	box := m.Insert(500, 200, 50, model.PlacementBottomLeft)

	assert.True(t, box.IsEmpty())
}

func TestMaxRects_FlipEnabled(t *testing.T) {
	m := NewMaxRects(300, 600, 100, true)

	box := m.Insert(500, 200, 50, model.PlacementBottomLeft)

	require.False(t, box.IsEmpty())
	assert.Equal(t, 200, box.Width)
	assert.Equal(t, 500, box.Height)
}

func TestMaxRects_StackedPlacementRestsOnTopFace(t *testing.T) {
	m := NewMaxRects(100, 100, 200, true)

	first := m.Insert(100, 100, 50, model.PlacementBottomLeft)
	second := m.Insert(100, 100, 50, model.PlacementBottomLeft)

	require.False(t, second.IsEmpty())
	assert.Equal(t, first.Top(), second.Z)
	assertAllDisjoint(t, m.UsedBoxes())
}

func TestMaxRects_PlacementsStayDisjointAndInBounds(t *testing.T) {
	m := NewMaxRects(1500, 1500, 800, true)
	m.SetVerify(true)
	bin := model.Box{Width: 1500, Height: 1500, Depth: 800}

	for i := 0; i < 12; i++ {
		m.Insert(510, 290, 210, model.PlacementBottomLeft)
	}
	for i := 0; i < 10; i++ {
		m.Insert(480, 230, 190, model.PlacementBottomLeft)
	}

	used := m.UsedBoxes()
	require.NotEmpty(t, used)
	for _, b := range used {
		assert.True(t, b.ContainedIn(bin), "placement %v escapes the bin", b)
	}
	assertAllDisjoint(t, used)
}

func TestMaxRects_SupportSpanStaysInsideRegion(t *testing.T) {
	m := NewMaxRects(1000, 1000, 400, true)
	m.Insert(300, 200, 100, model.PlacementBottomLeft)
	m.Insert(400, 300, 150, model.PlacementBottomLeft)

	for _, r := range m.FreeRegions() {
		assert.GreaterOrEqual(t, r.SupportX0, r.X)
		assert.LessOrEqual(t, r.SupportX1, r.X+r.Width)
		assert.GreaterOrEqual(t, r.SupportY0, r.Y)
		assert.LessOrEqual(t, r.SupportY1, r.Y+r.Height)
		assert.LessOrEqual(t, r.SupportX0, r.SupportX1)
		assert.LessOrEqual(t, r.SupportY0, r.SupportY1)
	}
}

func TestMaxRects_PruneRemovesRedundantRegions(t *testing.T) {
	m := NewMaxRects(100, 100, 100, true)

	big := model.FreeRegion{
		Box:       model.Box{X: 0, Y: 0, Z: 0, Width: 100, Height: 100, Depth: 100},
		SupportX0: 0, SupportX1: 100, SupportY0: 0, SupportY1: 100,
	}
	inner := model.FreeRegion{
		Box:       model.Box{X: 10, Y: 10, Z: 0, Width: 50, Height: 50, Depth: 100},
		SupportX0: 10, SupportX1: 60, SupportY0: 10, SupportY1: 60,
	}
	m.freeRegions = []model.FreeRegion{inner, big}

	m.PruneFreeList()

	require.Len(t, m.freeRegions, 1)
	assert.Equal(t, big, m.freeRegions[0])
}

func TestMaxRects_PruneKeepsTallerRegionWithLowerFloor(t *testing.T) {
	// Same footprint, but the second region starts lower and ends lower.
	// Neither ceiling-dominates the other from the same floor, so redundancy
	// only removes the one whose floor is higher and ceiling no higher.
	a := model.FreeRegion{
		Box:       model.Box{X: 0, Y: 0, Z: 50, Width: 100, Height: 100, Depth: 50},
		SupportX0: 0, SupportX1: 100, SupportY0: 0, SupportY1: 100,
	}
	b := model.FreeRegion{
		Box:       model.Box{X: 0, Y: 0, Z: 0, Width: 100, Height: 100, Depth: 100},
		SupportX0: 0, SupportX1: 100, SupportY0: 0, SupportY1: 100,
	}

	m := NewMaxRects(100, 100, 100, true)
	m.freeRegions = []model.FreeRegion{a, b}
	m.PruneFreeList()

	require.Len(t, m.freeRegions, 1)
	assert.Equal(t, b, m.freeRegions[0])
}

func TestMaxRects_OccupancyIsFloorCoverage(t *testing.T) {
	m := NewMaxRects(200, 200, 100, true)
	assert.Zero(t, m.Occupancy())

	m.Insert(100, 100, 50, model.PlacementBottomLeft)
	assert.InDelta(t, 0.25, m.Occupancy(), 1e-9)

	m.Insert(100, 100, 50, model.PlacementBottomLeft)
	assert.InDelta(t, 0.5, m.Occupancy(), 1e-9)

	// Stacked footprints keep accumulating, so the metric can exceed 1 when
	// boxes pile up on a full floor.
	stacked := NewMaxRects(100, 100, 200, true)
	stacked.Insert(100, 100, 50, model.PlacementBottomLeft)
	stacked.Insert(100, 100, 50, model.PlacementBottomLeft)
	assert.InDelta(t, 2.0, stacked.Occupancy(), 1e-9)
}
