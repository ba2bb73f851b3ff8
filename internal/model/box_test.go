package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxSize_Flipped(t *testing.T) {
	s := BoxSize{Width: 500, Height: 200, Depth: 50}

	f := s.Flipped()

	assert.Equal(t, BoxSize{Width: 200, Height: 500, Depth: 50}, f)
	assert.Equal(t, s, f.Flipped())
}

func TestBox_IsEmpty(t *testing.T) {
	assert.True(t, Box{}.IsEmpty())
	assert.True(t, Box{Width: 100, Height: 100}.IsEmpty())
	assert.True(t, Box{Width: 100, Height: -1, Depth: 100}.IsEmpty())
	assert.False(t, Box{Width: 1, Height: 1, Depth: 1}.IsEmpty())
}

func TestBox_Top(t *testing.T) {
	b := Box{Z: 50, Depth: 200}
	assert.Equal(t, 250, b.Top())
}

func TestDisjoint_TouchingFacesAreDisjoint(t *testing.T) {
	a := Box{X: 0, Y: 0, Z: 0, Width: 100, Height: 100, Depth: 100}
	b := Box{X: 100, Y: 0, Z: 0, Width: 100, Height: 100, Depth: 100}
	c := Box{X: 0, Y: 0, Z: 100, Width: 100, Height: 100, Depth: 100}

	assert.True(t, Disjoint(a, b))
	assert.True(t, Disjoint(b, a))
	assert.True(t, Disjoint(a, c))
}

func TestDisjoint_OverlapDetectedOnEveryAxis(t *testing.T) {
	a := Box{X: 0, Y: 0, Z: 0, Width: 100, Height: 100, Depth: 100}

	cases := []Box{
		{X: 50, Y: 0, Z: 0, Width: 100, Height: 100, Depth: 100},
		{X: 0, Y: 50, Z: 0, Width: 100, Height: 100, Depth: 100},
		{X: 0, Y: 0, Z: 50, Width: 100, Height: 100, Depth: 100},
		{X: 10, Y: 10, Z: 10, Width: 10, Height: 10, Depth: 10},
	}
	for _, b := range cases {
		assert.False(t, Disjoint(a, b), "%v should overlap %v", a, b)
		assert.True(t, Intersects(a, b))
	}
}

func TestBox_ContainedIn(t *testing.T) {
	bin := Box{Width: 1000, Height: 800, Depth: 400}

	assert.True(t, Box{X: 0, Y: 0, Z: 0, Width: 1000, Height: 800, Depth: 400}.ContainedIn(bin))
	assert.True(t, Box{X: 100, Y: 100, Z: 100, Width: 100, Height: 100, Depth: 100}.ContainedIn(bin))
	assert.False(t, Box{X: 950, Y: 0, Z: 0, Width: 100, Height: 100, Depth: 100}.ContainedIn(bin))
	assert.False(t, Box{X: -1, Y: 0, Z: 0, Width: 100, Height: 100, Depth: 100}.ContainedIn(bin))
}

func TestFreeRegion_ContainedInIsAsymmetricOnZ(t *testing.T) {
	// Same footprint. The shallow region starts at the same floor but its
	// ceiling is lower, so it is redundant. The taller region is not redundant
	// given the shallow one.
	tall := FreeRegion{
		Box: Box{X: 0, Y: 0, Z: 0, Width: 100, Height: 100, Depth: 200},
	}
	shallow := FreeRegion{
		Box: Box{X: 0, Y: 0, Z: 0, Width: 100, Height: 100, Depth: 100},
	}

	assert.True(t, shallow.ContainedIn(tall))
	assert.False(t, tall.ContainedIn(shallow))

	// A region with a higher floor but the same ceiling is also redundant.
	raised := FreeRegion{
		Box: Box{X: 0, Y: 0, Z: 100, Width: 100, Height: 100, Depth: 100},
	}
	assert.True(t, raised.ContainedIn(tall))
	assert.False(t, tall.ContainedIn(raised))
}

func TestFreeRegion_SupportSpans(t *testing.T) {
	r := FreeRegion{
		Box:       Box{X: 0, Y: 0, Z: 0, Width: 100, Height: 100, Depth: 100},
		SupportX0: 10, SupportX1: 60,
		SupportY0: 20, SupportY1: 90,
	}

	assert.Equal(t, 50, r.SupportWidth())
	assert.Equal(t, 70, r.SupportHeight())
}

func TestDisjointSet_RejectsOverlap(t *testing.T) {
	var set DisjointSet

	require.True(t, set.Add(Box{Width: 100, Height: 100, Depth: 100}))
	assert.False(t, set.Add(Box{X: 50, Y: 50, Z: 50, Width: 100, Height: 100, Depth: 100}))
	assert.True(t, set.Add(Box{X: 100, Y: 0, Z: 0, Width: 100, Height: 100, Depth: 100}))
	assert.Equal(t, 2, set.Len())
}

func TestDisjointSet_DegenerateBoxesAcceptedWithoutEffect(t *testing.T) {
	var set DisjointSet
	set.Add(Box{Width: 100, Height: 100, Depth: 100})

	assert.True(t, set.Add(Box{X: 50, Y: 50, Z: 50, Width: 0, Height: 100, Depth: 100}))
	assert.Equal(t, 1, set.Len())
}

func TestDisjointSet_Clear(t *testing.T) {
	var set DisjointSet
	set.Add(Box{Width: 10, Height: 10, Depth: 10})

	set.Clear()

	assert.Zero(t, set.Len())
	assert.True(t, set.Add(Box{Width: 10, Height: 10, Depth: 10}))
}
