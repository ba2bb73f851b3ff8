package engine

import (
	"github.com/leilaShen/BoxStack/internal/model"
)

// Guillotine packs boxes by consuming one free region per placement and
// splitting the leftover space with straight guillotine cuts: an "up" slab
// above the placed box, then a bottom and a right child divided along a
// single axis chosen by the split rule. Free regions never overlap.
type Guillotine struct {
	binWidth  int
	binHeight int
	binDepth  int

	freeRegions []model.Box
	usedBoxes   []model.Box

	tracer Tracer
	verify *model.DisjointSet
}

// NewGuillotine creates a packer for a bin of the given size.
func NewGuillotine(width, height, depth int) *Guillotine {
	g := &Guillotine{tracer: NopTracer()}
	g.Init(width, height, depth)
	return g
}

// Init (re)initializes the packer to an empty bin of width*height*depth
// units. Call whenever you need to restart with a new bin.
func (g *Guillotine) Init(width, height, depth int) {
	g.binWidth = width
	g.binHeight = height
	g.binDepth = depth

	g.usedBoxes = g.usedBoxes[:0]
	g.freeRegions = g.freeRegions[:0]
	g.freeRegions = append(g.freeRegions, model.Box{Width: width, Height: height, Depth: depth})

	if g.verify != nil {
		g.verify.Clear()
	}
}

// SetTracer injects a diagnostic sink. A nil tracer disables tracing.
func (g *Guillotine) SetTracer(t Tracer) {
	if t == nil {
		t = NopTracer()
	}
	g.tracer = t
}

// SetVerify toggles runtime disjointness verification. When enabled, every
// placement is checked against all prior placements and a violation panics.
func (g *Guillotine) SetVerify(enabled bool) {
	if !enabled {
		g.verify = nil
		return
	}
	set := &model.DisjointSet{}
	for _, b := range g.usedBoxes {
		set.Add(b)
	}
	g.verify = set
}

// Insert places a single width*height*depth box, possibly flipped (width and
// height swapped, never depth). It returns the accepted placement, or the
// zero Box when no free region admits the box in either orientation; on
// failure no packer state changes.
func (g *Guillotine) Insert(width, height, depth int, merge bool, rule model.FitRule, split model.SplitRule) model.Box {
	newBox, index := g.findPosition(width, height, depth, rule)
	if newBox.IsEmpty() {
		g.tracer.Tracef("guillotine: no region admits %dx%dx%d", width, height, depth)
		return model.Box{}
	}
	g.commit(index, newBox, merge, split)
	return newBox
}

// InsertBatch packs as many of the given sizes as possible, each round
// choosing the globally best (size, region, orientation) triple under the
// fit rule. It returns the accepted placements and the sizes that did not
// fit. The relative input order of unplaced sizes is preserved.
func (g *Guillotine) InsertBatch(sizes []model.BoxSize, merge bool, rule model.FitRule, split model.SplitRule) (placed []model.Box, unplaced []model.BoxSize) {
	remaining := make([]model.BoxSize, len(sizes))
	copy(remaining, sizes)

	for len(remaining) > 0 {
		bestScore := scoreMax
		bestRegion := 0
		bestSize := 0
		bestFlipped := false

	search:
		for i, free := range g.freeRegions {
			for j, size := range remaining {
				switch {
				// Perfect matches are picked instantly.
				case size.Width == free.Width && size.Height == free.Height && size.Depth == free.Depth:
					bestRegion, bestSize, bestFlipped = i, j, false
					bestScore = -scoreMax
					break search
				case size.Height == free.Width && size.Width == free.Height && size.Depth == free.Depth:
					bestRegion, bestSize, bestFlipped = i, j, true
					bestScore = -scoreMax
					break search
				case size.Width <= free.Width && size.Height <= free.Height && size.Depth <= free.Depth:
					if score := scoreByRule(size.Width, size.Height, size.Depth, free, rule); score < bestScore {
						bestRegion, bestSize, bestFlipped = i, j, false
						bestScore = score
					}
				case size.Height <= free.Width && size.Width <= free.Height && size.Depth <= free.Depth:
					if score := scoreByRule(size.Height, size.Width, size.Depth, free, rule); score < bestScore {
						bestRegion, bestSize, bestFlipped = i, j, true
						bestScore = score
					}
				}
			}
		}

		if bestScore == scoreMax {
			break
		}

		free := g.freeRegions[bestRegion]
		size := remaining[bestSize]
		newBox := model.Box{
			X: free.X, Y: free.Y, Z: free.Z,
			Width: size.Width, Height: size.Height, Depth: size.Depth,
		}
		if bestFlipped {
			newBox.Width, newBox.Height = newBox.Height, newBox.Width
		}

		g.commit(bestRegion, newBox, merge, split)
		placed = append(placed, newBox)
		remaining = append(remaining[:bestSize], remaining[bestSize+1:]...)
	}

	return placed, remaining
}

// findPosition scans the free regions for the request. Exact matches
// (upright, then flipped) short-circuit the whole search; otherwise the
// minimum-scoring region and orientation wins and ties keep the first found
// in iteration order.
func (g *Guillotine) findPosition(width, height, depth int, rule model.FitRule) (model.Box, int) {
	bestScore := scoreMax
	bestIndex := -1
	var bestBox model.Box

	for i, free := range g.freeRegions {
		switch {
		case width == free.Width && height == free.Height && depth == free.Depth:
			return placedAt(free, width, height, depth), i
		case height == free.Width && width == free.Height && depth == free.Depth:
			return placedAt(free, height, width, depth), i
		case width <= free.Width && height <= free.Height && depth <= free.Depth:
			if score := scoreByRule(width, height, depth, free, rule); score < bestScore {
				bestBox = placedAt(free, width, height, depth)
				bestScore = score
				bestIndex = i
			}
		case height <= free.Width && width <= free.Height && depth <= free.Depth:
			if score := scoreByRule(height, width, depth, free, rule); score < bestScore {
				bestBox = placedAt(free, height, width, depth)
				bestScore = score
				bestIndex = i
			}
		}
	}

	if bestIndex < 0 {
		return model.Box{}, -1
	}
	return bestBox, bestIndex
}

// placedAt anchors a box of the given extents at a free region's minimum
// corner.
func placedAt(free model.Box, width, height, depth int) model.Box {
	return model.Box{X: free.X, Y: free.Y, Z: free.Z, Width: width, Height: height, Depth: depth}
}

// commit replaces the consumed region with its split children and records
// the placement. The free list is rebuilt rather than erased in place.
func (g *Guillotine) commit(index int, newBox model.Box, merge bool, split model.SplitRule) {
	chosen := g.freeRegions[index]
	children := splitByRule(chosen, newBox, split)
	g.tracer.Tracef("guillotine: placed %v in region %v, %d children", newBox, chosen, len(children))

	next := make([]model.Box, 0, len(g.freeRegions)-1+len(children))
	next = append(next, g.freeRegions[:index]...)
	next = append(next, g.freeRegions[index+1:]...)
	next = append(next, children...)
	g.freeRegions = next

	if merge {
		g.MergeFreeList()
	}

	g.usedBoxes = append(g.usedBoxes, newBox)
	verifyPlacement(g.verify, newBox, "guillotine")
}

// splitByRule divides the space of a consumed region around the placed box:
// first an up slab above the box (footprint = the box's x/y extents), then
// the remaining L-shape in the x/y plane into a bottom and a right child
// along the axis the split rule picks.
func splitByRule(free, placed model.Box, rule model.SplitRule) []model.Box {
	leftoverW := free.Width - placed.Width
	leftoverH := free.Height - placed.Height

	var splitHorizontal bool
	switch rule {
	case model.SplitShorterLeftoverAxis:
		splitHorizontal = leftoverW <= leftoverH
	case model.SplitLongerLeftoverAxis:
		splitHorizontal = leftoverW > leftoverH
	case model.SplitMinimizeArea:
		// Maximize the larger child == minimize the smaller one.
		splitHorizontal = placed.Width*leftoverH > leftoverW*placed.Height
	case model.SplitMaximizeArea:
		// More even-sized children.
		splitHorizontal = placed.Width*leftoverH <= leftoverW*placed.Height
	case model.SplitShorterAxis:
		splitHorizontal = free.Width <= free.Height
	case model.SplitLongerAxis:
		splitHorizontal = free.Width > free.Height
	default:
		splitHorizontal = true
	}

	return splitAlongAxis(free, placed, splitHorizontal)
}

// splitAlongAxis forms the up/bottom/right children. Children with a zero or
// negative extent on any axis are discarded, never stored.
func splitAlongAxis(free, placed model.Box, splitHorizontal bool) []model.Box {
	up := model.Box{
		X: free.X, Y: free.Y, Z: free.Z + placed.Depth,
		Width: placed.Width, Height: placed.Height, Depth: free.Depth - placed.Depth,
	}
	bottom := model.Box{
		X: free.X, Y: free.Y + placed.Height, Z: free.Z,
		Height: free.Height - placed.Height, Depth: free.Depth,
	}
	right := model.Box{
		X: free.X + placed.Width, Y: free.Y, Z: free.Z,
		Width: free.Width - placed.Width, Depth: free.Depth,
	}

	if splitHorizontal {
		bottom.Width = free.Width
		right.Height = placed.Height
	} else {
		bottom.Width = placed.Width
		right.Height = free.Height
	}

	children := make([]model.Box, 0, 3)
	for _, c := range []model.Box{up, bottom, right} {
		if !c.IsEmpty() {
			children = append(children, c)
		}
	}
	return children
}

// MergeFreeList coalesces adjacent free regions that share a full face:
// y-adjacent pairs with equal (width, x, z, depth), x-adjacent pairs with
// equal (height, y, z, depth), and z-adjacent pairs with equal (width,
// height, x, y). Passes repeat until nothing merges, so a second
// consecutive call never changes the list.
func (g *Guillotine) MergeFreeList() {
	for g.mergePass() {
	}
}

func (g *Guillotine) mergePass() bool {
	merged := false
	removed := make([]bool, len(g.freeRegions))

	for i := 0; i < len(g.freeRegions); i++ {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(g.freeRegions); j++ {
			if removed[j] {
				continue
			}
			a := &g.freeRegions[i]
			b := g.freeRegions[j]

			switch {
			case a.Width == b.Width && a.X == b.X && a.Z == b.Z && a.Depth == b.Depth:
				if a.Y == b.Y+b.Height {
					a.Y -= b.Height
					a.Height += b.Height
					removed[j] = true
					merged = true
				} else if a.Y+a.Height == b.Y {
					a.Height += b.Height
					removed[j] = true
					merged = true
				}
			case a.Height == b.Height && a.Y == b.Y && a.Z == b.Z && a.Depth == b.Depth:
				if a.X == b.X+b.Width {
					a.X -= b.Width
					a.Width += b.Width
					removed[j] = true
					merged = true
				} else if a.X+a.Width == b.X {
					a.Width += b.Width
					removed[j] = true
					merged = true
				}
			case a.Width == b.Width && a.Height == b.Height && a.X == b.X && a.Y == b.Y:
				if a.Z == b.Z+b.Depth {
					a.Z -= b.Depth
					a.Depth += b.Depth
					removed[j] = true
					merged = true
				} else if a.Z+a.Depth == b.Z {
					a.Depth += b.Depth
					removed[j] = true
					merged = true
				}
			}
		}
	}

	if !merged {
		return false
	}
	next := g.freeRegions[:0]
	for i, r := range g.freeRegions {
		if !removed[i] {
			next = append(next, r)
		}
	}
	g.freeRegions = next
	return true
}

// Occupancy returns the ratio of placed volume to total bin volume, in
// [0, 1]. Zero when nothing has been placed.
func (g *Guillotine) Occupancy() float64 {
	if g.binWidth == 0 || g.binHeight == 0 || g.binDepth == 0 {
		return 0
	}
	used := 0
	for _, b := range g.usedBoxes {
		used += b.Volume()
	}
	return float64(used) / float64(g.binWidth*g.binHeight*g.binDepth)
}

// FreeRegions returns a copy of the current free-region list.
func (g *Guillotine) FreeRegions() []model.Box {
	out := make([]model.Box, len(g.freeRegions))
	copy(out, g.freeRegions)
	return out
}

// UsedBoxes returns a copy of the accepted placements, in insertion order.
func (g *Guillotine) UsedBoxes() []model.Box {
	out := make([]model.Box, len(g.usedBoxes))
	copy(out, g.usedBoxes)
	return out
}
