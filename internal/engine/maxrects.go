package engine

import (
	"sort"

	"github.com/leilaShen/BoxStack/internal/model"
)

// DefaultSupportThreshold is the fraction of a box's footprint that must
// rest on solid footing for a placement to be accepted.
const DefaultSupportThreshold = 0.8

// MaxRects packs boxes into maximal free regions that may overlap each
// other. Unlike Guillotine it never commits to a cut direction: every
// placement carves all intersecting regions into up to six maximal children
// and a prune pass drops the redundant ones. Placements must be physically
// supported from below up to the support threshold.
type MaxRects struct {
	binWidth  int
	binHeight int
	binDepth  int

	allowFlip        bool
	supportThreshold float64

	freeRegions []model.FreeRegion
	usedBoxes   []model.Box

	tracer Tracer
	verify *model.DisjointSet
}

// NewMaxRects creates a packer for a bin of the given size. allowFlip
// permits swapping width and height when trying placements.
func NewMaxRects(width, height, depth int, allowFlip bool) *MaxRects {
	m := &MaxRects{tracer: NopTracer()}
	m.Init(width, height, depth, allowFlip)
	return m
}

// Init (re)initializes the packer to an empty bin. The whole container
// floor counts as supported.
func (m *MaxRects) Init(width, height, depth int, allowFlip bool) {
	m.binWidth = width
	m.binHeight = height
	m.binDepth = depth
	m.allowFlip = allowFlip
	if m.supportThreshold == 0 {
		m.supportThreshold = DefaultSupportThreshold
	}

	m.usedBoxes = m.usedBoxes[:0]
	m.freeRegions = m.freeRegions[:0]
	m.freeRegions = append(m.freeRegions, model.FreeRegion{
		Box:       model.Box{Width: width, Height: height, Depth: depth},
		SupportX0: 0, SupportX1: width,
		SupportY0: 0, SupportY1: height,
	})

	if m.verify != nil {
		m.verify.Clear()
	}
}

// SetSupportThreshold overrides the required supported fraction per axis.
// Values outside (0, 1] fall back to the default.
func (m *MaxRects) SetSupportThreshold(th float64) {
	if th <= 0 || th > 1 {
		th = DefaultSupportThreshold
	}
	m.supportThreshold = th
}

// SetTracer injects a diagnostic sink. A nil tracer disables tracing.
func (m *MaxRects) SetTracer(t Tracer) {
	if t == nil {
		t = NopTracer()
	}
	m.tracer = t
}

// SetVerify toggles runtime disjointness verification.
func (m *MaxRects) SetVerify(enabled bool) {
	if !enabled {
		m.verify = nil
		return
	}
	set := &model.DisjointSet{}
	for _, b := range m.usedBoxes {
		set.Add(b)
	}
	m.verify = set
}

// Insert places a single width*height*depth box under the given placement
// rule. It returns the accepted placement, or the zero Box when no
// supported, unblocked position exists; on failure no packer state changes.
func (m *MaxRects) Insert(width, height, depth int, rule model.PlacementRule) model.Box {
	var newBox model.Box
	switch rule {
	case model.PlacementBottomLeft:
		newBox = m.findBottomLeft(width, height, depth)
	default:
		return model.Box{}
	}
	if newBox.IsEmpty() {
		m.tracer.Tracef("maxrects: no position admits %dx%dx%d", width, height, depth)
		return model.Box{}
	}
	m.placeBox(newBox)
	return newBox
}

// findBottomLeft scans free regions in (y, z, x) order and returns the first
// placement that fits, is sufficiently supported and is not blocked by a box
// above it. Within a region the upright orientation is tried before the
// flipped one.
func (m *MaxRects) findBottomLeft(width, height, depth int) model.Box {
	m.sortFreeRegions()

	for _, free := range m.freeRegions {
		if box := m.tryRegion(free, width, height, depth); !box.IsEmpty() {
			return box
		}
		if m.allowFlip && width != height {
			if box := m.tryRegion(free, height, width, depth); !box.IsEmpty() {
				return box
			}
		}
	}
	return model.Box{}
}

// tryRegion tests one orientation against one region. The candidate anchors
// at the region's support corner so the box sits on actual footing, not just
// inside the region's span.
func (m *MaxRects) tryRegion(free model.FreeRegion, width, height, depth int) model.Box {
	if width > free.Width || height > free.Height || depth > free.Depth {
		return model.Box{}
	}
	if float64(free.SupportWidth()) < float64(width)*m.supportThreshold ||
		float64(free.SupportHeight()) < float64(height)*m.supportThreshold {
		return model.Box{}
	}

	candidate := model.Box{
		X: free.SupportX0, Y: free.SupportY0, Z: free.Z,
		Width: width, Height: height, Depth: depth,
	}
	if candidate.X+width > free.X+free.Width || candidate.Y+height > free.Y+free.Height {
		return model.Box{}
	}
	if m.isBlocked(candidate) {
		return model.Box{}
	}
	return candidate
}

// isBlocked reports whether a placed box overhangs the candidate's column:
// their x/y footprints overlap and the placed box's top face is above the
// candidate's floor. Such a candidate could only be filled by sliding the
// box in sideways, which physical stacking forbids.
func (m *MaxRects) isBlocked(candidate model.Box) bool {
	for _, used := range m.usedBoxes {
		if candidate.X < used.X+used.Width && used.X < candidate.X+candidate.Width &&
			candidate.Y < used.Y+used.Height && used.Y < candidate.Y+candidate.Height &&
			candidate.Z < used.Z+used.Depth {
			return true
		}
	}
	return false
}

// sortFreeRegions orders regions bottom-left first: ascending y, then z,
// then x.
func (m *MaxRects) sortFreeRegions() {
	sort.Slice(m.freeRegions, func(i, j int) bool {
		a, b := m.freeRegions[i], m.freeRegions[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
}

// placeBox rebuilds the free list around the accepted placement and records
// it. Regions disjoint from the box survive unchanged; intersecting ones are
// replaced by their maximal children.
func (m *MaxRects) placeBox(newBox model.Box) {
	next := make([]model.FreeRegion, 0, len(m.freeRegions))
	for _, free := range m.freeRegions {
		if model.Disjoint(free.Box, newBox) {
			next = append(next, free)
			continue
		}
		next = append(next, splitFreeRegion(free, newBox)...)
	}
	m.freeRegions = next
	m.PruneFreeList()

	m.usedBoxes = append(m.usedBoxes, newBox)
	verifyPlacement(m.verify, newBox, "maxrects")
	m.tracer.Tracef("maxrects: placed %v, %d free regions", newBox, len(m.freeRegions))
}

// splitFreeRegion carves a region intersected by a placed box into up to six
// maximal children: the y slabs below and above the box, the x slabs left
// and right of it, the z slab underneath and the z slab on top. Each child
// inherits the parent's support span clamped to its own x/y extent, except
// the slab on top of the box, whose only footing is the box's top face.
func splitFreeRegion(free model.FreeRegion, used model.Box) []model.FreeRegion {
	children := make([]model.FreeRegion, 0, 6)

	appendChild := func(r model.FreeRegion) {
		if r.IsEmpty() {
			return
		}
		r.SupportX0 = max(r.SupportX0, r.X)
		r.SupportX1 = min(r.SupportX1, r.X+r.Width)
		r.SupportY0 = max(r.SupportY0, r.Y)
		r.SupportY1 = min(r.SupportY1, r.Y+r.Height)
		if r.SupportX0 > r.SupportX1 {
			r.SupportX1 = r.SupportX0
		}
		if r.SupportY0 > r.SupportY1 {
			r.SupportY1 = r.SupportY0
		}
		children = append(children, r)
	}

	// Slab in front of the box (smaller y).
	if used.Y > free.Y {
		child := free
		child.Height = used.Y - free.Y
		appendChild(child)
	}
	// Slab behind the box (larger y).
	if used.Y+used.Height < free.Y+free.Height {
		child := free
		child.Y = used.Y + used.Height
		child.Height = free.Y + free.Height - (used.Y + used.Height)
		appendChild(child)
	}
	// Slab left of the box.
	if used.X > free.X {
		child := free
		child.Width = used.X - free.X
		appendChild(child)
	}
	// Slab right of the box.
	if used.X+used.Width < free.X+free.Width {
		child := free
		child.X = used.X + used.Width
		child.Width = free.X + free.Width - (used.X + used.Width)
		appendChild(child)
	}
	// Slab underneath the box.
	if used.Z > free.Z {
		child := free
		child.Depth = used.Z - free.Z
		appendChild(child)
	}
	// Slab on top of the box. Its footing is the box's top face, so the
	// support span resets to the box's footprint.
	if used.Z+used.Depth < free.Z+free.Depth {
		child := free
		child.Z = used.Z + used.Depth
		child.Depth = free.Z + free.Depth - (used.Z + used.Depth)
		child.SupportX0 = used.X
		child.SupportX1 = used.X + used.Width
		child.SupportY0 = used.Y
		child.SupportY1 = used.Y + used.Height
		appendChild(child)
	}

	return children
}

// PruneFreeList removes regions made redundant by another region. Both
// directions of each pair are tested because FreeRegion.ContainedIn is
// deliberately not symmetric.
func (m *MaxRects) PruneFreeList() {
	removed := make([]bool, len(m.freeRegions))
	for i := 0; i < len(m.freeRegions); i++ {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(m.freeRegions); j++ {
			if removed[j] {
				continue
			}
			if m.freeRegions[i].ContainedIn(m.freeRegions[j]) {
				removed[i] = true
				break
			}
			if m.freeRegions[j].ContainedIn(m.freeRegions[i]) {
				removed[j] = true
			}
		}
	}

	next := m.freeRegions[:0]
	for i, r := range m.freeRegions {
		if !removed[i] {
			next = append(next, r)
		}
	}
	m.freeRegions = next
}

// Occupancy returns the ratio of placed footprint area to the bin's floor
// area, in [0, 1]. MaxRects measures floor coverage rather than volume.
func (m *MaxRects) Occupancy() float64 {
	if m.binWidth == 0 || m.binHeight == 0 {
		return 0
	}
	used := 0
	for _, b := range m.usedBoxes {
		used += b.FootprintArea()
	}
	return float64(used) / float64(m.binWidth*m.binHeight)
}

// FreeRegions returns a copy of the current free-region list.
func (m *MaxRects) FreeRegions() []model.FreeRegion {
	out := make([]model.FreeRegion, len(m.freeRegions))
	copy(out, m.freeRegions)
	return out
}

// UsedBoxes returns a copy of the accepted placements, in insertion order.
func (m *MaxRects) UsedBoxes() []model.Box {
	out := make([]model.Box, len(m.usedBoxes))
	copy(out, m.usedBoxes)
	return out
}
