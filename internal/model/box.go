package model

import "fmt"

// BoxSize holds the requested extents of a box that has not been placed yet.
// All dimensions are integer units (mm).
type BoxSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Depth  int `json:"depth"`
}

// Volume returns width * height * depth.
func (s BoxSize) Volume() int {
	return s.Width * s.Height * s.Depth
}

// Flipped returns the same size with width and height swapped.
// Depth is never swapped: boxes only rotate about the vertical axis.
func (s BoxSize) Flipped() BoxSize {
	return BoxSize{Width: s.Height, Height: s.Width, Depth: s.Depth}
}

// Box is an axis-aligned box positioned inside a container. X/Y/Z is the
// minimum corner. The z axis points up: a box rests on the plane z=Z and its
// top face is at Z+Depth.
//
// The zero value doubles as the "insufficient space" sentinel returned by
// the packers; test for it with IsEmpty.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Z      int `json:"z"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Depth  int `json:"depth"`
}

// Size returns the extents of the box without its position.
func (b Box) Size() BoxSize {
	return BoxSize{Width: b.Width, Height: b.Height, Depth: b.Depth}
}

// Volume returns width * height * depth.
func (b Box) Volume() int {
	return b.Width * b.Height * b.Depth
}

// FootprintArea returns the area of the box's x/y footprint.
func (b Box) FootprintArea() int {
	return b.Width * b.Height
}

// Top returns the z coordinate of the box's top face.
func (b Box) Top() int {
	return b.Z + b.Depth
}

// IsEmpty reports whether any extent is zero or negative. Empty boxes are
// never stored in a packer's free or used lists.
func (b Box) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0 || b.Depth <= 0
}

// ContainedIn reports whether b lies entirely inside other on all three axes.
func (b Box) ContainedIn(other Box) bool {
	return b.X >= other.X && b.Y >= other.Y && b.Z >= other.Z &&
		b.X+b.Width <= other.X+other.Width &&
		b.Y+b.Height <= other.Y+other.Height &&
		b.Z+b.Depth <= other.Z+other.Depth
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d,%d) %dx%dx%d", b.X, b.Y, b.Z, b.Width, b.Height, b.Depth)
}

// Disjoint reports whether a and b do not overlap in 3D. Boxes that merely
// touch on a face are disjoint (standard separating-axis test).
func Disjoint(a, b Box) bool {
	return a.X+a.Width <= b.X || b.X+b.Width <= a.X ||
		a.Y+a.Height <= b.Y || b.Y+b.Height <= a.Y ||
		a.Z+a.Depth <= b.Z || b.Z+b.Depth <= a.Z
}

// Intersects reports whether a and b overlap in 3D.
func Intersects(a, b Box) bool {
	return !Disjoint(a, b)
}

// FreeRegion is a candidate empty sub-volume tracked by the MaxRects packer.
// The support span is the horizontal sub-rectangle of the region's footprint
// known to rest on solid footing (the container floor or the top face of a
// placed box) at the region's Z. It is always contained in the region's own
// x/y span.
type FreeRegion struct {
	Box
	SupportX0 int `json:"support_x0"`
	SupportX1 int `json:"support_x1"`
	SupportY0 int `json:"support_y0"`
	SupportY1 int `json:"support_y1"`
}

// SupportWidth returns the x extent of the support span.
func (r FreeRegion) SupportWidth() int {
	return r.SupportX1 - r.SupportX0
}

// SupportHeight returns the y extent of the support span.
func (r FreeRegion) SupportHeight() int {
	return r.SupportY1 - r.SupportY0
}

// ContainedIn reports whether region r is redundant given region other.
// The x/y tests are ordinary containment. The z test is intentionally
// asymmetric: free regions stack upward from distinct floors, so r is only
// redundant when its floor is at or above other's floor AND its ceiling is
// at or above other's ceiling. Do not "fix" this to symmetric containment;
// the prune step depends on this direction.
func (r FreeRegion) ContainedIn(other FreeRegion) bool {
	return r.X >= other.X && r.Y >= other.Y &&
		r.X+r.Width <= other.X+other.Width &&
		r.Y+r.Height <= other.Y+other.Height &&
		r.Z >= other.Z && r.Z+r.Depth >= other.Z+other.Depth
}

// DisjointSet is a growable set of boxes that rejects any addition
// overlapping an existing member. It exists purely for invariant
// verification: Add is O(n), so it stays out of the packing hot path and is
// only maintained when a packer's verification mode is enabled.
type DisjointSet struct {
	boxes []Box
}

// Add inserts b if it is disjoint from every member, returning whether the
// insert happened. Degenerate boxes (zero extent on any axis) are accepted
// without effect.
func (d *DisjointSet) Add(b Box) bool {
	if b.Width == 0 || b.Height == 0 || b.Depth == 0 {
		return true
	}
	if !d.Disjoint(b) {
		return false
	}
	d.boxes = append(d.boxes, b)
	return true
}

// Disjoint reports whether b overlaps no member of the set.
func (d *DisjointSet) Disjoint(b Box) bool {
	if b.Width == 0 || b.Height == 0 || b.Depth == 0 {
		return true
	}
	for _, existing := range d.boxes {
		if !Disjoint(existing, b) {
			return false
		}
	}
	return true
}

// Clear removes all members.
func (d *DisjointSet) Clear() {
	d.boxes = d.boxes[:0]
}

// Len returns the number of members.
func (d *DisjointSet) Len() int {
	return len(d.boxes)
}
