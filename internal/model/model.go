package model

import "github.com/google/uuid"

// Engine selects which packing engine places the boxes.
type Engine string

const (
	EngineGuillotine Engine = "guillotine" // Guillotine splits, scored region selection
	EngineMaxRects   Engine = "maxrects"   // Support-aware maximal free regions, bottom-left rule
	EngineGenetic    Engine = "genetic"    // GA over insertion order, decoded via guillotine
)

// FitRule scores a free region against a requested box size. The "Best"
// family prefers tight fits (lower score wins); the "Worst" family is the
// arithmetic negation, selecting what the Best family would reject.
type FitRule string

const (
	BestAreaFit       FitRule = "BestAreaFit"
	BestShortSideFit  FitRule = "BestShortSideFit"
	BestLongSideFit   FitRule = "BestLongSideFit"
	WorstAreaFit      FitRule = "WorstAreaFit"
	WorstShortSideFit FitRule = "WorstShortSideFit"
	WorstLongSideFit  FitRule = "WorstLongSideFit"
)

// SplitRule decides which axis divides the leftover L-shape after a
// guillotine placement.
type SplitRule string

const (
	SplitShorterLeftoverAxis SplitRule = "ShorterLeftoverAxis"
	SplitLongerLeftoverAxis  SplitRule = "LongerLeftoverAxis"
	SplitMinimizeArea        SplitRule = "MinimizeArea"
	SplitMaximizeArea        SplitRule = "MaximizeArea"
	SplitShorterAxis         SplitRule = "ShorterAxis"
	SplitLongerAxis          SplitRule = "LongerAxis"
)

// PlacementRule selects the MaxRects position rule.
type PlacementRule string

// PlacementBottomLeft places each box in the most bottom, most back, most
// left admissible free region. It is the only rule the MaxRects engine
// implements.
const PlacementBottomLeft PlacementRule = "BottomLeft"

// FitRules lists every valid fit rule, for config validation.
var FitRules = []FitRule{
	BestAreaFit, BestShortSideFit, BestLongSideFit,
	WorstAreaFit, WorstShortSideFit, WorstLongSideFit,
}

// SplitRules lists every valid split rule.
var SplitRules = []SplitRule{
	SplitShorterLeftoverAxis, SplitLongerLeftoverAxis,
	SplitMinimizeArea, SplitMaximizeArea,
	SplitShorterAxis, SplitLongerAxis,
}

// BoxRequest represents a box (or several identical boxes) to be packed.
type BoxRequest struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Depth    int    `json:"depth"`
	Quantity int    `json:"quantity"`
}

func NewBoxRequest(label string, w, h, d, qty int) BoxRequest {
	return BoxRequest{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Depth:    d,
		Quantity: qty,
	}
}

// Size returns the requested extents as a BoxSize.
func (r BoxRequest) Size() BoxSize {
	return BoxSize{Width: r.Width, Height: r.Height, Depth: r.Depth}
}

// Volume returns the volume of a single box of this request.
func (r BoxRequest) Volume() int {
	return r.Width * r.Height * r.Depth
}

// Container represents an available container volume to pack into.
type Container struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Depth     int     `json:"depth"`
	Quantity  int     `json:"quantity"`
	PriceEach float64 `json:"price_each,omitempty"`
}

func NewContainer(label string, w, h, d, qty int) Container {
	return Container{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Depth:    d,
		Quantity: qty,
	}
}

// Volume returns the container's interior volume.
func (c Container) Volume() int {
	return c.Width * c.Height * c.Depth
}

// FloorArea returns the container's base area.
func (c Container) FloorArea() int {
	return c.Width * c.Height
}

// PackSettings holds engine configuration for a packing run.
type PackSettings struct {
	Engine           Engine        `json:"engine"`
	FitRule          FitRule       `json:"fit_rule"`          // Guillotine region selection
	SplitRule        SplitRule     `json:"split_rule"`        // Guillotine leftover split
	PlacementRule    PlacementRule `json:"placement_rule"`    // MaxRects position rule
	Merge            bool          `json:"merge"`             // Guillotine free-list merge after each insert
	AllowFlip        bool          `json:"allow_flip"`        // Permit width/height swap (MaxRects)
	SupportThreshold float64       `json:"support_threshold"` // Required support coverage fraction (MaxRects)
	Verify           bool          `json:"verify"`            // Runtime disjointness verification
}

// DefaultSettings returns the default engine configuration: guillotine with
// worst-long-side-fit selection and shorter-leftover-axis splits, merging
// enabled, flips allowed, 80% support coverage.
func DefaultSettings() PackSettings {
	return PackSettings{
		Engine:           EngineGuillotine,
		FitRule:          WorstLongSideFit,
		SplitRule:        SplitShorterLeftoverAxis,
		PlacementRule:    PlacementBottomLeft,
		Merge:            true,
		AllowFlip:        true,
		SupportThreshold: 0.8,
		Verify:           false,
	}
}

// Placement records one accepted box placement inside a container.
type Placement struct {
	Request BoxRequest `json:"request"`
	Box     Box        `json:"box"`     // Position and placed extents
	Flipped bool       `json:"flipped"` // Width/height were swapped
}

// ContainerResult represents one container with its placed boxes.
// FreeRegions holds the packer's leftover free space after the run, used for
// remnant detection.
type ContainerResult struct {
	Container   Container   `json:"container"`
	Placements  []Placement `json:"placements"`
	FreeRegions []Box       `json:"free_regions,omitempty"`
}

// UsedVolume returns the total volume of placed boxes.
func (cr ContainerResult) UsedVolume() int {
	total := 0
	for _, p := range cr.Placements {
		total += p.Box.Volume()
	}
	return total
}

// UsedFloorArea returns the total x/y footprint area of placed boxes,
// depth excluded. This mirrors the MaxRects occupancy metric.
func (cr ContainerResult) UsedFloorArea() int {
	total := 0
	for _, p := range cr.Placements {
		total += p.Box.FootprintArea()
	}
	return total
}

// VolumeEfficiency returns the volume usage percentage.
func (cr ContainerResult) VolumeEfficiency() float64 {
	tv := cr.Container.Volume()
	if tv == 0 {
		return 0
	}
	return float64(cr.UsedVolume()) / float64(tv) * 100.0
}

// FloorEfficiency returns the floor usage percentage.
func (cr ContainerResult) FloorEfficiency() float64 {
	fa := cr.Container.FloorArea()
	if fa == 0 {
		return 0
	}
	return float64(cr.UsedFloorArea()) / float64(fa) * 100.0
}

// PackResult holds the full solution for a packing run.
type PackResult struct {
	Containers []ContainerResult `json:"containers"`
	Unplaced   []BoxRequest      `json:"unplaced"`
}

// TotalVolumeEfficiency returns the overall volume usage percentage across
// all used containers.
func (pr PackResult) TotalVolumeEfficiency() float64 {
	var used, total int
	for _, c := range pr.Containers {
		used += c.UsedVolume()
		total += c.Container.Volume()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}

// PlacedCount returns the number of boxes placed across all containers.
func (pr PackResult) PlacedCount() int {
	n := 0
	for _, c := range pr.Containers {
		n += len(c.Placements)
	}
	return n
}

// Manifest ties everything together for save/load.
type Manifest struct {
	Name       string       `json:"name"`
	Boxes      []BoxRequest `json:"boxes"`
	Containers []Container  `json:"containers"`
	Settings   PackSettings `json:"settings"`
	Result     *PackResult  `json:"result,omitempty"`
}

func NewManifest() Manifest {
	return Manifest{
		Name:       "Untitled",
		Boxes:      []BoxRequest{},
		Containers: []Container{},
		Settings:   DefaultSettings(),
	}
}
