package engine

import (
	"sort"

	"github.com/leilaShen/BoxStack/internal/model"
)

// Optimizer turns a list of box requests and available containers into a
// packing result. It expands quantities, picks the best container from the
// available pool by trial packing, and fills containers one at a time until
// everything is placed or nothing fits anymore.
type Optimizer struct {
	Settings model.PackSettings
	Tracer   Tracer
}

// New creates an optimizer with the given settings.
func New(settings model.PackSettings) *Optimizer {
	return &Optimizer{Settings: settings, Tracer: NopTracer()}
}

// Optimize packs the requested boxes into the available containers.
// Containers are consumed from the pool as they fill; requests that fit
// nowhere end up in the result's Unplaced list.
func (o *Optimizer) Optimize(boxes []model.BoxRequest, containers []model.Container) model.PackResult {
	if o.Settings.Engine == model.EngineGenetic {
		return OptimizeGenetic(o.Settings, boxes, containers)
	}

	pending := expandQuantities(boxes)
	// Largest first gives the packers their best shot at the awkward boxes.
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Volume() > pending[j].Volume()
	})

	pool := makePool(containers)
	result := model.PackResult{}

	for len(pending) > 0 {
		container, ok := o.selectBestContainer(pending, pool)
		if !ok {
			break
		}

		placements, placedIdx, freeRegions := o.packContainer(container, pending)
		if len(placements) == 0 {
			break
		}

		result.Containers = append(result.Containers, model.ContainerResult{
			Container:   container,
			Placements:  placements,
			FreeRegions: freeRegions,
		})
		pending = removeIndices(pending, placedIdx)
		pool.take(container)
	}

	result.Unplaced = append(result.Unplaced, pending...)
	return result
}

// packContainer runs the configured engine over one container, inserting
// pending requests in order. It returns the accepted placements, the pending
// indices they consumed and the engine's leftover free regions.
func (o *Optimizer) packContainer(c model.Container, pending []model.BoxRequest) ([]model.Placement, []int, []model.Box) {
	var placements []model.Placement
	var placedIdx []int
	var freeRegions []model.Box

	switch o.Settings.Engine {
	case model.EngineMaxRects:
		m := NewMaxRects(c.Width, c.Height, c.Depth, o.Settings.AllowFlip)
		m.SetSupportThreshold(o.Settings.SupportThreshold)
		m.SetVerify(o.Settings.Verify)
		if o.Tracer != nil {
			m.SetTracer(o.Tracer)
		}
		for i, req := range pending {
			box := m.Insert(req.Width, req.Height, req.Depth, o.Settings.PlacementRule)
			if box.IsEmpty() {
				continue
			}
			placements = append(placements, model.Placement{
				Request: req,
				Box:     box,
				Flipped: isFlipped(req, box),
			})
			placedIdx = append(placedIdx, i)
		}
		for _, fr := range m.FreeRegions() {
			freeRegions = append(freeRegions, fr.Box)
		}
	default:
		g := NewGuillotine(c.Width, c.Height, c.Depth)
		g.SetVerify(o.Settings.Verify)
		if o.Tracer != nil {
			g.SetTracer(o.Tracer)
		}
		for i, req := range pending {
			box := g.Insert(req.Width, req.Height, req.Depth, o.Settings.Merge, o.Settings.FitRule, o.Settings.SplitRule)
			if box.IsEmpty() {
				continue
			}
			placements = append(placements, model.Placement{
				Request: req,
				Box:     box,
				Flipped: isFlipped(req, box),
			})
			placedIdx = append(placedIdx, i)
		}
		freeRegions = g.FreeRegions()
	}

	return placements, placedIdx, freeRegions
}

// selectBestContainer trial-packs the pending boxes into each distinct
// container size that can hold at least one remaining box and keeps the one
// with the best volume efficiency. Ties go to the smaller container.
func (o *Optimizer) selectBestContainer(pending []model.BoxRequest, pool containerPool) (model.Container, bool) {
	type candidate struct {
		container  model.Container
		efficiency float64
	}
	var candidates []candidate
	seen := map[[3]int]bool{}

	for _, c := range pool.available() {
		dims := [3]int{c.Width, c.Height, c.Depth}
		if seen[dims] {
			continue
		}
		seen[dims] = true
		if !fitsAny(pending, c) {
			continue
		}

		placements, _, _ := o.packContainer(c, pending)
		placedVolume := 0
		for _, p := range placements {
			placedVolume += p.Box.Volume()
		}
		candidates = append(candidates, candidate{
			container:  c,
			efficiency: float64(placedVolume) / float64(c.Volume()),
		})
	}

	if len(candidates) == 0 {
		return model.Container{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].efficiency != candidates[j].efficiency {
			return candidates[i].efficiency > candidates[j].efficiency
		}
		return candidates[i].container.Volume() < candidates[j].container.Volume()
	})
	return candidates[0].container, true
}

// fitsAny reports whether any pending request fits in the container.
func fitsAny(pending []model.BoxRequest, c model.Container) bool {
	for _, req := range pending {
		if fitsContainer(req, c) {
			return true
		}
	}
	return false
}

// fitsContainer reports whether a single box of the request fits in the
// container in either horizontal orientation.
func fitsContainer(req model.BoxRequest, c model.Container) bool {
	if req.Depth > c.Depth {
		return false
	}
	if req.Width <= c.Width && req.Height <= c.Height {
		return true
	}
	return req.Height <= c.Width && req.Width <= c.Height
}

// isFlipped reports whether a placement swapped the requested width and
// height. Square footprints never count as flipped.
func isFlipped(req model.BoxRequest, placed model.Box) bool {
	return req.Width != req.Height &&
		placed.Width == req.Height && placed.Height == req.Width
}

// expandQuantities turns each request into Quantity single-box requests.
func expandQuantities(boxes []model.BoxRequest) []model.BoxRequest {
	var out []model.BoxRequest
	for _, b := range boxes {
		qty := b.Quantity
		if qty < 1 {
			qty = 1
		}
		for i := 0; i < qty; i++ {
			single := b
			single.Quantity = 1
			out = append(out, single)
		}
	}
	return out
}

// removeIndices returns pending without the entries at the given sorted
// ascending indices.
func removeIndices(pending []model.BoxRequest, idx []int) []model.BoxRequest {
	if len(idx) == 0 {
		return pending
	}
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		drop[i] = true
	}
	out := pending[:0]
	for i, p := range pending {
		if !drop[i] {
			out = append(out, p)
		}
	}
	return out
}

// containerPool tracks how many of each container are still available.
type containerPool struct {
	containers []model.Container
	remaining  []int
}

func makePool(containers []model.Container) containerPool {
	pool := containerPool{
		containers: make([]model.Container, len(containers)),
		remaining:  make([]int, len(containers)),
	}
	copy(pool.containers, containers)
	for i, c := range containers {
		qty := c.Quantity
		if qty < 1 {
			qty = 1
		}
		pool.remaining[i] = qty
	}
	return pool
}

// available returns one entry per container type with stock left.
func (p containerPool) available() []model.Container {
	var out []model.Container
	for i, c := range p.containers {
		if p.remaining[i] > 0 {
			out = append(out, c)
		}
	}
	return out
}

// take consumes one unit of the matching container type.
func (p containerPool) take(c model.Container) {
	for i := range p.containers {
		if p.containers[i].ID == c.ID && p.remaining[i] > 0 {
			p.remaining[i]--
			return
		}
	}
}
