package engine

import (
	"math/rand"
	"sort"

	"github.com/leilaShen/BoxStack/internal/model"
)

// Genetic-order optimization: the guillotine engine is greedy and its result
// depends heavily on insertion order, so we search the order space with a
// small GA. Each gene carries a box index plus a flip flag; a chromosome is
// a permutation of all boxes. Decoding a chromosome just runs the guillotine
// packer over the boxes in gene order.

type gene struct {
	boxIndex int
	flipped  bool
}

type chromosome struct {
	genes   []gene
	fitness float64
}

// GAParams tunes the search. Zero values are replaced with defaults scaled
// to the problem size.
type GAParams struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	ElitismCount   int
	TournamentSize int
	Seed           int64
}

func defaultGAParams(boxCount int) GAParams {
	p := GAParams{
		PopulationSize: 30,
		Generations:    50,
		MutationRate:   0.15,
		ElitismCount:   2,
		TournamentSize: 3,
		Seed:           42,
	}
	if boxCount > 40 {
		p.PopulationSize = 50
		p.Generations = 80
	}
	return p
}

// OptimizeGenetic packs the boxes with a GA over insertion order, decoding
// each chromosome through the guillotine engine with the given settings.
// The fit and split rules are honored; the engine field is ignored.
func OptimizeGenetic(settings model.PackSettings, boxes []model.BoxRequest, containers []model.Container) model.PackResult {
	return OptimizeGeneticParams(settings, boxes, containers, GAParams{})
}

// OptimizeGeneticParams is OptimizeGenetic with explicit GA parameters.
func OptimizeGeneticParams(settings model.PackSettings, boxes []model.BoxRequest, containers []model.Container, params GAParams) model.PackResult {
	pending := expandQuantities(boxes)
	if len(pending) == 0 {
		return model.PackResult{}
	}

	def := defaultGAParams(len(pending))
	if params.PopulationSize <= 0 {
		params.PopulationSize = def.PopulationSize
	}
	if params.Generations <= 0 {
		params.Generations = def.Generations
	}
	if params.MutationRate <= 0 {
		params.MutationRate = def.MutationRate
	}
	if params.ElitismCount <= 0 {
		params.ElitismCount = def.ElitismCount
	}
	if params.TournamentSize <= 0 {
		params.TournamentSize = def.TournamentSize
	}
	if params.Seed == 0 {
		params.Seed = def.Seed
	}

	rng := rand.New(rand.NewSource(params.Seed))

	population := make([]chromosome, 0, params.PopulationSize)
	population = append(population, greedySeed(pending))
	for len(population) < params.PopulationSize {
		population = append(population, randomChromosome(len(pending), rng))
	}
	for i := range population {
		population[i].fitness = evaluate(population[i], settings, pending, containers)
	}

	for gen := 0; gen < params.Generations; gen++ {
		sort.Slice(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		next := make([]chromosome, 0, params.PopulationSize)
		for i := 0; i < params.ElitismCount && i < len(population); i++ {
			next = append(next, cloneChromosome(population[i]))
		}
		for len(next) < params.PopulationSize {
			a := tournament(population, params.TournamentSize, rng)
			b := tournament(population, params.TournamentSize, rng)
			child := orderCrossover(a, b, rng)
			mutate(&child, params.MutationRate, rng)
			child.fitness = evaluate(child, settings, pending, containers)
			next = append(next, child)
		}
		population = next
	}

	sort.Slice(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
	return decode(population[0], settings, pending, containers)
}

// greedySeed is the volume-descending order the plain optimizer would use.
// Starting from it guarantees the GA never does worse than greedy.
func greedySeed(pending []model.BoxRequest) chromosome {
	order := make([]int, len(pending))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return pending[order[i]].Volume() > pending[order[j]].Volume()
	})
	genes := make([]gene, len(order))
	for i, idx := range order {
		genes[i] = gene{boxIndex: idx}
	}
	return chromosome{genes: genes}
}

func randomChromosome(n int, rng *rand.Rand) chromosome {
	genes := make([]gene, n)
	for i, idx := range rng.Perm(n) {
		genes[i] = gene{boxIndex: idx, flipped: rng.Float64() < 0.5}
	}
	return chromosome{genes: genes}
}

func cloneChromosome(c chromosome) chromosome {
	genes := make([]gene, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness}
}

// tournament picks the fittest of k random individuals.
func tournament(population []chromosome, k int, rng *rand.Rand) chromosome {
	best := population[rng.Intn(len(population))]
	for i := 1; i < k; i++ {
		cand := population[rng.Intn(len(population))]
		if cand.fitness > best.fitness {
			best = cand
		}
	}
	return best
}

// orderCrossover is OX1: copy a random slice of parent a, then fill the
// remaining positions with b's boxes in b's order. Flip flags travel with
// their box.
func orderCrossover(a, b chromosome, rng *rand.Rand) chromosome {
	n := len(a.genes)
	child := make([]gene, n)
	inChild := make([]bool, n)

	start := rng.Intn(n)
	end := start + rng.Intn(n-start)
	for i := start; i <= end && i < n; i++ {
		child[i] = a.genes[i]
		inChild[a.genes[i].boxIndex] = true
	}

	pos := 0
	for _, g := range b.genes {
		if inChild[g.boxIndex] {
			continue
		}
		for pos >= start && pos <= end {
			pos++
		}
		child[pos] = g
		pos++
	}
	return chromosome{genes: child}
}

// mutate swaps two random genes and occasionally toggles a flip flag.
func mutate(c *chromosome, rate float64, rng *rand.Rand) {
	n := len(c.genes)
	if n < 2 {
		return
	}
	if rng.Float64() < rate {
		i, j := rng.Intn(n), rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}
	if rng.Float64() < rate {
		i := rng.Intn(n)
		c.genes[i].flipped = !c.genes[i].flipped
	}
}

// evaluate scores a chromosome: volume efficiency, penalized per unplaced
// box and per extra container. Never negative.
func evaluate(c chromosome, settings model.PackSettings, pending []model.BoxRequest, containers []model.Container) float64 {
	result := decode(c, settings, pending, containers)
	fitness := result.TotalVolumeEfficiency() / 100.0
	fitness -= 0.1 * float64(len(result.Unplaced))
	if n := len(result.Containers); n > 1 {
		fitness -= 0.05 * float64(n-1)
	}
	if fitness < 0 {
		fitness = 0
	}
	return fitness
}

// decode runs the guillotine engine over the boxes in gene order, opening a
// new container from the pool whenever the current one rejects a box that a
// fresh container could hold.
func decode(c chromosome, settings model.PackSettings, pending []model.BoxRequest, containers []model.Container) model.PackResult {
	pool := makePool(containers)
	result := model.PackResult{}

	var packers []*Guillotine
	var packer *Guillotine

	openContainer := func(req model.BoxRequest) bool {
		for _, cand := range pool.available() {
			if !fitsContainer(req, cand) {
				continue
			}
			pool.take(cand)
			result.Containers = append(result.Containers, model.ContainerResult{Container: cand})
			packer = NewGuillotine(cand.Width, cand.Height, cand.Depth)
			packer.SetVerify(settings.Verify)
			packers = append(packers, packer)
			return true
		}
		return false
	}

	for _, g := range c.genes {
		req := pending[g.boxIndex]
		w, h := req.Width, req.Height
		if g.flipped {
			w, h = h, w
		}

		var box model.Box
		if packer != nil {
			box = packer.Insert(w, h, req.Depth, settings.Merge, settings.FitRule, settings.SplitRule)
		}
		if box.IsEmpty() {
			if !openContainer(req) {
				result.Unplaced = append(result.Unplaced, req)
				continue
			}
			box = packer.Insert(w, h, req.Depth, settings.Merge, settings.FitRule, settings.SplitRule)
			if box.IsEmpty() {
				result.Unplaced = append(result.Unplaced, req)
				continue
			}
		}
		last := len(result.Containers) - 1
		result.Containers[last].Placements = append(result.Containers[last].Placements, model.Placement{
			Request: req,
			Box:     box,
			Flipped: isFlipped(req, box),
		})
	}

	for i := range result.Containers {
		result.Containers[i].FreeRegions = packers[i].FreeRegions()
	}

	return result
}
