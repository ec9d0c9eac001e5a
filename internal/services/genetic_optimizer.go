package services

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"medication-route-service/internal/domain"
)

// Lower bound on the cost used as a selection weight denominator, so a
// zero-length route does not receive an infinite weight.
const minSelectionCost = 1e-9

// OptimizerResult is the outcome of one genetic search.
type OptimizerResult struct {
	Best     domain.Itinerary
	Fitness  Fitness
	Feasible bool

	// Generations counts completed generational replacements.
	Generations int

	// History holds the best score of each evaluated population; index 0 is
	// the initial population.
	History []Fitness
}

type scored struct {
	route   domain.Itinerary
	fitness Fitness
}

// GeneticOptimizer searches for the shortest itinerary that respects the
// medication's maximum transit time.
//
// An optimizer owns its population and RNG for one run and must not be shared
// between goroutines. Given the same seed and inputs it produces the same result.
type GeneticOptimizer struct {
	distributor domain.Stop
	pharmacies  []domain.Stop
	medication  domain.Medication
	config      OptimizerConfig
	evaluator   *FitnessEvaluator
	rng         *rand.Rand
}

// NewGeneticOptimizer assumes validated inputs; use OptimizationService.Plan at
// the boundary.
func NewGeneticOptimizer(
	distributor domain.Stop,
	pharmacies []domain.Stop,
	medication domain.Medication,
	config OptimizerConfig,
	rng *rand.Rand,
) *GeneticOptimizer {
	return &GeneticOptimizer{
		distributor: distributor,
		pharmacies:  append([]domain.Stop(nil), pharmacies...),
		medication:  medication,
		config:      config,
		evaluator:   NewFitnessEvaluator(distributor, pharmacies, config.AverageSpeedKmh, config.RoundTrip),
		rng:         rng,
	}
}

// Run executes the search until the configured generation count, the stall
// limit, or ctx is done. Infeasibility is reported through the result, not as
// an error.
func (o *GeneticOptimizer) Run(ctx context.Context) (*OptimizerResult, error) {
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("run optimizer: %w", err)
	}

	// One pharmacy admits a single arrangement; there is nothing to search.
	if len(o.pharmacies) == 1 {
		route := NearestNeighborRoute(o.distributor, o.pharmacies, o.config.RoundTrip)
		f := o.evaluator.Evaluate(route, o.medication)
		return &OptimizerResult{
			Best:     route,
			Fitness:  f,
			Feasible: f.Valid && f.Feasible,
			History:  []Fitness{f},
		}, nil
	}

	population, err := InitializePopulation(o.distributor, o.pharmacies, o.config.PopulationSize, o.config.RoundTrip, o.rng)
	if err != nil {
		return nil, fmt.Errorf("run optimizer: %w", err)
	}
	if o.config.SeedNearestNeighbor {
		population[o.rng.IntN(len(population))] = NearestNeighborRoute(o.distributor, o.pharmacies, o.config.RoundTrip)
	}

	current := o.evaluate(population)
	best := current[bestIndex(current)]
	history := []Fitness{best.fitness}

	stall := 0
	completed := 0
	for gen := 1; gen <= o.config.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run optimizer: generation %d: %w", gen, err)
		}

		current = o.evaluate(o.nextGeneration(current))
		completed = gen

		genBest := current[bestIndex(current)]
		history = append(history, genBest.fitness)

		// Track a running best so a poor generation cannot regress the answer.
		if genBest.fitness.Less(best.fitness) {
			best = genBest
			stall = 0
		} else {
			stall++
		}

		if o.config.StallGenerations > 0 && stall >= o.config.StallGenerations {
			break
		}
	}

	return &OptimizerResult{
		Best:        best.route,
		Fitness:     best.fitness,
		Feasible:    best.fitness.Valid && best.fitness.Feasible,
		Generations: completed,
		History:     history,
	}, nil
}

func (o *GeneticOptimizer) evaluate(population []domain.Itinerary) []scored {
	out := make([]scored, len(population))
	for i, it := range population {
		out[i] = scored{route: it, fitness: o.evaluator.Evaluate(it, o.medication)}
	}
	return out
}

// nextGeneration breeds a full replacement population. With elitism the best
// individual of the current generation is carried over unchanged.
func (o *GeneticOptimizer) nextGeneration(current []scored) []domain.Itinerary {
	size := len(current)
	next := make([]domain.Itinerary, 0, size)

	if o.config.Elitism {
		next = append(next, current[bestIndex(current)].route)
	}

	weights, total := selectionWeights(current)
	for len(next) < size {
		a := current[o.pick(weights, total, size)].route
		b := current[o.pick(weights, total, size)].route

		child := o.crossover(a, b)
		if o.rng.Float64() < o.config.MutationRate {
			child = o.mutate(child)
		}
		next = append(next, child)
	}

	return next
}

// selectionWeights weights each individual inversely to its cost. Anything not
// feasible gets zero weight. A nil result means uniform selection, used when no
// individual is feasible. total is the sum of the returned weights.
func selectionWeights(pop []scored) ([]float64, float64) {
	weights := make([]float64, len(pop))
	total := 0.0
	for i, s := range pop {
		if !s.fitness.Valid || !s.fitness.Feasible {
			continue
		}
		weights[i] = 1 / math.Max(s.fitness.DistanceKm, minSelectionCost)
		total += weights[i]
	}

	if total == 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return nil, 0
	}
	return weights, total
}

// pick draws an index in [0, n) by roulette over weights, or uniformly when
// weights is nil.
func (o *GeneticOptimizer) pick(weights []float64, total float64, n int) int {
	if weights == nil {
		return o.rng.IntN(n)
	}

	r := o.rng.Float64() * total
	last := 0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		last = i
		r -= w
		if r < 0 {
			return i
		}
	}

	// Floating point residue lands on the last positive weight.
	return last
}

// crossover applies single-point crossover to the pharmacy order of a and b.
// The child keeps a's stops before the cut and b's from the cut on, then is
// repaired into a valid permutation. Position 0 is never a cut point so the
// distributor anchor always survives.
func (o *GeneticOptimizer) crossover(a, b domain.Itinerary) domain.Itinerary {
	cut := 1 + o.rng.IntN(len(o.pharmacies))
	return o.repair(a.Splice(cut, b), b)
}

// repair replaces repeated pharmacies with the missing ones. Duplicates are
// resolved left to right, keeping each pharmacy's first occurrence; missing
// pharmacies are inserted in the order they appear in donor.
func (o *GeneticOptimizer) repair(child, donor domain.Itinerary) domain.Itinerary {
	if o.evaluator.WellFormed(child) {
		return child
	}

	stops := child.Stops()
	first, last := 1, len(stops)
	if o.config.RoundTrip {
		last--
	}

	present := make(map[string]struct{}, len(o.pharmacies))
	for i := first; i < last; i++ {
		present[stops[i].Label] = struct{}{}
	}

	queued := make(map[string]struct{}, len(o.pharmacies))
	missing := make([]domain.Stop, 0)
	enqueue := func(s domain.Stop) {
		if _, ok := present[s.Label]; ok {
			return
		}
		if _, ok := queued[s.Label]; ok {
			return
		}
		queued[s.Label] = struct{}{}
		missing = append(missing, s)
	}
	for i := 0; i < donor.Len(); i++ {
		if s := donor.At(i); s.Label != o.distributor.Label {
			enqueue(s)
		}
	}
	for _, p := range o.pharmacies {
		enqueue(p)
	}

	seen := make(map[string]struct{}, len(o.pharmacies))
	next := 0
	for i := first; i < last; i++ {
		if _, dup := seen[stops[i].Label]; dup && next < len(missing) {
			stops[i] = missing[next]
			next++
		}
		seen[stops[i].Label] = struct{}{}
	}

	return domain.NewItinerary(stops)
}

// mutate swaps two distinct pharmacy positions.
func (o *GeneticOptimizer) mutate(child domain.Itinerary) domain.Itinerary {
	n := len(o.pharmacies)
	if n < 2 {
		return child
	}

	i := 1 + o.rng.IntN(n)
	j := 1 + o.rng.IntN(n-1)
	if j >= i {
		j++
	}
	return child.Swap(i, j)
}

// bestIndex returns the index of the lowest score; the first wins ties.
func bestIndex(pop []scored) int {
	best := 0
	for i := 1; i < len(pop); i++ {
		if pop[i].fitness.Less(pop[best].fitness) {
			best = i
		}
	}
	return best
}
