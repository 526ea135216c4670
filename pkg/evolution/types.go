package evolution

import (
	"errors"
	"math/rand/v2"
	"slices"
)

var (
	errNoSpace      = errors.New("search space has no genes")
	errNoFitness    = errors.New("fitness function is required")
	errNoOperators  = errors.New("selector, crossover and mutator are required")
	errPopulation   = errors.New("population size must be at least 2")
	errParents      = errors.New("parents mating must be between 2 and the population size")
	errKeepParents  = errors.New("keep parents must be between 0 and parents mating and below the population size")
	errNoTerminator = errors.New("at least one terminator is required")
)

// FitnessFunc scores a gene vector. Higher is better.
type FitnessFunc func(genes []float64) float64

// Bounds is the interval a gene is sampled from.
type Bounds struct {
	Low  float64
	High float64
}

// Sample draws a uniform value from the interval.
func (b Bounds) Sample(rng *rand.Rand) float64 {
	return b.Low + rng.Float64()*(b.High-b.Low)
}

// Candidate is a gene vector with its fitness.
type Candidate struct {
	Genes   []float64
	Fitness float64
}

// Clone returns a copy of c that shares no memory with it.
func (c Candidate) Clone() Candidate {
	return Candidate{Genes: slices.Clone(c.Genes), Fitness: c.Fitness}
}

// Population is the working set of candidates of one generation.
type Population []Candidate

// Best returns the candidate with the highest fitness. The first one wins ties.
func (p Population) Best() Candidate {
	best := p[0]
	for _, c := range p[1:] {
		if c.Fitness > best.Fitness {
			best = c
		}
	}
	return best
}

// SortedByFitness returns a copy of p ordered from best to worst.
func (p Population) SortedByFitness() Population {
	out := slices.Clone(p)
	slices.SortStableFunc(out, func(a, b Candidate) int {
		switch {
		case a.Fitness > b.Fitness:
			return -1
		case a.Fitness < b.Fitness:
			return 1
		}
		return 0
	})
	return out
}

// Selector chooses the mating parents of a generation.
type Selector interface {
	Select(pop Population, n int, rng *rand.Rand) Population
}

// Crossover recombines parents into n offspring gene vectors.
type Crossover interface {
	Cross(parents Population, n int, rng *rand.Rand) [][]float64
}

// Mutator perturbs a gene vector in place.
type Mutator interface {
	Mutate(genes []float64, space []Bounds, rng *rand.Rand)
}

// State describes the search after a generation.
type State struct {
	// Generation is the number of completed generations.
	Generation int

	// Best is the best candidate seen so far.
	Best Candidate

	// GenerationBest is the fitness of the best candidate of this generation.
	GenerationBest float64

	// Stagnant is the number of consecutive generations without improvement of Best.
	Stagnant int
}

// Terminator decides whether the search stops after a generation.
type Terminator interface {
	Done(state State) bool
	Reason() string
}
