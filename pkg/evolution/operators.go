package evolution

import (
	"math"
	"math/rand/v2"
)

// TournamentSelector picks each parent as the best of Size candidates drawn
// uniformly, with replacement, from the population.
type TournamentSelector struct {
	Size int
}

// Select implements Selector.
func (t *TournamentSelector) Select(pop Population, n int, rng *rand.Rand) Population {
	size := max(t.Size, 1)
	parents := make(Population, n)
	for i := range parents {
		winner := pop[rng.IntN(len(pop))]
		for k := 1; k < size; k++ {
			if c := pop[rng.IntN(len(pop))]; c.Fitness > winner.Fitness {
				winner = c
			}
		}
		parents[i] = winner
	}
	return parents
}

// UniformCrossover builds offspring k from parents k and k+1 (wrapping),
// taking every gene from either parent with equal probability.
type UniformCrossover struct{}

// Cross implements Crossover.
func (UniformCrossover) Cross(parents Population, n int, rng *rand.Rand) [][]float64 {
	offspring := make([][]float64, n)
	for k := range offspring {
		first := parents[k%len(parents)].Genes
		second := parents[(k+1)%len(parents)].Genes
		child := make([]float64, len(first))
		for i := range child {
			if rng.IntN(2) == 0 {
				child[i] = first[i]
			} else {
				child[i] = second[i]
			}
		}
		offspring[k] = child
	}
	return offspring
}

// RandomResetMutator re-samples PercentGenes percent of the genes (at least
// one) from their bounds.
type RandomResetMutator struct {
	PercentGenes float64
}

// Count returns the number of genes mutated in a vector of n genes.
func (m *RandomResetMutator) Count(n int) int {
	count := int(math.Round(m.PercentGenes * float64(n) / 100))
	return min(max(count, 1), n)
}

// Mutate implements Mutator.
func (m *RandomResetMutator) Mutate(genes []float64, space []Bounds, rng *rand.Rand) {
	for _, i := range rng.Perm(len(genes))[:m.Count(len(genes))] {
		genes[i] = space[i].Sample(rng)
	}
}
