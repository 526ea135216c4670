// Package evolution implements a small genetic search over real-valued genes.
//
// The package knows nothing about the problem being solved. A search is
// described by:
//
//   - Space: one Bounds per gene, the domain genes are sampled from
//   - Fitness: a pure function scoring a gene vector (higher is better)
//   - Selector: picks the mating parents of a generation
//   - Crossover: recombines parents into offspring
//   - Mutator: perturbs offspring genes
//   - Terminators: decide when the search stops
//
// Each generation selects ParentsMating parents, keeps the KeepParents best
// of them unchanged, and fills the rest of the population with mutated
// offspring. The best candidate ever evaluated is returned, not the best of
// the last generation.
//
// Example usage:
//
//	engine := &evolution.Engine{
//	    Space:          []evolution.Bounds{{Low: 0, High: 10}, {Low: 0, High: 5}},
//	    Fitness:        func(g []float64) float64 { return g[0] + g[1] },
//	    PopulationSize: 50,
//	    ParentsMating:  20,
//	    KeepParents:    5,
//	    Selector:       &evolution.TournamentSelector{Size: 3},
//	    Crossover:      evolution.UniformCrossover{},
//	    Mutator:        &evolution.RandomResetMutator{PercentGenes: 35},
//	    Terminators:    []evolution.Terminator{evolution.MaxGenerations(200), evolution.Saturation(50)},
//	    Rand:           rand.New(rand.NewPCG(1, 2)),
//	}
//	result, err := engine.Run(ctx)
//
// Fitness must be safe for concurrent use when Workers > 1; evaluation order
// never touches the random source, so a seeded run gives the same result for
// any worker count.
package evolution
