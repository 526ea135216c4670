package evolution

import (
	"context"
	"math/rand/v2"

	"github.com/go-logr/logr"
	"github.com/sourcegraph/conc/pool"

	"github.com/YMAFTOUH/GA-and-LP/internal/logging"
)

// Engine runs a generational genetic search.
type Engine struct {
	Space   []Bounds
	Fitness FitnessFunc

	PopulationSize int
	ParentsMating  int
	KeepParents    int

	Selector  Selector
	Crossover Crossover
	Mutator   Mutator

	Terminators []Terminator

	// Workers evaluates fitness on this many goroutines when greater than one.
	Workers int

	// Rand is the random source. Nil uses an unseeded source.
	Rand *rand.Rand

	// OnGeneration, if set, is called after every generation.
	OnGeneration func(State)
}

// Result is the outcome of a search.
type Result struct {
	// Best is the best candidate evaluated during the whole search.
	Best Candidate

	// Generations is the number of completed generations.
	Generations int

	// StopReason tells which terminator ended the search.
	StopReason string
}

func (e *Engine) validate() error {
	switch {
	case len(e.Space) == 0:
		return errNoSpace
	case e.Fitness == nil:
		return errNoFitness
	case e.Selector == nil || e.Crossover == nil || e.Mutator == nil:
		return errNoOperators
	case e.PopulationSize < 2:
		return errPopulation
	case e.ParentsMating < 2 || e.ParentsMating > e.PopulationSize:
		return errParents
	case e.KeepParents < 0 || e.KeepParents > e.ParentsMating || e.KeepParents >= e.PopulationSize:
		return errKeepParents
	case len(e.Terminators) == 0:
		return errNoTerminator
	}
	return nil
}

// Run executes the search until a terminator fires or ctx is done. On
// cancellation the best candidate so far is returned together with ctx.Err().
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	logger := logr.FromContextOrDiscard(ctx)
	rng := e.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	pop := make(Population, e.PopulationSize)
	for i := range pop {
		genes := make([]float64, len(e.Space))
		for g, b := range e.Space {
			genes[g] = b.Sample(rng)
		}
		pop[i].Genes = genes
	}
	e.evaluate(pop)

	state := State{Best: pop.Best().Clone()}
	state.GenerationBest = state.Best.Fitness
	for {
		if err := ctx.Err(); err != nil {
			return &Result{Best: state.Best, Generations: state.Generation, StopReason: "cancelled"}, err
		}

		parents := e.Selector.Select(pop, e.ParentsMating, rng)
		genes := e.Crossover.Cross(parents, e.PopulationSize-e.KeepParents, rng)
		offspring := make(Population, len(genes))
		for i, g := range genes {
			e.Mutator.Mutate(g, e.Space, rng)
			offspring[i].Genes = g
		}
		e.evaluate(offspring)

		next := make(Population, 0, e.PopulationSize)
		for _, c := range parents.SortedByFitness()[:e.KeepParents] {
			next = append(next, c.Clone())
		}
		pop = append(next, offspring...)

		genBest := pop.Best()
		state.Generation++
		state.GenerationBest = genBest.Fitness
		if genBest.Fitness > state.Best.Fitness {
			state.Best = genBest.Clone()
			state.Stagnant = 0
		} else {
			state.Stagnant++
		}

		if e.OnGeneration != nil {
			e.OnGeneration(state)
		}
		logger.V(logging.TRACE).Info("Generation completed",
			"generation", state.Generation,
			"generationBest", state.GenerationBest,
			"best", state.Best.Fitness,
			"stagnant", state.Stagnant)

		for _, t := range e.Terminators {
			if t.Done(state) {
				return &Result{Best: state.Best, Generations: state.Generation, StopReason: t.Reason()}, nil
			}
		}
	}
}

func (e *Engine) evaluate(pop Population) {
	if e.Workers <= 1 {
		for i := range pop {
			pop[i].Fitness = e.Fitness(pop[i].Genes)
		}
		return
	}
	p := pool.New().WithMaxGoroutines(e.Workers)
	for i := range pop {
		p.Go(func() {
			pop[i].Fitness = e.Fitness(pop[i].Genes)
		})
	}
	p.Wait()
}
