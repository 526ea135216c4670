package solver

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/floats"

	"github.com/YMAFTOUH/GA-and-LP/internal/logging"
	"github.com/YMAFTOUH/GA-and-LP/pkg/config"
	"github.com/YMAFTOUH/GA-and-LP/pkg/core"
	"github.com/YMAFTOUH/GA-and-LP/pkg/evolution"
)

// maxProfitShare bounds ε·maxProfit so the profit term never outweighs one
// unit of slack.
const maxProfitShare = 0.5

// GeneticSolver searches allocations with a genetic algorithm whose fitness
// is -totalSlack + ε·profit.
type GeneticSolver struct {
	spec config.GeneticSpec
}

var _ Solver = &GeneticSolver{}

// NewGeneticSolver creates a genetic solver from validated settings.
func NewGeneticSolver(spec *config.GeneticSpec) (*GeneticSolver, error) {
	if spec == nil {
		return nil, errors.New("genetic settings cannot be nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid genetic settings: %w", err)
	}
	return &GeneticSolver{spec: *spec}, nil
}

// Name implements Solver.
func (s *GeneticSolver) Name() string { return GeneticName }

// Solve implements Solver. It never fails on an infeasible problem; the
// result is then marked unreliable.
func (s *GeneticSolver) Solve(ctx context.Context, problem *core.Problem) (*Result, error) {
	logger := logr.FromContextOrDiscard(ctx).WithValues("solver", GeneticName)

	if worst := -floats.Sum(problem.Capacities()); s.spec.Penalty >= worst {
		return nil, fmt.Errorf("%w: penalty %g, worst feasible fitness %g", ErrPenaltyTooHigh, s.spec.Penalty, worst)
	}

	weight := s.profitWeight(problem)
	if weight < s.spec.ProfitWeight {
		logger.Info("Profit weight clamped", "configured", s.spec.ProfitWeight, "effective", weight)
	}

	box := problem.Box()
	for i := range problem.NumProducts() {
		if box.Uncoupled(i) {
			logger.V(logging.DEBUG).Info("Product not coupled to any plant, bounded by total capacity",
				"product", problem.Product(i).Name, "bound", box.CapacityBound[i])
		}
	}
	space := make([]evolution.Bounds, box.Dim())
	for i := range space {
		space[i] = evolution.Bounds{Low: box.Low[i], High: box.High[i]}
	}

	seed := s.spec.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.V(logging.DEBUG).Info("Starting genetic search",
		"seed", seed,
		"generations", s.spec.Generations,
		"populationSize", s.spec.PopulationSize,
		"profitWeight", weight)

	engine := &evolution.Engine{
		Space:          space,
		Fitness:        Fitness(problem, s.spec.Penalty, weight),
		PopulationSize: s.spec.PopulationSize,
		ParentsMating:  s.spec.ParentsMating,
		KeepParents:    s.spec.KeepParents,
		Selector:       &evolution.TournamentSelector{Size: s.spec.TournamentSize},
		Crossover:      evolution.UniformCrossover{},
		Mutator:        &evolution.RandomResetMutator{PercentGenes: s.spec.MutationPercentGenes},
		Terminators: []evolution.Terminator{
			evolution.MaxGenerations(s.spec.Generations),
			evolution.Saturation(s.spec.Saturation),
		},
		Workers: s.spec.Workers,
		Rand:    rand.New(rand.NewPCG(seed, seed)),
	}
	out, err := engine.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("genetic search stopped after %d generations: %w", generationsOf(out), err)
	}

	x := core.Allocation(out.Best.Genes).Clone()
	res := &Result{
		Solver:       GeneticName,
		Allocation:   x,
		Slack:        problem.Slack(x),
		TotalSlack:   problem.TotalSlack(x),
		Profit:       problem.Profit(x),
		Revenue:      problem.Revenue(x),
		Objective:    out.Best.Fitness,
		Reliable:     out.Best.Fitness > s.spec.Penalty,
		Generations:  out.Generations,
		StopReason:   out.StopReason,
		Seed:         seed,
		ProfitWeight: weight,
	}
	if !res.Reliable {
		logger.Info("No feasible candidate found, result is unreliable", "generations", out.Generations)
	}
	logger.V(logging.DEBUG).Info("Genetic search completed",
		"generations", out.Generations,
		"stopReason", out.StopReason,
		"fitness", res.Objective,
		"totalSlack", res.TotalSlack,
		"profit", res.Profit)
	return res, nil
}

// profitWeight returns min(ε, 0.5/maxProfit).
func (s *GeneticSolver) profitWeight(problem *core.Problem) float64 {
	maxProfit := problem.MaxProfit()
	if maxProfit <= 0 {
		return s.spec.ProfitWeight
	}
	return min(s.spec.ProfitWeight, maxProfitShare/maxProfit)
}

// Fitness returns the genetic fitness of an allocation: penalty when a
// product exceeds its inventory or maximum sales or a plant is overloaded,
// -totalSlack + weight·profit otherwise.
func Fitness(problem *core.Problem, penalty, weight float64) evolution.FitnessFunc {
	return func(x []float64) float64 {
		if problem.Violates(x) {
			return penalty
		}
		return -problem.TotalSlack(x) + weight*problem.Profit(x)
	}
}

func generationsOf(r *evolution.Result) int {
	if r == nil {
		return 0
	}
	return r.Generations
}
