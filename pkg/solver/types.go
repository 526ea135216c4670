package solver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/YMAFTOUH/GA-and-LP/pkg/config"
	"github.com/YMAFTOUH/GA-and-LP/pkg/core"
)

// Solver computes an allocation for a problem.
type Solver interface {
	// Name returns the strategy name reported in results.
	Name() string

	// Solve computes an allocation. Implementations keep no state between calls.
	Solve(ctx context.Context, problem *core.Problem) (*Result, error)
}

// Strategy is an enumeration of the available solvers.
type Strategy int

// enumeration of Strategy
const (
	GeneticStrategy Strategy = iota
	LinearStrategy
)

// Strategy names.
const (
	GeneticName = "genetic"
	LinearName  = "linear"
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case GeneticStrategy:
		return GeneticName
	case LinearStrategy:
		return LinearName
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a strategy name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case GeneticName, "ga":
		return GeneticStrategy, nil
	case LinearName, "lp":
		return LinearStrategy, nil
	default:
		return 0, fmt.Errorf("unsupported solver strategy: %q", name)
	}
}

// NewSolver is a factory that creates a new Solver based on the provided strategy
func NewSolver(strategy Strategy, settings config.SolverSettings) (Solver, error) {
	switch strategy {
	case GeneticStrategy:
		return NewGeneticSolver(&settings.Genetic)
	case LinearStrategy:
		return NewLinearSolver(&settings.Linear)
	default:
		return nil, fmt.Errorf("unsupported solver strategy: %v", strategy)
	}
}

// AllStrategies lists every strategy in reporting order.
var AllStrategies = []Strategy{GeneticStrategy, LinearStrategy}

// ParseStrategies converts solver names into strategies. "all" selects every
// strategy; duplicates are dropped.
func ParseStrategies(names []string) ([]Strategy, error) {
	var out []Strategy
	seen := map[Strategy]bool{}
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			return slices.Clone(AllStrategies), nil
		}
		s, err := ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no solver strategy selected")
	}
	return out, nil
}
