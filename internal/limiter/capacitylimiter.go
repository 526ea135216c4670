package limiter

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/go-logr/logr"

	"github.com/YMAFTOUH/GA-and-LP/internal/logging"
	"github.com/YMAFTOUH/GA-and-LP/pkg/core"
)

const (
	// DefaultStep is the rounding unit of the CapacityLimiter.
	DefaultStep = 1.0

	// overloadTolerance absorbs floating point noise in plant loads, in tonnes.
	overloadTolerance = 1e-6
)

// ErrOverloaded is returned when no rounded allocation inside the box keeps
// every plant within capacity.
var ErrOverloaded = errors.New("rounded allocation overloads a plant")

// CapacityLimiterConfig holds configuration for the CapacityLimiter
type CapacityLimiterConfig struct {
	// Step is the rounding unit. Zero means DefaultStep.
	Step float64
}

// CapacityLimiter rounds an allocation to whole steps inside the product box
// and then trims products until every plant is within capacity. Products with
// the lowest profit per unit of load on an overloaded plant are trimmed first.
type CapacityLimiter struct {
	config *CapacityLimiterConfig
}

// NewCapacityLimiter creates a new CapacityLimiter instance.
func NewCapacityLimiter(config *CapacityLimiterConfig) (*CapacityLimiter, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.Step < 0 || math.IsNaN(config.Step) || math.IsInf(config.Step, 0) {
		return nil, fmt.Errorf("step must be a finite, non-negative number, got %g", config.Step)
	}
	if config.Step == 0 {
		config.Step = DefaultStep
	}
	return &CapacityLimiter{config: config}, nil
}

// Limit implements Limiter. On ErrOverloaded the best effort allocation is
// returned together with the error.
func (l *CapacityLimiter) Limit(ctx context.Context, problem *core.Problem, x core.Allocation) (core.Allocation, error) {
	logger := logr.FromContextOrDiscard(ctx)
	step := l.config.Step
	box := problem.Box()

	out := make(core.Allocation, len(x))
	floor := make([]float64, len(x))
	for i, v := range x {
		floor[i] = math.Ceil(box.Low[i]/step) * step
		ceil := math.Floor(box.High[i]/step) * step
		out[i] = math.Min(math.Max(math.Round(v/step)*step, floor[i]), ceil)
	}

	profits := problem.Profits()
	for {
		util := problem.Utilization(out)
		c := overloaded(util)
		if c < 0 {
			return out, nil
		}

		i := cheapest(problem, c, out, floor, profits)
		if i < 0 {
			return out, fmt.Errorf("%w: plant %s exceeds capacity by %g",
				ErrOverloaded, problem.Plant(c).Name, -util[c])
		}
		share := problem.Share(c, i)
		need := math.Ceil(-util[c]/share/step) * step
		cut := math.Min(need, out[i]-floor[i])
		out[i] -= cut
		logger.V(logging.DEBUG).Info("Trimmed rounded sales to fit capacity",
			"product", problem.Product(i).Name, "plant", problem.Plant(c).Name, "cut", cut)
	}
}

// overloaded returns the first plant with negative utilization, or -1.
func overloaded(util []float64) int {
	for c, u := range util {
		if u < -overloadTolerance {
			return c
		}
	}
	return -1
}

// cheapest returns the product loading plant c that can still be trimmed and
// has the lowest profit per unit of load on c, or -1.
func cheapest(problem *core.Problem, c int, x, floor, profits []float64) int {
	best, bestRatio := -1, math.Inf(1)
	for i := range x {
		share := problem.Share(c, i)
		if share <= 0 || x[i] <= floor[i] {
			continue
		}
		if ratio := profits[i] / share; ratio < bestRatio {
			best, bestRatio = i, ratio
		}
	}
	return best
}
