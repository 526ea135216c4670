package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/YMAFTOUH/GA-and-LP/pkg/core"
)

// Recorder observes solver runs.
type Recorder interface {
	ObserveRun(solver string, duration time.Duration, result *Result, err error)
}

// Outcome is the result of one solver within an Optimize call.
type Outcome struct {
	Solver   string
	Result   *Result
	Err      error
	Duration time.Duration
}

// Optimizer runs several solvers concurrently on the same problem.
type Optimizer struct {
	solvers  []Solver
	recorder Recorder
}

// OptimizerOption configures an Optimizer.
type OptimizerOption func(*Optimizer)

// WithRecorder reports every solver run to r.
func WithRecorder(r Recorder) OptimizerOption {
	return func(o *Optimizer) {
		o.recorder = r
	}
}

// NewOptimizer creates an optimizer over the given solvers.
func NewOptimizer(solvers []Solver, opts ...OptimizerOption) *Optimizer {
	o := &Optimizer{solvers: solvers}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize runs every solver and returns one outcome per solver, in solver
// order. A failing solver does not stop the others; the returned error joins
// the errors of all failed solvers.
func (o *Optimizer) Optimize(ctx context.Context, problem *core.Problem) ([]Outcome, error) {
	logger := logr.FromContextOrDiscard(ctx)
	outcomes := make([]Outcome, len(o.solvers))

	var g errgroup.Group
	for i, s := range o.solvers {
		g.Go(func() error {
			start := time.Now()
			res, err := s.Solve(ctx, problem)
			elapsed := time.Since(start)

			outcomes[i] = Outcome{Solver: s.Name(), Result: res, Err: err, Duration: elapsed}
			if o.recorder != nil {
				o.recorder.ObserveRun(s.Name(), elapsed, res, err)
			}
			if err != nil {
				logger.Error(err, "Solver failed", "solver", s.Name(), "duration", elapsed)
			} else {
				logger.Info("Solver completed",
					"solver", s.Name(),
					"duration", elapsed,
					"totalSlack", res.TotalSlack,
					"profit", res.Profit,
					"reliable", res.Reliable)
			}
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, out := range outcomes {
		if out.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", out.Solver, out.Err))
		}
	}
	return outcomes, errors.Join(errs...)
}
