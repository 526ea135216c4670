package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/go-logr/logr"

	"github.com/YMAFTOUH/GA-and-LP/internal/logging"
	"github.com/YMAFTOUH/GA-and-LP/internal/lp"
	"github.com/YMAFTOUH/GA-and-LP/pkg/config"
	"github.com/YMAFTOUH/GA-and-LP/pkg/core"
)

// LinearSolver computes the lexicographic optimum with two linear programs.
//
// Columns are the product quantities followed by one slack per plant. Both
// phases share the rows load[c] + slack[c] = capacity[c] and the product box.
// Phase 1 minimizes total slack; phase 2 maximizes profit with total slack
// pinned to the phase 1 optimum.
type LinearSolver struct {
	spec config.LinearSpec
}

var _ Solver = &LinearSolver{}

// NewLinearSolver creates a linear solver from validated settings.
func NewLinearSolver(spec *config.LinearSpec) (*LinearSolver, error) {
	if spec == nil {
		return nil, errors.New("linear settings cannot be nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid linear settings: %w", err)
	}
	return &LinearSolver{spec: *spec}, nil
}

// Name implements Solver.
func (s *LinearSolver) Name() string { return LinearName }

// Solve implements Solver.
func (s *LinearSolver) Solve(ctx context.Context, problem *core.Problem) (*Result, error) {
	logger := logr.FromContextOrDiscard(ctx).WithValues("solver", LinearName)
	n, m := problem.NumProducts(), problem.NumPlants()

	base := capacityModel(problem)
	opts := []lp.SolveOption{
		lp.WithTolerance(s.spec.Tolerance),
		lp.WithFeasibilityTolerance(s.spec.FeasibilityTolerance),
		lp.WithScaling(s.spec.ScalingEnabled()),
		lp.WithStandardFormHook(func(rows, cols int) {
			logger.V(logging.TRACE).Info("Standard form built", "rows", rows, "cols", cols)
		}),
	}

	phase1 := base.Clone()
	phase1.ColCosts = make([]float64, n+m)
	for c := range m {
		phase1.ColCosts[n+c] = 1
	}
	sol1, status1, err := solvePhase(PhaseMinSlack, phase1, opts)
	if err != nil {
		return nil, err
	}
	minSlack := slackSum(sol1.ColValues[n:])
	logger.V(logging.DEBUG).Info("Phase completed", "phase", PhaseMinSlack, "minimalSlack", minSlack)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("linear solver interrupted after %s: %w", PhaseMinSlack, err)
	}

	phase2 := base.Clone()
	phase2.Maximize = true
	phase2.ColCosts = append(problem.Profits(), make([]float64, m)...)
	pin := make([]float64, n+m)
	for c := range m {
		pin[n+c] = 1
	}
	phase2.AddEqRow(pin, minSlack)
	sol2, status2, err := solvePhase(PhaseMaxProfit, phase2, opts)
	if err != nil {
		return nil, err
	}
	logger.V(logging.DEBUG).Info("Phase completed", "phase", PhaseMaxProfit, "profit", sol2.Objective)

	x := core.Allocation(slices.Clone(sol2.ColValues[:n]))
	return &Result{
		Solver:       LinearName,
		Allocation:   x,
		Slack:        problem.Slack(x),
		TotalSlack:   problem.TotalSlack(x),
		Profit:       problem.Profit(x),
		Revenue:      problem.Revenue(x),
		Objective:    sol2.Objective,
		Reliable:     true,
		MinimalSlack: minSlack,
		Phases:       []PhaseStatus{status1, status2},
	}, nil
}

// capacityModel returns the rows and bounds shared by both phases.
func capacityModel(problem *core.Problem) *lp.Model {
	n, m := problem.NumProducts(), problem.NumPlants()
	box := problem.Box()

	model := &lp.Model{
		ColLower: append(slices.Clone(box.Low), make([]float64, m)...),
		ColUpper: append(slices.Clone(box.High), slices.Repeat([]float64{math.Inf(1)}, m)...),
	}
	capacities := problem.Capacities()
	for c := range m {
		row := make([]float64, n+m)
		copy(row, problem.ShareRow(c))
		row[n+c] = 1
		model.AddEqRow(row, capacities[c])
	}
	return model
}

// solvePhase solves one phase and turns a missing optimum into a PhaseError.
func solvePhase(phase Phase, model *lp.Model, opts []lp.SolveOption) (*lp.Solution, PhaseStatus, error) {
	status := PhaseStatus{Phase: phase}
	sol, err := model.Solve(opts...)
	if err != nil {
		status.Status = lp.StatusError.String()
		status.Message = err.Error()
		return nil, status, &PhaseError{Phase: phase, Status: status, Err: fmt.Errorf("%w: %w", ErrPhaseFailed, err)}
	}
	status.Status = sol.Status.String()
	status.Message = sol.Message
	status.Objective = sol.Objective
	status.Success = sol.IsOptimal()

	switch {
	case sol.IsOptimal():
		return sol, status, nil
	case sol.IsInfeasible():
		return nil, status, &PhaseError{Phase: phase, Status: status, Err: ErrInfeasibleModel}
	default:
		return nil, status, &PhaseError{Phase: phase, Status: status, Err: ErrPhaseFailed}
	}
}

// slackSum adds slack column values, ignoring round-off below zero.
func slackSum(slack []float64) float64 {
	total := 0.0
	for _, v := range slack {
		total += math.Max(v, 0)
	}
	return total
}
