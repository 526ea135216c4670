package solver

import "github.com/YMAFTOUH/GA-and-LP/pkg/core"

// PhaseStatus is the outcome of one linear program phase.
type PhaseStatus struct {
	Phase     Phase
	Success   bool
	Status    string
	Objective float64
	Message   string
}

// Result is the allocation produced by one solver run.
type Result struct {
	// Solver is the name of the strategy that produced the result.
	Solver string

	// Allocation is the quantity of every product.
	Allocation core.Allocation

	// Slack is the unused capacity of every plant.
	Slack []float64

	// TotalSlack is the sum of Slack.
	TotalSlack float64

	Profit  float64
	Revenue float64

	// Objective is the fitness of the allocation for the genetic solver and
	// the phase 2 profit for the linear solver.
	Objective float64

	// Reliable is false when the genetic solver found no feasible candidate.
	// The linear solver only returns reliable results.
	Reliable bool

	// MinimalSlack is the phase 1 optimum of the linear solver.
	MinimalSlack float64

	// Phases holds the status of both linear program phases.
	Phases []PhaseStatus

	// Generations is the number of generations run by the genetic solver.
	Generations int

	// StopReason tells why the genetic search ended.
	StopReason string

	// Seed is the seed of the genetic search.
	Seed uint64

	// ProfitWeight is the effective profit weight of the genetic fitness.
	ProfitWeight float64
}
