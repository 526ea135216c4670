package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrInfeasibleModel reports that a linear program phase has no feasible point.
	ErrInfeasibleModel = errors.New("infeasible model")

	// ErrPhaseFailed reports that a linear program phase ended without an optimum
	// for a reason other than infeasibility.
	ErrPhaseFailed = errors.New("linear program phase failed")

	// ErrPenaltyTooHigh is returned when the configured penalty is not strictly
	// below the worst fitness a feasible allocation can reach.
	ErrPenaltyTooHigh = errors.New("penalty does not dominate feasible fitness values")
)

// Phase identifies one of the two linear programs of the exact solver.
type Phase int

const (
	// PhaseMinSlack minimizes total slack.
	PhaseMinSlack Phase = 1
	// PhaseMaxProfit maximizes profit at the minimal slack.
	PhaseMaxProfit Phase = 2
)

// String returns a short phase label.
func (p Phase) String() string {
	switch p {
	case PhaseMinSlack:
		return "phase 1 (minimize slack)"
	case PhaseMaxProfit:
		return "phase 2 (maximize profit)"
	default:
		return fmt.Sprintf("phase %d", int(p))
	}
}

// PhaseError is returned when a phase of the linear solver has no optimum.
type PhaseError struct {
	Phase Phase

	// Status is the final status of the failed phase.
	Status PhaseStatus

	// Err is ErrInfeasibleModel or ErrPhaseFailed.
	Err error
}

// Error implements error.
func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s failed: %v: %s", e.Phase, e.Err, e.Status.Message)
}

// Unwrap returns the sentinel error.
func (e *PhaseError) Unwrap() error { return e.Err }
