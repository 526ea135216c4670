// Package limiter turns fractional allocations into whole units for reporting.
package limiter

import (
	"context"
	"fmt"
	"strings"

	"github.com/YMAFTOUH/GA-and-LP/pkg/core"
)

// Limiter is an interface that defines the method for rounding an allocation
type Limiter interface {
	// Limit returns a rounded copy of x. x is not modified.
	Limit(ctx context.Context, problem *core.Problem, x core.Allocation) (core.Allocation, error)
}

// LimiterStrategy is an enumeration of the different strategies that can be used by the Limiter
type LimiterStrategy int

// enumeration of LimiterStrategy
const (
	NearestStrategy LimiterStrategy = iota
	CapacityStrategy
)

// Strategy names.
const (
	NearestName  = "nearest"
	CapacityName = "capacity"
)

// String returns the strategy name.
func (s LimiterStrategy) String() string {
	switch s {
	case NearestStrategy:
		return NearestName
	case CapacityStrategy:
		return CapacityName
	default:
		return fmt.Sprintf("LimiterStrategy(%d)", int(s))
	}
}

// ParseStrategy converts a strategy name into a LimiterStrategy.
func ParseStrategy(name string) (LimiterStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NearestName:
		return NearestStrategy, nil
	case CapacityName:
		return CapacityStrategy, nil
	default:
		return 0, fmt.Errorf("unsupported limiter strategy: %q", name)
	}
}

// NewLimiter is a factory that creates a new Limiter based on the provided strategy
func NewLimiter(strategy LimiterStrategy) (Limiter, error) {
	switch strategy {
	case NearestStrategy:
		return &NearestLimiter{}, nil
	case CapacityStrategy:
		return NewCapacityLimiter(&CapacityLimiterConfig{})
	default:
		return nil, fmt.Errorf("unsupported limiter strategy: %v", strategy)
	}
}

// NearestLimiter rounds every quantity to the nearest unit, ignoring bounds
// and capacities.
type NearestLimiter struct{}

// Limit implements Limiter.
func (NearestLimiter) Limit(_ context.Context, _ *core.Problem, x core.Allocation) (core.Allocation, error) {
	return x.Round(), nil
}
