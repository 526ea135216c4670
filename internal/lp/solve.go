/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package lp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	defaultTolerance            = 1e-10
	defaultFeasibilityTolerance = 1e-7
	rankTolerance               = 1e-12
)

// SolveOption configures the solver behavior.
type SolveOption func(*solveConfig)

type solveConfig struct {
	tolerance    float64
	feasTol      float64
	scale        bool
	onStandardFn func(rows, cols int)
}

func defaultSolveConfig() *solveConfig {
	return &solveConfig{
		tolerance: defaultTolerance,
		feasTol:   defaultFeasibilityTolerance,
		scale:     true,
	}
}

// WithTolerance sets the simplex optimality tolerance.
func WithTolerance(tol float64) SolveOption {
	return func(c *solveConfig) {
		c.tolerance = tol
	}
}

// WithFeasibilityTolerance sets the relative residual allowed on equality rows
// when the solution is checked against the original model.
func WithFeasibilityTolerance(tol float64) SolveOption {
	return func(c *solveConfig) {
		c.feasTol = tol
	}
}

// WithScaling enables or disables rescaling of right-hand sides and bounds.
func WithScaling(enabled bool) SolveOption {
	return func(c *solveConfig) {
		c.scale = enabled
	}
}

// WithStandardFormHook registers a callback receiving the dimensions of the
// standard form problem handed to the simplex.
func WithStandardFormHook(fn func(rows, cols int)) SolveOption {
	return func(c *solveConfig) {
		c.onStandardFn = fn
	}
}

// Solve builds the standard form of the model and solves it.
// Malformed models return an error; infeasible or unbounded models return a
// Solution with the matching Status.
func (m *Model) Solve(opts ...SolveOption) (*Solution, error) {
	cfg := defaultSolveConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	n := m.NumVars()
	if n == 0 {
		return &Solution{Status: StatusOptimal, Message: "empty model"}, nil
	}

	cost, err := expandSlice(n, m.ColCosts, 0)
	if err != nil {
		return nil, fmt.Errorf("ColCosts: %w", err)
	}
	lower, err := expandSlice(n, m.ColLower, 0)
	if err != nil {
		return nil, fmt.Errorf("ColLower: %w", err)
	}
	upper, err := expandSlice(n, m.ColUpper, math.Inf(1))
	if err != nil {
		return nil, fmt.Errorf("ColUpper: %w", err)
	}
	for j := 0; j < n; j++ {
		if !isFinite(cost[j]) || math.IsNaN(upper[j]) {
			return nil, fmt.Errorf("column %d: %w", j, ErrNotFinite)
		}
		if !isFinite(lower[j]) {
			return nil, fmt.Errorf("column %d: %w", j, ErrFreeVariable)
		}
	}

	eq := mat.NewDense(max(len(m.rows), 1), n, nil)
	rhs := make([]float64, len(m.rows))
	for i, r := range m.rows {
		if !isFinite(r.rhs) {
			return nil, fmt.Errorf("row %d: %w", i, ErrNotFinite)
		}
		for j, v := range r.coeffs {
			if !isFinite(v) {
				return nil, fmt.Errorf("row %d: %w", i, ErrNotFinite)
			}
			eq.Set(i, j, v)
		}
		rhs[i] = r.rhs
	}

	for j := 0; j < n; j++ {
		if lower[j] > upper[j] {
			return &Solution{
				Status:  StatusInfeasible,
				Message: fmt.Sprintf("column %d: lower bound %g exceeds upper bound %g", j, lower[j], upper[j]),
			}, nil
		}
	}

	sf, sol := m.standardForm(cfg, eq, rhs, cost, lower, upper)
	if sol != nil {
		return sol, nil
	}
	if cfg.onStandardFn != nil && sf.a != nil {
		cfg.onStandardFn(sf.a.Dims())
	}

	y, sol := sf.solve(cfg)
	if sol != nil {
		return sol, nil
	}

	x := make([]float64, n)
	for j := 0; j < n; j++ {
		x[j] = lower[j]
		if idx := sf.colIndex[j]; idx >= 0 {
			x[j] += y[idx] * sf.scale
		}
		// Shifting back can overshoot a bound by rounding error.
		x[j] = math.Min(math.Max(x[j], lower[j]), upper[j])
	}

	rowValues := make([]float64, len(m.rows))
	for i := range m.rows {
		row := eq.RawRowView(i)
		rowValues[i] = floats.Dot(row, x)
		scale := math.Max(1, math.Max(math.Abs(rhs[i]), absDot(row, x)))
		if resid := math.Abs(rowValues[i] - rhs[i]); resid > cfg.feasTol*scale {
			return &Solution{
				Status:  StatusInfeasible,
				Message: fmt.Sprintf("row %d violated by %g after solving", i, resid),
			}, nil
		}
	}

	return &Solution{
		Status:    StatusOptimal,
		ColValues: x,
		RowValues: rowValues,
		Objective: floats.Dot(cost, x),
		Message:   "optimal solution found",
	}, nil
}

// standardForm is the model rewritten as: minimize c·y s.t. a·y = b, y ≥ 0.
type standardForm struct {
	c     []float64
	a     *mat.Dense
	b     []float64
	scale float64
	// colIndex maps a model column to its standard form column, or -1 when
	// the column is fixed at its lower bound.
	colIndex []int
}

func (m *Model) standardForm(cfg *solveConfig, eq *mat.Dense, rhs, cost, lower, upper []float64) (*standardForm, *Solution) {
	n := len(cost)
	sign := 1.0
	if m.Maximize {
		sign = -1
	}

	// Shift every column by its lower bound.
	shifted := make([]float64, len(rhs))
	for i := range rhs {
		shifted[i] = rhs[i] - floats.Dot(eq.RawRowView(i)[:n], lower)
	}

	colIndex := make([]int, n)
	var bounded []int
	active := 0
	for j := 0; j < n; j++ {
		used := false
		for i := range rhs {
			if eq.At(i, j) != 0 {
				used = true
				break
			}
		}
		hasUpper := !math.IsInf(upper[j], 1)
		if !used && !hasUpper {
			// The column appears nowhere: it sits at its lower bound unless
			// the objective pushes it up forever.
			if sign*cost[j] < 0 {
				return nil, &Solution{
					Status:  StatusUnbounded,
					Message: fmt.Sprintf("column %d is unbounded in the objective direction", j),
				}
			}
			colIndex[j] = -1
			continue
		}
		colIndex[j] = active
		active++
		if hasUpper {
			bounded = append(bounded, j)
		}
	}

	scale := 1.0
	if cfg.scale {
		for _, v := range shifted {
			scale = math.Max(scale, math.Abs(v))
		}
		for _, j := range bounded {
			scale = math.Max(scale, upper[j]-lower[j])
		}
	}

	rows := len(rhs) + len(bounded)
	cols := active + len(bounded)
	if cols == 0 {
		// Every column is fixed at its lower bound.
		return &standardForm{scale: scale, colIndex: colIndex}, nil
	}
	a := mat.NewDense(max(rows, 1), cols, nil)
	b := make([]float64, max(rows, 1))
	c := make([]float64, cols)
	for j := 0; j < n; j++ {
		if idx := colIndex[j]; idx >= 0 {
			c[idx] = sign * cost[j]
			for i := range rhs {
				a.Set(i, idx, eq.At(i, j))
			}
		}
	}
	for i := range rhs {
		b[i] = shifted[i] / scale
		if b[i] < 0 {
			// Keep b >= 0 so the simplex starts its own phase I from a
			// nonnegative right-hand side.
			b[i] = -b[i]
			for j := 0; j < cols; j++ {
				a.Set(i, j, -a.At(i, j))
			}
		}
	}
	for k, j := range bounded {
		r := len(rhs) + k
		a.Set(r, colIndex[j], 1)
		a.Set(r, active+k, 1)
		b[r] = (upper[j] - lower[j]) / scale
	}
	return &standardForm{c: c, a: a, b: b, scale: scale, colIndex: colIndex}, nil
}

func (sf *standardForm) solve(cfg *solveConfig) ([]float64, *Solution) {
	if sf.a == nil {
		return nil, nil
	}

	_, cols := sf.a.Dims()
	keep := independentRows(sf.a)
	if len(keep) == 0 {
		// No row constrains y: the optimum is y = 0 unless a cost is negative.
		for j, c := range sf.c {
			if c < 0 {
				return nil, &Solution{
					Status:  StatusUnbounded,
					Message: fmt.Sprintf("standard form column %d is unbounded", j),
				}
			}
		}
		return make([]float64, cols), nil
	}
	a := mat.NewDense(len(keep), cols, nil)
	b := make([]float64, len(keep))
	for k, r := range keep {
		a.SetRow(k, sf.a.RawRowView(r))
		b[k] = sf.b[r]
	}

	_, y, err := lp.Simplex(sf.c, a, b, cfg.tolerance, nil)
	switch {
	case err == nil:
		return y, nil
	case errors.Is(err, lp.ErrInfeasible):
		return nil, &Solution{Status: StatusInfeasible, Message: err.Error()}
	case errors.Is(err, lp.ErrUnbounded):
		return nil, &Solution{Status: StatusUnbounded, Message: err.Error()}
	default:
		return nil, &Solution{Status: StatusError, Message: err.Error()}
	}
}

// independentRows returns a maximal set of linearly independent rows of a,
// in their original order. Dropped rows are re-checked against the solution.
func independentRows(a *mat.Dense) []int {
	rows, cols := a.Dims()
	var keep []int
	for r := 0; r < rows; r++ {
		cand := append(append([]int(nil), keep...), r)
		sub := mat.NewDense(len(cand), cols, nil)
		for k, ri := range cand {
			sub.SetRow(k, a.RawRowView(ri))
		}
		var svd mat.SVD
		if !svd.Factorize(sub, mat.SVDNone) {
			continue
		}
		if svd.Rank(rankTolerance) == len(cand) {
			keep = cand
		}
	}
	return keep
}

func absDot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] * b[i])
	}
	return sum
}
