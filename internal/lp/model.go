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

// Package lp provides a bounded-variable linear program model on top of
// gonum's simplex solver.
//
// The model solves problems of the form:
//
//	Minimize (or Maximize): ColCosts · x
//	Subject to:             A·x = b
//	And:                    ColLower ≤ x ≤ ColUpper
//
// Lower bounds must be finite. Solve converts the model to the standard form
// expected by gonum (x ≥ 0, equality rows only) by shifting every column by
// its lower bound and adding one row per finite upper bound.
package lp

import (
	"errors"
	"math"
)

var (
	// ErrFreeVariable is returned for a column without a finite lower bound.
	ErrFreeVariable = errors.New("lp: columns without a finite lower bound are not supported")
	// ErrShape is returned when slices in the model disagree on the number of columns.
	ErrShape = errors.New("lp: inconsistent model dimensions")
	// ErrNotFinite is returned for NaN costs or non-finite right-hand sides.
	ErrNotFinite = errors.New("lp: model contains non-finite values")
)

type eqRow struct {
	coeffs []float64
	rhs    float64
}

// Model is a linear program with bounded columns and equality rows.
type Model struct {
	// Maximize indicates whether to maximize (true) or minimize (false).
	Maximize bool

	// ColCosts are the objective coefficients of each column.
	ColCosts []float64

	// ColLower are the lower bounds of each column. Empty means all zero.
	ColLower []float64

	// ColUpper are the upper bounds of each column. Empty means all +Inf.
	ColUpper []float64

	rows []eqRow
}

// AddEqRow adds the constraint sum(coeffs * x) = rhs.
// Columns beyond len(coeffs) have a zero coefficient.
func (m *Model) AddEqRow(coeffs []float64, rhs float64) {
	m.rows = append(m.rows, eqRow{
		coeffs: append([]float64(nil), coeffs...),
		rhs:    rhs,
	})
}

// NumVars returns the number of columns in the model.
func (m *Model) NumVars() int {
	n := max(len(m.ColCosts), len(m.ColLower), len(m.ColUpper))
	for _, r := range m.rows {
		n = max(n, len(r.coeffs))
	}
	return n
}

// NumRows returns the number of equality rows in the model.
func (m *Model) NumRows() int { return len(m.rows) }

// Clone returns a deep copy of m.
func (m *Model) Clone() *Model {
	out := &Model{
		Maximize: m.Maximize,
		ColCosts: append([]float64(nil), m.ColCosts...),
		ColLower: append([]float64(nil), m.ColLower...),
		ColUpper: append([]float64(nil), m.ColUpper...),
		rows:     make([]eqRow, len(m.rows)),
	}
	for i, r := range m.rows {
		out.rows[i] = eqRow{coeffs: append([]float64(nil), r.coeffs...), rhs: r.rhs}
	}
	return out
}

// expandSlice returns slice if it has length n, or a new slice of length n
// filled with fill if slice is empty.
func expandSlice(n int, slice []float64, fill float64) ([]float64, error) {
	if len(slice) == n {
		return append([]float64(nil), slice...), nil
	}
	if len(slice) == 0 {
		out := make([]float64, n)
		for i := range out {
			out[i] = fill
		}
		return out, nil
	}
	return nil, ErrShape
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
