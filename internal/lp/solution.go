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

// Status is the outcome of a solve.
type Status int

const (
	StatusNotSolved Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusError:
		return "error"
	default:
		return "not solved"
	}
}

// Solution contains the results from solving a Model.
type Solution struct {
	// Status indicates the outcome of the solve.
	Status Status

	// ColValues contains the value of each column. Only set when Status is StatusOptimal.
	ColValues []float64

	// RowValues contains A·x for each equality row. Only set when Status is StatusOptimal.
	RowValues []float64

	// Objective is the value of the objective function at the solution.
	Objective float64

	// Message describes the outcome, including the solver diagnostic on failure.
	Message string
}

// IsOptimal returns true if the solution is optimal.
func (s *Solution) IsOptimal() bool {
	return s.Status == StatusOptimal
}

// IsInfeasible returns true if the model has no feasible point.
func (s *Solution) IsInfeasible() bool {
	return s.Status == StatusInfeasible
}

// Value returns the value of column index, or 0 if index is out of range.
func (s *Solution) Value(index int) float64 {
	if index < 0 || index >= len(s.ColValues) {
		return 0
	}
	return s.ColValues[index]
}
