package core

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Box is the per-product feasible interval [Low[i], High[i]].
type Box struct {
	// Low is the minimum sales of each product.
	Low []float64

	// High is the tightest upper bound implied by capacity, max sales and inventory.
	High []float64

	// CapacityBound is the capacity-implied part of High.
	CapacityBound []float64

	uncoupled []bool
}

// CapacityBounds returns, for every product, the smallest capacity[c]/share[c,i]
// over the plants with a strictly positive share. A product with no positive
// share on any plant gets the sum of all capacities and is flagged as uncoupled.
func CapacityBounds(share mat.Matrix, capacities []float64) (bounds []float64, uncoupled []bool) {
	rows, cols := share.Dims()
	total := floats.Sum(capacities)

	bounds = make([]float64, cols)
	uncoupled = make([]bool, cols)
	for i := 0; i < cols; i++ {
		best := math.Inf(1)
		for c := 0; c < rows; c++ {
			s := share.At(c, i)
			if s <= 0 {
				continue
			}
			best = math.Min(best, capacities[c]/s)
		}
		if math.IsInf(best, 1) {
			best = total
			uncoupled[i] = true
		}
		bounds[i] = best
	}
	return bounds, uncoupled
}

// DeriveBox computes the feasible box of each product.
func DeriveBox(share mat.Matrix, capacities, inventory, minSales, maxSales []float64) Box {
	capBound, uncoupled := CapacityBounds(share, capacities)
	high := make([]float64, len(capBound))
	for i := range high {
		high[i] = math.Min(capBound[i], math.Min(maxSales[i], inventory[i]))
	}
	return Box{
		Low:           append([]float64(nil), minSales...),
		High:          high,
		CapacityBound: capBound,
		uncoupled:     uncoupled,
	}
}

// Dim returns the number of products in the box.
func (b Box) Dim() int { return len(b.Low) }

// Uncoupled reports whether product i loads no plant.
func (b Box) Uncoupled(i int) bool { return b.uncoupled[i] }

// Empty reports whether some product has Low > High.
func (b Box) Empty() bool {
	for i := range b.Low {
		if b.Low[i] > b.High[i] {
			return true
		}
	}
	return false
}

// Contains reports whether every x[i] lies within [Low[i]-tol, High[i]+tol].
func (b Box) Contains(x []float64, tol float64) bool {
	if len(x) != len(b.Low) {
		return false
	}
	for i, v := range x {
		if v < b.Low[i]-tol || v > b.High[i]+tol {
			return false
		}
	}
	return true
}

func (b Box) clone() Box {
	return Box{
		Low:           append([]float64(nil), b.Low...),
		High:          append([]float64(nil), b.High...),
		CapacityBound: append([]float64(nil), b.CapacityBound...),
		uncoupled:     append([]bool(nil), b.uncoupled...),
	}
}
