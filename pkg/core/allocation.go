package core

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Allocation holds one quantity per product.
type Allocation []float64

// Clone returns a copy of a.
func (a Allocation) Clone() Allocation {
	return append(Allocation(nil), a...)
}

// Round returns a copy of a with every quantity rounded to the nearest unit.
func (a Allocation) Round() Allocation {
	out := make(Allocation, len(a))
	for i, v := range a {
		out[i] = math.Round(v)
	}
	return out
}

// Total returns the summed quantity.
func (a Allocation) Total() float64 { return floats.Sum(a) }

// Loads returns share @ x, the load x puts on every plant.
func (p *Problem) Loads(x []float64) []float64 {
	var loads mat.VecDense
	loads.MulVec(p.share, mat.NewVecDense(len(x), x))
	return mat.Col(nil, 0, &loads)
}

// Utilization returns capacity - load for every plant. Values are negative
// on plants that x overloads.
func (p *Problem) Utilization(x []float64) []float64 {
	out := p.Capacities()
	floats.Sub(out, p.Loads(x))
	return out
}

// Slack returns max(capacity - load, 0) for every plant.
func (p *Problem) Slack(x []float64) []float64 {
	out := p.Utilization(x)
	for c, v := range out {
		out[c] = math.Max(v, 0)
	}
	return out
}

// TotalSlack returns the summed slack of x.
func (p *Problem) TotalSlack(x []float64) float64 {
	return floats.Sum(p.Slack(x))
}

// Profit returns the total profit of x.
func (p *Problem) Profit(x []float64) float64 {
	return floats.Dot(p.Profits(), x)
}

// Revenue returns the total revenue of x.
func (p *Problem) Revenue(x []float64) float64 {
	return floats.Dot(p.Prices(), x)
}

// MaxProfit returns the profit of the allocation at the box upper bounds,
// an upper bound on the profit of any allocation inside the box.
func (p *Problem) MaxProfit() float64 {
	return p.Profit(p.box.High)
}

// Violates reports whether x exceeds an inventory ceiling, a maximum sales
// level or a plant capacity.
func (p *Problem) Violates(x []float64) bool {
	for i, pr := range p.products {
		if x[i] > pr.Inventory || x[i] > pr.MaxSales {
			return true
		}
	}
	for c, load := range p.Loads(x) {
		if load > p.plants[c].Capacity {
			return true
		}
	}
	return false
}

// CapacityExcess returns the largest amount by which x overloads a plant,
// or zero when every plant is within capacity.
func (p *Problem) CapacityExcess(x []float64) float64 {
	excess := 0.0
	for _, u := range p.Utilization(x) {
		excess = math.Max(excess, -u)
	}
	return excess
}
