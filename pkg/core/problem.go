package core

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YMAFTOUH/GA-and-LP/pkg/config"
)

// Product is one product of the problem, with economics converted to
// allocation units (per tonne).
type Product struct {
	Name          string
	PricePerUnit  float64
	ProfitPerUnit float64
	Inventory     float64
	MinSales      float64
	MaxSales      float64
}

// Plant is one shared capacity constraint.
type Plant struct {
	Name     string
	Capacity float64
}

// Problem is an immutable allocation problem.
type Problem struct {
	products []Product
	plants   []Plant
	share    *mat.Dense
	currency string
	box      Box
}

// NewProblem validates data and builds a Problem from it.
func NewProblem(data *config.ProblemData) (*Problem, error) {
	if data == nil {
		return nil, fmt.Errorf("problem data cannot be nil")
	}
	data = data.DeepCopy()
	data.SetDefaults()
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid problem data: %w", err)
	}

	products := make([]Product, len(data.Products))
	for i, p := range data.Products {
		products[i] = Product{
			Name:          p.Name,
			PricePerUnit:  p.Price * data.KgPerUnit,
			ProfitPerUnit: p.Profit * data.KgPerUnit,
			Inventory:     p.Inventory,
			MinSales:      p.MinSales,
			MaxSales:      p.MaxSales,
		}
	}

	plants := make([]Plant, len(data.Plants))
	share := mat.NewDense(len(data.Plants), len(data.Products), nil)
	for c, pl := range data.Plants {
		plants[c] = Plant{Name: pl.Name, Capacity: pl.Capacity}
		share.SetRow(c, pl.Shares)
	}

	return newProblem(products, plants, share, data.Currency), nil
}

func newProblem(products []Product, plants []Plant, share *mat.Dense, currency string) *Problem {
	p := &Problem{
		products: products,
		plants:   plants,
		share:    share,
		currency: currency,
	}
	p.box = DeriveBox(share, p.Capacities(), p.column(func(pr Product) float64 { return pr.Inventory }),
		p.MinSales(), p.column(func(pr Product) float64 { return pr.MaxSales }))
	return p
}

// WithCapacity returns a copy of p where plant c has the given capacity.
func (p *Problem) WithCapacity(c int, capacity float64) (*Problem, error) {
	if c < 0 || c >= len(p.plants) {
		return nil, fmt.Errorf("plant index %d out of range [0, %d)", c, len(p.plants))
	}
	if capacity < 0 {
		return nil, fmt.Errorf("capacity must be non-negative, got %g", capacity)
	}
	plants := append([]Plant(nil), p.plants...)
	plants[c].Capacity = capacity
	return newProblem(append([]Product(nil), p.products...), plants, mat.DenseCopyOf(p.share), p.currency), nil
}

// NumProducts returns the number of products.
func (p *Problem) NumProducts() int { return len(p.products) }

// NumPlants returns the number of plants.
func (p *Problem) NumPlants() int { return len(p.plants) }

// Product returns product i.
func (p *Problem) Product(i int) Product { return p.products[i] }

// Plant returns plant c.
func (p *Problem) Plant(c int) Plant { return p.plants[c] }

// Products returns a copy of all products.
func (p *Problem) Products() []Product { return append([]Product(nil), p.products...) }

// Plants returns a copy of all plants.
func (p *Problem) Plants() []Plant { return append([]Plant(nil), p.plants...) }

// Currency returns the currency label of monetary values.
func (p *Problem) Currency() string { return p.currency }

// Share returns the load coefficient of product i on plant c.
func (p *Problem) Share(c, i int) float64 { return p.share.At(c, i) }

// ShareRow returns a copy of the coefficients of plant c.
func (p *Problem) ShareRow(c int) []float64 {
	return mat.Row(nil, c, p.share)
}

// ShareMatrix returns a copy of the plant x product share matrix.
func (p *Problem) ShareMatrix() *mat.Dense { return mat.DenseCopyOf(p.share) }

// Capacities returns the capacity of every plant.
func (p *Problem) Capacities() []float64 {
	out := make([]float64, len(p.plants))
	for c, pl := range p.plants {
		out[c] = pl.Capacity
	}
	return out
}

// Prices returns the price per unit of every product.
func (p *Problem) Prices() []float64 {
	return p.column(func(pr Product) float64 { return pr.PricePerUnit })
}

// Profits returns the profit per unit of every product.
func (p *Problem) Profits() []float64 {
	return p.column(func(pr Product) float64 { return pr.ProfitPerUnit })
}

// MinSales returns the minimum sales of every product.
func (p *Problem) MinSales() []float64 {
	return p.column(func(pr Product) float64 { return pr.MinSales })
}

// Box returns the feasible box of the problem.
func (p *Problem) Box() Box { return p.box.clone() }

func (p *Problem) column(get func(Product) float64) []float64 {
	out := make([]float64, len(p.products))
	for i, pr := range p.products {
		out[i] = get(pr)
	}
	return out
}
