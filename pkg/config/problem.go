package config

import (
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

const (
	// DefaultKgPerUnit converts per-kg prices and profits to per-tonne values.
	DefaultKgPerUnit = 1000.0

	// DefaultCurrency is the currency label used in reports.
	DefaultCurrency = "MAD"
)

// ProductSpec describes one product. Price and Profit are given per kg;
// Inventory, MinSales and MaxSales are quantities in allocation units (t).
type ProductSpec struct {
	Name      string  `yaml:"name" json:"name"`
	Price     float64 `yaml:"price" json:"price"`
	Profit    float64 `yaml:"profit" json:"profit"`
	Inventory float64 `yaml:"inventory" json:"inventory"`
	MinSales  float64 `yaml:"minSales" json:"minSales"`
	MaxSales  float64 `yaml:"maxSales" json:"maxSales"`
}

// PlantSpec describes one shared capacity constraint.
// Shares holds the load coefficient of each product on this plant, in product order.
type PlantSpec struct {
	Name     string    `yaml:"name" json:"name"`
	Capacity float64   `yaml:"capacity" json:"capacity"`
	Shares   []float64 `yaml:"shares" json:"shares"`
}

// ProblemData is the injectable description of an allocation problem.
type ProblemData struct {
	// KgPerUnit is the number of kg in one allocation unit. Zero means DefaultKgPerUnit.
	KgPerUnit float64 `yaml:"kgPerUnit,omitempty" json:"kgPerUnit,omitempty"`

	// Currency labels monetary values in reports. Empty means DefaultCurrency.
	Currency string `yaml:"currency,omitempty" json:"currency,omitempty"`

	Products []ProductSpec `yaml:"products" json:"products"`
	Plants   []PlantSpec   `yaml:"plants" json:"plants"`
}

// SetDefaults fills zero-valued optional fields.
func (d *ProblemData) SetDefaults() {
	if d.KgPerUnit == 0 {
		d.KgPerUnit = DefaultKgPerUnit
	}
	if d.Currency == "" {
		d.Currency = DefaultCurrency
	}
}

// DeepCopy returns an independent copy of d.
func (d *ProblemData) DeepCopy() *ProblemData {
	if d == nil {
		return nil
	}
	out := *d
	out.Products = append([]ProductSpec(nil), d.Products...)
	out.Plants = make([]PlantSpec, len(d.Plants))
	for i, p := range d.Plants {
		out.Plants[i] = p
		out.Plants[i].Shares = append([]float64(nil), p.Shares...)
	}
	return &out
}

// Validate checks the problem for malformed input. It does not check that
// minimum sales fit inside the capacity-implied bounds; that is left to the solvers.
func (d *ProblemData) Validate() error {
	var errs field.ErrorList

	if d.KgPerUnit < 0 || !isFinite(d.KgPerUnit) {
		errs = append(errs, field.Invalid(field.NewPath("kgPerUnit"), d.KgPerUnit, "must be a finite, non-negative number"))
	}

	productsPath := field.NewPath("products")
	if len(d.Products) == 0 {
		errs = append(errs, field.Required(productsPath, "at least one product is required"))
	}
	names := make(map[string]int, len(d.Products))
	for i, p := range d.Products {
		path := productsPath.Index(i)
		if p.Name == "" {
			errs = append(errs, field.Required(path.Child("name"), ""))
		} else if _, dup := names[p.Name]; dup {
			errs = append(errs, field.Duplicate(path.Child("name"), p.Name))
		} else {
			names[p.Name] = i
		}
		errs = append(errs, nonNegative(path.Child("price"), p.Price)...)
		errs = append(errs, nonNegative(path.Child("profit"), p.Profit)...)
		errs = append(errs, nonNegative(path.Child("inventory"), p.Inventory)...)
		errs = append(errs, nonNegative(path.Child("minSales"), p.MinSales)...)
		errs = append(errs, nonNegative(path.Child("maxSales"), p.MaxSales)...)
		if p.MinSales > p.MaxSales {
			errs = append(errs, field.Invalid(path.Child("minSales"), p.MinSales,
				"must not exceed maxSales"))
		}
	}

	plantsPath := field.NewPath("plants")
	if len(d.Plants) == 0 {
		errs = append(errs, field.Required(plantsPath, "at least one plant is required"))
	}
	plantNames := make(map[string]int, len(d.Plants))
	for i, p := range d.Plants {
		path := plantsPath.Index(i)
		if p.Name == "" {
			errs = append(errs, field.Required(path.Child("name"), ""))
		} else if _, dup := plantNames[p.Name]; dup {
			errs = append(errs, field.Duplicate(path.Child("name"), p.Name))
		} else {
			plantNames[p.Name] = i
		}
		errs = append(errs, nonNegative(path.Child("capacity"), p.Capacity)...)
		if len(p.Shares) != len(d.Products) {
			errs = append(errs, field.Invalid(path.Child("shares"), len(p.Shares),
				"must hold one coefficient per product"))
			continue
		}
		for j, s := range p.Shares {
			errs = append(errs, nonNegative(path.Child("shares").Index(j), s)...)
		}
	}

	return errs.ToAggregate()
}

func nonNegative(path *field.Path, v float64) field.ErrorList {
	if !isFinite(v) {
		return field.ErrorList{field.Invalid(path, v, "must be finite")}
	}
	if v < 0 {
		return field.ErrorList{field.Invalid(path, v, "must be non-negative")}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
