package config

// DefaultProblemData returns the reference instance: five sugar products
// allocated across four producing companies. Economics are per kg, quantities in tonnes.
func DefaultProblemData() *ProblemData {
	return &ProblemData{
		KgPerUnit: DefaultKgPerUnit,
		Currency:  DefaultCurrency,
		Products: []ProductSpec{
			{Name: "Pain", Price: 6.25, Profit: 1.20, Inventory: 708_289.13, MinSales: 321_949.61, MaxSales: 643_899.21},
			{Name: "Morceau", Price: 6.10, Profit: 1.40, Inventory: 38_392.92, MinSales: 17_451.33, MaxSales: 34_902.65},
			{Name: "Lingot", Price: 6.10, Profit: 1.60, Inventory: 271_416.12, MinSales: 123_370.97, MaxSales: 246_741.93},
			{Name: "GR-PCDT", Price: 5.25, Profit: 1.30, Inventory: 490_729.26, MinSales: 223_058.76, MaxSales: 446_117.51},
			{Name: "GR-GCDT", Price: 4.00, Profit: 0.90, Inventory: 1_703_390.77, MinSales: 774_268.53, MaxSales: 1_548_537.06},
		},
		Plants: []PlantSpec{
			{Name: "COSUMAR", Capacity: 2_429_521.6, Shares: []float64{0.19203, 0.06108, 0.48351, 0.08322, 0.01214}},
			{Name: "SUTA", Capacity: 210_078.47, Shares: []float64{0.02847, 0.01799, 0.02438, 0.00128, 0.00000}},
			{Name: "SURAC", Capacity: 88_577.76, Shares: []float64{0.00000, 0.02570, 0.00463, 0.00000, 0.00000}},
			{Name: "SUNABEL", Capacity: 192_020.53, Shares: []float64{0.00000, 0.04800, 0.01776, 0.00000, 0.00000}},
		},
	}
}
