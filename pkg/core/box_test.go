package core

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"
)

var _ = Describe("CapacityBounds", func() {
	It("should take the tightest plant over positive shares", func() {
		share := mat.NewDense(2, 2, []float64{
			1, 2,
			4, 0,
		})
		bounds, uncoupled := CapacityBounds(share, []float64{10, 12})
		Expect(bounds).To(Equal([]float64{3, 5}))
		Expect(uncoupled).To(Equal([]bool{false, false}))
	})

	It("should bound an uncoupled product by the total capacity", func() {
		share := mat.NewDense(2, 2, []float64{
			1, 0,
			1, 0,
		})
		bounds, uncoupled := CapacityBounds(share, []float64{10, 15})
		Expect(bounds[1]).To(Equal(25.0))
		Expect(uncoupled).To(Equal([]bool{false, true}))
		for _, b := range bounds {
			Expect(math.IsInf(b, 0) || math.IsNaN(b)).To(BeFalse())
		}
	})

	It("should ignore zero-capacity plants the product does not load", func() {
		share := mat.NewDense(2, 1, []float64{0, 1})
		bounds, _ := CapacityBounds(share, []float64{0, 8})
		Expect(bounds).To(Equal([]float64{8}))
	})
})

var _ = Describe("DeriveBox", func() {
	share := mat.NewDense(1, 3, []float64{1, 2, 0})
	capacities := []float64{10}

	It("should combine capacity, max sales and inventory", func() {
		box := DeriveBox(share, capacities,
			[]float64{100, 3, 100}, // inventory
			[]float64{1, 0, 2},     // min sales
			[]float64{4, 100, 30},  // max sales
		)
		Expect(box.Low).To(Equal([]float64{1, 0, 2}))
		Expect(box.High).To(Equal([]float64{4, 3, 10}))
		Expect(box.CapacityBound).To(Equal([]float64{10, 5, 10}))
		Expect(box.Uncoupled(2)).To(BeTrue())
		Expect(box.Dim()).To(Equal(3))
		Expect(box.Empty()).To(BeFalse())
	})

	It("should report an empty box without failing", func() {
		box := DeriveBox(share, capacities, []float64{100, 100, 100}, []float64{11, 0, 0}, []float64{50, 50, 50})
		Expect(box.Empty()).To(BeTrue())
	})

	It("should check containment with a tolerance", func() {
		box := DeriveBox(share, capacities, []float64{100, 100, 100}, []float64{1, 0, 0}, []float64{4, 5, 5})
		Expect(box.Contains([]float64{1, 5, 5}, 0)).To(BeTrue())
		Expect(box.Contains([]float64{4.001, 5, 5}, 0)).To(BeFalse())
		Expect(box.Contains([]float64{4.001, 5, 5}, 0.01)).To(BeTrue())
		Expect(box.Contains([]float64{1, 5}, 0)).To(BeFalse())
	})
})
