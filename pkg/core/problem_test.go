package core

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/YMAFTOUH/GA-and-LP/pkg/config"
)

func smallData() *config.ProblemData {
	return &config.ProblemData{
		KgPerUnit: 1,
		Products: []config.ProductSpec{
			{Name: "A", Price: 2, Profit: 1, Inventory: 4, MaxSales: 4},
			{Name: "B", Price: 5, Profit: 3, Inventory: 10, MaxSales: 10},
		},
		Plants: []config.PlantSpec{
			{Name: "P", Capacity: 10, Shares: []float64{1, 2}},
		},
	}
}

var _ = Describe("Problem", func() {
	Context("with the built-in data", func() {
		var p *Problem

		BeforeEach(func() {
			var err error
			p, err = NewProblem(config.DefaultProblemData())
			Expect(err).NotTo(HaveOccurred())
		})

		It("should convert per-kg economics to per-tonne", func() {
			Expect(p.NumProducts()).To(Equal(5))
			Expect(p.NumPlants()).To(Equal(4))
			Expect(p.Product(0).PricePerUnit).To(BeNumerically("~", 6250, 1e-9))
			Expect(p.Product(0).ProfitPerUnit).To(BeNumerically("~", 1200, 1e-9))
			Expect(p.Currency()).To(Equal("MAD"))
		})

		It("should bound every product by its maximum sales", func() {
			box := p.Box()
			for i, pr := range p.Products() {
				Expect(box.Low[i]).To(Equal(pr.MinSales))
				Expect(box.High[i]).To(Equal(pr.MaxSales))
				Expect(box.Uncoupled(i)).To(BeFalse())
			}
			Expect(box.Empty()).To(BeFalse())
		})

		It("should compute slack and profit at maximum sales", func() {
			x := p.Box().High
			Expect(p.Violates(x)).To(BeFalse())
			Expect(p.TotalSlack(x)).To(BeNumerically("~", 2_585_548.0262107, 1e-3))
			Expect(p.Profit(x)).To(BeNumerically("~", 3_189_965_967, 1e-2))
			Expect(p.MaxProfit()).To(BeNumerically("~", 3_189_965_967, 1e-2))
			Expect(p.Profit(p.MinSales())).To(BeNumerically("~", 1_594_983_011, 1))
		})
	})

	Context("with a small instance", func() {
		var p *Problem

		BeforeEach(func() {
			var err error
			p, err = NewProblem(smallData())
			Expect(err).NotTo(HaveOccurred())
		})

		It("should evaluate allocations", func() {
			x := []float64{2, 3}
			Expect(p.Loads(x)).To(Equal([]float64{8}))
			Expect(p.Utilization(x)).To(Equal([]float64{2}))
			Expect(p.Slack(x)).To(Equal([]float64{2}))
			Expect(p.TotalSlack(x)).To(Equal(2.0))
			Expect(p.Profit(x)).To(Equal(11.0))
			Expect(p.Revenue(x)).To(Equal(19.0))
			Expect(p.CapacityExcess(x)).To(Equal(0.0))
		})

		It("should detect violations", func() {
			Expect(p.Violates([]float64{4, 4})).To(BeTrue())
			Expect(p.CapacityExcess([]float64{4, 4})).To(Equal(2.0))
			Expect(p.Slack([]float64{4, 4})).To(Equal([]float64{0}))
			Expect(p.Violates([]float64{5, 0})).To(BeTrue())
			Expect(p.Violates([]float64{4, 3})).To(BeFalse())
		})

		It("should return copies", func() {
			row := p.ShareRow(0)
			row[0] = 99
			Expect(p.Share(0, 0)).To(Equal(1.0))

			box := p.Box()
			box.High[0] = 99
			Expect(p.Box().High[0]).To(Equal(4.0))

			m := p.ShareMatrix()
			m.Set(0, 1, 99)
			Expect(p.Share(0, 1)).To(Equal(2.0))
		})

		It("should not be affected by later changes to its data", func() {
			data := smallData()
			q, err := NewProblem(data)
			Expect(err).NotTo(HaveOccurred())
			data.Plants[0].Shares[0] = 7
			data.Products[0].MaxSales = 0
			Expect(q.Share(0, 0)).To(Equal(1.0))
			Expect(q.Box().High[0]).To(Equal(4.0))
		})

		It("should change one capacity without touching the original", func() {
			q, err := p.WithCapacity(0, 20)
			Expect(err).NotTo(HaveOccurred())
			Expect(q.Plant(0).Capacity).To(Equal(20.0))
			Expect(q.Box().CapacityBound).To(Equal([]float64{20, 10}))
			Expect(p.Plant(0).Capacity).To(Equal(10.0))
			Expect(p.Box().CapacityBound).To(Equal([]float64{10, 5}))

			_, err = p.WithCapacity(3, 1)
			Expect(err).To(HaveOccurred())
			_, err = p.WithCapacity(0, -1)
			Expect(err).To(HaveOccurred())
		})
	})

	It("should reject malformed data", func() {
		_, err := NewProblem(nil)
		Expect(err).To(HaveOccurred())

		data := smallData()
		data.Plants[0].Shares = []float64{1}
		_, err = NewProblem(data)
		Expect(err).To(MatchError(ContainSubstring("plants[0].shares")))
	})
})

var _ = Describe("Allocation", func() {
	It("should round, total and clone", func() {
		a := Allocation{1.4, 2.5, 3.6}
		Expect(a.Round()).To(Equal(Allocation{1, 3, 4}))
		Expect(a.Total()).To(BeNumerically("~", 7.5, 1e-12))

		b := a.Clone()
		b[0] = 9
		Expect(a[0]).To(Equal(1.4))
	})
})
