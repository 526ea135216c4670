package solver

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/YMAFTOUH/GA-and-LP/pkg/config"
	"github.com/YMAFTOUH/GA-and-LP/pkg/core"
)

const lpTol = 1e-6

var _ = Describe("LinearSolver", func() {
	var (
		ctx context.Context
		s   *LinearSolver
	)

	BeforeEach(func() {
		ctx = context.Background()
		s = linearSolver()
	})

	It("should reject missing or invalid settings", func() {
		_, err := NewLinearSolver(nil)
		Expect(err).To(HaveOccurred())

		spec := config.DefaultLinearSpec()
		spec.FeasibilityTolerance = 0
		_, err = NewLinearSolver(&spec)
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("hand-computed instances",
		func(p *core.Problem, wantSlack float64, wantX []float64, wantProfit float64) {
			res, err := s.Solve(ctx, p)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Solver).To(Equal(LinearName))
			Expect(res.Reliable).To(BeTrue())
			Expect(res.MinimalSlack).To(BeNumerically("~", wantSlack, lpTol))
			Expect(res.TotalSlack).To(BeNumerically("~", wantSlack, lpTol))
			Expect(cmp.Diff(wantX, []float64(res.Allocation), cmpopts.EquateApprox(0, lpTol))).To(BeEmpty())
			Expect(res.Profit).To(BeNumerically("~", wantProfit, lpTol))
			Expect(res.Objective).To(BeNumerically("~", wantProfit, lpTol))

			Expect(res.Phases).To(HaveLen(2))
			for _, ph := range res.Phases {
				Expect(ph.Success).To(BeTrue())
				Expect(ph.Status).To(Equal("optimal"))
			}
			Expect(res.Phases[0].Phase).To(Equal(PhaseMinSlack))
			Expect(res.Phases[1].Phase).To(Equal(PhaseMaxProfit))
		},
		Entry("capacity can be filled exactly",
			instance([]float64{10}, [][]float64{{1, 2}}, []float64{0, 0}, []float64{4, 10}, []float64{1, 3}),
			0.0, []float64{0, 5}, 15.0),
		Entry("sales ceilings leave slack",
			instance([]float64{10}, [][]float64{{1, 1}}, []float64{0, 0}, []float64{3, 4}, []float64{1, 1}),
			3.0, []float64{3, 4}, 7.0),
		Entry("profit is maximized only among slack-minimal allocations",
			instance([]float64{10, 10}, [][]float64{{1, 1}, {0, 1}}, []float64{0, 0}, []float64{10, 10}, []float64{5, 1}),
			0.0, []float64{0, 10}, 10.0),
		Entry("product loading no plant is capped by its sales",
			instance([]float64{10}, [][]float64{{1, 0}}, []float64{0, 0}, []float64{20, 6}, []float64{1, 1}),
			0.0, []float64{10, 6}, 16.0),
	)

	It("should fail phase 1 on an infeasible model", func() {
		p := instance([]float64{10}, [][]float64{{1, 1}}, []float64{6, 6}, []float64{10, 10}, []float64{1, 1})
		res, err := s.Solve(ctx, p)
		Expect(res).To(BeNil())
		Expect(errors.Is(err, ErrInfeasibleModel)).To(BeTrue())

		var perr *PhaseError
		Expect(errors.As(err, &perr)).To(BeTrue())
		Expect(perr.Phase).To(Equal(PhaseMinSlack))
		Expect(perr.Status.Success).To(BeFalse())
		Expect(perr.Status.Status).To(Equal("infeasible"))
		Expect(err.Error()).To(ContainSubstring("phase 1"))
	})

	It("should stop between phases when the context is cancelled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.Solve(cctx, defaultProblem())
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})

	Context("with the built-in data", func() {
		var (
			p   *core.Problem
			res *Result
		)

		BeforeEach(func() {
			p = defaultProblem()
			var err error
			res, err = s.Solve(ctx, p)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should solve both phases", func() {
			Expect(res.Phases).To(HaveLen(2))
			Expect(res.Phases[0].Success).To(BeTrue())
			Expect(res.Phases[1].Success).To(BeTrue())
			Expect(res.TotalSlack).To(BeNumerically(">=", 0))
			Expect(res.Profit).To(BeNumerically(">", 0))
			Expect(res.Profit).To(BeNumerically(">=", p.Profit(p.MinSales())))
		})

		It("should sell every product at its maximum", func() {
			expectWithinBounds(p, res.Allocation, 1e-3)
			Expect(cmp.Diff(p.Box().High, []float64(res.Allocation), cmpopts.EquateApprox(1e-9, 1e-3))).To(BeEmpty())
			Expect(res.MinimalSlack).To(BeNumerically("~", 2_585_548.0262107, 1e-2))
			Expect(res.Profit).To(BeNumerically("~", 3_189_965_967, 1))
			Expect(res.Revenue).To(BeNumerically(">", res.Profit))
		})

		It("should respect every capacity", func() {
			for c, load := range p.Loads(res.Allocation) {
				Expect(load).To(BeNumerically("<=", p.Plant(c).Capacity+1e-6*p.Plant(c).Capacity))
			}
			Expect(res.Slack).To(HaveLen(p.NumPlants()))
		})

		It("should be idempotent", func() {
			again, err := s.Solve(ctx, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(again.TotalSlack).To(BeNumerically("~", res.TotalSlack, 1e-6))
			Expect(again.Profit).To(BeNumerically("~", res.Profit, 1e-6))
		})

		It("should not be beaten by any sampled allocation", func() {
			rng := rand.New(rand.NewPCG(5, 5))
			box := p.Box()
			for range 2000 {
				x := make([]float64, box.Dim())
				for i := range x {
					x[i] = box.Low[i] + rng.Float64()*(box.High[i]-box.Low[i])
				}
				if p.Violates(x) {
					continue
				}
				slack := p.TotalSlack(x)
				Expect(slack).To(BeNumerically(">=", res.MinimalSlack-1e-6))
				if math.Abs(slack-res.MinimalSlack) < 1e-6 {
					Expect(p.Profit(x)).To(BeNumerically("<=", res.Profit+1e-6))
				}
			}
		})

		It("should keep the maximal load non-decreasing when a capacity grows", func() {
			const delta = 10_000.0
			baseLoad := sumCapacities(p) - res.MinimalSlack
			for c := range p.NumPlants() {
				q, err := p.WithCapacity(c, p.Plant(c).Capacity+delta)
				Expect(err).NotTo(HaveOccurred())
				grown, err := s.Solve(ctx, q)
				Expect(err).NotTo(HaveOccurred())

				Expect(sumCapacities(q) - grown.MinimalSlack).To(BeNumerically(">=", baseLoad-1e-2))
				Expect(grown.MinimalSlack).To(BeNumerically("<=", res.MinimalSlack+delta+1e-2))
			}
		})
	})

	It("should not increase the minimal slack when extra capacity can be absorbed", func() {
		p := instance([]float64{10}, [][]float64{{1, 1}}, []float64{0, 0}, []float64{6, 6}, []float64{1, 2})
		before, err := s.Solve(ctx, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(before.MinimalSlack).To(BeNumerically("~", 0, lpTol))

		q, err := p.WithCapacity(0, 11)
		Expect(err).NotTo(HaveOccurred())
		after, err := s.Solve(ctx, q)
		Expect(err).NotTo(HaveOccurred())
		Expect(after.MinimalSlack).To(BeNumerically("<=", before.MinimalSlack+lpTol))
		Expect(after.Profit).To(BeNumerically(">", before.Profit))
	})
})

func sumCapacities(p *core.Problem) float64 {
	total := 0.0
	for _, c := range p.Capacities() {
		total += c
	}
	return total
}
