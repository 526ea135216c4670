package solver

import (
	"context"
	"errors"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/YMAFTOUH/GA-and-LP/pkg/config"
	"github.com/YMAFTOUH/GA-and-LP/pkg/core"
)

var _ = Describe("GeneticSolver", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("should reject missing or invalid settings", func() {
		_, err := NewGeneticSolver(nil)
		Expect(err).To(HaveOccurred())

		spec := fastGeneticSpec(1)
		spec.KeepParents = spec.ParentsMating + 1
		_, err = NewGeneticSolver(spec)
		Expect(err).To(HaveOccurred())
	})

	Describe("Fitness", func() {
		p := instance([]float64{10}, [][]float64{{1, 2}}, []float64{0, 0}, []float64{4, 10}, []float64{1, 3})
		fitness := Fitness(p, -1e10, 1e-3)

		It("should penalize capacity overloads", func() {
			Expect(fitness([]float64{4, 4})).To(Equal(-1e10))
		})

		It("should penalize sales above the ceiling", func() {
			Expect(fitness([]float64{5, 0})).To(Equal(-1e10))
		})

		It("should trade slack first and profit second", func() {
			Expect(fitness([]float64{2, 3})).To(BeNumerically("~", -2+1e-3*11, 1e-12))
			Expect(fitness([]float64{0, 5})).To(BeNumerically(">", fitness([]float64{4, 3})))
		})
	})

	It("should refuse a penalty that a feasible allocation could reach", func() {
		p := instance([]float64{10}, [][]float64{{1, 1}}, []float64{0, 0}, []float64{3, 4}, []float64{1, 1})
		spec := fastGeneticSpec(1)
		spec.Penalty = -5
		_, err := geneticSolver(spec).Solve(ctx, p)
		Expect(errors.Is(err, ErrPenaltyTooHigh)).To(BeTrue())
	})

	Context("with the built-in data", func() {
		var (
			p   *core.Problem
			res *Result
		)

		BeforeEach(func() {
			p = defaultProblem()
			var err error
			res, err = geneticSolver(fastGeneticSpec(2024)).Solve(ctx, p)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return a reliable allocation inside the bounds", func() {
			Expect(res.Solver).To(Equal(GeneticName))
			Expect(res.Reliable).To(BeTrue())
			Expect(res.Objective).To(BeNumerically(">", config.DefaultPenalty))
			expectWithinBounds(p, res.Allocation, 0)
			Expect(p.Violates(res.Allocation)).To(BeFalse())
			Expect(res.Generations).To(BeNumerically(">", 0))
			Expect(res.Generations).To(BeNumerically("<=", 200))
			Expect(res.StopReason).NotTo(BeEmpty())
			Expect(res.Seed).To(Equal(uint64(2024)))
		})

		It("should clamp the profit weight below one unit of slack", func() {
			Expect(res.ProfitWeight).To(BeNumerically("<", config.DefaultProfitWeight))
			Expect(res.ProfitWeight * p.MaxProfit()).To(BeNumerically("<=", 0.5+1e-9))
			Expect(res.Objective).To(BeNumerically("~", -res.TotalSlack+res.ProfitWeight*res.Profit, 1e-6))
		})

		It("should never beat the exact minimal slack", func() {
			exact, err := linearSolver().Solve(ctx, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.TotalSlack).To(BeNumerically(">=", exact.MinimalSlack-1e-6))
			Expect(res.Profit).To(BeNumerically(">=", p.Profit(p.MinSales())))
		})

		It("should reproduce a seeded run", func() {
			again, err := geneticSolver(fastGeneticSpec(2024)).Solve(ctx, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(cmp.Diff(res, again)).To(BeEmpty())
		})

		It("should give the same result with parallel fitness evaluation", func() {
			spec := fastGeneticSpec(2024)
			spec.Workers = 4
			parallel, err := geneticSolver(spec).Solve(ctx, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(cmp.Diff(res, parallel)).To(BeEmpty())
		})
	})

	It("should draw and report a seed when none is configured", func() {
		p := instance([]float64{10}, [][]float64{{1, 1}}, []float64{0, 0}, []float64{3, 4}, []float64{1, 1})
		res, err := geneticSolver(fastGeneticSpec(0)).Solve(ctx, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Seed).NotTo(BeZero())
	})

	It("should approach the exact optimum on a small instance", func() {
		p := instance([]float64{10}, [][]float64{{1, 1}}, []float64{0, 0}, []float64{3, 4}, []float64{1, 1})
		res, err := geneticSolver(fastGeneticSpec(7)).Solve(ctx, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Reliable).To(BeTrue())
		Expect(res.TotalSlack).To(BeNumerically(">=", 3-1e-9))
		Expect(res.TotalSlack).To(BeNumerically("<", 3.5))
	})

	It("should mark the result unreliable when every candidate is penalized", func() {
		p := instance([]float64{10}, [][]float64{{1, 1}}, []float64{6, 6}, []float64{10, 10}, []float64{1, 1})
		spec := fastGeneticSpec(3)
		res, err := geneticSolver(spec).Solve(ctx, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Reliable).To(BeFalse())
		Expect(res.Objective).To(Equal(spec.Penalty))
		Expect(res.StopReason).To(ContainSubstring("saturated"))
	})

	It("should report cancellation", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := geneticSolver(fastGeneticSpec(1)).Solve(cctx, defaultProblem())
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})
})
