package solver

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/YMAFTOUH/GA-and-LP/pkg/config"
	"github.com/YMAFTOUH/GA-and-LP/pkg/core"
)

type stubSolver struct {
	name string
	res  *Result
	err  error
}

func (s *stubSolver) Name() string { return s.name }

func (s *stubSolver) Solve(context.Context, *core.Problem) (*Result, error) {
	return s.res, s.err
}

type recordedRun struct {
	solver string
	failed bool
}

type fakeRecorder struct {
	mu   sync.Mutex
	runs []recordedRun
}

func (r *fakeRecorder) ObserveRun(solver string, _ time.Duration, _ *Result, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, recordedRun{solver: solver, failed: err != nil})
}

var _ = Describe("Optimizer", func() {
	It("should collect every outcome even when one solver fails", func() {
		failure := errors.New("boom")
		rec := &fakeRecorder{}
		opt := NewOptimizer([]Solver{
			&stubSolver{name: "first", err: failure},
			&stubSolver{name: "second", res: &Result{Solver: "second", Reliable: true}},
		}, WithRecorder(rec))

		outcomes, err := opt.Optimize(context.Background(), nil)
		Expect(err).To(MatchError(ContainSubstring("first: boom")))
		Expect(errors.Is(err, failure)).To(BeTrue())

		Expect(outcomes).To(HaveLen(2))
		Expect(outcomes[0].Solver).To(Equal("first"))
		Expect(outcomes[0].Err).To(MatchError(failure))
		Expect(outcomes[1].Solver).To(Equal("second"))
		Expect(outcomes[1].Err).NotTo(HaveOccurred())
		Expect(outcomes[1].Result.Reliable).To(BeTrue())

		Expect(rec.runs).To(ConsistOf(
			recordedRun{solver: "first", failed: true},
			recordedRun{solver: "second", failed: false},
		))
	})

	It("should run both strategies on the built-in data", func() {
		settings := config.DefaultSolverSettings()
		settings.Genetic = *fastGeneticSpec(11)

		var solvers []Solver
		for _, strategy := range AllStrategies {
			s, err := NewSolver(strategy, settings)
			Expect(err).NotTo(HaveOccurred())
			solvers = append(solvers, s)
		}

		outcomes, err := NewOptimizer(solvers).Optimize(context.Background(), defaultProblem())
		Expect(err).NotTo(HaveOccurred())
		Expect(outcomes).To(HaveLen(2))
		Expect(outcomes[0].Solver).To(Equal(GeneticName))
		Expect(outcomes[1].Solver).To(Equal(LinearName))

		ga, lp := outcomes[0].Result, outcomes[1].Result
		Expect(ga.TotalSlack).To(BeNumerically(">=", lp.MinimalSlack-1e-6))
		Expect(outcomes[1].Duration).To(BeNumerically(">", 0))
	})

	It("should report the linear failure without stopping the genetic search", func() {
		settings := config.DefaultSolverSettings()
		settings.Genetic = *fastGeneticSpec(5)
		ga, err := NewSolver(GeneticStrategy, settings)
		Expect(err).NotTo(HaveOccurred())
		lin, err := NewSolver(LinearStrategy, settings)
		Expect(err).NotTo(HaveOccurred())

		p := instance([]float64{10}, [][]float64{{1, 1}}, []float64{6, 6}, []float64{10, 10}, []float64{1, 1})
		outcomes, err := NewOptimizer([]Solver{ga, lin}).Optimize(context.Background(), p)
		Expect(errors.Is(err, ErrInfeasibleModel)).To(BeTrue())
		Expect(outcomes[0].Err).NotTo(HaveOccurred())
		Expect(outcomes[0].Result.Reliable).To(BeFalse())
		Expect(outcomes[1].Result).To(BeNil())
	})
})
