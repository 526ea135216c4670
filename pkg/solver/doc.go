// Package solver implements the two allocation strategies: a genetic search
// and an exact two-phase linear program.
//
// Both strategies work on an immutable core.Problem and pursue the same
// lexicographic objective: minimize total slack first, then maximize profit
// among slack-minimal allocations.
//
// Key Components:
//
//   - GeneticSolver: heuristic search scoring candidates with -slack + ε·profit
//   - LinearSolver: phase 1 minimizes slack, phase 2 maximizes profit with
//     total slack pinned to the phase 1 optimum
//   - Optimizer: runs several solvers concurrently and collects their results
//   - Solver: interface implemented by both strategies
//
// Example usage:
//
//	problem, err := core.NewProblem(config.DefaultProblemData())
//	if err != nil {
//	    return err
//	}
//
//	lin, _ := solver.NewLinearSolver(&linearSpec)
//	ga, _ := solver.NewGeneticSolver(&geneticSpec)
//	opt := solver.NewOptimizer([]solver.Solver{lin, ga})
//
//	outcomes, err := opt.Optimize(ctx, problem)
//	for _, o := range outcomes {
//	    if o.Err != nil {
//	        log.Error(o.Err, "solver failed", "solver", o.Solver)
//	        continue
//	    }
//	    log.Info("allocation",
//	        "solver", o.Solver,
//	        "totalSlack", o.Result.TotalSlack,
//	        "profit", o.Result.Profit,
//	        "reliable", o.Result.Reliable)
//	}
//
// Errors:
//
//   - The linear solver fails with a *PhaseError wrapping ErrInfeasibleModel
//     when a phase has no feasible point.
//   - The genetic solver never fails on an infeasible problem: it returns its
//     best candidate with Reliable=false and the penalty as fitness.
package solver
