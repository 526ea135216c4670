// Package core provides the immutable allocation model shared by every solver.
//
// This package contains the domain types of the allocation problem:
//
//   - Product: per-tonne economics and sales/inventory bounds
//   - Plant: a shared capacity constraint
//   - Problem: products, plants and the capacity-share matrix
//   - Box: the per-product feasible interval derived from the problem
//   - Allocation: one quantity per product, as returned by a solver
//
// Example usage:
//
//	problem, err := core.NewProblem(config.DefaultProblemData())
//	if err != nil {
//	    return err
//	}
//
//	box := problem.Box()
//	x := core.Allocation(box.High)
//	log.Info("allocation at upper bounds",
//	    "totalSlack", problem.TotalSlack(x),
//	    "profit", problem.Profit(x))
//
// A Problem never changes after construction; WithCapacity returns a new
// Problem, so one instance can be shared by solvers running concurrently.
package core
