// Package config provides the data types that describe an allocation problem
// and the settings of the solvers that work on it.
//
// Configuration Types:
//
//   - ProblemData: products, plants and the capacity-share matrix
//   - ProductSpec: per-product economics (per kg) and sales/inventory bounds (t)
//   - PlantSpec: plant capacity (t) and its share coefficient per product
//   - GeneticSpec: genetic search parameters
//   - LinearSpec: two-phase linear program tolerances
//
// Configuration Sources:
//
//  1. YAML/JSON problem files (LoadProblemFile)
//  2. Compiled-in reference data (DefaultProblemData)
//  3. Solver settings loaded by internal/config (file, environment, flags)
//
// Example usage:
//
//	// Load a problem from disk, falling back to the reference instance
//	data, err := config.LoadProblemFile("problem.yaml")
//	if err != nil {
//	    log.Error(err, "failed to load problem")
//	    data = config.DefaultProblemData()
//	}
//
//	// Solver settings start from the reference values
//	spec := config.DefaultGeneticSpec()
//	spec.Seed = 42
//	if err := spec.Validate(); err != nil {
//	    return err
//	}
//
// Configuration Validation:
//
// All configuration values are validated on load:
//   - Dimensions (one share coefficient per product on every plant)
//   - Numeric ranges (non-negative, finite quantities and coefficients)
//   - Cross-field constraints (min sales <= max sales, keep parents < population)
//
// Validation errors are reported as a field.ErrorList aggregate so every
// problem with an input is listed at once.
package config
