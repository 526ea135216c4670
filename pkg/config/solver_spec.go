package config

import (
	"errors"

	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"
)

// Reference genetic search settings.
const (
	DefaultGenerations          = 1200
	DefaultPopulationSize       = 150
	DefaultParentsMating        = 40
	DefaultKeepParents          = 30
	DefaultTournamentSize       = 3
	DefaultMutationPercentGenes = 35.0
	DefaultSaturation           = 150
	DefaultPenalty              = -1e10
	DefaultProfitWeight         = 1e-6
)

// Reference linear program settings.
const (
	DefaultSimplexTolerance     = 1e-10
	DefaultFeasibilityTolerance = 1e-7
)

// GeneticSpec holds the parameters of the genetic search.
type GeneticSpec struct {
	// Generations is the generation budget.
	Generations int `yaml:"generations" json:"generations" mapstructure:"generations"`

	// PopulationSize is the number of candidates per generation.
	PopulationSize int `yaml:"populationSize" json:"populationSize" mapstructure:"populationSize"`

	// ParentsMating is the number of parents selected each generation.
	ParentsMating int `yaml:"parentsMating" json:"parentsMating" mapstructure:"parentsMating"`

	// KeepParents is the number of best parents copied unchanged into the next generation.
	KeepParents int `yaml:"keepParents" json:"keepParents" mapstructure:"keepParents"`

	// TournamentSize is the number of candidates competing in each selection tournament.
	TournamentSize int `yaml:"tournamentSize" json:"tournamentSize" mapstructure:"tournamentSize"`

	// MutationPercentGenes is the share of genes (0-100] re-sampled in every offspring.
	MutationPercentGenes float64 `yaml:"mutationPercentGenes" json:"mutationPercentGenes" mapstructure:"mutationPercentGenes"`

	// Saturation stops the search after this many generations without improvement. Zero disables it.
	Saturation int `yaml:"saturation" json:"saturation" mapstructure:"saturation"`

	// Penalty is the fitness given to candidates that break a bound or a capacity.
	Penalty float64 `yaml:"penalty" json:"penalty" mapstructure:"penalty"`

	// ProfitWeight scales profit against slack in the fitness.
	ProfitWeight float64 `yaml:"profitWeight" json:"profitWeight" mapstructure:"profitWeight"`

	// Seed seeds the random source. Zero draws a fresh seed per run.
	Seed uint64 `yaml:"seed,omitempty" json:"seed,omitempty" mapstructure:"seed"`

	// Workers is the number of goroutines evaluating fitness. Zero or one evaluates sequentially.
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty" mapstructure:"workers"`
}

// DefaultGeneticSpec returns the reference genetic search settings.
func DefaultGeneticSpec() GeneticSpec {
	return GeneticSpec{
		Generations:          DefaultGenerations,
		PopulationSize:       DefaultPopulationSize,
		ParentsMating:        DefaultParentsMating,
		KeepParents:          DefaultKeepParents,
		TournamentSize:       DefaultTournamentSize,
		MutationPercentGenes: DefaultMutationPercentGenes,
		Saturation:           DefaultSaturation,
		Penalty:              DefaultPenalty,
		ProfitWeight:         DefaultProfitWeight,
	}
}

// Validate checks for invalid genetic search settings.
func (s *GeneticSpec) Validate() error {
	var errs field.ErrorList
	root := field.NewPath("genetic")

	if s.Generations < 1 {
		errs = append(errs, field.Invalid(root.Child("generations"), s.Generations, "must be at least 1"))
	}
	if s.PopulationSize < 2 {
		errs = append(errs, field.Invalid(root.Child("populationSize"), s.PopulationSize, "must be at least 2"))
	}
	if s.ParentsMating < 2 || s.ParentsMating > s.PopulationSize {
		errs = append(errs, field.Invalid(root.Child("parentsMating"), s.ParentsMating,
			"must be between 2 and populationSize"))
	}
	if s.KeepParents < 0 || s.KeepParents > s.ParentsMating || s.KeepParents >= s.PopulationSize {
		errs = append(errs, field.Invalid(root.Child("keepParents"), s.KeepParents,
			"must be between 0 and parentsMating and below populationSize"))
	}
	if s.TournamentSize < 1 {
		errs = append(errs, field.Invalid(root.Child("tournamentSize"), s.TournamentSize, "must be at least 1"))
	}
	if !(s.MutationPercentGenes > 0 && s.MutationPercentGenes <= 100) {
		errs = append(errs, field.Invalid(root.Child("mutationPercentGenes"), s.MutationPercentGenes,
			"must be in (0, 100]"))
	}
	if s.Saturation < 0 {
		errs = append(errs, field.Invalid(root.Child("saturation"), s.Saturation, "must be >= 0"))
	}
	if !isFinite(s.Penalty) || s.Penalty >= 0 {
		errs = append(errs, field.Invalid(root.Child("penalty"), s.Penalty, "must be a finite negative number"))
	}
	if !isFinite(s.ProfitWeight) || s.ProfitWeight < 0 {
		errs = append(errs, field.Invalid(root.Child("profitWeight"), s.ProfitWeight, "must be a finite, non-negative number"))
	}
	if s.Workers < 0 {
		errs = append(errs, field.Invalid(root.Child("workers"), s.Workers, "must be >= 0"))
	}
	return errs.ToAggregate()
}

// LinearSpec holds the settings of the two-phase linear program.
type LinearSpec struct {
	// Tolerance is the simplex optimality tolerance on reduced costs.
	Tolerance float64 `yaml:"tolerance" json:"tolerance" mapstructure:"tolerance"`

	// FeasibilityTolerance is the relative residual allowed on equality rows.
	FeasibilityTolerance float64 `yaml:"feasibilityTolerance" json:"feasibilityTolerance" mapstructure:"feasibilityTolerance"`

	// Scale rescales right-hand sides and bounds before solving. Nil means true.
	Scale *bool `yaml:"scale,omitempty" json:"scale,omitempty" mapstructure:"scale"`
}

// DefaultLinearSpec returns the reference linear program settings.
func DefaultLinearSpec() LinearSpec {
	return LinearSpec{
		Tolerance:            DefaultSimplexTolerance,
		FeasibilityTolerance: DefaultFeasibilityTolerance,
	}
}

// ScalingEnabled reports whether the model is rescaled before solving.
func (s *LinearSpec) ScalingEnabled() bool {
	return ptr.Deref(s.Scale, true)
}

// Validate checks for invalid linear program settings.
func (s *LinearSpec) Validate() error {
	var errs field.ErrorList
	root := field.NewPath("linear")
	if !isFinite(s.Tolerance) || s.Tolerance <= 0 || s.Tolerance >= 1 {
		errs = append(errs, field.Invalid(root.Child("tolerance"), s.Tolerance, "must be in (0, 1)"))
	}
	if !isFinite(s.FeasibilityTolerance) || s.FeasibilityTolerance <= 0 || s.FeasibilityTolerance >= 1 {
		errs = append(errs, field.Invalid(root.Child("feasibilityTolerance"), s.FeasibilityTolerance, "must be in (0, 1)"))
	}
	return errs.ToAggregate()
}

// SolverSettings bundles the settings of both strategies.
type SolverSettings struct {
	Genetic GeneticSpec `yaml:"genetic" json:"genetic" mapstructure:"genetic"`
	Linear  LinearSpec  `yaml:"linear" json:"linear" mapstructure:"linear"`
}

// DefaultSolverSettings returns the reference settings of both strategies.
func DefaultSolverSettings() SolverSettings {
	return SolverSettings{
		Genetic: DefaultGeneticSpec(),
		Linear:  DefaultLinearSpec(),
	}
}

// Validate checks the settings of both strategies.
func (s *SolverSettings) Validate() error {
	return errors.Join(s.Genetic.Validate(), s.Linear.Validate())
}
