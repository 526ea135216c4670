// Package config loads the run settings of the allocator CLI from a settings
// file, ALLOCATOR_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/YMAFTOUH/GA-and-LP/internal/limiter"
	"github.com/YMAFTOUH/GA-and-LP/internal/logging"
	pkgconfig "github.com/YMAFTOUH/GA-and-LP/pkg/config"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ALLOCATOR"

// DefaultSolvers selects every solver.
var DefaultSolvers = []string{"all"}

// LogSettings configures the logger.
type LogSettings struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`

	// File, if set, receives the logs instead of stderr and is rotated.
	File       string `mapstructure:"file" yaml:"file,omitempty"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB" yaml:"maxSizeMB,omitempty"`
	MaxBackups int    `mapstructure:"maxBackups" yaml:"maxBackups,omitempty"`
	MaxAgeDays int    `mapstructure:"maxAgeDays" yaml:"maxAgeDays,omitempty"`
	Compress   bool   `mapstructure:"compress" yaml:"compress,omitempty"`
}

// NewLogger builds the logger described by the settings.
func (l LogSettings) NewLogger() (logr.Logger, error) {
	if l.File == "" {
		return logging.NewLogger(l.Level, l.Format)
	}
	return logging.NewFileLogger(l.Level, l.Format, logging.FileOptions{
		Path:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	})
}

// Settings holds everything a solve run needs besides the problem data.
type Settings struct {
	// ProblemFile is the path of the problem document. Empty uses the built-in data.
	ProblemFile string `mapstructure:"problem" yaml:"problem,omitempty"`

	// Solvers names the strategies to run: genetic, linear or all.
	Solvers []string `mapstructure:"solvers" yaml:"solvers"`

	// MetricsFile, if set, receives the solver metrics in text format.
	MetricsFile string `mapstructure:"metricsFile" yaml:"metricsFile,omitempty"`

	// RoundSales rounds genetic allocations to whole units in reports.
	RoundSales bool `mapstructure:"roundSales" yaml:"roundSales"`

	// Rounding selects how sales are rounded: nearest or capacity.
	Rounding string `mapstructure:"rounding" yaml:"rounding"`

	Log LogSettings `mapstructure:"log" yaml:"log"`

	Genetic pkgconfig.GeneticSpec `mapstructure:"genetic" yaml:"genetic"`
	Linear  pkgconfig.LinearSpec  `mapstructure:"linear" yaml:"linear"`
}

// flagKeys maps command-line flag names to settings keys.
var flagKeys = map[string]string{
	"problem":      "problem",
	"solver":       "solvers",
	"metrics-file": "metricsFile",
	"round-sales":  "roundSales",
	"rounding":     "rounding",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"log-file":     "log.file",
	"seed":         "genetic.seed",
	"workers":      "genetic.workers",
	"generations":  "genetic.generations",
}

// Load reads the settings. configFile may be empty; flags may be nil. Only
// flags that are defined in flags are bound.
func Load(configFile string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	s.Solvers = splitList(s.Solvers)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("problem", "")
	v.SetDefault("solvers", DefaultSolvers)
	v.SetDefault("metricsFile", "")
	v.SetDefault("roundSales", false)
	v.SetDefault("rounding", limiter.NearestName)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatConsole)
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxSizeMB", 0)
	v.SetDefault("log.maxBackups", 0)
	v.SetDefault("log.maxAgeDays", 0)
	v.SetDefault("log.compress", false)

	g := pkgconfig.DefaultGeneticSpec()
	v.SetDefault("genetic.generations", g.Generations)
	v.SetDefault("genetic.populationSize", g.PopulationSize)
	v.SetDefault("genetic.parentsMating", g.ParentsMating)
	v.SetDefault("genetic.keepParents", g.KeepParents)
	v.SetDefault("genetic.tournamentSize", g.TournamentSize)
	v.SetDefault("genetic.mutationPercentGenes", g.MutationPercentGenes)
	v.SetDefault("genetic.saturation", g.Saturation)
	v.SetDefault("genetic.penalty", g.Penalty)
	v.SetDefault("genetic.profitWeight", g.ProfitWeight)
	v.SetDefault("genetic.seed", g.Seed)
	v.SetDefault("genetic.workers", g.Workers)

	l := pkgconfig.DefaultLinearSpec()
	v.SetDefault("linear.tolerance", l.Tolerance)
	v.SetDefault("linear.feasibilityTolerance", l.FeasibilityTolerance)
}

// SolverSettings returns the genetic and linear settings.
func (s *Settings) SolverSettings() pkgconfig.SolverSettings {
	return pkgconfig.SolverSettings{Genetic: s.Genetic, Linear: s.Linear}
}

// Validate checks the logger and solver settings.
func (s *Settings) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch s.Log.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q", s.Log.Format))
	}
	if s.Log.MaxSizeMB < 0 || s.Log.MaxBackups < 0 || s.Log.MaxAgeDays < 0 {
		errs = append(errs, errors.New("log rotation limits must be non-negative"))
	}
	if _, err := limiter.ParseStrategy(s.Rounding); err != nil {
		errs = append(errs, err)
	}
	if len(s.Solvers) == 0 {
		errs = append(errs, errors.New("at least one solver must be selected"))
	}
	solverSettings := s.SolverSettings()
	errs = append(errs, solverSettings.Validate())
	return errors.Join(errs...)
}

// splitList flattens comma-separated entries, which is how environment
// variables carry lists.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
