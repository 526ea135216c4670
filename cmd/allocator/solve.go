package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/YMAFTOUH/GA-and-LP/internal/config"
	"github.com/YMAFTOUH/GA-and-LP/internal/limiter"
	"github.com/YMAFTOUH/GA-and-LP/internal/logging"
	"github.com/YMAFTOUH/GA-and-LP/internal/metrics"
	"github.com/YMAFTOUH/GA-and-LP/internal/report"
	pkgconfig "github.com/YMAFTOUH/GA-and-LP/pkg/config"
	"github.com/YMAFTOUH/GA-and-LP/pkg/core"
	"github.com/YMAFTOUH/GA-and-LP/pkg/solver"
)

func solveCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run the selected solvers and print their allocations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := settings.Log.NewLogger()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runSolve(logging.IntoContext(ctx, logger), cmd.OutOrStdout(), settings)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "settings file (YAML)")
	flags.StringP("problem", "p", "", "problem file (YAML or JSON); defaults to the built-in data")
	flags.StringSlice("solver", config.DefaultSolvers, "solvers to run: genetic, linear or all")
	flags.Uint64("seed", 0, "genetic search seed; 0 draws a random seed")
	flags.Int("workers", 0, "goroutines evaluating genetic fitness")
	flags.Int("generations", pkgconfig.DefaultGenerations, "genetic generation budget")
	flags.String("log-level", "info", "log level: info, debug, trace or a verbosity number")
	flags.String("log-format", logging.FormatConsole, "log format: console or json")
	flags.String("log-file", "", "write logs to this file, rotated by size, instead of stderr")
	flags.String("metrics-file", "", "write solver metrics to this file in Prometheus text format")
	flags.Bool("round-sales", false, "round genetic sales to whole tonnes in the report")
	flags.String("rounding", limiter.NearestName, "rounding of reported sales: nearest or capacity")
	return cmd
}

func runSolve(ctx context.Context, out io.Writer, settings *config.Settings) error {
	logger := logging.FromContext(ctx)

	problem, err := loadProblem(settings.ProblemFile)
	if err != nil {
		return err
	}
	if box := problem.Box(); box.Empty() {
		logger.Info("Minimum sales exceed the feasible upper bound of at least one product",
			"low", box.Low, "high", box.High)
	}

	strategies, err := solver.ParseStrategies(settings.Solvers)
	if err != nil {
		return err
	}
	solvers := make([]solver.Solver, 0, len(strategies))
	for _, s := range strategies {
		sv, err := solver.NewSolver(s, settings.SolverSettings())
		if err != nil {
			return fmt.Errorf("failed to create %s solver: %w", s, err)
		}
		solvers = append(solvers, sv)
	}

	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	outcomes, solveErr := solver.NewOptimizer(solvers, solver.WithRecorder(m)).Optimize(ctx, problem)

	rounding, err := limiter.ParseStrategy(settings.Rounding)
	if err != nil {
		return err
	}
	lim, err := limiter.NewLimiter(rounding)
	if err != nil {
		return err
	}
	w := report.NewWriter(out, problem, report.Options{RoundSales: settings.RoundSales, Limiter: lim})
	for _, o := range outcomes {
		if o.Err != nil {
			if err := w.WriteFailure(o.Solver, o.Err); err != nil {
				return err
			}
			continue
		}
		if err := w.Write(ctx, o.Result); err != nil {
			return err
		}
	}

	if settings.MetricsFile != "" {
		if err := m.WriteFile(settings.MetricsFile); err != nil {
			return err
		}
		logger.V(logging.DEBUG).Info("Metrics written", "path", settings.MetricsFile)
	}
	return solveErr
}

func loadProblem(path string) (*core.Problem, error) {
	data := pkgconfig.DefaultProblemData()
	if path != "" {
		var err error
		if data, err = pkgconfig.LoadProblemFile(path); err != nil {
			return nil, err
		}
	}
	return core.NewProblem(data)
}
