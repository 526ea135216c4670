// Package metrics exposes Prometheus metrics about solver runs.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/YMAFTOUH/GA-and-LP/pkg/solver"
)

const namespace = "allocator"

// Label names.
const (
	LabelSolver  = "solver"
	LabelOutcome = "outcome"
)

// Run outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeUnreliable = "unreliable"
	OutcomeError      = "error"
)

// Metrics holds the solver metrics registered on one registry.
type Metrics struct {
	registry prometheus.Gatherer

	Runs        *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	TotalSlack  *prometheus.GaugeVec
	Profit      *prometheus.GaugeVec
	Generations *prometheus.GaugeVec
}

var _ solver.Recorder = &Metrics{}

// New creates the solver metrics and registers them on reg.
func New(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		registry: reg,
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solver_runs_total",
			Help:      "Total number of solver runs by outcome",
		}, []string{LabelSolver, LabelOutcome}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solver_duration_seconds",
			Help:      "Solver run duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{LabelSolver}),
		TotalSlack: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_slack_tonnes",
			Help:      "Total unused plant capacity of the last allocation",
		}, []string{LabelSolver}),
		Profit: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "profit",
			Help:      "Total profit of the last allocation",
		}, []string{LabelSolver}),
		Generations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "genetic_generations",
			Help:      "Generations run by the last genetic search",
		}, []string{LabelSolver}),
	}
	for _, c := range []prometheus.Collector{m.Runs, m.Duration, m.TotalSlack, m.Profit, m.Generations} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register solver metrics: %w", err)
		}
	}
	return m, nil
}

// ObserveRun implements solver.Recorder.
func (m *Metrics) ObserveRun(name string, duration time.Duration, res *solver.Result, err error) {
	m.Duration.WithLabelValues(name).Observe(duration.Seconds())
	switch {
	case err != nil:
		m.Runs.WithLabelValues(name, OutcomeError).Inc()
		return
	case !res.Reliable:
		m.Runs.WithLabelValues(name, OutcomeUnreliable).Inc()
	default:
		m.Runs.WithLabelValues(name, OutcomeSuccess).Inc()
	}
	m.TotalSlack.WithLabelValues(name).Set(res.TotalSlack)
	m.Profit.WithLabelValues(name).Set(res.Profit)
	if res.Generations > 0 {
		m.Generations.WithLabelValues(name).Set(float64(res.Generations))
	}
}

// Dump writes every gathered metric in the text exposition format.
func (m *Metrics) Dump(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteFile writes every gathered metric to path, replacing it atomically.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
