// Package report renders solver results as text tables.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-logr/logr"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/YMAFTOUH/GA-and-LP/internal/limiter"
	"github.com/YMAFTOUH/GA-and-LP/pkg/core"
	"github.com/YMAFTOUH/GA-and-LP/pkg/solver"
)

const (
	salesRule    = 58
	capacityRule = 50
)

// Options configures a Writer.
type Options struct {
	// RoundSales rounds genetic allocations to whole tonnes before reporting.
	RoundSales bool

	// Limiter performs the rounding. Nil means limiter.NearestLimiter.
	Limiter limiter.Limiter

	// Language selects the number formatting. Defaults to English.
	Language language.Tag
}

// Writer renders results for one problem.
type Writer struct {
	w       io.Writer
	p       *message.Printer
	problem *core.Problem
	opts    Options
}

// NewWriter returns a Writer printing to w.
func NewWriter(w io.Writer, problem *core.Problem, opts Options) *Writer {
	tag := opts.Language
	if tag == language.Und {
		tag = language.English
	}
	return &Writer{w: w, p: message.NewPrinter(tag), problem: problem, opts: opts}
}

// Write renders the sales and capacity tables of res followed by its summary.
func (rw *Writer) Write(ctx context.Context, res *solver.Result) error {
	x := res.Allocation
	if rw.opts.RoundSales && res.Solver == solver.GeneticName {
		lim := rw.opts.Limiter
		if lim == nil {
			lim = limiter.NearestLimiter{}
		}
		rounded, err := lim.Limit(ctx, rw.problem, x)
		switch {
		case errors.Is(err, limiter.ErrOverloaded):
			logr.FromContextOrDiscard(ctx).Info("Rounded sales still overload a plant", "error", err.Error())
		case err != nil:
			return fmt.Errorf("failed to round %s sales: %w", res.Solver, err)
		}
		x = rounded
	}

	var b strings.Builder
	rw.sales(&b, res.Solver, x)
	rw.capacity(&b, res.Solver, x)
	rw.summary(&b, res, x)
	if _, err := io.WriteString(rw.w, b.String()); err != nil {
		return fmt.Errorf("failed to write %s report: %w", res.Solver, err)
	}
	return nil
}

// WriteFailure renders a solver error.
func (rw *Writer) WriteFailure(name string, err error) error {
	if _, werr := rw.p.Fprintf(rw.w, "\n%s solver failed: %v\n", name, err); werr != nil {
		return fmt.Errorf("failed to write %s report: %w", name, werr)
	}
	return nil
}

func (rw *Writer) sales(b *strings.Builder, name string, x core.Allocation) {
	title := "Optimal Sales, Revenue & Profit"
	if name == solver.LinearName {
		title = "Optimal Sales with Minimum Slack"
	}
	rw.p.Fprintf(b, "\n%s\n", title)
	rw.p.Fprintf(b, "%-10s %15s %15s %15s\n", "Product", "Sales (t)", "Revenue", "Profit")
	b.WriteString(strings.Repeat("-", salesRule) + "\n")
	for i, product := range rw.problem.Products() {
		rw.p.Fprintf(b, "%-10s %15.0f %15.0f %15.0f\n", product.Name,
			clean(x[i]), clean(x[i]*product.PricePerUnit), clean(x[i]*product.ProfitPerUnit))
	}
	b.WriteString(strings.Repeat("-", salesRule) + "\n")
	rw.p.Fprintf(b, "%-10s %15.0f %15.0f %15.0f\n", "TOTAL",
		clean(x.Total()), clean(rw.problem.Revenue(x)), clean(rw.problem.Profit(x)))
}

func (rw *Writer) capacity(b *strings.Builder, name string, x core.Allocation) {
	title, label := "Capacity Utilisation", "Societe"
	if name == solver.LinearName {
		title, label = "Capacity Utilisation (slack = capacity - load)", "Plant"
	}
	rw.p.Fprintf(b, "\n%s\n", title)
	rw.p.Fprintf(b, "%-10s %12s %12s %12s\n", label, "Used (t)", "Limit (t)", "Slack (t)")
	b.WriteString(strings.Repeat("-", capacityRule) + "\n")
	loads := rw.problem.Loads(x)
	util := rw.problem.Utilization(x)
	for c, plant := range rw.problem.Plants() {
		rw.p.Fprintf(b, "%-10s %12.0f %12.0f %12.0f\n", plant.Name,
			clean(loads[c]), clean(plant.Capacity), clean(util[c]))
	}
}

func (rw *Writer) summary(b *strings.Builder, res *solver.Result, x core.Allocation) {
	b.WriteString("\n")
	switch res.Solver {
	case solver.LinearName:
		rw.p.Fprintf(b, "Total slack (minimum): %.0f t\n", clean(res.MinimalSlack))
		rw.p.Fprintf(b, "Maximum profit at that slack: %.0f %s\n", clean(res.Profit), rw.problem.Currency())
	default:
		var signed float64
		for _, u := range rw.problem.Utilization(x) {
			signed += u
		}
		rw.p.Fprintf(b, "Total slack: %.0f t\n", clean(signed))
		rw.p.Fprintf(b, "Objective value (fitness): %.2f\n", res.Objective)
		if res.Generations > 0 {
			fmt.Fprintf(b, "Generations: %d (%s), seed %d\n", res.Generations, res.StopReason, res.Seed)
		}
		if !res.Reliable {
			b.WriteString("WARNING: no feasible allocation found, result is unreliable\n")
		}
	}
}

// clean drops negative zero so rounded values never print as "-0".
func clean(v float64) float64 {
	if math.Abs(v) < 0.5 {
		return 0
	}
	return v
}
