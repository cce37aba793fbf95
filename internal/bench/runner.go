package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/spanbench/internal/kernel"
	"github.com/san-kum/spanbench/internal/particle"
	"github.com/san-kum/spanbench/internal/process"
)

// Options configures a benchmark sweep.
type Options struct {
	Methods []Method
	Sizes   []int
	Reps    int
	Warmup  int
	Procs   process.List
}

// DefaultOptions sweeps all four methods over the default sizes with the
// energy-loss process, five timed repetitions each.
func DefaultOptions() Options {
	return Options{
		Methods: AllMethods(),
		Sizes:   DefaultSizes(),
		Reps:    5,
		Warmup:  2,
		Procs:   process.List{process.New(process.KindEnergyLoss)},
	}
}

func (o Options) validate() error {
	if len(o.Methods) == 0 {
		return fmt.Errorf("bench: no methods")
	}
	if len(o.Sizes) == 0 {
		return fmt.Errorf("bench: no sizes")
	}
	for _, n := range o.Sizes {
		if n < 1 {
			return fmt.Errorf("bench: invalid size %d", n)
		}
	}
	if o.Reps < 1 {
		return fmt.Errorf("bench: reps must be >= 1")
	}
	if len(o.Procs) == 0 {
		return fmt.Errorf("bench: empty process list")
	}
	return nil
}

// Point is the measurement for one (method, size) pair: per-repetition
// nanoseconds per invocation plus their summary statistics.
type Point struct {
	Method  Method
	N       int
	NsPerOp []float64
	Summary Summary
}

// Report is the outcome of a full sweep.
type Report struct {
	Started time.Time
	Elapsed time.Duration
	Options Options
	Points  []Point
}

// Series extracts the points of one method, in sweep order.
func (r *Report) Series(m Method) []Point {
	var out []Point
	for _, p := range r.Points {
		if p.Method == m {
			out = append(out, p)
		}
	}
	return out
}

// Progress is delivered after each completed point.
type Progress struct {
	Method Method
	N      int
	Done   int
	Total  int
	MeanNs float64
}

// Runner executes a sweep. For every (method, size) pair it allocates a
// fresh stack with the deterministic benchmark pattern, builds a span over
// it, warms up, then times repeated invocations of the method.
type Runner struct {
	opts Options

	// OnPoint, when set, observes each completed point. Used by the live
	// TUI; nil for plain runs.
	OnPoint func(Progress)
}

func NewRunner(opts Options) *Runner {
	return &Runner{opts: opts}
}

// opBudget bounds the per-record work of one timed repetition so small
// stacks still get a measurable number of invocations.
const opBudget = 1 << 16

func itersFor(n int) int {
	it := opBudget / n
	if it < 1 {
		it = 1
	}
	return it
}

// Run executes the sweep. It stops early, returning the partial report and
// the context error, if ctx is cancelled between points.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if err := r.opts.validate(); err != nil {
		return nil, err
	}

	report := &Report{
		Started: time.Now(),
		Options: r.opts,
	}
	total := len(r.opts.Methods) * len(r.opts.Sizes)

	for _, m := range r.opts.Methods {
		for _, n := range r.opts.Sizes {
			select {
			case <-ctx.Done():
				report.Elapsed = time.Since(report.Started)
				return report, ctx.Err()
			default:
			}

			p := r.measure(m, n)
			report.Points = append(report.Points, p)

			if r.OnPoint != nil {
				r.OnPoint(Progress{
					Method: m,
					N:      n,
					Done:   len(report.Points),
					Total:  total,
					MeanNs: p.Summary.Mean,
				})
			}
		}
	}

	report.Elapsed = time.Since(report.Started)
	return report, nil
}

func (r *Runner) measure(m Method, n int) Point {
	stack := particle.NewBenchStack(n)
	sp := particle.View(stack)
	iters := itersFor(n)

	for w := 0; w < r.opts.Warmup; w++ {
		r.invoke(m, sp)
	}

	ns := make([]float64, 0, r.opts.Reps)
	for rep := 0; rep < r.opts.Reps; rep++ {
		start := time.Now()
		for it := 0; it < iters; it++ {
			r.invoke(m, sp)
		}
		elapsed := time.Since(start)
		ns = append(ns, float64(elapsed.Nanoseconds())/float64(iters))
	}

	return Point{Method: m, N: n, NsPerOp: ns, Summary: Summarize(ns)}
}

// invoke runs one invocation of the method over the span. The direct
// methods call the energy-loss kernel itself; the variant methods go
// through the tagged process list, which is the dispatch cost the sweep
// compares.
func (r *Runner) invoke(m Method, sp particle.Span) {
	switch m {
	case MethodOne:
		recs := sp.Records()
		for i := range recs {
			kernel.EnergyLossOne(&recs[i])
		}
	case MethodSpan:
		kernel.EnergyLoss(sp)
	case MethodVariantOne:
		recs := sp.Records()
		for i := range recs {
			for _, p := range r.opts.Procs {
				process.Apply(p, particle.Ref{P: &recs[i]})
			}
		}
	case MethodVariantSpan:
		process.ApplyList(r.opts.Procs, sp)
	}
}
