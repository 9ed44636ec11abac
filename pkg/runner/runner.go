// Package runner drives sorters to completion without a display.
//
// A Runner steps one sorter per call on its own copy of the input, enforcing a
// step budget and honouring context cancellation. RunAll fans a single input
// out to several algorithms concurrently; Check replays a run while verifying
// the per-step guarantees every sorter makes.
package runner

import (
	"context"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stepsort/pkg/errors"
	"github.com/matzehuels/stepsort/pkg/observability"
	"github.com/matzehuels/stepsort/pkg/sorter"
)

// DefaultMaxSteps bounds a run when no limit is configured.
const DefaultMaxSteps = 10_000_000

// cancelCheckInterval is how many steps run between context checks.
const cancelCheckInterval = 1024

// Runner executes sorters step by step.
//
// The Runner holds no per-run state; multiple goroutines can safely share one.
type Runner struct {
	Logger   *log.Logger
	MaxSteps int    // Step budget per run; zero means DefaultMaxSteps
	Seed     uint64 // Seed for randomized algorithms; zero draws a random seed

	// Factory overrides sorter construction when set.
	Factory func(sorter.Algorithm) sorter.Sorter
}

// NewRunner creates a runner with the given logger and step budget.
// If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger, maxSteps int) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Runner{Logger: logger, MaxSteps: maxSteps}
}

// Result describes one completed run.
type Result struct {
	ID          string
	Algorithm   sorter.Algorithm
	Size        int
	Steps       int // Steps up to and including the completing one
	Comparisons int // Steps whose reason was Comparing
	Switches    int // Steps whose reason was Switching
	Limits      int // Steps whose reason was Limits
	Duration    time.Duration
	Output      []uint32
	Err         error // Set by RunAll when this run failed
}

// Trace is called after every step that did not complete the run. seq is the
// live sequence and must not be retained.
type Trace func(step int, seq []uint32, special sorter.Pair, reason sorter.Reason)

// NewSorter returns a fresh sorter for a, seeding randomized algorithms when
// the runner has a seed.
func (r *Runner) NewSorter(a sorter.Algorithm) sorter.Sorter {
	if r.Factory != nil {
		return r.Factory(a)
	}
	if a == sorter.Bogo && r.Seed != 0 {
		return sorter.NewBogoSortWithSeed(r.Seed)
	}
	return sorter.New(a)
}

// Run sorts a copy of seq with a.
func (r *Runner) Run(ctx context.Context, a sorter.Algorithm, seq []uint32) (*Result, error) {
	return r.RunTrace(ctx, a, seq, nil)
}

// RunTrace sorts a copy of seq with a, calling trace after every step.
func (r *Runner) RunTrace(ctx context.Context, a sorter.Algorithm, seq []uint32, trace Trace) (*Result, error) {
	res, _, err := r.drive(ctx, a, seq, func(step int, work []uint32, s sorter.Sorter) error {
		if trace != nil {
			trace(step, work, s.Special(), s.Reason())
		}
		return nil
	})
	return res, err
}

// drive steps a fresh sorter over a copy of seq, calling visit after every
// non-final step. It returns the sorter in its final state.
func (r *Runner) drive(ctx context.Context, a sorter.Algorithm, seq []uint32, visit func(int, []uint32, sorter.Sorter) error) (*Result, sorter.Sorter, error) {
	logger := r.logger()
	limit := r.maxSteps()
	hooks := observability.Sort()

	result := &Result{
		ID:        uuid.NewString(),
		Algorithm: a,
		Size:      len(seq),
		Output:    slices.Clone(seq),
	}
	s := r.NewSorter(a)

	logger.Debug("run started", "id", result.ID, "algorithm", a, "size", len(seq))
	hooks.OnRunStart(ctx, a.String(), len(seq))
	start := time.Now()

	err := func() error {
		for step := 1; ; step++ {
			if step > limit {
				return &errors.StepLimitError{Algorithm: a.String(), Limit: limit}
			}
			if step%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return errors.Wrap(errors.ErrCodeCanceled, err, "%s canceled after %d steps", a, step-1)
				}
			}
			result.Steps = step
			if s.Step(result.Output) {
				return nil
			}
			special, reason := s.Special(), s.Reason()
			switch reason {
			case sorter.Comparing:
				result.Comparisons++
			case sorter.Switching:
				result.Switches++
			case sorter.Limits:
				result.Limits++
			}
			hooks.OnStep(ctx, a.String(), step, special.A, special.B, reason.String())
			if err := visit(step, result.Output, s); err != nil {
				return err
			}
		}
	}()
	result.Duration = time.Since(start)
	hooks.OnRunComplete(ctx, a.String(), result.Steps, result.Duration, err)

	if err != nil {
		logger.Debug("run failed", "id", result.ID, "algorithm", a, "steps", result.Steps, "err", err)
		return result, s, err
	}
	logger.Debug("run finished",
		"id", result.ID,
		"algorithm", a,
		"steps", result.Steps,
		"duration", result.Duration)
	return result, s, nil
}

// RunAll sorts independent copies of seq with every algorithm in algs
// concurrently. Results are returned in the order of algs; a run that fails
// records its error in Result.Err. The returned error is non-nil only when ctx
// is canceled.
func (r *Runner) RunAll(ctx context.Context, algs []sorter.Algorithm, seq []uint32) ([]*Result, error) {
	results := make([]*Result, len(algs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, a := range algs {
		g.Go(func() error {
			res, err := r.Run(gctx, a, seq)
			res.Err = err
			results[i] = res
			if errors.Is(err, errors.ErrCodeCanceled) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

func (r *Runner) maxSteps() int {
	if r.MaxSteps <= 0 {
		return DefaultMaxSteps
	}
	return r.MaxSteps
}
