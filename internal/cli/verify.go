package cli

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stepsort/pkg/errors"
	"github.com/matzehuels/stepsort/pkg/perm"
	"github.com/matzehuels/stepsort/pkg/runner"
	"github.com/matzehuels/stepsort/pkg/sorter"
	"github.com/matzehuels/stepsort/pkg/trace"
	"github.com/matzehuels/stepsort/pkg/vector"
)

// Permutation sizes accepted by verify.
const (
	maxVerifyN     = 9
	defaultBogoMax = 5 // Bogo sort is only verified up to this size by default
)

// verifyOpts holds options for the verify command.
type verifyOpts struct {
	algorithms []string
	maxN       int
	bogoMax    int
	seed       uint64
	tracePath  string
}

// verifyReport summarizes the checks of one algorithm.
type verifyReport struct {
	algorithm sorter.Algorithm
	inputs    int
	maxN      int
	worst     *runner.Result
	worstIn   []uint32
}

// verifyCommand creates the verify command for exhaustive correctness checks.
func (c *CLI) verifyCommand() *cobra.Command {
	var opts verifyOpts

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check algorithms against every permutation of small inputs",
		Long: `Check algorithms against every permutation of small inputs.

For every size up to --max-n, each algorithm sorts every permutation of n
distinct values and of n values with duplicates. Every step is checked: at
most two positions change per step, the completing step changes nothing,
stepping a finished sorter is a no-op, and the result is sorted.

With --trace, a run recorded by "stepsort run --json" is replayed instead and
every recorded frame is compared with the replay.`,
		Example: `  # Verify everything up to 6 elements
  stepsort verify

  # Only quick and heap sort, up to 8 elements
  stepsort verify -A quick,heap --max-n 8

  # Replay a recorded run
  stepsort verify --trace quick.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVerify(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.algorithms, "algorithms", "A", nil, "algorithms to verify (default all)")
	cmd.Flags().IntVar(&opts.maxN, "max-n", defaultVerifyMaxN, "largest permutation size")
	cmd.Flags().IntVar(&opts.bogoMax, "bogo-max", defaultBogoMax, "largest size bogo sort is verified on")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for bogo sort (0 for a random seed)")
	cmd.Flags().StringVar(&opts.tracePath, "trace", "", "replay a run recorded with run --json instead")
	_ = cmd.RegisterFlagCompletionFunc("algorithms", completeAlgorithms)

	return cmd
}

func (c *CLI) runVerify(cmd *cobra.Command, opts verifyOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if opts.tracePath != "" {
		return c.runVerifyTrace(cmd, opts.tracePath)
	}
	if err := errors.ValidateSize(opts.maxN, maxVerifyN); err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	algs, err := parseAlgorithms(opts.algorithms)
	if err != nil {
		return err
	}

	r := c.newRunner(cfg, 0, opts.seed)
	r.Logger = logger

	var checked atomic.Int64
	spinner := newSpinnerWithContext(ctx, "Verifying...")
	spinner.Start()
	defer spinner.Stop()
	prog := newProgress(logger)

	reports := make([]verifyReport, len(algs))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range algs {
		maxN := opts.maxN
		if a == sorter.Bogo {
			maxN = min(maxN, opts.bogoMax)
		}
		g.Go(func() error {
			rep, err := verifyAlgorithm(gctx, r, a, maxN, func() {
				if n := checked.Add(1); n%256 == 0 {
					spinner.SetMessage("Verifying... %d inputs checked", n)
				}
			})
			reports[i] = rep
			return err
		})
	}
	err = g.Wait()
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Checked %d inputs", checked.Load()))

	for _, rep := range reports {
		printSuccess("%s passed %s inputs up to n=%d", rep.algorithm.Title(),
			StyleNumber.Render(fmt.Sprint(rep.inputs)), rep.maxN)
		if rep.worst != nil {
			printDetail("worst case %d steps on %s (%d inversions)",
				rep.worst.Steps, vector.Format(rep.worstIn), perm.Inversions(rep.worstIn))
		}
	}
	return nil
}

// runVerifyTrace replays a recorded run and compares it frame by frame.
func (c *CLI) runVerifyTrace(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	t, err := trace.ImportJSON(path)
	if err != nil {
		return err
	}
	r := c.newRunner(cfg, 0, 0)
	r.Logger = loggerFromContext(ctx)
	if err := t.Replay(ctx, r); err != nil {
		return err
	}

	a, _ := sorter.Parse(t.Algorithm)
	printSuccess("%s replay matches %s recorded frames", a.Title(), StyleNumber.Render(fmt.Sprint(len(t.Frames))))
	if t.Truncated {
		printDetail("recording was truncated; later steps were not compared")
	}
	return nil
}

// verifyAlgorithm checks a on every permutation of sizes 0 through maxN, with
// distinct values and with duplicates. It stops at the first failure.
func verifyAlgorithm(ctx context.Context, r *runner.Runner, a sorter.Algorithm, maxN int, onCheck func()) (verifyReport, error) {
	rep := verifyReport{algorithm: a, maxN: maxN}
	var failure error

	for n := 0; n <= maxN && failure == nil; n++ {
		for _, values := range verifyValues(n) {
			perm.Each(n, func(p []int) bool {
				if err := ctx.Err(); err != nil {
					failure = errors.Wrap(errors.ErrCodeCanceled, err, "verify %s", a)
					return false
				}
				in := perm.Apply(p, values)
				res, err := r.Check(ctx, a, in)
				if err != nil {
					failure = errors.Wrap(errors.GetCode(err), err, "%s failed on %s", a.Title(), vector.Format(in))
					return false
				}
				rep.inputs++
				if rep.worst == nil || res.Steps > rep.worst.Steps {
					rep.worst, rep.worstIn = res, slices.Clone(in)
				}
				onCheck()
				return true
			})
			if failure != nil {
				break
			}
		}
	}
	return rep, failure
}

// verifyValues returns the value sets permuted for size n: n distinct values
// and, for n > 1, pairs of equal values.
func verifyValues(n int) [][]uint32 {
	distinct := make([]uint32, n)
	dups := make([]uint32, n)
	for i := range n {
		distinct[i] = uint32(i + 1)
		dups[i] = uint32(i/2 + 1)
	}
	if n < 2 {
		return [][]uint32{distinct}
	}
	return [][]uint32{distinct, dups}
}
