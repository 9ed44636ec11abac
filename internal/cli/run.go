package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stepsort/pkg/runner"
	"github.com/matzehuels/stepsort/pkg/sorter"
	"github.com/matzehuels/stepsort/pkg/trace"
	"github.com/matzehuels/stepsort/pkg/vector"
	"github.com/matzehuels/stepsort/pkg/visualizer"
)

// runOpts holds options for the run command.
type runOpts struct {
	algorithm string
	vector    vectorFlags
	trace     bool
	jsonOut   string
	maxSteps  int
}

// runCommand creates the run command for sorting a single sequence headlessly.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sort one sequence and report the step count",
		Long: `Sort one sequence without animation and report how many steps it took.

With --trace every intermediate state is printed, one line per step, with the
positions touched by that step highlighted.`,
		Example: `  # Trace bubble sort on a fixed input
  stepsort run -a bubble --values 5,2,6 --trace

  # Heap sort on 1000 random values
  stepsort run -a heap -n 1000 --ceil 100000

  # Record a run for later inspection or stepsort verify --trace
  stepsort run -a quick -n 50 --json quick.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRun(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "sorting algorithm (default from config)")
	cmd.Flags().BoolVarP(&opts.trace, "trace", "t", false, "print every step")
	cmd.Flags().StringVar(&opts.jsonOut, "json", "", "write the recorded run to this JSON file")
	cmd.Flags().IntVar(&opts.maxSteps, "max-steps", 0, "give up after this many steps (default from config)")
	opts.vector.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)

	return cmd
}

func (c *CLI) runRun(cmd *cobra.Command, opts runOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	alg, err := parseAlgorithm(opts.algorithm, cfg)
	if err != nil {
		return err
	}
	seq, err := opts.vector.sequence(cmd, cfg)
	if err != nil {
		return err
	}

	seed := opts.vector.options(cmd, cfg).Seed
	if opts.jsonOut != "" && alg == sorter.Bogo && seed == 0 {
		// Recorded bogo runs need a seed to replay.
		seed = vector.NewRand(0).Uint64()
	}
	r := c.newRunner(cfg, opts.maxSteps, seed)
	r.Logger = logger

	var printer runner.Trace
	if opts.trace {
		printTraceLine(0, seq, nil, "initial")
		printer = func(step int, work []uint32, special sorter.Pair, reason sorter.Reason) {
			marks := visualizer.MarksFor(len(work), special, reason)
			printTraceLine(step, work, marks, fmt.Sprintf("%s %s", reason, special))
		}
	}
	var rec *trace.Recorder
	if opts.jsonOut != "" {
		rec = trace.NewRecorder(alg, seq, 0)
	}

	prog := newProgress(logger)
	res, err := r.RunTrace(ctx, alg, seq, func(step int, work []uint32, special sorter.Pair, reason sorter.Reason) {
		if printer != nil {
			printer(step, work, special, reason)
		}
		if rec != nil {
			rec.Record(step, work, special, reason)
		}
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Sorted %d values", res.Size))

	printSuccess("%s sorted %s values in %s steps", alg.Title(),
		StyleNumber.Render(fmt.Sprint(res.Size)), StyleNumber.Render(fmt.Sprint(res.Steps)))
	printStats(res.Comparisons, res.Switches, res.Limits)
	if !opts.trace && len(res.Output) <= 64 {
		printKeyValue("Input", vector.Format(seq))
		printKeyValue("Output", vector.Format(res.Output))
	}
	printKeyValue("Run", res.ID)
	printKeyValue("Duration", res.Duration.String())

	if rec != nil {
		t := rec.Finish(res, seed)
		if err := trace.ExportJSON(t, opts.jsonOut); err != nil {
			return err
		}
		if t.Truncated {
			printWarning("Trace truncated after %d frames", len(t.Frames))
		}
		printFile(opts.jsonOut)
		printNextStep("Replay it", "stepsort verify --trace "+opts.jsonOut)
	}
	return nil
}

// printTraceLine prints one step of a traced run.
func printTraceLine(step int, seq []uint32, marks []visualizer.Mark, note string) {
	fmt.Fprintf(stdout, "  %s  %s  %s\n",
		StyleNumber.Render(fmt.Sprintf("%4d", step)), formatMarked(seq, marks), StyleDim.Render(note))
}
