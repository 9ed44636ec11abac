package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepsort/pkg/errors"
	"github.com/matzehuels/stepsort/pkg/perm"
	"github.com/matzehuels/stepsort/pkg/runner"
	"github.com/matzehuels/stepsort/pkg/sorter"
	"github.com/matzehuels/stepsort/pkg/vector"
)

// maxFactorialN is the largest n whose factorial fits in an int.
const maxFactorialN = 20

// benchOpts holds options for the bench command.
type benchOpts struct {
	algorithms []string
	vector     vectorFlags
	bogoMax    int
	maxSteps   int
}

// benchRow is one line of the comparison table.
type benchRow struct {
	algorithm sorter.Algorithm
	result    *runner.Result
	skipped   string
}

// benchCommand creates the bench command for comparing algorithms.
func (c *CLI) benchCommand() *cobra.Command {
	var opts benchOpts

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare step counts of algorithms on the same input",
		Long: `Sort the same input with several algorithms concurrently and compare how many
steps, comparisons and writes each one needed.

Bogo sort is skipped when the input is longer than --bogo-max.`,
		Example: `  # All algorithms on 200 random values
  stepsort bench -n 200 --ceil 1000

  # A reproducible subset
  stepsort bench -A quick,heap,merge -n 500 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBench(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.algorithms, "algorithms", "A", nil, "algorithms to compare (default all)")
	cmd.Flags().IntVar(&opts.bogoMax, "bogo-max", 0, "largest input bogo sort is attempted on (default from config)")
	cmd.Flags().IntVar(&opts.maxSteps, "max-steps", 0, "give up on an algorithm after this many steps (default from config)")
	opts.vector.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("algorithms", completeAlgorithms)

	return cmd
}

func (c *CLI) runBench(cmd *cobra.Command, opts benchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	algs, err := parseAlgorithms(opts.algorithms)
	if err != nil {
		return err
	}
	seq, err := opts.vector.sequence(cmd, cfg)
	if err != nil {
		return err
	}

	bogoMax := cfg.Runner.BogoMax
	if cmd.Flags().Changed("bogo-max") {
		bogoMax = opts.bogoMax
	}

	rows := make([]benchRow, len(algs))
	var todo []sorter.Algorithm
	for i, a := range algs {
		rows[i].algorithm = a
		if a == sorter.Bogo && len(seq) > bogoMax {
			rows[i].skipped = bogoSkipReason(len(seq))
			continue
		}
		todo = append(todo, a)
	}

	r := c.newRunner(cfg, opts.maxSteps, opts.vector.options(cmd, cfg).Seed)
	r.Logger = logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Running %d algorithms on %d values...", len(todo), len(seq)))
	spinner.Start()
	prog := newProgress(logger)
	results, err := r.RunAll(ctx, todo, seq)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Ran %d algorithms", len(todo)))

	for i, j := 0, 0; i < len(rows); i++ {
		if rows[i].skipped == "" {
			rows[i].result = results[j]
			j++
		}
	}

	fmt.Fprintln(stdout, renderBenchTable(rows))
	if len(seq) <= 32 {
		printDetail("Input: %s", vector.Format(seq))
	} else {
		printDetail("Input: %d values", len(seq))
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		printWarning("%d of %d algorithms did not finish", failed, len(results))
	}
	return nil
}

// bogoSkipReason explains why bogo sort was not attempted on n values.
func bogoSkipReason(n int) string {
	if n > maxFactorialN {
		return fmt.Sprintf("skipped, ~%d! shuffles expected", n)
	}
	return fmt.Sprintf("skipped, ~%d shuffles expected", perm.Factorial(n))
}

// renderBenchTable formats results as a bordered table, highlighting the
// algorithm that needed the fewest steps.
func renderBenchTable(rows []benchRow) string {
	best := -1
	for i, row := range rows {
		if row.result == nil || row.result.Err != nil {
			continue
		}
		if best < 0 || row.result.Steps < rows[best].result.Steps {
			best = i
		}
	}

	data := make([][]string, len(rows))
	for i, row := range rows {
		res := row.result
		switch {
		case row.skipped != "":
			data[i] = []string{row.algorithm.Title(), "-", "-", "-", "-", row.skipped}
		case res.Err != nil:
			data[i] = []string{row.algorithm.Title(), fmt.Sprint(res.Steps), fmt.Sprint(res.Comparisons),
				fmt.Sprint(res.Switches), res.Duration.Round(time.Microsecond).String(), errors.UserMessage(res.Err)}
		default:
			data[i] = []string{row.algorithm.Title(), fmt.Sprint(res.Steps), fmt.Sprint(res.Comparisons),
				fmt.Sprint(res.Switches), res.Duration.Round(time.Microsecond).String(), "sorted"}
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Algorithm", "Steps", "Comparisons", "Switches", "Time", "Status").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			r := rows[row]
			switch {
			case r.skipped != "":
				return cell.Foreground(colorDim)
			case r.result.Err != nil:
				return cell.Foreground(colorRed)
			case row == best:
				return cell.Foreground(colorGreen).Bold(true)
			}
			if col >= 1 && col <= 4 {
				return cell.Foreground(colorWhite)
			}
			return cell
		})

	return t.Render()
}
