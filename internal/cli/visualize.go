package cli

import (
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepsort/pkg/errors"
	"github.com/matzehuels/stepsort/pkg/vector"
	"github.com/matzehuels/stepsort/pkg/visualizer"
)

// visualizeOpts holds options for the visualize command.
type visualizeOpts struct {
	algorithm string
	vector    vectorFlags
	delay     time.Duration
	logFile   string
}

// visualizeCommand creates the visualize command for the interactive animation.
func (c *CLI) visualizeCommand() *cobra.Command {
	var opts visualizeOpts

	cmd := &cobra.Command{
		Use:     "visualize",
		Aliases: []string{"tui"},
		Short:   "Animate a sorting algorithm in the terminal",
		Long: `Animate a sorting algorithm in the terminal.

Bars compared in the current step are drawn yellow, bars being written green,
and partition boundaries blue. Press space to start or pause, n to step once,
tab to switch algorithm, and ? for all key bindings.`,
		Example: `  # Watch quick sort on 30 random values
  stepsort visualize -a quick -n 30

  # Fixed input, slower animation
  stepsort visualize --values 5,2,6,3,1 --delay 500ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVisualize(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "sorting algorithm (default from config)")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "time between animation steps (default from config)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write debug logs to this file")
	opts.vector.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)

	return cmd
}

// runVisualize builds a session and hands it to the terminal UI.
func (c *CLI) runVisualize(cmd *cobra.Command, opts visualizeOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	alg, err := parseAlgorithm(opts.algorithm, cfg)
	if err != nil {
		return err
	}

	delay := cfg.Animation.Delay
	if cmd.Flags().Changed("delay") {
		delay = opts.delay
	}
	if err := errors.ValidateDelay(delay); err != nil {
		return err
	}

	var values []uint32
	if opts.vector.values != "" {
		if values, err = vector.Parse(opts.vector.values); err != nil {
			return err
		}
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	var w io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "open log file")
		}
		defer f.Close()
		w = f
	}
	logger := newLogger(w, c.Logger.GetLevel())
	c.Logger.SetOutput(w)
	defer c.Logger.SetOutput(os.Stderr)

	vis, err := visualizer.New(visualizer.Options{
		Algorithm: alg,
		Vector:    opts.vector.options(cmd, cfg),
		Values:    values,
		MaxSteps:  cfg.Runner.MaxSteps,
		Logger:    logger.With("component", "visualizer"),
	})
	if err != nil {
		return err
	}
	logger.Info("visualizer started", "session", vis.ID(), "algorithm", alg, "size", len(vis.Sequence()), "delay", delay)

	p := tea.NewProgram(NewVisualizerModel(vis, delay), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		if cmd.Context().Err() != nil {
			return errors.Wrap(errors.ErrCodeCanceled, cmd.Context().Err(), "visualizer")
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "run visualizer")
	}
	logger.Info("visualizer closed", "session", vis.ID(), "steps", vis.Steps(), "state", vis.State())
	return nil
}
