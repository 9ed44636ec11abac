package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stepsort/pkg/cache"
	"github.com/matzehuels/stepsort/pkg/errors"
	"github.com/matzehuels/stepsort/pkg/render"
	"github.com/matzehuels/stepsort/pkg/sorter"
)

// maxFrames bounds the number of files a single heap-tree --frames run writes.
const maxFrames = 1000

// heapTreeOpts holds options for the heap-tree command.
type heapTreeOpts struct {
	vector vectorFlags
	steps  int
	frames bool
	format  string
	output  string
	noCache bool
}

// heapFrame is a snapshot of a heap sort between steps.
type heapFrame struct {
	step     int
	seq      []uint32
	heapSize int
	special  sorter.Pair
	reason   sorter.Reason
}

// dot renders the frame as a Graphviz digraph.
func (f heapFrame) dot() string {
	return render.HeapDOT(f.seq, f.heapSize, f.special, f.reason)
}

// heapTreeCommand creates the heap-tree command for rendering heap snapshots.
func (c *CLI) heapTreeCommand() *cobra.Command {
	var opts heapTreeOpts

	cmd := &cobra.Command{
		Use:   "heap-tree",
		Short: "Render the heap of a heap sort as a tree diagram",
		Long: `Render the heap of a heap sort as a tree diagram.

The sequence is advanced --steps steps with heap sort and the remaining heap
is drawn as a binary tree. Values already moved behind the heap are drawn
dashed below it, and the pair touched by the last step is filled.

SVG and DOT need nothing else installed; PDF and PNG require rsvg-convert.`,
		Example: `  # Heap after building, as SVG
  stepsort heap-tree --values 4,10,3,5,1 --steps 6

  # Every frame of a short run as PNG files
  stepsort heap-tree -n 7 --frames --format png -o frames/heap`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHeapTree(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.steps, "steps", 0, "heap sort steps to take before drawing (with --frames, 0 means until sorted)")
	cmd.Flags().BoolVar(&opts.frames, "frames", false, "write one file per step instead of only the last")
	cmd.Flags().StringVarP(&opts.format, "format", "f", render.FormatSVG, "output format: "+strings.Join(render.Formats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "heap", "output file name without extension")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always re-render instead of using cached diagrams")
	opts.vector.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return render.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runHeapTree(cmd *cobra.Command, opts heapTreeOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	format := strings.ToLower(opts.format)
	if err := errors.ValidateFormat(format, render.Formats...); err != nil {
		return err
	}
	if opts.steps < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "steps cannot be negative: %d", opts.steps)
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	seq, err := opts.vector.sequence(cmd, cfg)
	if err != nil {
		return err
	}

	frames := heapFrames(seq, opts.steps, opts.frames)
	if len(frames) > maxFrames {
		return errors.New(errors.ErrCodeInvalidSize, "%d frames exceed the limit of %d; use --steps", len(frames), maxFrames)
	}
	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "create output directory")
		}
	}

	rc := c.newRenderCache(opts.noCache)
	defer rc.Close()

	prog := newProgress(logger)
	var paths []string
	hits := 0
	for _, f := range frames {
		data, hit, err := renderCached(ctx, rc, f.dot(), format)
		if err != nil {
			return err
		}
		if hit {
			hits++
		}
		path := opts.output + "." + format
		if opts.frames {
			path = fmt.Sprintf("%s-%03d.%s", opts.output, f.step, format)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		logger.Debug("frame written", "step", f.step, "heap", f.heapSize, "path", path)
		paths = append(paths, path)
	}
	prog.done(fmt.Sprintf("Rendered %d frames (%d cached)", len(paths), hits))

	last := frames[len(frames)-1]
	printSuccess("Heap after %s steps (%d of %d values in the heap)",
		StyleNumber.Render(fmt.Sprint(last.step)), last.heapSize, len(last.seq))
	if len(paths) <= 3 {
		for _, p := range paths {
			printFile(p)
		}
	} else {
		printFile(paths[0])
		printDetail("... %d more", len(paths)-2)
		printFile(paths[len(paths)-1])
	}
	return nil
}

// renderCached converts dot to format, reusing a cached rendering when one
// exists. DOT output is never cached.
func renderCached(ctx context.Context, rc cache.Cache, dot, format string) ([]byte, bool, error) {
	if format == render.FormatDOT {
		data, err := render.Convert(ctx, dot, format)
		return data, false, err
	}

	key := cache.RenderKey(dot, format)
	if data, ok, err := rc.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, err := render.Convert(ctx, dot, format)
	if err != nil {
		return nil, false, err
	}
	if err := rc.Set(ctx, key, data, renderCacheTTL); err != nil {
		loggerFromContext(ctx).Debug("cache write failed", "err", err)
	}
	return data, false, nil
}

// heapFrames steps a heap sort over a copy of seq. Without all only the
// state after steps steps is returned; with all every state from the
// initial one onward is, and steps of zero means until sorted.
func heapFrames(seq []uint32, steps int, all bool) []heapFrame {
	work := append([]uint32(nil), seq...)
	h := sorter.NewHeapSort()
	snapshot := func(step int) heapFrame {
		return heapFrame{
			step:     step,
			seq:      append([]uint32(nil), work...),
			heapSize: h.HeapSize(len(work)),
			special:  h.Special(),
			reason:   h.Reason(),
		}
	}

	var frames []heapFrame
	if all {
		frames = append(frames, snapshot(0))
	}
	step := 0
	for (steps == 0 && all) || step < steps {
		if h.Step(work) {
			break
		}
		step++
		if all {
			frames = append(frames, snapshot(step))
		}
	}
	if !all {
		frames = append(frames, snapshot(step))
	}
	return frames
}
