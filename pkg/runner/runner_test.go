package runner

import (
	"context"
	"io"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepsort/pkg/errors"
	"github.com/matzehuels/stepsort/pkg/observability"
	"github.com/matzehuels/stepsort/pkg/sorter"
	"github.com/matzehuels/stepsort/pkg/vector"
)

func newTestRunner(maxSteps int) *Runner {
	r := NewRunner(log.New(io.Discard), maxSteps)
	r.Seed = 42
	return r
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, 0)
	if r.Logger == nil {
		t.Error("Logger = nil, want log.Default()")
	}
	if r.MaxSteps != DefaultMaxSteps {
		t.Errorf("MaxSteps = %d, want %d", r.MaxSteps, DefaultMaxSteps)
	}
}

func TestRunSortsCopy(t *testing.T) {
	r := newTestRunner(0)
	in := []uint32{5, 2, 6}
	for _, a := range sorter.All() {
		t.Run(a.String(), func(t *testing.T) {
			res, err := r.Run(context.Background(), a, in)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !slices.Equal(res.Output, []uint32{2, 5, 6}) {
				t.Errorf("Output = %v, want [2 5 6]", res.Output)
			}
			if !slices.Equal(in, []uint32{5, 2, 6}) {
				t.Errorf("Run() modified its input: %v", in)
			}
			if res.ID == "" {
				t.Error("ID is empty")
			}
			if res.Size != 3 {
				t.Errorf("Size = %d, want 3", res.Size)
			}
		})
	}
}

func TestRunCountsReasons(t *testing.T) {
	r := newTestRunner(0)
	res, err := r.Run(context.Background(), sorter.Bubble, []uint32{5, 2, 6})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Steps != 5 {
		t.Errorf("Steps = %d, want 5", res.Steps)
	}
	if res.Comparisons != 3 {
		t.Errorf("Comparisons = %d, want 3", res.Comparisons)
	}
	if res.Switches != 1 {
		t.Errorf("Switches = %d, want 1", res.Switches)
	}
}

func TestRunTrace(t *testing.T) {
	r := newTestRunner(0)
	var frames []string
	_, err := r.RunTrace(context.Background(), sorter.Bubble, []uint32{5, 2, 6},
		func(step int, seq []uint32, special sorter.Pair, reason sorter.Reason) {
			frames = append(frames, vector.Format(seq)+" "+special.String()+" "+reason.String())
		})
	if err != nil {
		t.Fatalf("RunTrace() error = %v", err)
	}
	want := []string{
		"5,2,6 (0, 1) comparing",
		"2,5,6 (0, 1) switching",
		"2,5,6 (1, 2) comparing",
		"2,5,6 (0, 1) comparing",
	}
	if !slices.Equal(frames, want) {
		t.Errorf("frames = %q, want %q", frames, want)
	}
}

func TestRunStepLimit(t *testing.T) {
	r := newTestRunner(3)
	res, err := r.Run(context.Background(), sorter.Bubble, []uint32{9, 8, 7, 6})
	if !errors.Is(err, errors.ErrCodeStepLimit) {
		t.Fatalf("Run() error = %v, want STEP_LIMIT", err)
	}
	if res.Steps != 3 {
		t.Errorf("Steps = %d, want 3", res.Steps)
	}
}

func TestRunCanceled(t *testing.T) {
	r := newTestRunner(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seq := make([]uint32, 200)
	for i := range seq {
		seq[i] = uint32(len(seq) - i)
	}
	_, err := r.Run(ctx, sorter.Bubble, seq)
	if !errors.Is(err, errors.ErrCodeCanceled) {
		t.Errorf("Run() error = %v, want CANCELED", err)
	}
}

func TestRunAll(t *testing.T) {
	r := newTestRunner(0)
	seq, err := vector.Generate(vector.Options{Floor: 1, Ceil: 50, Size: 6, Seed: 9})
	if err != nil {
		t.Fatal(err)
	}
	want := slices.Sorted(slices.Values(seq))

	results, err := r.RunAll(context.Background(), sorter.All(), seq)
	if err != nil {
		t.Fatalf("RunAll() error = %v", err)
	}
	if len(results) != len(sorter.All()) {
		t.Fatalf("len(results) = %d", len(results))
	}
	for i, res := range results {
		if res.Algorithm != sorter.All()[i] {
			t.Errorf("results[%d].Algorithm = %v, want %v", i, res.Algorithm, sorter.All()[i])
		}
		if res.Err != nil {
			t.Errorf("%v: Err = %v", res.Algorithm, res.Err)
		}
		if !slices.Equal(res.Output, want) {
			t.Errorf("%v: Output = %v, want %v", res.Algorithm, res.Output, want)
		}
	}
}

func TestRunAllRecordsStepLimit(t *testing.T) {
	r := newTestRunner(4)
	results, err := r.RunAll(context.Background(), []sorter.Algorithm{sorter.Bubble, sorter.Quick}, []uint32{2, 1})
	if err != nil {
		t.Fatalf("RunAll() error = %v", err)
	}
	if results[0].Err != nil {
		t.Errorf("bubble Err = %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, errors.ErrCodeStepLimit) {
		t.Errorf("quick Err = %v, want STEP_LIMIT", results[1].Err)
	}
}

type recordingHooks struct {
	observability.NoopSortHooks
	mu        sync.Mutex
	starts    int
	steps     int
	completes int
}

func (h *recordingHooks) OnRunStart(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
}

func (h *recordingHooks) OnStep(context.Context, string, int, int, int, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.steps++
}

func (h *recordingHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completes++
}

func TestRunEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetSortHooks(hooks)
	defer observability.Reset()

	r := newTestRunner(0)
	if _, err := r.Run(context.Background(), sorter.Bubble, []uint32{5, 2, 6}); err != nil {
		t.Fatal(err)
	}
	if hooks.starts != 1 || hooks.completes != 1 {
		t.Errorf("starts = %d, completes = %d, want 1 and 1", hooks.starts, hooks.completes)
	}
	if hooks.steps != 4 {
		t.Errorf("steps = %d, want 4", hooks.steps)
	}
}
