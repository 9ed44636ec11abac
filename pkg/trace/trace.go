package trace

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/stepsort/pkg/errors"
	"github.com/matzehuels/stepsort/pkg/runner"
	"github.com/matzehuels/stepsort/pkg/sorter"
)

// DefaultMaxFrames bounds a recording when no limit is given.
const DefaultMaxFrames = 100_000

// Frame is the state after one step.
type Frame struct {
	Step    int      `json:"step"`
	Seq     []uint32 `json:"seq"`
	Special [2]int   `json:"special"`
	Reason  string   `json:"reason"`
}

// Trace is a recorded run.
type Trace struct {
	Algorithm string   `json:"algorithm"`
	Seed      uint64   `json:"seed,omitempty"`
	Input     []uint32 `json:"input"`
	Output    []uint32 `json:"output"`
	Steps     int      `json:"steps"`
	Truncated bool     `json:"truncated,omitempty"`
	Frames    []Frame  `json:"frames"`
}

// Recorder collects frames from a runner.
type Recorder struct {
	trace Trace
	limit int
}

// NewRecorder starts a recording of a on input. At most maxFrames frames are
// kept; zero or less means DefaultMaxFrames.
func NewRecorder(a sorter.Algorithm, input []uint32, maxFrames int) *Recorder {
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	return &Recorder{
		trace: Trace{Algorithm: a.String(), Input: slices.Clone(input), Frames: []Frame{}},
		limit: maxFrames,
	}
}

// Record appends one frame. Its signature matches [runner.Trace].
func (r *Recorder) Record(step int, seq []uint32, special sorter.Pair, reason sorter.Reason) {
	if len(r.trace.Frames) >= r.limit {
		r.trace.Truncated = true
		return
	}
	r.trace.Frames = append(r.trace.Frames, Frame{
		Step:    step,
		Seq:     slices.Clone(seq),
		Special: [2]int{special.A, special.B},
		Reason:  reason.String(),
	})
}

// Finish completes the trace with the run result. seed is recorded for bogo
// sort runs so they can be replayed.
func (r *Recorder) Finish(res *runner.Result, seed uint64) *Trace {
	t := r.trace
	t.Output = slices.Clone(res.Output)
	t.Steps = res.Steps
	if res.Algorithm == sorter.Bogo {
		t.Seed = seed
	}
	return &t
}

// Replay runs the algorithm again on the recorded input and reports the first
// frame that differs from the recording as an INVARIANT_VIOLATED error.
// Unseeded bogo sort runs cannot be replayed. r supplies the logger and step
// budget; its seed is replaced by the recorded one.
func (t *Trace) Replay(ctx context.Context, r *runner.Runner) error {
	a, err := sorter.Parse(t.Algorithm)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidAlgorithm, err, "trace algorithm")
	}
	if a == sorter.Bogo && t.Seed == 0 {
		return errors.New(errors.ErrCodeUnsupported, "bogo sort traces need a seed to be replayed")
	}

	replay := *r
	replay.Seed = t.Seed
	rec := NewRecorder(a, t.Input, len(t.Frames))
	res, err := replay.RunTrace(ctx, a, t.Input, rec.Record)
	if err != nil {
		return err
	}
	got := rec.Finish(res, t.Seed)

	for i, want := range t.Frames {
		if i >= len(got.Frames) {
			return errors.New(errors.ErrCodeInvariantViolated, "replay ended after %d frames, recording has %d", len(got.Frames), len(t.Frames))
		}
		if !frameEqual(got.Frames[i], want) {
			return errors.New(errors.ErrCodeInvariantViolated, "step %d: replay %v %v %s, recorded %v %v %s",
				want.Step, got.Frames[i].Seq, got.Frames[i].Special, got.Frames[i].Reason, want.Seq, want.Special, want.Reason)
		}
	}
	if !t.Truncated && got.Steps != t.Steps {
		return errors.New(errors.ErrCodeInvariantViolated, "replay took %d steps, recording %d", got.Steps, t.Steps)
	}
	if !t.Truncated && !slices.Equal(got.Output, t.Output) {
		return errors.New(errors.ErrCodeInvariantViolated, "replay output %v, recorded %v", got.Output, t.Output)
	}
	return nil
}

func frameEqual(a, b Frame) bool {
	return a.Step == b.Step && a.Special == b.Special && a.Reason == b.Reason && slices.Equal(a.Seq, b.Seq)
}

// WriteJSON encodes t as indented JSON.
func WriteJSON(t *Trace, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode trace")
	}
	return nil
}

// ExportJSON writes t to a JSON file at path.
func ExportJSON(t *Trace, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	if err := WriteJSON(t, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON decodes a trace from r and checks that it is self-consistent:
// the algorithm is known and every frame holds as many values as the input.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Trace, error) {
	var t Trace
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode trace")
	}
	if _, err := sorter.Parse(t.Algorithm); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAlgorithm, err, "trace algorithm")
	}
	if err := errors.ValidateSize(len(t.Input), 0); err != nil {
		return nil, err
	}
	for _, f := range t.Frames {
		if len(f.Seq) != len(t.Input) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "frame %d has %d values, input has %d", f.Step, len(f.Seq), len(t.Input))
		}
	}
	return &t, nil
}

// ImportJSON reads a trace from the JSON file at path.
func ImportJSON(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
