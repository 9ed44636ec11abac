// Package visualizer holds the display-independent state of an interactive
// sorting session.
//
// A Visualizer owns the sequence being sorted, the active sorter, and the
// play state. Front ends call Tick on a timer, translate user input into
// Start, Stop, Step, Reset, Shuffle and SetAlgorithm, and draw the sequence
// using Marks.
package visualizer

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stepsort/pkg/errors"
	"github.com/matzehuels/stepsort/pkg/observability"
	"github.com/matzehuels/stepsort/pkg/sorter"
	"github.com/matzehuels/stepsort/pkg/vector"
)

// DefaultMaxSteps bounds RunToEnd when no limit is configured.
const DefaultMaxSteps = 10_000_000

// State is the play state of a session.
type State int

const (
	// Start means the session is paused and may be stepped manually.
	Start State = iota
	// Running means Tick advances the sorter.
	Running
	// Finished means the sequence is sorted; only Reset, Shuffle and
	// SetAlgorithm leave this state.
	Finished
)

func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Mark is the display class of a single position.
type Mark int

const (
	MarkDefault Mark = iota
	MarkComparing
	MarkSwitching
	MarkLimits
)

// Options configures a new session.
type Options struct {
	Algorithm sorter.Algorithm
	Vector    vector.Options // Used when Values is empty
	Values    []uint32       // Explicit initial sequence
	MaxSteps  int            // Bound for RunToEnd; zero means DefaultMaxSteps
	Logger    *log.Logger
}

// Visualizer is an interactive sorting session. It is not safe for
// concurrent use.
type Visualizer struct {
	id        string
	algorithm sorter.Algorithm
	sorter    sorter.Sorter
	initial   []uint32
	seq       []uint32
	state     State
	steps     int
	maxSteps  int
	gen       vector.Options
	explicit  bool
	rng       *rand.Rand
	logger    *log.Logger
}

// New creates a session. Without explicit values a random vector is drawn
// from opts.Vector.
func New(opts Options) (*Visualizer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	v := &Visualizer{
		id:        uuid.New().String()[:8],
		algorithm: opts.Algorithm,
		sorter:    sorter.New(opts.Algorithm),
		maxSteps:  maxSteps,
		gen:       opts.Vector,
		rng:       vector.NewRand(opts.Vector.Seed),
		logger:    logger,
	}

	if len(opts.Values) > 0 {
		if err := errors.ValidateSize(len(opts.Values), 0); err != nil {
			return nil, err
		}
		v.initial = slices.Clone(opts.Values)
		v.explicit = true
	} else {
		if err := opts.Vector.Validate(); err != nil {
			return nil, err
		}
		v.initial = vector.Random(v.rng, opts.Vector.Floor, opts.Vector.Ceil, opts.Vector.Size)
	}
	v.seq = slices.Clone(v.initial)

	v.logger.Debug("session created", "session", v.id, "algorithm", v.algorithm, "size", len(v.seq))
	return v, nil
}

// ID returns the session identifier.
func (v *Visualizer) ID() string { return v.id }

// Algorithm returns the active algorithm.
func (v *Visualizer) Algorithm() sorter.Algorithm { return v.algorithm }

// State returns the play state.
func (v *Visualizer) State() State { return v.state }

// Steps returns the number of steps that did work since the last reset.
func (v *Visualizer) Steps() int { return v.steps }

// Sequence returns the live sequence. Callers must not modify it.
func (v *Visualizer) Sequence() []uint32 { return v.seq }

// Special returns the highlighted pair of the last step.
func (v *Visualizer) Special() sorter.Pair { return v.sorter.Special() }

// Reason returns why Special is highlighted.
func (v *Visualizer) Reason() sorter.Reason { return v.sorter.Reason() }

// Sorter returns the active sorter for read-only inspection.
func (v *Visualizer) Sorter() sorter.Sorter { return v.sorter }

// Step advances the sorter once regardless of the play state. It reports
// whether the sequence is sorted.
func (v *Visualizer) Step() bool {
	if v.state == Finished {
		return true
	}
	if v.sorter.Step(v.seq) {
		v.setState(Finished)
		return true
	}
	v.steps++
	return false
}

// Tick steps only while the session is running. It reports whether a step
// was taken.
func (v *Visualizer) Tick() bool {
	if v.state != Running {
		return false
	}
	v.Step()
	return true
}

// Start resumes automatic stepping. It has no effect once finished.
func (v *Visualizer) Start() {
	if v.state == Start {
		v.setState(Running)
	}
}

// Stop pauses automatic stepping.
func (v *Visualizer) Stop() {
	if v.state == Running {
		v.setState(Start)
	}
}

// Toggle switches between Start and Running.
func (v *Visualizer) Toggle() {
	if v.state == Running {
		v.Stop()
	} else {
		v.Start()
	}
}

// RunToEnd steps until the sequence is sorted. It fails with a step limit
// error if the sorter needs more than the configured number of steps.
func (v *Visualizer) RunToEnd() error {
	for n := 1; !v.Step(); n++ {
		if n >= v.maxSteps {
			v.Stop()
			return &errors.StepLimitError{Algorithm: v.algorithm.String(), Limit: v.maxSteps}
		}
	}
	return nil
}

// Reset restores the initial sequence and a fresh sorter.
func (v *Visualizer) Reset() {
	copy(v.seq, v.initial)
	v.sorter.Reset()
	v.steps = 0
	v.setState(Start)
}

// Shuffle permutes the initial sequence and resets the session to it.
func (v *Visualizer) Shuffle() {
	vector.Shuffle(v.rng, v.initial)
	v.Reset()
}

// Regenerate draws a new random initial sequence and resets the session.
// Sessions created from explicit values are shuffled instead.
func (v *Visualizer) Regenerate() {
	if v.explicit {
		v.Shuffle()
		return
	}
	v.initial = vector.Random(v.rng, v.gen.Floor, v.gen.Ceil, v.gen.Size)
	v.seq = slices.Clone(v.initial)
	v.sorter.Reset()
	v.steps = 0
	v.setState(Start)
}

// SetAlgorithm replaces the sorter and resets the session.
func (v *Visualizer) SetAlgorithm(a sorter.Algorithm) {
	v.algorithm = a
	v.sorter = sorter.New(a)
	v.logger.Debug("algorithm changed", "session", v.id, "algorithm", a)
	observability.Visualizer().OnAlgorithmChange(context.Background(), v.id, a.String())
	v.Reset()
}

// Marks returns the display class of every position.
func (v *Visualizer) Marks() []Mark {
	if v.state == Finished {
		return make([]Mark, len(v.seq))
	}
	return MarksFor(len(v.seq), v.sorter.Special(), v.sorter.Reason())
}

// MarksFor classifies n positions given the pair and reason of one step.
// Indices of p outside [0, n) are ignored.
func MarksFor(n int, p sorter.Pair, r sorter.Reason) []Mark {
	marks := make([]Mark, n)
	if !p.Valid() {
		return marks
	}
	m := MarkFor(r)
	for _, i := range []int{p.A, p.B} {
		if i >= 0 && i < n {
			marks[i] = m
		}
	}
	return marks
}

func (v *Visualizer) setState(s State) {
	if s == v.state {
		return
	}
	v.logger.Debug("state changed", "session", v.id, "from", v.state, "to", s, "steps", v.steps)
	observability.Visualizer().OnStateChange(context.Background(), v.id, v.state.String(), s.String())
	v.state = s
}

// MarkFor returns the display class for positions touched for reason r.
func MarkFor(r sorter.Reason) Mark {
	switch r {
	case sorter.Comparing:
		return MarkComparing
	case sorter.Switching:
		return MarkSwitching
	case sorter.Limits:
		return MarkLimits
	}
	return MarkDefault
}
