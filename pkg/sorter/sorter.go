package sorter

import "fmt"

// None is the index sentinel. An index field holding None does not refer to
// any position in the sequence.
const None = -1

// Pair is a pair of sequence indices highlighted for display.
type Pair struct {
	A, B int
}

// NoPair is the pair reported when no position is significant.
var NoPair = Pair{None, None}

// Valid reports whether both indices refer to a position.
func (p Pair) Valid() bool {
	return p.A != None && p.B != None
}

// Contains reports whether i is one of the pair's indices.
func (p Pair) Contains(i int) bool {
	return i != None && (p.A == i || p.B == i)
}

// String formats the pair as "(a, b)" or "-" for NoPair.
func (p Pair) String() string {
	if !p.Valid() {
		return "-"
	}
	return fmt.Sprintf("(%d, %d)", p.A, p.B)
}

// Reason explains why the special pair is highlighted.
type Reason int

const (
	// Comparing means the pair is being compared.
	Comparing Reason = iota
	// Switching means the pair has just been written or swapped.
	Switching
	// Limits means the pair marks the bounds of the active range.
	Limits
)

func (r Reason) String() string {
	switch r {
	case Comparing:
		return "comparing"
	case Switching:
		return "switching"
	case Limits:
		return "limits"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Sorter is a sorting algorithm that can be advanced one step at a time.
type Sorter interface {
	// Step advances one unit of work on seq. It returns true on the call that
	// finds the sequence sorted; that call does not modify seq. Further calls
	// keep returning true until Reset.
	Step(seq []uint32) bool

	// Run steps until completion and then resets the sorter.
	Run(seq []uint32)

	// Special returns the indices touched by the last step, or NoPair.
	Special() Pair

	// Reason returns why Special is highlighted.
	Reason() Reason

	// Reset restores the state of a freshly constructed sorter.
	Reset()
}

// run is the shared Run implementation.
func run(s Sorter, seq []uint32) {
	for !s.Step(seq) {
	}
	s.Reset()
}

func swap(seq []uint32, a, b int) {
	seq[a], seq[b] = seq[b], seq[a]
}
