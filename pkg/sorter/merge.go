package sorter

import "fmt"

type mergePhase int

const (
	mergeInit mergePhase = iota
	mergeComparing
	mergeCommitting
	mergeOver
	mergeDone
)

// MergeSort is a bottom-up merge sort. Runs of width power are merged pairwise
// into a scratch buffer one comparison per step, and the merged window is then
// written back into the sequence one slot per step.
type MergeSort struct {
	power   int // width of the runs being merged
	slice   int // start of the current window
	phase   mergePhase
	merger  merger
	special Pair
	reason  Reason
}

// NewMergeSort returns a merge sort that starts by merging runs of width one.
func NewMergeSort() *MergeSort {
	return &MergeSort{
		power:   1,
		slice:   0,
		phase:   mergeInit,
		special: NoPair,
		reason:  Comparing,
	}
}

func (m *MergeSort) Step(seq []uint32) bool {
	if len(seq) < 2 || m.phase == mergeDone {
		m.phase = mergeDone
		m.special = NoPair
		return true
	}
	if m.phase == mergeOver && m.modifyState(len(seq)) {
		m.phase = mergeDone
		m.special = NoPair
		return true
	}
	m.commit(seq)
	return false
}

func (m *MergeSort) Run(seq []uint32) { run(m, seq) }

func (m *MergeSort) Special() Pair { return m.special }

func (m *MergeSort) Reason() Reason { return m.reason }

func (m *MergeSort) Reset() { *m = *NewMergeSort() }

// modifyState moves to the next window that has a right half. When the pass
// is complete the width doubles; it reports true once a single run spans the
// whole sequence.
func (m *MergeSort) modifyState(n int) bool {
	m.slice += 2 * m.power
	if m.slice+m.power >= n {
		m.slice = 0
		m.power *= 2
	}
	if m.power >= n {
		return true
	}
	m.phase = mergeInit
	return false
}

// commit performs one unit of work on the current window: a comparison while
// merging, or a single write-back while committing.
func (m *MergeSort) commit(seq []uint32) {
	if m.phase == mergeInit {
		lo := m.slice
		hi := min(m.slice+2*m.power-1, len(seq)-1)
		m.merger.begin(seq, lo, lo+m.power-1, hi)
		m.phase = mergeComparing
	}
	if m.phase == mergeComparing {
		if p, ok := m.merger.compare(seq); ok {
			m.special = p
			m.reason = Comparing
			return
		}
		m.phase = mergeCommitting
	}
	t, last := m.merger.commit(seq)
	m.special = Pair{t, t}
	m.reason = Switching
	if last {
		m.phase = mergeOver
	}
}

// merger merges the sorted runs seq[lo..mid] and seq[mid+1..hi] through a
// scratch buffer. Comparisons read the live sequence and write only temp;
// the sequence changes during commit.
type merger struct {
	temp        []uint32
	lo, mid, hi int
	i, j, k     int
	tracker     int
}

func (m *merger) begin(seq []uint32, lo, mid, hi int) {
	if len(m.temp) != len(seq) {
		m.temp = make([]uint32, len(seq))
	}
	copy(m.temp[lo:hi+1], seq[lo:hi+1])
	m.lo, m.mid, m.hi = lo, mid, hi
	m.i, m.j, m.k = lo, mid+1, lo
	m.tracker = lo
}

// compare merges one element and returns the compared pair. It returns false
// when one run is exhausted, after draining what is left of the left run.
// The rest of the right run is already in place in temp.
func (m *merger) compare(seq []uint32) (Pair, bool) {
	if m.i <= m.mid && m.j <= m.hi {
		p := Pair{m.i, m.j}
		if seq[m.i] <= seq[m.j] {
			m.temp[m.k] = seq[m.i]
			m.i++
		} else {
			m.temp[m.k] = seq[m.j]
			m.j++
		}
		m.k++
		return p, true
	}
	for m.i <= m.mid {
		m.temp[m.k] = seq[m.i]
		m.i++
		m.k++
	}
	m.tracker = m.lo
	return NoPair, false
}

// commit writes one merged slot back and reports its index and whether it was
// the last slot of the window.
func (m *merger) commit(seq []uint32) (int, bool) {
	t := m.tracker
	seq[t] = m.temp[t]
	m.tracker++
	return t, t >= m.hi
}

// MergeRange merges the sorted runs seq[lo..mid] and seq[mid+1..hi]
// (inclusive bounds) in place. It panics if the bounds are out of range.
func MergeRange(seq []uint32, lo, mid, hi int) {
	if lo < 0 || lo > mid || hi >= len(seq) {
		panic(fmt.Sprintf("sorter: merge range (%d, %d, %d) out of bounds for length %d", lo, mid, hi, len(seq)))
	}
	if mid >= hi {
		return
	}
	var m merger
	m.begin(seq, lo, mid, hi)
	for {
		if _, ok := m.compare(seq); !ok {
			break
		}
	}
	for {
		if _, last := m.commit(seq); last {
			break
		}
	}
}
