package sorter

type quickPhase int

const (
	quickInit quickPhase = iota
	quickSelect
	quickMovePivot
	quickScanLeft
	quickScanRight
	quickSwap
	quickReturnPivot
	quickDone
)

// span is an inclusive range of indices waiting to be partitioned.
type span struct {
	lo, hi int
}

// QuickSort partitions ranges around a median-of-three pivot. Pending ranges
// live on an explicit stack instead of the call stack, and every pointer
// movement is its own step.
//
// A partition of [lo, hi] proceeds as follows: select the pivot, move it to
// hi, advance x while elements are smaller than the pivot, retreat y while
// elements are not smaller, swap (x, y) and repeat until the pointers cross,
// then swap the pivot into x. The ranges on either side of x are pushed if
// they hold at least two elements.
type QuickSort struct {
	phase      quickPhase
	lo, hi     int // current partition
	x, y       int // scan pointers
	pivot      int
	pivotValue uint32
	stack      []span
	special    Pair
	reason     Reason
}

// NewQuickSort returns a quick sort whose partition stack is still empty.
func NewQuickSort() *QuickSort {
	return &QuickSort{
		phase:   quickInit,
		lo:      None,
		hi:      None,
		x:       None,
		y:       None,
		pivot:   None,
		special: NoPair,
		reason:  Comparing,
	}
}

func (q *QuickSort) Step(seq []uint32) bool {
	if len(seq) < 2 || q.phase == quickDone {
		q.phase = quickDone
		q.special = NoPair
		return true
	}
	if q.phase == quickInit {
		// The whole range is popped before any sub-range is pushed.
		q.stack = append(q.stack, span{0, len(seq) - 1})
		q.pop()
	}
	for {
		switch q.phase {
		case quickSelect:
			q.selectPivot(seq)
			return false
		case quickMovePivot:
			if q.movePivot(seq) {
				return false
			}
		case quickScanLeft:
			if q.scanLeft(seq) {
				return false
			}
		case quickScanRight:
			if q.scanRight(seq) {
				return false
			}
		case quickSwap:
			q.commit(seq)
			return false
		case quickReturnPivot:
			q.returnPivot(seq)
			return false
		default:
			q.special = NoPair
			return true
		}
	}
}

func (q *QuickSort) Run(seq []uint32) { run(q, seq) }

func (q *QuickSort) Special() Pair { return q.special }

func (q *QuickSort) Reason() Reason { return q.reason }

func (q *QuickSort) Reset() { *q = *NewQuickSort() }

// pop makes the most recently pushed range the current partition.
func (q *QuickSort) pop() {
	top := q.stack[len(q.stack)-1]
	q.stack = q.stack[:len(q.stack)-1]
	q.lo, q.hi = top.lo, top.hi
	q.x, q.y, q.pivot = None, None, None
	q.phase = quickSelect
}

func (q *QuickSort) push(lo, hi int) {
	if hi-lo >= 1 {
		q.stack = append(q.stack, span{lo, hi})
	}
}

func (q *QuickSort) selectPivot(seq []uint32) {
	mid := q.lo + (q.hi-q.lo)/2
	q.pivot = medianOfThree(seq, q.lo, mid, q.hi)
	q.special = Pair{q.lo, q.hi}
	q.reason = Limits
	q.phase = quickMovePivot
}

// movePivot parks the pivot at hi and primes the scan pointers. It reports
// whether a swap was needed.
func (q *QuickSort) movePivot(seq []uint32) bool {
	q.pivotValue = seq[q.pivot]
	q.x, q.y = q.lo, q.hi-1
	q.phase = quickScanLeft
	if q.pivot == q.hi {
		return false
	}
	swap(seq, q.pivot, q.hi)
	q.special = Pair{q.pivot, q.hi}
	q.reason = Switching
	q.pivot = q.hi
	return true
}

// scanLeft compares seq[x] with the pivot and advances x past smaller
// elements. It reports false, without comparing, once x has passed y.
func (q *QuickSort) scanLeft(seq []uint32) bool {
	if q.x > q.y {
		q.phase = quickScanRight
		return false
	}
	q.special = Pair{q.x, q.hi}
	q.reason = Comparing
	if seq[q.x] < q.pivotValue {
		q.x++
	} else {
		q.phase = quickScanRight
	}
	return true
}

// scanRight compares seq[y] with the pivot and retreats y past elements that
// are not smaller. Finding a smaller element makes the (x, y) swap pending;
// crossing the pointers ends the partition.
func (q *QuickSort) scanRight(seq []uint32) bool {
	if q.y < q.x {
		q.phase = quickReturnPivot
		return false
	}
	q.special = Pair{q.y, q.hi}
	q.reason = Comparing
	if seq[q.y] >= q.pivotValue {
		q.y--
	} else {
		q.phase = quickSwap
	}
	return true
}

func (q *QuickSort) commit(seq []uint32) {
	swap(seq, q.x, q.y)
	q.special = Pair{q.x, q.y}
	q.reason = Switching
	q.x++
	q.y--
	q.phase = quickScanLeft
}

// returnPivot swaps the pivot into its final position, schedules both sides
// and picks the next partition.
func (q *QuickSort) returnPivot(seq []uint32) {
	p := q.x
	swap(seq, p, q.hi)
	q.special = Pair{p, q.hi}
	q.reason = Switching
	q.push(p+1, q.hi)
	q.push(q.lo, p-1)
	if len(q.stack) == 0 {
		q.phase = quickDone
		return
	}
	q.pop()
}

// medianOfThree returns whichever of a, b, c holds the median value, using
// only the parity of three strict comparisons. Ties resolve to b first, then
// to a, and to c otherwise.
func medianOfThree(seq []uint32, a, b, c int) int {
	ab := seq[a] < seq[b]
	bc := seq[b] < seq[c]
	ac := seq[a] < seq[c]
	switch {
	case ab == bc:
		return b
	case ab == ac:
		return c
	default:
		return a
	}
}
