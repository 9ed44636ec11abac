package sorter

type heapPhase int

const (
	heapBuild heapPhase = iota
	heapSift
	heapDone
)

// HeapSort builds a max-heap in place and then repeatedly moves the root to the
// end of the unsorted region, sifting the new root down after each move.
//
// During construction, sift beats that find nothing to swap are absorbed into
// the next visible step, so every build step performs exactly one swap.
type HeapSort struct {
	phase   heapPhase
	start   int // next parent to heapify during construction
	root    int // node being sifted down
	index   int // last position of the unsorted region
	special Pair
	reason  Reason
}

// NewHeapSort returns a heap sort that has not started building its heap.
func NewHeapSort() *HeapSort {
	return &HeapSort{
		phase:   heapBuild,
		start:   None,
		root:    None,
		index:   None,
		special: NoPair,
		reason:  Comparing,
	}
}

func (h *HeapSort) Step(seq []uint32) bool {
	if len(seq) < 2 || h.phase == heapDone {
		h.phase = heapDone
		h.special = NoPair
		return true
	}
	if h.phase == heapBuild {
		h.build(seq)
		return false
	}
	return h.modifyState(seq)
}

func (h *HeapSort) Run(seq []uint32) { run(h, seq) }

func (h *HeapSort) Special() Pair { return h.special }

func (h *HeapSort) Reason() Reason { return h.reason }

func (h *HeapSort) Reset() { *h = *NewHeapSort() }

// build advances heap construction until one swap happens. When the last
// parent settles, the first extraction swap is performed instead so that the
// step still changes something visible.
func (h *HeapSort) build(seq []uint32) {
	n := len(seq)
	if h.start == None {
		h.start = n/2 - 1
		h.root = h.start
	}
	for h.siftDown(seq, n-1) {
		if h.start == 0 {
			h.index = n - 1
			h.switchRoot(seq)
			h.phase = heapSift
			return
		}
		h.start--
		h.root = h.start
	}
}

// modifyState sifts the root within the unsorted region. Once the heap is
// restored the region shrinks and the next root is moved out in the same step.
func (h *HeapSort) modifyState(seq []uint32) bool {
	if !h.siftDown(seq, h.index-1) {
		return false
	}
	h.index--
	if h.index == 0 {
		h.phase = heapDone
		h.special = NoPair
		return true
	}
	h.switchRoot(seq)
	return false
}

// siftDown performs one beat of sifting root within seq[0..end]. It returns
// true if the heap property already holds at root, otherwise it swaps root
// with its larger child and follows it. The right child wins only when it is
// strictly greater than the left.
func (h *HeapSort) siftDown(seq []uint32, end int) bool {
	child := 2*h.root + 1
	if child > end {
		return true
	}
	if child < end && seq[child+1] > seq[child] {
		child++
	}
	if seq[h.root] >= seq[child] {
		return true
	}
	swap(seq, h.root, child)
	h.special = Pair{h.root, child}
	h.reason = Comparing
	h.root = child
	return false
}

// switchRoot moves the heap maximum to index and restarts sifting at the root.
func (h *HeapSort) switchRoot(seq []uint32) {
	swap(seq, h.index, 0)
	h.special = Pair{h.index, 0}
	h.reason = Switching
	h.root = 0
}

// HeapSize returns how many leading positions of a length-n sequence still
// form the heap. Positions from HeapSize onwards hold their final values.
func (h *HeapSort) HeapSize(n int) int {
	switch h.phase {
	case heapSift:
		return h.index
	case heapDone:
		return 0
	default:
		return n
	}
}
