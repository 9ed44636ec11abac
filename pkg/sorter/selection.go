package sorter

// SelectionSort scans the unsorted region for its minimum and swaps it into
// the first unsorted position.
type SelectionSort struct {
	x           int // first unsorted position
	y           int // scan pointer
	min         int // index of the smallest element seen by the scan
	needsSwitch bool
	special     Pair
	reason      Reason
}

// NewSelectionSort returns a selection sort about to scan from index 1.
func NewSelectionSort() *SelectionSort {
	return &SelectionSort{
		x:       0,
		y:       1,
		min:     0,
		special: NoPair,
		reason:  Comparing,
	}
}

func (s *SelectionSort) Step(seq []uint32) bool {
	if s.needsSwitch {
		s.commit(seq)
		return false
	}
	return s.modifyState(seq)
}

func (s *SelectionSort) Run(seq []uint32) { run(s, seq) }

func (s *SelectionSort) Special() Pair { return s.special }

func (s *SelectionSort) Reason() Reason { return s.reason }

func (s *SelectionSort) Reset() { *s = *NewSelectionSort() }

// modifyState compares the scan pointer against the running minimum. Once the
// scan reaches the end, the swap of (x, min) becomes pending.
func (s *SelectionSort) modifyState(seq []uint32) bool {
	n := len(seq)
	if s.x >= n-1 {
		s.special = NoPair
		return true
	}
	s.special = Pair{s.y, s.min}
	s.reason = Comparing
	if seq[s.y] < seq[s.min] {
		s.min = s.y
	}
	s.y++
	if s.y == n {
		s.needsSwitch = true
	}
	return false
}

func (s *SelectionSort) commit(seq []uint32) {
	s.special = Pair{s.x, s.min}
	s.reason = Switching
	swap(seq, s.x, s.min)
	s.x++
	s.min = s.x
	s.y = s.x + 1
	s.needsSwitch = false
}
