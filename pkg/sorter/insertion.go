package sorter

// InsertionSort grows a sorted prefix one element at a time, sifting each new
// element left until its left neighbour is not larger.
type InsertionSort struct {
	x, y        int // compared pair (y == x+1), None before the first step
	current     int // first index outside the sorted prefix
	needsSwitch bool
	switched    bool // the last step swapped (x, y)
	reason      Reason
}

// NewInsertionSort returns an insertion sort whose sorted prefix is the first
// element.
func NewInsertionSort() *InsertionSort {
	return &InsertionSort{
		x:       None,
		y:       None,
		current: 1,
		reason:  Comparing,
	}
}

func (s *InsertionSort) Step(seq []uint32) bool {
	if s.needsSwitch {
		s.commit(seq)
		return false
	}
	return s.modifyState(seq)
}

func (s *InsertionSort) Run(seq []uint32) { run(s, seq) }

func (s *InsertionSort) Special() Pair {
	if s.y == None {
		return NoPair
	}
	return Pair{s.x, s.y}
}

func (s *InsertionSort) Reason() Reason { return s.reason }

func (s *InsertionSort) Reset() { *s = *NewInsertionSort() }

// modifyState either keeps sifting the pair left after a swap or promotes the
// next element, then compares the pair.
func (s *InsertionSort) modifyState(seq []uint32) bool {
	n := len(seq)
	if s.current >= n {
		s.x, s.y = None, None
		return true
	}
	switch {
	case s.y == None:
		s.x, s.y = s.current-1, s.current
	case s.switched && s.x > 0:
		s.x--
		s.y--
	default:
		s.current++
		if s.current >= n {
			s.x, s.y = None, None
			s.switched = false
			return true
		}
		s.x, s.y = s.current-1, s.current
	}
	s.switched = false
	s.reason = Comparing
	s.needsSwitch = seq[s.x] > seq[s.y]
	return false
}

func (s *InsertionSort) commit(seq []uint32) {
	swap(seq, s.x, s.y)
	s.needsSwitch = false
	s.switched = true
	s.reason = Switching
}
