package sorter

// BubbleSort compares adjacent pairs, carrying the largest remaining element
// to the end of the unsorted region on every pass.
type BubbleSort struct {
	x           int // completed passes
	y           int // left index of the compared pair, None before the first step
	needsSwitch bool
	reason      Reason
}

// NewBubbleSort returns a bubble sort positioned before its first comparison.
func NewBubbleSort() *BubbleSort {
	return &BubbleSort{
		x:      0,
		y:      None,
		reason: Comparing,
	}
}

func (b *BubbleSort) Step(seq []uint32) bool {
	if b.needsSwitch {
		b.commit(seq)
		return false
	}
	return b.modifyState(seq)
}

func (b *BubbleSort) Run(seq []uint32) { run(b, seq) }

func (b *BubbleSort) Special() Pair {
	if b.y == None {
		return NoPair
	}
	return Pair{b.y, b.y + 1}
}

func (b *BubbleSort) Reason() Reason { return b.reason }

func (b *BubbleSort) Reset() { *b = *NewBubbleSort() }

// modifyState moves to the next adjacent pair and decides whether it must be
// swapped. The inner bound shrinks by one with every completed pass.
func (b *BubbleSort) modifyState(seq []uint32) bool {
	n := len(seq)
	if b.x >= n-1 {
		b.y = None
		return true
	}
	switch {
	case b.y == None:
		b.y = 0
	case b.y < n-2-b.x:
		b.y++
	default:
		b.x++
		b.y = 0
		if b.x == n-1 {
			b.y = None
			return true
		}
	}
	b.reason = Comparing
	b.needsSwitch = seq[b.y] > seq[b.y+1]
	return false
}

func (b *BubbleSort) commit(seq []uint32) {
	swap(seq, b.y, b.y+1)
	b.reason = Switching
	b.needsSwitch = false
}
