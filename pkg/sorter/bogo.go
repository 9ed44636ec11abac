package sorter

import "math/rand/v2"

// BogoSort verifies the sequence pair by pair and shuffles all of it as soon
// as an inversion turns up. It terminates with probability one, but the
// number of steps has no upper bound.
//
// While verifying, Special reports the pair under inspection, including the
// inverted pair that triggers a shuffle. The shuffle step itself reports
// NoPair.
type BogoSort struct {
	x            int // left index of the verified pair, None between passes
	needsShuffle bool
	shuffled     bool
	sorted       bool
	seed         uint64
	rng          *rand.Rand
	reason       Reason
}

// NewBogoSort returns a bogo sort with a randomly seeded shuffle source.
func NewBogoSort() *BogoSort {
	return NewBogoSortWithSeed(rand.Uint64())
}

// NewBogoSortWithSeed returns a bogo sort whose shuffles are determined by
// seed. Reset rewinds the shuffle source to the same seed.
func NewBogoSortWithSeed(seed uint64) *BogoSort {
	return &BogoSort{
		x:      None,
		seed:   seed,
		rng:    rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
		reason: Comparing,
	}
}

func (b *BogoSort) Step(seq []uint32) bool {
	if b.needsShuffle {
		b.commit(seq)
		return false
	}
	return b.modifyState(seq)
}

func (b *BogoSort) Run(seq []uint32) { run(b, seq) }

func (b *BogoSort) Special() Pair {
	if b.shuffled || b.x == None {
		return NoPair
	}
	return Pair{b.x, b.x + 1}
}

func (b *BogoSort) Reason() Reason { return b.reason }

func (b *BogoSort) Reset() { *b = *NewBogoSortWithSeed(b.seed) }

func (b *BogoSort) modifyState(seq []uint32) bool {
	n := len(seq)
	if b.sorted || n < 2 {
		b.sorted = true
		b.x = None
		return true
	}
	if b.x == None {
		b.x = 0
	} else {
		b.x++
	}
	b.shuffled = false
	if b.x == n-1 {
		b.sorted = true
		b.x = None
		return true
	}
	b.reason = Comparing
	b.needsShuffle = seq[b.x] > seq[b.x+1]
	return false
}

func (b *BogoSort) commit(seq []uint32) {
	b.rng.Shuffle(len(seq), func(i, j int) { swap(seq, i, j) })
	b.needsShuffle = false
	b.shuffled = true
	b.x = None
	b.reason = Switching
}
