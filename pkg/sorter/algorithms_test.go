package sorter

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct {
	seq     []uint32
	special Pair
	reason  Reason
	done    bool
}

// replay steps s over seq and checks every frame in order.
func replay(t *testing.T, s Sorter, seq []uint32, frames []frame) {
	t.Helper()
	for i, want := range frames {
		done := s.Step(seq)
		require.Equal(t, want.done, done, "step %d done", i+1)
		assert.Equal(t, want.seq, seq, "step %d sequence", i+1)
		assert.Equal(t, want.special, s.Special(), "step %d special", i+1)
		if want.special.Valid() {
			assert.Equal(t, want.reason, s.Reason(), "step %d reason", i+1)
		}
	}
}

func TestBubbleSortSteps(t *testing.T) {
	replay(t, NewBubbleSort(), []uint32{5, 2, 6}, []frame{
		{seq: []uint32{5, 2, 6}, special: Pair{0, 1}, reason: Comparing},
		{seq: []uint32{2, 5, 6}, special: Pair{0, 1}, reason: Switching},
		{seq: []uint32{2, 5, 6}, special: Pair{1, 2}, reason: Comparing},
		{seq: []uint32{2, 5, 6}, special: Pair{0, 1}, reason: Comparing},
		{seq: []uint32{2, 5, 6}, special: NoPair, done: true},
	})
}

func TestBubbleSortRun(t *testing.T) {
	s := NewBubbleSort()
	seq := []uint32{5, 2, 6}
	s.Run(seq)
	assert.Equal(t, []uint32{2, 5, 6}, seq)
	assert.Equal(t, 0, s.x)
	assert.Equal(t, None, s.y)
}

func TestBubbleSortCommit(t *testing.T) {
	s := NewBubbleSort()
	seq := []uint32{5, 2, 6}
	s.y = 0
	s.needsSwitch = true
	s.commit(seq)
	assert.Equal(t, []uint32{2, 5, 6}, seq)
	assert.False(t, s.needsSwitch)
}

func TestInsertionSortSteps(t *testing.T) {
	replay(t, NewInsertionSort(), []uint32{3, 2, 1}, []frame{
		{seq: []uint32{3, 2, 1}, special: Pair{0, 1}, reason: Comparing},
		{seq: []uint32{2, 3, 1}, special: Pair{0, 1}, reason: Switching},
		{seq: []uint32{2, 3, 1}, special: Pair{1, 2}, reason: Comparing},
		{seq: []uint32{2, 1, 3}, special: Pair{1, 2}, reason: Switching},
		{seq: []uint32{2, 1, 3}, special: Pair{0, 1}, reason: Comparing},
		{seq: []uint32{1, 2, 3}, special: Pair{0, 1}, reason: Switching},
		{seq: []uint32{1, 2, 3}, special: NoPair, done: true},
	})
}

func TestInsertionSortPromotesWithoutSwitch(t *testing.T) {
	s := NewInsertionSort()
	seq := []uint32{1, 2, 3}
	assert.False(t, s.Step(seq))
	assert.Equal(t, 1, s.current)
	assert.False(t, s.Step(seq))
	assert.Equal(t, 2, s.current)
	assert.Equal(t, Pair{1, 2}, s.Special())
	assert.True(t, s.Step(seq))
}

func TestSelectionSortSteps(t *testing.T) {
	replay(t, NewSelectionSort(), []uint32{5, 2, 3}, []frame{
		{seq: []uint32{5, 2, 3}, special: Pair{1, 0}, reason: Comparing},
		{seq: []uint32{5, 2, 3}, special: Pair{2, 1}, reason: Comparing},
		{seq: []uint32{2, 5, 3}, special: Pair{0, 1}, reason: Switching},
	})
}

func TestSelectionSortRun(t *testing.T) {
	seq := []uint32{9, 2, 8, 10, 5}
	NewSelectionSort().Run(seq)
	assert.Equal(t, []uint32{2, 5, 8, 9, 10}, seq)
}

func TestSelectionSortCommit(t *testing.T) {
	s := NewSelectionSort()
	seq := []uint32{5, 2, 6}
	s.min = 1
	s.commit(seq)
	assert.Equal(t, []uint32{2, 5, 6}, seq)
	assert.Equal(t, 1, s.x)
	assert.Equal(t, s.x, s.min)
	assert.Equal(t, 2, s.y)
	assert.False(t, s.needsSwitch)
}

func TestMergeSortRun(t *testing.T) {
	seq := []uint32{6, 5, 3, 1, 8, 7, 2, 4}
	NewMergeSort().Run(seq)
	assert.Equal(t, []uint32{1, 2, 3, 4, 5, 6, 7, 8}, seq)
}

func TestMergeSortSteps(t *testing.T) {
	replay(t, NewMergeSort(), []uint32{2, 1}, []frame{
		{seq: []uint32{2, 1}, special: Pair{0, 1}, reason: Comparing},
		{seq: []uint32{1, 1}, special: Pair{0, 0}, reason: Switching},
		{seq: []uint32{1, 2}, special: Pair{1, 1}, reason: Switching},
		{seq: []uint32{1, 2}, special: NoPair, done: true},
	})
}

func TestMergeSortComparingLeavesSequence(t *testing.T) {
	s := NewMergeSort()
	seq := []uint32{4, 3, 2, 1}
	s.Step(seq)
	assert.Equal(t, mergeComparing, s.phase)
	assert.Equal(t, []uint32{4, 3, 2, 1}, seq)
}

func TestMergeSortPartialWindow(t *testing.T) {
	// With five elements the last run has no partner until power reaches 4.
	s := NewMergeSort()
	seq := []uint32{5, 4, 3, 2, 1}
	stepToEnd(t, s, seq)
	assert.Equal(t, []uint32{1, 2, 3, 4, 5}, seq)
	assert.Equal(t, 8, s.power)
}

func TestMergeRange(t *testing.T) {
	seq := []uint32{9, 13, 10, 11}
	MergeRange(seq, 0, 1, 3)
	assert.Equal(t, []uint32{9, 10, 11, 13}, seq)

	seq = []uint32{7, 1, 4, 2, 3, 0}
	MergeRange(seq, 1, 2, 4)
	assert.Equal(t, []uint32{7, 1, 2, 3, 4, 0}, seq)

	seq = []uint32{2, 1}
	MergeRange(seq, 0, 1, 1)
	assert.Equal(t, []uint32{2, 1}, seq, "an empty right run is a no-op")

	assert.Panics(t, func() { MergeRange([]uint32{1, 2}, 0, 0, 2) })
}

func TestHeapSortSteps(t *testing.T) {
	replay(t, NewHeapSort(), []uint32{1, 2, 3}, []frame{
		{seq: []uint32{3, 2, 1}, special: Pair{0, 2}, reason: Comparing},
		{seq: []uint32{1, 2, 3}, special: Pair{2, 0}, reason: Switching},
		{seq: []uint32{2, 1, 3}, special: Pair{0, 1}, reason: Comparing},
		{seq: []uint32{1, 2, 3}, special: Pair{1, 0}, reason: Switching},
		{seq: []uint32{1, 2, 3}, special: NoPair, done: true},
	})
}

func TestHeapSortPrefersLeftChildOnTie(t *testing.T) {
	h := NewHeapSort()
	h.root = 0
	seq := []uint32{1, 5, 5}
	settled := h.siftDown(seq, 2)
	assert.False(t, settled)
	assert.Equal(t, []uint32{5, 1, 5}, seq)
	assert.Equal(t, 1, h.root)
}

func TestHeapSortRun(t *testing.T) {
	for seed := range uint64(10) {
		seq := randomSeq(seed, 30, 100)
		want := sortedCopy(seq)
		NewHeapSort().Run(seq)
		assert.Equal(t, want, seq)
	}
}

func TestQuickSortSteps(t *testing.T) {
	replay(t, NewQuickSort(), []uint32{2, 1}, []frame{
		{seq: []uint32{2, 1}, special: Pair{0, 1}, reason: Limits},
		{seq: []uint32{1, 2}, special: Pair{0, 1}, reason: Switching},
		{seq: []uint32{1, 2}, special: Pair{0, 1}, reason: Comparing},
		{seq: []uint32{1, 2}, special: Pair{1, 1}, reason: Switching},
		{seq: []uint32{1, 2}, special: NoPair, done: true},
	})
}

func TestQuickSortEmptiesStack(t *testing.T) {
	q := NewQuickSort()
	seq := randomSeq(20, 20, 100)
	want := sortedCopy(seq)

	stepToEnd(t, q, seq)

	assert.Equal(t, want, seq)
	assert.Empty(t, q.stack)
	assert.Equal(t, quickDone, q.phase)
}

func TestQuickSortWholeRangePoppedFirst(t *testing.T) {
	q := NewQuickSort()
	seq := []uint32{4, 1, 3, 2}
	q.Step(seq)
	assert.Empty(t, q.stack)
	assert.Equal(t, 0, q.lo)
	assert.Equal(t, 3, q.hi)
	assert.Equal(t, Limits, q.Reason())
}

func TestQuickSortPivotSelection(t *testing.T) {
	tests := []struct {
		seq  []uint32
		want int
	}{
		{[]uint32{1, 2, 3}, 1},
		{[]uint32{3, 2, 1}, 1},
		{[]uint32{1, 3, 2}, 2},
		{[]uint32{2, 3, 1}, 0},
		{[]uint32{3, 1, 2}, 2},
		{[]uint32{2, 1, 3}, 0},
		{[]uint32{5, 5, 5}, 1},
		{[]uint32{2, 2, 1}, 1},
		{[]uint32{1, 1, 2}, 0},
		{[]uint32{2, 1, 2}, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, medianOfThree(tt.seq, 0, 1, 2), "medianOfThree(%v)", tt.seq)
	}
}

func TestQuickSortAllEqual(t *testing.T) {
	seq := slices.Repeat([]uint32{7}, 12)
	NewQuickSort().Run(seq)
	assert.Equal(t, slices.Repeat([]uint32{7}, 12), seq)
}

func TestBogoSortRun(t *testing.T) {
	seq := []uint32{4, 3, 2, 1}
	NewBogoSort().Run(seq)
	assert.Equal(t, []uint32{1, 2, 3, 4}, seq)
}

func TestBogoSortShuffleFrame(t *testing.T) {
	b := NewBogoSortWithSeed(7)
	seq := []uint32{2, 1}

	assert.False(t, b.Step(seq))
	assert.Equal(t, Pair{0, 1}, b.Special())
	assert.True(t, b.needsShuffle)

	assert.False(t, b.Step(seq))
	assert.Equal(t, NoPair, b.Special())
	assert.Equal(t, Switching, b.Reason())
	assert.ElementsMatch(t, []uint32{1, 2}, seq)
}

func TestBogoSortSeedIsReproducible(t *testing.T) {
	a := []uint32{5, 1, 4, 2, 3}
	b := slices.Clone(a)
	stepsA := stepToEnd(t, NewBogoSortWithSeed(99), a)
	stepsB := stepToEnd(t, NewBogoSortWithSeed(99), b)
	assert.Equal(t, stepsA, stepsB)
	assert.Equal(t, a, b)
}

func TestHeapSortHeapSize(t *testing.T) {
	h := NewHeapSort()
	seq := []uint32{1, 2, 3}
	assert.Equal(t, 3, h.HeapSize(len(seq)))
	h.Step(seq)
	assert.Equal(t, 3, h.HeapSize(len(seq)), "building")
	h.Step(seq)
	assert.Equal(t, 2, h.HeapSize(len(seq)), "after the first extraction")
	stepToEnd(t, h, seq)
	assert.Equal(t, 0, h.HeapSize(len(seq)))
}
