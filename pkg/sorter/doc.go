// Package sorter turns classic sorting algorithms into resumable state machines.
//
// Every algorithm implements [Sorter]. Instead of sorting a slice in one call,
// a sorter advances one unit of work per [Sorter.Step]: either a comparison
// (cursor advance) or the mutation that a previous comparison made pending.
// Splitting the work this way lets a driver show "about to swap" and
// "swapped" as two distinct frames.
//
// # Algorithms
//
// The closed set of algorithms is enumerated by [Algorithm]:
//   - [BubbleSort]: adjacent pairs with a shrinking inner bound
//   - [InsertionSort]: sifts each element left into the sorted prefix
//   - [SelectionSort]: scans for the minimum, then swaps it into place
//   - [MergeSort]: bottom-up merge through a scratch buffer
//   - [HeapSort]: max-heap construction followed by root extraction
//   - [QuickSort]: median-of-three pivot with an explicit partition stack
//   - [BogoSort]: shuffles until a verification pass finds no inversion
//
// # Display State
//
// [Sorter.Special] reports the pair of indices that the last step looked at
// and [Sorter.Reason] says why: [Comparing], [Switching], or [Limits] for
// partition bounds. [NoPair] means nothing is highlighted, which is the case
// before the first step and after the last.
//
// # Usage
//
//	seq := []uint32{5, 2, 6}
//	s := sorter.New(sorter.Bubble)
//	for !s.Step(seq) {
//	    draw(seq, s.Special(), s.Reason())
//	}
//	s.Reset()
//
// Or, to sort in one call:
//
//	s.Run(seq)
//
// # Ownership
//
// The sequence belongs to the caller. A sorter only reads and writes it for
// the duration of a Step or Run call and never keeps a reference to it.
// Sorters are not safe for concurrent use; use one instance per goroutine.
package sorter
