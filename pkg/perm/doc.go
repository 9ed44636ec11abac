// Package perm provides permutation utilities used to exercise sorters over
// every ordering of a small input.
//
// # Generation
//
// [Generate] and [Each] enumerate the permutations of [0, 1, ..., n-1] with
// Heap's algorithm, which produces each permutation exactly once by a single
// swap from the previous one. [Generate] collects them; [Each] streams them
// without allocating the full n! result.
//
// # Application
//
// A permutation is applied to a value slice with [Apply], so a sorted slice of
// distinct values turns into every possible unsorted input:
//
//	want := []uint32{1, 2, 3, 4}
//	perm.Each(len(want), func(p []int) bool {
//	    seq := perm.Apply(p, want)
//	    s.Run(seq)
//	    return slices.Equal(seq, want)
//	})
//
// [Inversions] counts out-of-order pairs, which is the number of adjacent
// swaps bubble sort and insertion sort perform on that input.
package perm
