package perm

import "slices"

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Factorials grow extremely fast: 21! already overflows a 64-bit int.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Generate returns permutations of [0, 1, ..., n-1] using Heap's algorithm.
//
// If limit > 0, Generate returns at most limit permutations.
// If limit <= 0, Generate returns all n! permutations.
//
// Each returned slice is a separate allocation, safe to modify without affecting others.
//
//   - n = 0: returns [[]] (one empty permutation)
//   - n = 1: returns [[0]] (one single-element permutation)
//
// For n >= 13, the number of permutations exceeds billions. Always use a limit
// when n is large, or use [Each].
func Generate(n, limit int) [][]int {
	capacity := Factorial(min(n, 12))
	if limit > 0 {
		capacity = min(capacity, limit)
	}
	result := make([][]int, 0, capacity)
	Each(n, func(p []int) bool {
		result = append(result, slices.Clone(p))
		return limit <= 0 || len(result) < limit
	})
	return result
}

// Each calls fn for every permutation of [0, 1, ..., n-1] in the same order as
// [Generate], stopping early when fn returns false. The slice passed to fn is
// reused between calls and must be cloned if retained.
//
// Each reports whether every permutation was visited.
func Each(n int, fn func(p []int) bool) bool {
	perm := Seq(n)
	if !fn(perm) {
		return false
	}
	state := make([]int, len(perm))
	for i := 0; i < len(perm); {
		if state[i] < i {
			if i&1 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[state[i]], perm[i] = perm[i], perm[state[i]]
			}
			if !fn(perm) {
				return false
			}
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return true
}

// Apply returns a new slice holding values[p[i]] at position i.
// It panics if p is not a permutation of len(values) indices.
func Apply(p []int, values []uint32) []uint32 {
	if len(p) != len(values) {
		panic("perm: permutation length does not match values")
	}
	result := make([]uint32, len(values))
	for i, j := range p {
		result[i] = values[j]
	}
	return result
}

// Inversions returns the number of pairs i < j with seq[i] > seq[j].
func Inversions(seq []uint32) int {
	count := 0
	for i := range seq {
		for j := i + 1; j < len(seq); j++ {
			if seq[i] > seq[j] {
				count++
			}
		}
	}
	return count
}
