package sorter

import (
	"fmt"
	"strings"
)

// Algorithm identifies one of the supported sorting algorithms.
type Algorithm int

// Supported algorithms, in display order.
const (
	Bubble Algorithm = iota
	Insertion
	Selection
	Merge
	Heap
	Quick
	Bogo
)

var algorithmNames = [...]string{
	Bubble:    "bubble",
	Insertion: "insertion",
	Selection: "selection",
	Merge:     "merge",
	Heap:      "heap",
	Quick:     "quick",
	Bogo:      "bogo",
}

// All returns every algorithm in display order.
func All() []Algorithm {
	return []Algorithm{Bubble, Insertion, Selection, Merge, Heap, Quick, Bogo}
}

// Names returns the lowercase names of every algorithm.
func Names() []string {
	names := make([]string, len(algorithmNames))
	copy(names, algorithmNames[:])
	return names
}

// String returns the lowercase name, e.g. "quick".
func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// Title returns the display name, e.g. "QuickSort".
func (a Algorithm) Title() string {
	name := a.String()
	if strings.HasPrefix(name, "Algorithm(") {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:] + "Sort"
}

// Next returns the algorithm after a, wrapping around.
func (a Algorithm) Next() Algorithm {
	return Algorithm((int(a) + 1) % len(algorithmNames))
}

// Prev returns the algorithm before a, wrapping around.
func (a Algorithm) Prev() Algorithm {
	return Algorithm((int(a) + len(algorithmNames) - 1) % len(algorithmNames))
}

// Parse resolves a name such as "quick", "QuickSort" or "quick-sort".
// Matching is case-insensitive.
func Parse(name string) (Algorithm, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(strings.TrimSuffix(n, "sort"), "-")
	n = strings.TrimSuffix(n, "_")
	for i, candidate := range algorithmNames {
		if n == candidate {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q (valid: %s)", name, strings.Join(algorithmNames[:], ", "))
}

// New returns a freshly constructed sorter for a.
// It panics if a is not one of the declared constants.
func New(a Algorithm) Sorter {
	switch a {
	case Bubble:
		return NewBubbleSort()
	case Insertion:
		return NewInsertionSort()
	case Selection:
		return NewSelectionSort()
	case Merge:
		return NewMergeSort()
	case Heap:
		return NewHeapSort()
	case Quick:
		return NewQuickSort()
	case Bogo:
		return NewBogoSort()
	}
	panic(fmt.Sprintf("sorter: unknown algorithm %d", int(a)))
}
