package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/stepsort/pkg/sorter"
)

// Fill colors keyed by highlight reason.
var reasonFill = map[sorter.Reason]string{
	sorter.Comparing: "#f5d547",
	sorter.Switching: "#7bd88f",
	sorter.Limits:    "#6cb6ff",
}

// HeapDOT returns a Graphviz DOT digraph of seq viewed as a binary heap.
//
// The first heapSize positions form the tree; the rest are drawn as a row of
// settled nodes. Nodes in special are filled according to reason. Node labels
// show the value, with the index as an external label.
func HeapDOT(seq []uint32, heapSize int, special sorter.Pair, reason sorter.Reason) string {
	heapSize = max(0, min(heapSize, len(seq)))

	var buf bytes.Buffer
	buf.WriteString("digraph Heap {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, fontname=\"SF Mono, Menlo, monospace\", fontsize=14, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	for i, v := range seq {
		attrs := fmt.Sprintf("label=\"%d\", xlabel=\"%d\"", v, i)
		if i >= heapSize {
			attrs += ", style=\"filled,dashed\", fontcolor=gray40"
		}
		if special.Contains(i) {
			attrs += fmt.Sprintf(", fillcolor=%q", fillFor(reason))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", i, attrs)
	}

	if heapSize > 0 {
		buf.WriteString("\n")
	}
	for i := range heapSize {
		for _, c := range []int{2*i + 1, 2*i + 2} {
			if c < heapSize {
				fmt.Fprintf(&buf, "  n%d -> n%d;\n", i, c)
			}
		}
	}

	if heapSize < len(seq) {
		buf.WriteString("\n  subgraph sorted {\n    rank=sink;\n")
		for i := heapSize; i < len(seq); i++ {
			fmt.Fprintf(&buf, "    n%d;\n", i)
		}
		buf.WriteString("  }\n")
		for i := heapSize; i+1 < len(seq); i++ {
			fmt.Fprintf(&buf, "  n%d -> n%d [style=invis];\n", i, i+1)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fillFor(r sorter.Reason) string {
	if c, ok := reasonFill[r]; ok {
		return c
	}
	return "white"
}
