package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/stepsort/pkg/sorter"
)

func TestHeapDOTStructure(t *testing.T) {
	dot := HeapDOT([]uint32{9, 7, 8, 1}, 4, sorter.NoPair, sorter.Comparing)

	if !strings.HasPrefix(dot, "digraph Heap {") {
		t.Error("HeapDOT() should start with 'digraph Heap {'")
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Error("HeapDOT() should end with '}'")
	}

	expected := []string{
		"rankdir=TB",
		"bgcolor=\"transparent\"",
		"arrowhead=none",
		"n0 -> n1;",
		"n0 -> n2;",
		"n1 -> n3;",
		"n0 [label=\"9\", xlabel=\"0\"]",
	}
	for _, exp := range expected {
		if !strings.Contains(dot, exp) {
			t.Errorf("HeapDOT() missing %q", exp)
		}
	}
	if strings.Contains(dot, "n1 -> n4") {
		t.Error("HeapDOT() has an edge to a missing child")
	}
	if strings.Contains(dot, "subgraph sorted") {
		t.Error("HeapDOT() drew a sorted tail for a full heap")
	}
}

func TestHeapDOTSortedTail(t *testing.T) {
	dot := HeapDOT([]uint32{3, 1, 2, 8, 9}, 3, sorter.NoPair, sorter.Comparing)

	if !strings.Contains(dot, "subgraph sorted") {
		t.Error("HeapDOT() should group the sorted tail")
	}
	if !strings.Contains(dot, "n3 [label=\"8\", xlabel=\"3\", style=\"filled,dashed\"") {
		t.Error("HeapDOT() should draw settled nodes dashed")
	}
	if strings.Contains(dot, "n1 -> n3;") {
		t.Error("HeapDOT() should not connect the heap to settled nodes")
	}
}

func TestHeapDOTHighlights(t *testing.T) {
	tests := []struct {
		reason sorter.Reason
		fill   string
	}{
		{sorter.Comparing, "#f5d547"},
		{sorter.Switching, "#7bd88f"},
		{sorter.Limits, "#6cb6ff"},
	}
	for _, tt := range tests {
		t.Run(tt.reason.String(), func(t *testing.T) {
			dot := HeapDOT([]uint32{5, 4, 3}, 3, sorter.Pair{A: 0, B: 2}, tt.reason)
			if got := strings.Count(dot, tt.fill); got != 2 {
				t.Errorf("fill %s used %d times, want 2", tt.fill, got)
			}
		})
	}
}

func TestHeapDOTEmpty(t *testing.T) {
	dot := HeapDOT(nil, 5, sorter.NoPair, sorter.Comparing)
	if !strings.Contains(dot, "digraph Heap {") {
		t.Error("HeapDOT() should produce valid DOT for an empty sequence")
	}
	if strings.Contains(dot, "->") {
		t.Error("HeapDOT() of an empty sequence has edges")
	}
}

func TestRenderSVG(t *testing.T) {
	dot := HeapDOT([]uint32{9, 7, 8}, 3, sorter.Pair{A: 0, B: 1}, sorter.Comparing)
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() changed an SVG without viewBox")
	}
}

func TestConvert(t *testing.T) {
	dot := HeapDOT([]uint32{2, 1}, 2, sorter.NoPair, sorter.Comparing)

	out, err := Convert(context.Background(), dot, "DOT")
	if err != nil || string(out) != dot {
		t.Errorf("Convert(dot) = %q, %v", out, err)
	}

	if _, err := Convert(context.Background(), dot, "gif"); err == nil {
		t.Error("Convert(gif) should fail")
	}
}
