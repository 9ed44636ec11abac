// Package render draws sorter state as Graphviz diagrams.
//
// # Heap Trees
//
// [HeapDOT] lays a sequence out as the implicit binary tree that heap sort
// operates on: index i has children 2i+1 and 2i+2. Positions inside the heap
// are connected by edges; positions past the heap boundary already hold their
// final values and are drawn dashed on a separate rank. The special pair of
// the last step is filled with the color of its reason.
//
//	dot := render.HeapDOT(seq, h.HeapSize(len(seq)), h.Special(), h.Reason())
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg).
package render
