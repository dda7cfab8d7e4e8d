package freeform

import (
	"errors"
	"testing"

	"github.com/example/targeteditor/internal/canvas"
	"github.com/example/targeteditor/internal/geom"
)

func square() []geom.Point {
	return []geom.Point{geom.Pt(10, 10), geom.Pt(50, 10), geom.Pt(50, 50), geom.Pt(10, 50)}
}

func TestAddVertexDrawsMarkersAndEdges(t *testing.T) {
	c := canvas.New()
	b := New(c)
	for _, p := range square() {
		b.AddVertex(p)
	}
	// 4 markers and 3 edges
	if c.Len() != 7 || b.UndoDepth() != 7 {
		t.Fatalf("canvas %d, undo %d", c.Len(), b.UndoDepth())
	}
	children := c.Children()
	if _, ok := children[len(children)-1].(*canvas.Segment); !ok {
		t.Fatalf("edge should be drawn after its marker, got %T", children[len(children)-1])
	}
}

func TestPreviewEdgeNeedsVertex(t *testing.T) {
	c := canvas.New()
	b := New(c)
	b.PreviewEdge(geom.Pt(5, 5))
	if b.Preview() != nil || c.Len() != 0 {
		t.Fatal("preview drawn without a vertex")
	}
	b.AddVertex(geom.Pt(1, 1))
	b.PreviewEdge(geom.Pt(5, 5))
	first := b.Preview()
	b.PreviewEdge(geom.Pt(9, 9))
	if c.Contains(first) {
		t.Fatal("stale preview left on canvas")
	}
	if p := b.Preview(); p == nil || p.To != geom.Pt(9, 9) || p.From != geom.Pt(1, 1) || p.Dash <= 0 {
		t.Fatalf("unexpected preview %+v", p)
	}
	if c.Len() != 2 {
		t.Fatalf("canvas should hold marker and preview, has %d", c.Len())
	}
}

func TestUndoRemovesOneVertexPerCall(t *testing.T) {
	c := canvas.New()
	b := New(c)
	pts := square()
	for _, p := range pts {
		b.AddVertex(p)
	}
	b.PreviewEdge(geom.Pt(0, 0))
	for n := len(pts); n > 0; n-- {
		before := b.UndoDepth()
		if !b.Undo() {
			t.Fatalf("undo %d reported nothing removed", n)
		}
		want := 2
		if n == 1 {
			want = 1
		}
		if removed := before - b.UndoDepth(); removed != want {
			t.Fatalf("undo with %d vertices removed %d primitives, want %d", n, removed, want)
		}
		if len(b.Vertices()) != n-1 {
			t.Fatalf("vertices = %d, want %d", len(b.Vertices()), n-1)
		}
		if n > 1 && b.Preview().From != pts[n-2] {
			t.Fatalf("preview not anchored to last vertex: %+v", b.Preview())
		}
	}
	if b.Active() || b.Preview() != nil || b.UndoDepth() != 0 || c.Len() != 0 {
		t.Fatalf("builder not back to fresh state: canvas=%d", c.Len())
	}
	if b.Undo() {
		t.Fatal("undo on empty builder should report false")
	}
}

func TestFinalizeProducesPolygonAndClears(t *testing.T) {
	c := canvas.New()
	b := New(c)
	for _, p := range square() {
		b.AddVertex(p)
	}
	b.PreviewEdge(geom.Pt(3, 3))
	poly, err := b.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if got := poly.Vertices(); len(got) != 4 || got[2] != geom.Pt(50, 50) {
		t.Fatalf("unexpected vertices %v", got)
	}
	if c.Len() != 0 || b.Active() || b.Preview() != nil {
		t.Fatal("preview primitives left behind")
	}
}

func TestFinalizeTooShort(t *testing.T) {
	c := canvas.New()
	b := New(c)
	b.AddVertex(geom.Pt(1, 1))
	b.AddVertex(geom.Pt(2, 2))
	if _, err := b.Finalize(); !errors.Is(err, ErrTooFewVertices) {
		t.Fatalf("expected ErrTooFewVertices, got %v", err)
	}
	if c.Len() != 0 || b.Active() {
		t.Fatal("short trace not cleared")
	}
}

func TestResetLeavesCanvasUntouchedOtherwise(t *testing.T) {
	c := canvas.New()
	other := &canvas.Marker{Radius: 9}
	_ = c.Add(other)
	b := New(c, WithVertexRadius(4), WithDash(2))
	b.AddVertex(geom.Pt(1, 1))
	b.AddVertex(geom.Pt(3, 1))
	b.PreviewEdge(geom.Pt(8, 8))
	b.Reset()
	if c.Len() != 1 || !c.Contains(other) {
		t.Fatalf("reset removed foreign nodes or left its own: %v", c.Children())
	}
}
