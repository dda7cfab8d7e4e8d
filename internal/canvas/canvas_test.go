package canvas

import (
	"errors"
	"testing"

	"github.com/example/targeteditor/internal/geom"
)

func TestInsertRejectsDuplicate(t *testing.T) {
	c := New()
	m := &Marker{Center: geom.Pt(1, 1), Radius: 3}
	if err := c.Add(m); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Insert(0, m); !errors.Is(err, ErrDuplicateChild) {
		t.Fatalf("expected ErrDuplicateChild, got %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("len = %d", c.Len())
	}
}

func TestRemoveAndOrder(t *testing.T) {
	c := New()
	a := &Marker{Radius: 1}
	b := &Segment{To: geom.Pt(5, 5)}
	d := &Marker{Radius: 2}
	for _, n := range []Node{a, b, d} {
		if err := c.Add(n); err != nil {
			t.Fatal(err)
		}
	}
	if !c.Remove(b) {
		t.Fatal("expected removal")
	}
	if c.Remove(b) {
		t.Fatal("second removal should report false")
	}
	got := c.Children()
	if len(got) != 2 || got[0] != a || got[1] != d {
		t.Fatalf("unexpected children %v", got)
	}
	if err := c.Insert(5, b); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestSegmentBounds(t *testing.T) {
	s := &Segment{From: geom.Pt(10, 2), To: geom.Pt(4, 8)}
	if b := s.Bounds(); b != (geom.Rect{X: 4, Y: 2, Width: 6, Height: 6}) {
		t.Fatalf("bounds %+v", b)
	}
}
