package tags

import (
	"errors"
	"testing"

	"github.com/example/targeteditor/internal/geom"
	"github.com/example/targeteditor/internal/region"
)

func TestBindingWritesBackOnClose(t *testing.T) {
	r := region.NewRectangle(0, 0, 10, 10)
	r.SetTags(map[string]string{"points": "5"})
	b := NewBinding(nil)
	b.Open(r, geom.Pt(1, 2))
	if !b.IsOpen() || b.Target() != r {
		t.Fatal("binding should be open on r")
	}
	sheet := b.Editor().(*Sheet)
	sheet.Set("zone", "a")
	if _, ok := r.Tags()["zone"]; ok {
		t.Fatal("tags written before close")
	}
	b.Close()
	if b.IsOpen() || b.Target() != nil {
		t.Fatal("binding should be closed")
	}
	got := r.Tags()
	if got["zone"] != "a" || got["points"] != "5" {
		t.Fatalf("unexpected tags %v", got)
	}
	b.Close()
}

func TestBindingReopenClosesPrevious(t *testing.T) {
	a, c := region.NewRectangle(0, 0, 1, 1), region.NewEllipse(0, 0, 1, 1)
	opened := 0
	b := NewBinding(func(initial map[string]string, _ geom.Point) Editor {
		opened++
		s := NewSheet(initial)
		s.Set("seen", "yes")
		return s
	})
	b.Open(a, geom.Point{})
	b.Open(c, geom.Point{})
	if opened != 2 || b.Target() != c {
		t.Fatalf("opened=%d target=%v", opened, b.Target())
	}
	if a.Tags()["seen"] != "yes" {
		t.Fatal("first region did not receive its edits")
	}
}

func TestAnchorBelow(t *testing.T) {
	got := AnchorBelow(geom.Rect{X: 10, Y: 20, Width: 30, Height: 8}, 4, 3)
	if got != geom.Pt(12, 33) {
		t.Fatalf("anchor = %+v", got)
	}
}

func TestSheetApply(t *testing.T) {
	s := NewSheet(map[string]string{"a": "1"})
	if err := s.ApplyText("# comment\nb = 2\n\na=\n"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := s.String(); got != "b=2\n" {
		t.Fatalf("sheet = %q", got)
	}
	if err := s.Apply("novalue"); !errors.Is(err, ErrMalformedTag) {
		t.Fatalf("expected ErrMalformedTag, got %v", err)
	}
	if err := s.Apply("=x"); !errors.Is(err, ErrMalformedTag) {
		t.Fatalf("expected ErrMalformedTag for empty key, got %v", err)
	}
}
