package store

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/example/targeteditor/internal/canvas"
	"github.com/example/targeteditor/internal/geom"
	"github.com/example/targeteditor/internal/region"
)

// regionOrder returns the canvas children that are regions, in paint order.
func regionOrder(c *canvas.Canvas) []region.ID {
	var ids []region.ID
	for _, n := range c.Children() {
		if r, ok := n.(region.Region); ok {
			ids = append(ids, r.ID())
		}
	}
	return ids
}

func storeOrder(s *Store) []region.ID {
	var ids []region.ID
	for _, r := range s.Regions() {
		ids = append(ids, r.ID())
	}
	return ids
}

func assertInSync(t *testing.T, s *Store, c *canvas.Canvas) {
	t.Helper()
	got, want := regionOrder(c), storeOrder(s)
	if len(got) != len(want) {
		t.Fatalf("canvas has %d regions, store %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: canvas %v store %v", i, got, want)
		}
	}
}

func TestReorderKeepsCanvasInSync(t *testing.T) {
	c := canvas.New()
	s := New(c)
	var ids []region.ID
	for i := 0; i < 6; i++ {
		r := region.NewRectangle(float64(i), 0, 10, 10)
		if err := s.Add(r); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, r.ID())
		// interleave preview primitives that do not belong to the store
		if err := c.Add(&canvas.Marker{Radius: 3}); err != nil {
			t.Fatal(err)
		}
	}
	rng := rand.New(rand.NewSource(1))
	for step := 0; step < 500; step++ {
		id := ids[rng.Intn(len(ids))]
		var err error
		if rng.Intn(2) == 0 {
			err = s.BringForward(id)
		} else {
			err = s.SendBackward(id)
		}
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		assertInSync(t, s, c)
	}
}

func TestBoundariesAreNoOps(t *testing.T) {
	c := canvas.New()
	s := New(c)
	a, b := region.NewRectangle(0, 0, 1, 1), region.NewEllipse(0, 0, 1, 1)
	_ = s.Add(a)
	_ = s.Add(b)
	if err := s.BringForward(b.ID()); err != nil {
		t.Fatal(err)
	}
	if err := s.SendBackward(a.ID()); err != nil {
		t.Fatal(err)
	}
	if got := storeOrder(s); got[0] != a.ID() || got[1] != b.ID() {
		t.Fatalf("boundary move changed order: %v", got)
	}
	if err := s.BringForward(a.ID()); err != nil {
		t.Fatal(err)
	}
	if got := storeOrder(s); got[0] != b.ID() {
		t.Fatalf("expected b at bottom, got %v", got)
	}
	assertInSync(t, s, c)
}

func TestAddLiftsCandidateAndRejectsDuplicates(t *testing.T) {
	c := canvas.New()
	s := New(c)
	candidate := region.NewRectangle(0, 0, 5, 5)
	_ = c.Add(candidate)
	marker := &canvas.Marker{Radius: 1}
	_ = c.Add(marker)
	if err := s.Add(candidate); err != nil {
		t.Fatal(err)
	}
	if c.IndexOf(candidate) != 1 {
		t.Fatalf("candidate not lifted to top: %d", c.IndexOf(candidate))
	}
	if err := s.Add(candidate); !errors.Is(err, ErrAlreadyCommitted) {
		t.Fatalf("expected ErrAlreadyCommitted, got %v", err)
	}
}

func TestRemoveAndHitTest(t *testing.T) {
	c := canvas.New()
	s := New(c)
	bottom := region.NewRectangle(0, 0, 50, 50)
	top := region.NewRectangle(10, 10, 10, 10)
	_ = s.Add(bottom)
	_ = s.Add(top)
	if r, ok := s.HitTest(geom.Pt(15, 15)); !ok || r.ID() != top.ID() {
		t.Fatalf("expected top region hit, got %v", r)
	}
	if _, ok := s.Remove(top.ID()); !ok {
		t.Fatal("remove failed")
	}
	if c.Contains(top) || s.Contains(top.ID()) {
		t.Fatal("removed region still present")
	}
	if r, ok := s.HitTest(geom.Pt(15, 15)); !ok || r.ID() != bottom.ID() {
		t.Fatalf("expected bottom region hit, got %v", r)
	}
	if err := s.BringForward(top.ID()); !errors.Is(err, ErrNotCommitted) {
		t.Fatalf("expected ErrNotCommitted, got %v", err)
	}
}
