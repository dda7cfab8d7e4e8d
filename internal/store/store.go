// Package store holds the committed regions of a target. The order of the
// store is the stacking order, and the store keeps the canvas children that
// belong to it in the same relative order.
package store

import (
	"errors"
	"fmt"
	"slices"

	"github.com/example/targeteditor/internal/canvas"
	"github.com/example/targeteditor/internal/geom"
	"github.com/example/targeteditor/internal/region"
)

var (
	// ErrNotCommitted is returned for a region handle the store does not hold.
	ErrNotCommitted = errors.New("region is not committed")
	// ErrAlreadyCommitted is returned when adding a region twice.
	ErrAlreadyCommitted = errors.New("region is already committed")
)

// Store is the ordered list of committed regions.
type Store struct {
	regions []region.Region
	canvas  *canvas.Canvas
}

// New creates a store that mirrors its order onto c.
func New(c *canvas.Canvas) *Store {
	return &Store{canvas: c}
}

// Add commits r on top of the stack. If r is already drawn on the canvas it
// is lifted to the top of the canvas as well.
func (s *Store) Add(r region.Region) error {
	if s.IndexOf(r.ID()) >= 0 {
		return ErrAlreadyCommitted
	}
	s.canvas.Remove(r)
	if err := s.canvas.Add(r); err != nil {
		return fmt.Errorf("add region %d: %w", r.ID(), err)
	}
	s.regions = append(s.regions, r)
	return nil
}

// Remove deletes the region with the given handle from the store and the
// canvas.
func (s *Store) Remove(id region.ID) (region.Region, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return nil, false
	}
	r := s.regions[i]
	s.regions = slices.Delete(s.regions, i, i+1)
	s.canvas.Remove(r)
	return r, true
}

// Get looks up a committed region.
func (s *Store) Get(id region.ID) (region.Region, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.regions[i], true
	}
	return nil, false
}

// Contains reports whether id is committed.
func (s *Store) Contains(id region.ID) bool { return s.IndexOf(id) >= 0 }

// IndexOf returns the stacking index of id, or -1.
func (s *Store) IndexOf(id region.ID) int {
	return slices.IndexFunc(s.regions, func(r region.Region) bool { return r.ID() == id })
}

// Len is the number of committed regions.
func (s *Store) Len() int { return len(s.regions) }

// Regions returns the committed regions bottom to top.
func (s *Store) Regions() []region.Region { return slices.Clone(s.regions) }

// HitTest returns the topmost committed region containing p.
func (s *Store) HitTest(p geom.Point) (region.Region, bool) {
	for i := len(s.regions) - 1; i >= 0; i-- {
		if s.regions[i].Contains(p) {
			return s.regions[i], true
		}
	}
	return nil, false
}

// BringForward swaps id with the region directly above it. It is a no-op for
// the topmost region.
func (s *Store) BringForward(id region.ID) error {
	i := s.IndexOf(id)
	if i < 0 {
		return ErrNotCommitted
	}
	if i == len(s.regions)-1 {
		return nil
	}
	return s.swap(i)
}

// SendBackward swaps id with the region directly below it. It is a no-op for
// the bottom region.
func (s *Store) SendBackward(id region.ID) error {
	i := s.IndexOf(id)
	if i < 0 {
		return ErrNotCommitted
	}
	if i == 0 {
		return nil
	}
	return s.swap(i - 1)
}

// swap exchanges regions i and i+1. Both canvas children are detached before
// either is reinserted so a node is never present twice.
func (s *Store) swap(i int) error {
	lower, upper := s.regions[i], s.regions[i+1]
	li, ui := s.canvas.IndexOf(lower), s.canvas.IndexOf(upper)
	if li < 0 || ui < 0 || li > ui {
		return fmt.Errorf("swap %d/%d: canvas out of sync with store", lower.ID(), upper.ID())
	}
	s.canvas.Remove(upper)
	s.canvas.Remove(lower)
	if err := s.canvas.Insert(li, upper); err != nil {
		return err
	}
	if err := s.canvas.Insert(ui, lower); err != nil {
		return err
	}
	s.regions[i], s.regions[i+1] = upper, lower
	return nil
}
