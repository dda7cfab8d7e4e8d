// Package canvas keeps the ordered child list the editor draws. Index order
// is paint order: later children are drawn on top.
package canvas

import (
	"errors"
	"fmt"
	"slices"

	"github.com/example/targeteditor/internal/geom"
)

// ErrDuplicateChild is returned when a node is inserted while already present.
var ErrDuplicateChild = errors.New("node is already a canvas child")

// Node is anything that can be a canvas child. Implementations must be
// pointer types so that identity comparison is meaningful.
type Node interface {
	Bounds() geom.Rect
}

// Canvas is an ordered set of nodes.
type Canvas struct {
	children []Node
}

// New returns an empty canvas.
func New() *Canvas { return &Canvas{} }

// Add appends n on top of every other child.
func (c *Canvas) Add(n Node) error {
	return c.Insert(len(c.children), n)
}

// Insert places n at index i, shifting later children up.
func (c *Canvas) Insert(i int, n Node) error {
	if c.Contains(n) {
		return ErrDuplicateChild
	}
	if i < 0 || i > len(c.children) {
		return fmt.Errorf("insert at %d: index out of range [0,%d]", i, len(c.children))
	}
	c.children = slices.Insert(c.children, i, n)
	return nil
}

// Remove deletes n and reports whether it was present.
func (c *Canvas) Remove(n Node) bool {
	i := c.IndexOf(n)
	if i < 0 {
		return false
	}
	c.children = slices.Delete(c.children, i, i+1)
	return true
}

// RemoveAll deletes every listed node that is present.
func (c *Canvas) RemoveAll(nodes []Node) {
	for _, n := range nodes {
		c.Remove(n)
	}
}

// IndexOf returns the paint index of n or -1.
func (c *Canvas) IndexOf(n Node) int {
	return slices.IndexFunc(c.children, func(m Node) bool { return m == n })
}

// Contains reports whether n is a child.
func (c *Canvas) Contains(n Node) bool { return c.IndexOf(n) >= 0 }

// Len is the number of children.
func (c *Canvas) Len() int { return len(c.children) }

// Children returns the children in paint order.
func (c *Canvas) Children() []Node { return slices.Clone(c.children) }
