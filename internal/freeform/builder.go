// Package freeform accumulates a polygon one vertex at a time while drawing
// its progress onto the canvas.
package freeform

import (
	"errors"
	"fmt"
	"log"

	"github.com/example/targeteditor/internal/canvas"
	"github.com/example/targeteditor/internal/geom"
	"github.com/example/targeteditor/internal/region"
)

// ErrTooFewVertices is returned by Finalize when the trace cannot form a
// polygon.
var ErrTooFewVertices = errors.New("freeform trace needs at least 3 vertices")

const (
	defaultVertexRadius = 3
	defaultDash         = 5
)

// Builder is a freeform trace in progress.
type Builder struct {
	canvas *canvas.Canvas

	vertexRadius float64
	dash         float64

	vertices []geom.Point
	// drawn holds the vertex markers and edges in the order they were added.
	drawn   []canvas.Node
	preview *canvas.Segment
}

// Option modifies a Builder during creation.
type Option func(*Builder)

// WithVertexRadius sets the radius of vertex markers.
func WithVertexRadius(r float64) Option { return func(b *Builder) { b.vertexRadius = r } }

// WithDash sets the dash length of the preview edge.
func WithDash(d float64) Option { return func(b *Builder) { b.dash = d } }

// New creates a builder drawing onto c.
func New(c *canvas.Canvas, opts ...Option) *Builder {
	b := &Builder{canvas: c, vertexRadius: defaultVertexRadius, dash: defaultDash}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Vertices returns the traced vertices in order.
func (b *Builder) Vertices() []geom.Point {
	out := make([]geom.Point, len(b.vertices))
	copy(out, b.vertices)
	return out
}

// Active reports whether at least one vertex has been placed.
func (b *Builder) Active() bool { return len(b.vertices) > 0 }

// UndoDepth is the number of drawn markers and edges that Undo can remove.
func (b *Builder) UndoDepth() int { return len(b.drawn) }

// Preview returns the live preview edge, or nil.
func (b *Builder) Preview() *canvas.Segment { return b.preview }

// AddVertex appends p to the trace. Every vertex gets a marker; every vertex
// after the first also gets an edge from its predecessor, pushed after the
// marker so Undo removes it first.
func (b *Builder) AddVertex(p geom.Point) {
	marker := &canvas.Marker{Center: p, Radius: b.vertexRadius}
	b.draw(marker)
	if n := len(b.vertices); n > 0 {
		b.draw(&canvas.Segment{From: b.vertices[n-1], To: p})
	}
	b.vertices = append(b.vertices, p)
}

// PreviewEdge redraws the dashed edge from the last vertex to p. It does
// nothing until a vertex exists.
func (b *Builder) PreviewEdge(p geom.Point) {
	if len(b.vertices) == 0 {
		return
	}
	b.clearPreview()
	edge := &canvas.Segment{From: b.vertices[len(b.vertices)-1], To: p, Dash: b.dash}
	if err := b.canvas.Add(edge); err != nil {
		log.Printf("freeform preview: %v", err)
		return
	}
	b.preview = edge
}

// Undo removes the last vertex together with its edge and marker. It
// reports whether anything was removed.
func (b *Builder) Undo() bool {
	if len(b.vertices) == 0 {
		return false
	}
	b.vertices = b.vertices[:len(b.vertices)-1]
	if top := b.pop(); top != nil {
		if _, isEdge := top.(*canvas.Segment); isEdge {
			b.pop()
		}
	}
	switch {
	case len(b.vertices) == 0:
		b.clearPreview()
	case b.preview != nil:
		b.preview.From = b.vertices[len(b.vertices)-1]
	}
	return true
}

// Finalize turns the trace into a polygon and clears every preview
// primitive. The builder is reset even when the trace is too short.
func (b *Builder) Finalize() (*region.Polygon, error) {
	defer b.Reset()
	if len(b.vertices) < 3 {
		return nil, fmt.Errorf("finalize with %d vertices: %w", len(b.vertices), ErrTooFewVertices)
	}
	return region.NewPolygon(b.vertices...), nil
}

// Reset discards the trace without producing a region.
func (b *Builder) Reset() {
	b.vertices = nil
	b.canvas.RemoveAll(b.drawn)
	b.drawn = nil
	b.clearPreview()
}

func (b *Builder) draw(n canvas.Node) {
	if err := b.canvas.Add(n); err != nil {
		log.Printf("freeform: %v", err)
		return
	}
	b.drawn = append(b.drawn, n)
}

func (b *Builder) pop() canvas.Node {
	if len(b.drawn) == 0 {
		return nil
	}
	top := b.drawn[len(b.drawn)-1]
	b.drawn = b.drawn[:len(b.drawn)-1]
	b.canvas.Remove(top)
	return top
}

func (b *Builder) clearPreview() {
	if b.preview == nil {
		return
	}
	b.canvas.Remove(b.preview)
	b.preview = nil
}
