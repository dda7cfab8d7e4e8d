package canvas

import (
	"math"

	"github.com/example/targeteditor/internal/geom"
)

// Marker is a filled dot drawn on a freeform vertex.
type Marker struct {
	Center geom.Point
	Radius float64
}

func (m *Marker) Bounds() geom.Rect {
	return geom.Rect{X: m.Center.X - m.Radius, Y: m.Center.Y - m.Radius, Width: 2 * m.Radius, Height: 2 * m.Radius}
}

// Segment is a straight line. A positive Dash draws it dashed with equal
// dash and gap lengths.
type Segment struct {
	From, To geom.Point
	Dash     float64
}

func (s *Segment) Bounds() geom.Rect { return geom.BoundsOf([]geom.Point{s.From, s.To}) }

// Length is the Euclidean length of the segment.
func (s *Segment) Length() float64 {
	return math.Hypot(s.To.X-s.From.X, s.To.Y-s.From.Y)
}
