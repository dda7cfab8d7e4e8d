package region

import (
	"math"

	"github.com/example/targeteditor/internal/geom"
)

// Rectangle is an axis-aligned rectangular region.
type Rectangle struct {
	base
	paint
	rect geom.Rect
}

// NewRectangle creates a rectangle with its top-left corner at (x, y).
func NewRectangle(x, y, width, height float64) *Rectangle {
	return &Rectangle{
		base:  newBase(),
		paint: newPaint(),
		rect:  geom.Rect{X: x, Y: y, Width: floor(width), Height: floor(height)},
	}
}

func (r *Rectangle) Kind() Kind { return KindRectangle }

func (r *Rectangle) Bounds() geom.Rect { return r.rect }

func (r *Rectangle) Contains(p geom.Point) bool { return r.rect.Contains(p) }

func (r *Rectangle) MoveTo(origin geom.Point) {
	r.rect.X, r.rect.Y = origin.X, origin.Y
}

func (r *Rectangle) Translate(dx, dy float64) {
	r.rect.X += dx
	r.rect.Y += dy
}

func (r *Rectangle) ResizeWidth(delta float64) { r.rect.Width = floor(r.rect.Width + delta) }

func (r *Rectangle) ResizeHeight(delta float64) { r.rect.Height = floor(r.rect.Height + delta) }

// Ellipse is an axis-aligned ellipse described by its center and radii.
type Ellipse struct {
	base
	paint
	center geom.Point
	rx, ry float64
}

// NewEllipse creates an ellipse centered at (cx, cy).
func NewEllipse(cx, cy, rx, ry float64) *Ellipse {
	return &Ellipse{
		base:   newBase(),
		paint:  newPaint(),
		center: geom.Pt(cx, cy),
		rx:     math.Max(rx, MinSize/2),
		ry:     math.Max(ry, MinSize/2),
	}
}

func (e *Ellipse) Kind() Kind { return KindEllipse }

// Center returns the ellipse center.
func (e *Ellipse) Center() geom.Point { return e.center }

// Radii returns the horizontal and vertical radius.
func (e *Ellipse) Radii() (rx, ry float64) { return e.rx, e.ry }

func (e *Ellipse) Bounds() geom.Rect {
	return geom.Rect{X: e.center.X - e.rx, Y: e.center.Y - e.ry, Width: 2 * e.rx, Height: 2 * e.ry}
}

func (e *Ellipse) MoveTo(origin geom.Point) {
	e.center = geom.Pt(origin.X+e.rx, origin.Y+e.ry)
}

func (e *Ellipse) Translate(dx, dy float64) {
	e.center = e.center.Add(geom.Pt(dx, dy))
}

func (e *Ellipse) Contains(p geom.Point) bool {
	nx := (p.X - e.center.X) / e.rx
	ny := (p.Y - e.center.Y) / e.ry
	return nx*nx+ny*ny <= 1
}

// ResizeWidth changes the diameter by delta; the center stays put.
func (e *Ellipse) ResizeWidth(delta float64) { e.rx = floor(2*e.rx+delta) / 2 }

// ResizeHeight changes the vertical diameter by delta.
func (e *Ellipse) ResizeHeight(delta float64) { e.ry = floor(2*e.ry+delta) / 2 }

// Polygon is a closed polygon region.
type Polygon struct {
	base
	paint
	points []geom.Point
}

// NewPolygon creates a polygon from its vertices in drawing order.
func NewPolygon(points ...geom.Point) *Polygon {
	pts := make([]geom.Point, len(points))
	copy(pts, points)
	return &Polygon{base: newBase(), paint: newPaint(), points: pts}
}

// NewPolygonCoords creates a polygon from a flat x0, y0, x1, y1, ... list.
// A trailing odd coordinate is ignored.
func NewPolygonCoords(coords ...float64) *Polygon {
	pts := make([]geom.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, geom.Pt(coords[i], coords[i+1]))
	}
	return &Polygon{base: newBase(), paint: newPaint(), points: pts}
}

func (p *Polygon) Kind() Kind { return KindPolygon }

// Vertices returns a copy of the polygon's vertices.
func (p *Polygon) Vertices() []geom.Point {
	out := make([]geom.Point, len(p.points))
	copy(out, p.points)
	return out
}

func (p *Polygon) Bounds() geom.Rect { return geom.BoundsOf(p.points) }

func (p *Polygon) MoveTo(origin geom.Point) {
	b := p.Bounds()
	p.Translate(origin.X-b.X, origin.Y-b.Y)
}

func (p *Polygon) Translate(dx, dy float64) {
	for i := range p.points {
		p.points[i].X += dx
		p.points[i].Y += dy
	}
}

// Contains uses the even-odd rule.
func (p *Polygon) Contains(pt geom.Point) bool {
	in := false
	n := len(p.points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.points[i], p.points[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) &&
			pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

// ResizeWidth scales the vertices horizontally about the left edge so the
// bounds grow by delta. A polygon with no horizontal extent is left alone.
func (p *Polygon) ResizeWidth(delta float64) {
	b := p.Bounds()
	if b.Width <= 0 {
		return
	}
	f := floor(b.Width+delta) / b.Width
	for i := range p.points {
		p.points[i].X = b.X + (p.points[i].X-b.X)*f
	}
}

// ResizeHeight scales the vertices vertically about the top edge.
func (p *Polygon) ResizeHeight(delta float64) {
	b := p.Bounds()
	if b.Height <= 0 {
		return
	}
	f := floor(b.Height+delta) / b.Height
	for i := range p.points {
		p.points[i].Y = b.Y + (p.points[i].Y-b.Y)*f
	}
}
