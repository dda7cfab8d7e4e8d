// Package render rasterizes the editor canvas.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/colornames"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/example/targeteditor/internal/canvas"
	"github.com/example/targeteditor/internal/geom"
	"github.com/example/targeteditor/internal/region"
)

// bezierCircle is the control point distance for a quarter circle.
const bezierCircle = 0.5522847498

// Options controls how shapes are stroked.
type Options struct {
	StrokeWidth float64
	Stroke      color.RGBA
	Selected    color.RGBA
	Guide       color.RGBA
}

// DefaultOptions strokes in black and highlights the selection in gold.
func DefaultOptions() Options {
	return Options{
		StrokeWidth: 1.5,
		Stroke:      colornames.Black,
		Selected:    colornames.Gold,
		Guide:       colornames.Red,
	}
}

// Snapshot draws nodes over a copy of background.
func Snapshot(background image.Image, nodes []canvas.Node, opts Options) *image.RGBA {
	b := image.Rect(0, 0, 1, 1)
	if background != nil {
		b = background.Bounds()
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if background != nil {
		draw.Draw(dst, dst.Bounds(), background, b.Min, draw.Src)
	}
	Canvas(dst, image.Point{}, nodes, opts)
	return dst
}

// Canvas paints nodes onto dst in order. Canvas coordinate (0,0) maps to
// origin in dst.
func Canvas(dst draw.Image, origin image.Point, nodes []canvas.Node, opts Options) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *region.Image:
			drawImage(dst, origin, n)
		case *region.Rectangle:
			b := n.Bounds()
			drawShape(dst, origin, n, polygonPath([]geom.Point{b.Min(), geom.Pt(b.X+b.Width, b.Y), b.Max(), geom.Pt(b.X, b.Y+b.Height)}), opts)
		case *region.Polygon:
			drawShape(dst, origin, n, polygonPath(n.Vertices()), opts)
		case *region.Ellipse:
			rx, ry := n.Radii()
			drawShape(dst, origin, n, ellipsePath(n.Center(), rx, ry), opts)
		case *canvas.Marker:
			fill(dst, origin, n.Bounds(), ellipsePath(n.Center, n.Radius, n.Radius), opts.Guide)
		case *canvas.Segment:
			drawSegment(dst, origin, n, opts)
		}
	}
}

// path is a list of closed contours. Each contour is either a polygon or,
// when curves is set, a sequence of cubic segments.
type path struct {
	start  geom.Point
	points []geom.Point
	curves bool
}

func polygonPath(pts []geom.Point) []path {
	if len(pts) < 2 {
		return nil
	}
	return []path{{start: pts[0], points: pts[1:]}}
}

// ellipsePath approximates an ellipse with four cubic curves; points holds
// control, control, end triples.
func ellipsePath(c geom.Point, rx, ry float64) []path {
	kx, ky := rx*bezierCircle, ry*bezierCircle
	return []path{{
		start:  geom.Pt(c.X+rx, c.Y),
		curves: true,
		points: []geom.Point{
			{X: c.X + rx, Y: c.Y + ky}, {X: c.X + kx, Y: c.Y + ry}, {X: c.X, Y: c.Y + ry},
			{X: c.X - kx, Y: c.Y + ry}, {X: c.X - rx, Y: c.Y + ky}, {X: c.X - rx, Y: c.Y},
			{X: c.X - rx, Y: c.Y - ky}, {X: c.X - kx, Y: c.Y - ry}, {X: c.X, Y: c.Y - ry},
			{X: c.X + kx, Y: c.Y - ry}, {X: c.X + rx, Y: c.Y - ky}, {X: c.X + rx, Y: c.Y},
		},
	}}
}

// flatten turns curved contours into polylines for stroking.
func flatten(p path) []geom.Point {
	out := []geom.Point{p.start}
	if !p.curves {
		return append(out, p.points...)
	}
	const steps = 12
	prev := p.start
	for i := 0; i+2 < len(p.points); i += 3 {
		c1, c2, end := p.points[i], p.points[i+1], p.points[i+2]
		for s := 1; s <= steps; s++ {
			t := float64(s) / steps
			u := 1 - t
			out = append(out, geom.Pt(
				u*u*u*prev.X+3*u*u*t*c1.X+3*u*t*t*c2.X+t*t*t*end.X,
				u*u*u*prev.Y+3*u*u*t*c1.Y+3*u*t*t*c2.Y+t*t*t*end.Y,
			))
		}
		prev = end
	}
	return out
}

func drawShape(dst draw.Image, origin image.Point, r region.Region, paths []path, opts Options) {
	col, ok := r.(region.Colorable)
	if !ok {
		return
	}
	f := col.Fill()
	a := float64(f.A) * col.Opacity()
	fill(dst, origin, r.Bounds(), paths, color.NRGBA{R: f.R, G: f.G, B: f.B, A: uint8(math.Round(a))})

	stroke := opts.Stroke
	if col.Highlighted() {
		stroke = opts.Selected
	}
	for _, p := range paths {
		pts := flatten(p)
		pts = append(pts, pts[0])
		strokeLine(dst, origin, pts, opts.StrokeWidth, 0, stroke)
	}
}

// raster allocates a rasterizer covering bounds, padded by pad, in dst
// space. It returns nil when nothing would be visible.
func raster(dst draw.Image, origin image.Point, bounds geom.Rect, pad float64) (*vector.Rasterizer, image.Rectangle) {
	rect := geom.Rect{X: bounds.X - pad, Y: bounds.Y - pad, Width: bounds.Width + 2*pad, Height: bounds.Height + 2*pad}.
		Image().Add(origin).Intersect(dst.Bounds())
	if rect.Empty() {
		return nil, rect
	}
	z := vector.NewRasterizer(rect.Dx(), rect.Dy())
	z.DrawOp = draw.Over
	return z, rect
}

func fill(dst draw.Image, origin image.Point, bounds geom.Rect, paths []path, c color.Color) {
	z, rect := raster(dst, origin, bounds, 1)
	if z == nil {
		return
	}
	off := geom.Pt(float64(origin.X-rect.Min.X), float64(origin.Y-rect.Min.Y))
	pt := func(p geom.Point) (float32, float32) { return float32(p.X + off.X), float32(p.Y + off.Y) }
	for _, p := range paths {
		z.MoveTo(pt(p.start))
		if p.curves {
			for i := 0; i+2 < len(p.points); i += 3 {
				x1, y1 := pt(p.points[i])
				x2, y2 := pt(p.points[i+1])
				x3, y3 := pt(p.points[i+2])
				z.CubeTo(x1, y1, x2, y2, x3, y3)
			}
		} else {
			for _, q := range p.points {
				z.LineTo(pt(q))
			}
		}
		z.ClosePath()
	}
	z.Draw(dst, rect, image.NewUniform(c), image.Point{})
}

// strokeLine draws a polyline of the given width. A positive dash splits it
// into alternating drawn and skipped runs of that length.
func strokeLine(dst draw.Image, origin image.Point, pts []geom.Point, width, dash float64, c color.Color) {
	if len(pts) < 2 {
		return
	}
	bounds := geom.BoundsOf(pts)
	z, rect := raster(dst, origin, bounds, width+1)
	if z == nil {
		return
	}
	off := geom.Pt(float64(origin.X-rect.Min.X), float64(origin.Y-rect.Min.Y))
	hw := width / 2
	var travelled float64
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1].Add(off), pts[i].Add(off)
		for _, run := range dashes(a, b, dash, &travelled) {
			quad(z, run[0], run[1], hw)
		}
	}
	z.Draw(dst, rect, image.NewUniform(c), image.Point{})
}

// dashes splits a-b into the runs that should be drawn. travelled carries
// the dash phase across consecutive segments.
func dashes(a, b geom.Point, dash float64, travelled *float64) [][2]geom.Point {
	d := b.Sub(a)
	length := math.Hypot(d.X, d.Y)
	if dash <= 0 || length == 0 {
		return [][2]geom.Point{{a, b}}
	}
	at := func(t float64) geom.Point { return geom.Pt(a.X+d.X*t/length, a.Y+d.Y*t/length) }
	var runs [][2]geom.Point
	for t := 0.0; t < length; {
		phase := math.Mod(*travelled, 2*dash)
		step := math.Min(dash-math.Mod(phase, dash), length-t)
		if phase < dash {
			runs = append(runs, [2]geom.Point{at(t), at(t + step)})
		}
		t += step
		*travelled += step
	}
	return runs
}

func quad(z *vector.Rasterizer, a, b geom.Point, hw float64) {
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	if l == 0 {
		return
	}
	nx, ny := -d.Y/l*hw, d.X/l*hw
	z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	z.LineTo(float32(b.X+nx), float32(b.Y+ny))
	z.LineTo(float32(b.X-nx), float32(b.Y-ny))
	z.LineTo(float32(a.X-nx), float32(a.Y-ny))
	z.ClosePath()
}

func drawSegment(dst draw.Image, origin image.Point, s *canvas.Segment, opts Options) {
	strokeLine(dst, origin, []geom.Point{s.From, s.To}, 1, s.Dash, opts.Guide)
}

func drawImage(dst draw.Image, origin image.Point, m *region.Image) {
	frame := m.Frame()
	if frame == nil {
		return
	}
	r := m.Bounds().Image().Add(origin)
	if r.Dx() == frame.Bounds().Dx() && r.Dy() == frame.Bounds().Dy() {
		draw.Draw(dst, r, frame, frame.Bounds().Min, draw.Over)
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, r, frame, frame.Bounds(), xdraw.Over, nil)
}
