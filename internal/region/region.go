// Package region models the shapes a target is composed of.
//
// Every variant satisfies Region, which groups the resize and tag
// capabilities. Shape variants additionally satisfy Colorable; image regions
// deliberately do not, so fill and stroke operations never apply to them.
package region

import (
	"image/color"
	"maps"
	"sync/atomic"

	"github.com/example/targeteditor/internal/geom"
)

// MinSize is the smallest width or height a resize may leave a region with.
const MinSize = 2.0

// Kind identifies a region variant.
type Kind int

const (
	KindRectangle Kind = iota
	KindEllipse
	KindPolygon
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "rectangle"
	case KindEllipse:
		return "ellipse"
	case KindPolygon:
		return "polygon"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// ID is a stable handle for a region, independent of where it is drawn.
type ID uint64

var lastID atomic.Uint64

func nextID() ID { return ID(lastID.Add(1)) }

// Resizable regions grow or shrink by a signed delta.
type Resizable interface {
	ResizeWidth(delta float64)
	ResizeHeight(delta float64)
}

// Taggable regions carry free-form key/value annotations.
type Taggable interface {
	Tags() map[string]string
	SetTags(tags map[string]string)
}

// Colorable regions have a fill, an opacity and a selection stroke.
type Colorable interface {
	Fill() color.RGBA
	SetFill(c color.RGBA)
	Opacity() float64
	SetOpacity(o float64)
	Highlighted() bool
	SetHighlighted(on bool)
}

// Region is a placed target region.
type Region interface {
	Resizable
	Taggable

	ID() ID
	Kind() Kind
	// Bounds is the layout box of the region in canvas coordinates.
	Bounds() geom.Rect
	// MoveTo places the top-left corner of Bounds at origin.
	MoveTo(origin geom.Point)
	Translate(dx, dy float64)
	// Contains is the hit test used for selection.
	Contains(p geom.Point) bool
}

// IsColorable reports whether fill and stroke operations apply to r.
func IsColorable(r Region) bool {
	_, ok := r.(Colorable)
	return ok
}

type base struct {
	id   ID
	tags map[string]string
}

func newBase() base { return base{id: nextID(), tags: map[string]string{}} }

func (b *base) ID() ID { return b.id }

// Tags returns a copy of the region's tags.
func (b *base) Tags() map[string]string { return maps.Clone(b.tags) }

// SetTags replaces the region's tags with a copy of tags.
func (b *base) SetTags(tags map[string]string) {
	b.tags = make(map[string]string, len(tags))
	maps.Copy(b.tags, tags)
}

type paint struct {
	fill        color.RGBA
	opacity     float64
	highlighted bool
}

func newPaint() paint { return paint{fill: color.RGBA{A: 0xff}, opacity: 1} }

func (p *paint) Fill() color.RGBA { return p.fill }

func (p *paint) SetFill(c color.RGBA) { p.fill = c }

func (p *paint) Opacity() float64 { return p.opacity }

func (p *paint) Highlighted() bool { return p.highlighted }

func (p *paint) SetHighlighted(on bool) { p.highlighted = on }

func (p *paint) SetOpacity(o float64) {
	switch {
	case o < 0:
		o = 0
	case o > 1:
		o = 1
	}
	p.opacity = o
}

func floor(v float64) float64 {
	if v < MinSize {
		return MinSize
	}
	return v
}
