package region

import (
	"image"

	"github.com/example/targeteditor/internal/geom"
)

// Animation is a frame sequence an image region may own.
type Animation interface {
	Play()
	Reset()
	// SetOnFinished registers fn to run when playback completes. nil clears it.
	SetOnFinished(fn func())
	SetCycleCount(n int)
	// Frame returns the frame currently shown.
	Frame() image.Image
}

// Image is a bitmap region. It has no fill or stroke.
type Image struct {
	base
	file  string
	still image.Image
	rect  geom.Rect
	anim  Animation
}

// NewImage creates an image region showing still with its top-left corner at
// (x, y). The region is sized to the still's bounds.
func NewImage(x, y float64, file string, still image.Image) *Image {
	var w, h float64 = MinSize, MinSize
	if still != nil {
		b := still.Bounds()
		w, h = floor(float64(b.Dx())), floor(float64(b.Dy()))
	}
	return &Image{
		base:  newBase(),
		file:  file,
		still: still,
		rect:  geom.Rect{X: x, Y: y, Width: w, Height: h},
	}
}

func (m *Image) Kind() Kind { return KindImage }

// File is the path the image was loaded from.
func (m *Image) File() string { return m.file }

// Still returns the first frame.
func (m *Image) Still() image.Image { return m.still }

// Animation returns the attached frame sequence, or nil.
func (m *Image) Animation() Animation { return m.anim }

// SetAnimation attaches or, with nil, detaches a frame sequence.
func (m *Image) SetAnimation(a Animation) { m.anim = a }

// Frame is the bitmap to draw right now.
func (m *Image) Frame() image.Image {
	if m.anim != nil {
		if f := m.anim.Frame(); f != nil {
			return f
		}
	}
	return m.still
}

func (m *Image) Bounds() geom.Rect { return m.rect }

func (m *Image) MoveTo(origin geom.Point) { m.rect.X, m.rect.Y = origin.X, origin.Y }

func (m *Image) Translate(dx, dy float64) {
	m.rect.X += dx
	m.rect.Y += dy
}

func (m *Image) Contains(p geom.Point) bool { return m.rect.Contains(p) }

func (m *Image) ResizeWidth(delta float64) { m.rect.Width = floor(m.rect.Width + delta) }

func (m *Image) ResizeHeight(delta float64) { m.rect.Height = floor(m.rect.Height + delta) }
