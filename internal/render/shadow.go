package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow under an overlay panel.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions is a soft shadow suited to small panels such as the
// tag editor.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{Radius: 4, Offset: image.Pt(3, 3), Opacity: 0.45}
}

// DropShadow darkens dst under panel, offset and blurred by opts. It is
// drawn before the panel itself.
func DropShadow(dst draw.Image, panel image.Rectangle, opts ShadowOptions) {
	if panel.Empty() || opts.Opacity <= 0 {
		return
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	area := panel.Inset(-radius)
	mask := image.NewAlpha(image.Rect(0, 0, area.Dx(), area.Dy()))
	draw.Draw(mask, panel.Sub(area.Min), image.Opaque, image.Point{}, draw.Src)
	boxBlur(mask.Pix, mask.Stride, area.Dx(), area.Dy(), radius)

	shade := image.NewUniform(color.RGBA{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, area.Add(opts.Offset), shade, image.Point{}, mask, image.Point{}, draw.Over)
}

// boxBlur blurs an 8-bit plane in place, horizontally then vertically.
func boxBlur(pix []uint8, stride, w, h, radius int) {
	if radius <= 0 || w == 0 || h == 0 {
		return
	}
	line := make([]uint8, max(w, h))
	for y := 0; y < h; y++ {
		blurLine(pix[y*stride:], 1, w, radius, line)
	}
	for x := 0; x < w; x++ {
		blurLine(pix[x:], stride, h, radius, line)
	}
}

// blurLine averages n samples spaced step apart over a window of radius,
// clamping the window at both ends.
func blurLine(pix []uint8, step, n, radius int, scratch []uint8) {
	prefix := make([]int, n+1)
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + int(pix[i*step])
	}
	for i := 0; i < n; i++ {
		lo, hi := max(i-radius, 0), min(i+radius, n-1)
		scratch[i] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
	for i := 0; i < n; i++ {
		pix[i*step] = scratch[i]
	}
}
