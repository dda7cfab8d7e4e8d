// Package capture grabs the desktop as a background for a target.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrUnsupported is returned where no capture backend exists.
var ErrUnsupported = errors.New("screen capture is not supported on this platform")

// Crop copies rect out of img into a zero-based image.
func Crop(img *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	r := rect.Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("crop %v: outside %v", rect, img.Bounds())
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out, nil
}

// pixelFormat describes how an X server packs ZPixmap pixels.
type pixelFormat struct {
	bytesPerPixel int
	msbFirst      bool
}

// blitZPixmap copies a strip of ZPixmap data, rows of stride bytes, into dst
// starting at row y0. The server's alpha byte is ignored; desktops are
// opaque.
func blitZPixmap(dst *image.RGBA, y0 int, data []byte, stride int, f pixelFormat) error {
	if f.bytesPerPixel < 3 {
		return fmt.Errorf("unsupported pixel format %d bytes per pixel", f.bytesPerPixel)
	}
	if stride <= 0 || len(data)%stride != 0 {
		return fmt.Errorf("unexpected stride %d for %d bytes", stride, len(data))
	}
	w := dst.Bounds().Dx()
	rows := len(data) / stride
	for y := 0; y < rows && y0+y < dst.Bounds().Dy(); y++ {
		row := data[y*stride : (y+1)*stride]
		for x := 0; x < w && (x+1)*f.bytesPerPixel <= len(row); x++ {
			px := row[x*f.bytesPerPixel:]
			r, g, b := px[2], px[1], px[0]
			if f.msbFirst {
				n := f.bytesPerPixel
				r, g, b = px[n-3], px[n-2], px[n-1]
			}
			o := dst.PixOffset(x, y0+y)
			dst.Pix[o+0] = r
			dst.Pix[o+1] = g
			dst.Pix[o+2] = b
			dst.Pix[o+3] = 0xff
		}
	}
	return nil
}
