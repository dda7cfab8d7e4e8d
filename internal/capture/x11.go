//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// stripRows bounds each GetImage request so replies stay under the server's
// maximum request length.
const stripRows = 128

// Screen captures the root window of the default X screen.
func Screen() (*image.RGBA, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return nil, fmt.Errorf("xproto screen unavailable")
	}
	w, h := int(screen.WidthInPixels), int(screen.HeightInPixels)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("screen has empty geometry")
	}
	f, err := formatFor(setup, screen.RootDepth)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y += stripRows {
		n := min(stripRows, h-y)
		reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root),
			0, int16(y), uint16(w), uint16(n), 0xffffffff).Reply()
		if err != nil {
			return nil, fmt.Errorf("get image rows %d-%d: %w", y, y+n, err)
		}
		if err := blitZPixmap(img, y, reply.Data, len(reply.Data)/n, f); err != nil {
			return nil, fmt.Errorf("screen pixels: %w", err)
		}
	}
	return img, nil
}

func formatFor(setup *xproto.SetupInfo, depth byte) (pixelFormat, error) {
	for _, pf := range setup.PixmapFormats {
		if pf.Depth == depth {
			return pixelFormat{
				bytesPerPixel: int(pf.BitsPerPixel) / 8,
				msbFirst:      setup.ImageByteOrder == xproto.ImageOrderMSBFirst,
			}, nil
		}
	}
	return pixelFormat{}, fmt.Errorf("unsupported screen depth %d", depth)
}
