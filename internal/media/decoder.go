// Package media decodes the bitmaps image regions show.
package media

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var (
	// ErrUnsupportedFormat is returned for a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrNoFrames is returned for an animation without frames.
	ErrNoFrames = errors.New("image has no frames")
)

// Decoded is the result of loading an image file.
type Decoded struct {
	// Still is the first frame.
	Still image.Image
	// Animation is set only for sources with more than one frame.
	Animation *Animation
}

// Decoder turns encoded bytes into a Decoded image.
type Decoder interface {
	Decode(r io.Reader) (*Decoded, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.Reader) (*Decoded, error)

func (f DecoderFunc) Decode(r io.Reader) (*Decoded, error) { return f(r) }

// Registry selects a decoder from a file's extension.
type Registry struct {
	decoders map[string]Decoder
}

// NewRegistry returns a registry with the built-in decoders.
func NewRegistry() *Registry {
	r := &Registry{decoders: map[string]Decoder{}}
	r.Register("gif", DecoderFunc(decodeGIF))
	r.Register("png", still(png.Decode))
	r.Register("jpg", still(jpeg.Decode))
	r.Register("jpeg", still(jpeg.Decode))
	r.Register("bmp", still(bmp.Decode))
	r.Register("tif", still(tiff.Decode))
	r.Register("tiff", still(tiff.Decode))
	r.Register("webp", still(webp.Decode))
	return r
}

// Register installs d for ext, replacing any earlier decoder.
func (r *Registry) Register(ext string, d Decoder) {
	r.decoders[strings.ToLower(ext)] = d
}

// Extension returns the part of the file name after its first dot,
// lowercased. A name without a dot is returned whole.
func Extension(path string) string {
	name := filepath.Base(path)
	return strings.ToLower(name[strings.Index(name, ".")+1:])
}

// Supports reports whether path has a registered decoder.
func (r *Registry) Supports(path string) bool {
	_, ok := r.decoders[Extension(path)]
	return ok
}

// Load decodes the file at path.
func (r *Registry) Load(path string) (*Decoded, error) {
	ext := Extension(path)
	d, ok := r.decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := d.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return dec, nil
}

func still(decode func(io.Reader) (image.Image, error)) Decoder {
	return DecoderFunc(func(r io.Reader) (*Decoded, error) {
		img, err := decode(r)
		if err != nil {
			return nil, err
		}
		return &Decoded{Still: img}, nil
	})
}

func decodeGIF(r io.Reader) (*Decoded, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}
	frames := compositeGIF(g)
	out := &Decoded{Still: frames[0]}
	if len(frames) > 1 {
		delays := make([]time.Duration, len(g.Delay))
		for i, d := range g.Delay {
			delays[i] = time.Duration(d) * 10 * time.Millisecond
		}
		out.Animation = NewAnimation(frames, delays)
	}
	return out, nil
}

// compositeGIF renders each GIF frame onto the logical screen, honouring the
// disposal method of the previous frame, so every returned frame is complete.
func compositeGIF(g *gif.GIF) []image.Image {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
		for _, p := range g.Image[1:] {
			bounds = bounds.Union(p.Bounds())
		}
	}
	screen := image.NewRGBA(bounds)
	frames := make([]image.Image, 0, len(g.Image))
	for i, p := range g.Image {
		var saved *image.RGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			saved = image.NewRGBA(bounds)
			copy(saved.Pix, screen.Pix)
		}
		draw.Draw(screen, p.Bounds(), p, p.Bounds().Min, draw.Over)
		frame := image.NewRGBA(bounds)
		copy(frame.Pix, screen.Pix)
		frames = append(frames, frame)
		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(screen, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(screen.Pix, saved.Pix)
		}
	}
	return frames
}
