package media

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeGIF(t *testing.T, frames int) string {
	t.Helper()
	g := &gif.GIF{Config: image.Config{Width: 4, Height: 4, ColorModel: color.Palette(palette.Plan9)}}
	for i := 0; i < frames; i++ {
		p := image.NewPaletted(image.Rect(0, 0, 4, 4), palette.Plan9)
		p.Set(i%4, 0, color.White)
		g.Image = append(g.Image, p)
		g.Delay = append(g.Delay, 5)
		g.Disposal = append(g.Disposal, gif.DisposalNone)
	}
	path := filepath.Join(t.TempDir(), "anim.gif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, g); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"/tmp/target.GIF":     "gif",
		"shot.png":            "png",
		"archive.tar.gif":     "tar.gif",
		"/dir.with.dots/a.jp": "jp",
		"noext":               "noext",
	}
	for in, want := range cases {
		if got := Extension(in); got != want {
			t.Errorf("Extension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadAnimatedGIF(t *testing.T) {
	path := writeGIF(t, 3)
	dec, err := NewRegistry().Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dec.Still == nil || dec.Still.Bounds().Dx() != 4 {
		t.Fatalf("unexpected still %v", dec.Still)
	}
	if dec.Animation == nil || dec.Animation.Len() != 3 {
		t.Fatalf("expected 3-frame animation, got %+v", dec.Animation)
	}
}

func TestSingleFrameGIFHasNoAnimation(t *testing.T) {
	dec, err := NewRegistry().Load(writeGIF(t, 1))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dec.Animation != nil {
		t.Fatal("single frame should not produce an animation")
	}
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "still.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()
	dec, err := NewRegistry().Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b := dec.Still.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	r := NewRegistry()
	if r.Supports("a.svg") {
		t.Fatal("svg should not be supported")
	}
	if _, err := r.Load("a.svg"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gif")
	if err := os.WriteFile(path, []byte("not a gif"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewRegistry().Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func frames(n int) []image.Image {
	out := make([]image.Image, n)
	for i := range out {
		out[i] = image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return out
}

func TestAnimationPlaysOnceAndFinishes(t *testing.T) {
	a := NewAnimation(frames(3), []time.Duration{10 * time.Millisecond, 10 * time.Millisecond, 10 * time.Millisecond})
	a.SetCycleCount(1)
	finished := 0
	a.SetOnFinished(func() { finished++ })

	a.Advance(time.Second)
	if a.Index() != 0 || finished != 0 {
		t.Fatal("animation advanced before Play")
	}
	a.Play()
	a.Advance(15 * time.Millisecond)
	if a.Index() != 1 {
		t.Fatalf("index = %d, want 1", a.Index())
	}
	a.Advance(100 * time.Millisecond)
	if finished != 1 || a.Playing() {
		t.Fatalf("finished=%d playing=%v", finished, a.Playing())
	}
	if a.Index() != 2 {
		t.Fatalf("should rest on last frame, got %d", a.Index())
	}
	a.Reset()
	if a.Index() != 0 || a.Playing() {
		t.Fatal("reset should rewind and stop")
	}
}

func TestAnimationLoopsForever(t *testing.T) {
	a := NewAnimation(frames(2), nil)
	a.Play()
	a.Advance(10 * defaultFrameDelay)
	if !a.Playing() || a.Index() != 0 {
		t.Fatalf("playing=%v index=%d", a.Playing(), a.Index())
	}
}

func TestAnimationFinishCallbackMayClear(t *testing.T) {
	a := NewAnimation(frames(2), nil)
	a.SetCycleCount(1)
	a.SetOnFinished(func() {
		a.Reset()
		a.SetOnFinished(nil)
	})
	a.Play()
	a.Advance(time.Second)
	if a.Index() != 0 || a.Playing() {
		t.Fatal("callback reset was overwritten")
	}
}
