package media

import (
	"image"
	"time"
)

const defaultFrameDelay = 100 * time.Millisecond

// Animation plays a decoded frame sequence. It has no goroutines of its own:
// the owner advances it from its event loop, so every callback runs on that
// loop.
type Animation struct {
	frames []image.Image
	delays []time.Duration

	cycles     int
	index      int
	elapsed    time.Duration
	completed  int
	playing    bool
	onFinished func()
}

// NewAnimation builds a player. A missing or non-positive delay falls back to
// 100ms.
func NewAnimation(frames []image.Image, delays []time.Duration) *Animation {
	a := &Animation{frames: frames, delays: make([]time.Duration, len(frames))}
	for i := range frames {
		d := defaultFrameDelay
		if i < len(delays) && delays[i] > 0 {
			d = delays[i]
		}
		a.delays[i] = d
	}
	return a
}

// Len is the number of frames.
func (a *Animation) Len() int { return len(a.frames) }

// Index is the position of the frame currently shown.
func (a *Animation) Index() int { return a.index }

// Playing reports whether Advance moves the animation.
func (a *Animation) Playing() bool { return a.playing }

// Frame returns the frame currently shown.
func (a *Animation) Frame() image.Image {
	if len(a.frames) == 0 {
		return nil
	}
	return a.frames[a.index]
}

// SetCycleCount limits playback to n passes; n <= 0 loops forever.
func (a *Animation) SetCycleCount(n int) { a.cycles = n }

// SetOnFinished registers fn to run once playback completes its cycles.
func (a *Animation) SetOnFinished(fn func()) { a.onFinished = fn }

// Play starts or resumes playback from the current frame.
func (a *Animation) Play() {
	if len(a.frames) == 0 {
		return
	}
	a.playing = true
}

// Reset stops playback and rewinds to the first frame.
func (a *Animation) Reset() {
	a.playing = false
	a.index = 0
	a.elapsed = 0
	a.completed = 0
}

// Advance moves playback forward by dt.
func (a *Animation) Advance(dt time.Duration) {
	if !a.playing || dt <= 0 {
		return
	}
	a.elapsed += dt
	for a.playing && a.elapsed >= a.delays[a.index] {
		a.elapsed -= a.delays[a.index]
		if a.index < len(a.frames)-1 {
			a.index++
			continue
		}
		a.completed++
		if a.cycles > 0 && a.completed >= a.cycles {
			a.finish()
			return
		}
		a.index = 0
	}
}

func (a *Animation) finish() {
	a.playing = false
	a.elapsed = 0
	if fn := a.onFinished; fn != nil {
		fn()
	}
}
