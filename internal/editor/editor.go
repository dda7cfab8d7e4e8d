// Package editor implements the interaction controller of the target editor.
//
// A Controller owns the canvas, the committed region store, the freeform
// builder and the tag binding. Every method runs to completion on the
// caller's goroutine; the controller must only be driven from one event loop.
package editor

import (
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/example/targeteditor/internal/canvas"
	"github.com/example/targeteditor/internal/freeform"
	"github.com/example/targeteditor/internal/geom"
	"github.com/example/targeteditor/internal/media"
	"github.com/example/targeteditor/internal/region"
	"github.com/example/targeteditor/internal/store"
	"github.com/example/targeteditor/internal/tags"
)

// ErrUnknownTool is reported when a shape is requested for a tool that does
// not build one.
var ErrUnknownTool = errors.New("unimplemented region type selected")

// Settings are the tunables of new regions and manipulation.
type Settings struct {
	Fill            color.RGBA
	Opacity         float64
	MovementDelta   float64
	ScaleDelta      float64
	DefaultDim      float64
	SilhouetteScale float64
	VertexRadius    float64
	Dash            float64
}

// DefaultSettings returns the stock editor settings.
func DefaultSettings() Settings {
	return Settings{
		Fill:            color.RGBA{A: 0xff},
		Opacity:         0.7,
		MovementDelta:   1,
		ScaleDelta:      1,
		DefaultDim:      40,
		SilhouetteScale: 2.5,
		VertexRadius:    3,
		Dash:            5,
	}
}

// Picker asks the user for an image file.
type Picker interface {
	PickImage() (path string, ok bool)
}

// PickerFunc adapts a function to Picker.
type PickerFunc func() (string, bool)

func (f PickerFunc) PickImage() (string, bool) { return f() }

// Loader decodes image files.
type Loader interface {
	Load(path string) (*media.Decoded, error)
}

// Controls is the state of the manipulation controls: bring forward, send
// backward, tags and the color chooser.
type Controls struct {
	Enabled  bool
	Color    string
	TagsOpen bool
}

// Controller is the interaction state machine.
type Controller struct {
	background image.Image
	canvas     *canvas.Canvas
	store      *store.Store
	builder    *freeform.Builder
	tags       *tags.Binding

	settings Settings
	loader   Loader
	picker   Picker

	tool      Tool
	candidate region.Region
	selection region.Region
	imageFile string
	origin    geom.Point
	pointer   geom.Point

	controls   Controls
	onControls func(Controls)

	tagFactory   tags.Factory
	tagTrigger   geom.Rect
	tagPadLeft   float64
	tagPadBottom float64

	animations []*media.Animation
}

// Option modifies a Controller during creation.
type Option func(*Controller)

// WithSettings replaces the default settings.
func WithSettings(s Settings) Option { return func(c *Controller) { c.settings = s } }

// WithLoader sets the image decoder service.
func WithLoader(l Loader) Option { return func(c *Controller) { c.loader = l } }

// WithPicker sets the file picker used by OpenImage.
func WithPicker(p Picker) Option { return func(c *Controller) { c.picker = p } }

// WithTagEditor sets the factory for tag editors.
func WithTagEditor(f tags.Factory) Option { return func(c *Controller) { c.tagFactory = f } }

// WithTagTrigger records where the tags control sits so the editor can open
// beside it.
func WithTagTrigger(bounds geom.Rect, padLeft, padBottom float64) Option {
	return func(c *Controller) {
		c.tagTrigger = bounds
		c.tagPadLeft = padLeft
		c.tagPadBottom = padBottom
	}
}

// WithControlsListener registers a callback for manipulation control changes.
func WithControlsListener(fn func(Controls)) Option {
	return func(c *Controller) { c.onControls = fn }
}

// New creates a controller editing a target over background.
func New(background image.Image, opts ...Option) *Controller {
	c := &Controller{
		background: background,
		canvas:     canvas.New(),
		settings:   DefaultSettings(),
		tool:       ToolCursor,
	}
	for _, o := range opts {
		o(c)
	}
	if c.loader == nil {
		c.loader = media.NewRegistry()
	}
	c.store = store.New(c.canvas)
	c.builder = freeform.New(c.canvas,
		freeform.WithVertexRadius(c.settings.VertexRadius),
		freeform.WithDash(c.settings.Dash),
	)
	c.tags = tags.NewBinding(c.tagFactory)
	c.controls.Color = region.NameOfColor(c.settings.Fill)
	return c
}

// Background is the image the target is drawn over.
func (c *Controller) Background() image.Image { return c.background }

// SetBackground replaces the background image.
func (c *Controller) SetBackground(img image.Image) { c.background = img }

// Canvas exposes the draw list for rendering.
func (c *Controller) Canvas() *canvas.Canvas { return c.canvas }

// Settings returns the active settings.
func (c *Controller) Settings() Settings { return c.settings }

// Tool is the active tool.
func (c *Controller) Tool() Tool { return c.tool }

// Mode derives the state machine mode from the active tool.
func (c *Controller) Mode() Mode {
	switch {
	case c.tool == ToolFreeform:
		return ModeTracing
	case c.tool.Placing():
		return ModePlacing
	}
	return ModeIdle
}

// Candidate is the placed but uncommitted region, or nil.
func (c *Controller) Candidate() region.Region { return c.candidate }

// Selection is the selected committed region, or nil.
func (c *Controller) Selection() region.Region { return c.selection }

// Trace returns the freeform builder.
func (c *Controller) Trace() *freeform.Builder { return c.builder }

// TagBinding returns the tag editor binding.
func (c *Controller) TagBinding() *tags.Binding { return c.tags }

// Controls returns the manipulation control state.
func (c *Controller) Controls() Controls {
	ctl := c.controls
	ctl.TagsOpen = c.tags.IsOpen()
	return ctl
}

// Regions returns the committed regions in stacking order, bottom first.
func (c *Controller) Regions() []region.Region { return c.store.Regions() }

// Pointer is the last pointer position seen.
func (c *Controller) Pointer() geom.Point { return c.pointer }

// Tick advances first-cycle animations by dt and reports whether any frame
// may have changed.
func (c *Controller) Tick(dt time.Duration) bool {
	if len(c.animations) == 0 {
		return false
	}
	live := c.animations[:0]
	for _, a := range c.animations {
		a.Advance(dt)
		if a.Playing() {
			live = append(live, a)
		}
	}
	clear(c.animations[len(live):])
	c.animations = live
	return true
}

// Animating reports whether a committed image is playing its first cycle.
func (c *Controller) Animating() bool { return len(c.animations) > 0 }

func (c *Controller) setControls(enabled bool) {
	c.controls.Enabled = enabled
	c.notifyControls()
}

func (c *Controller) notifyControls() {
	if c.onControls != nil {
		c.onControls(c.Controls())
	}
}
