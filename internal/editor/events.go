package editor

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/targeteditor/internal/geom"
)

// PointerMoved follows the pointer: the freeform preview edge while
// tracing, otherwise the candidate region, centred on p.
func (c *Controller) PointerMoved(p geom.Point) {
	c.pointer = p
	if c.tool == ToolFreeform {
		c.builder.PreviewEdge(p)
		return
	}
	if c.candidate == nil || c.tool == ToolCursor {
		return
	}
	b := c.candidate.Bounds()
	c.origin = clampOrigin(geom.Pt(p.X-b.Width/2, p.Y-b.Height/2))
	c.candidate.MoveTo(c.origin)
}

// PointerReleased handles a click at p.
func (c *Controller) PointerReleased(p geom.Point, button mouse.Button) {
	switch {
	case c.tool == ToolFreeform:
		c.pointer = p
		switch button {
		case mouse.ButtonLeft:
			c.builder.AddVertex(p)
		case mouse.ButtonRight:
			c.finishTrace()
		}
	case c.tool == ToolCursor:
		c.pointer = p
		if button != mouse.ButtonLeft {
			return
		}
		if r, ok := c.store.HitTest(p); ok {
			c.selectRegion(r)
		}
	default:
		c.PointerMoved(p)
		if button == mouse.ButtonLeft {
			c.commitCandidate()
		}
	}
}

// HandleMouse dispatches a mouse event whose coordinates are already in
// canvas space.
func (c *Controller) HandleMouse(e mouse.Event) {
	p := geom.Pt(float64(e.X), float64(e.Y))
	switch e.Direction {
	case mouse.DirNone, mouse.DirPress:
		c.PointerMoved(p)
	case mouse.DirRelease:
		c.PointerReleased(p, e.Button)
	}
}

// HandleKey offers e to the canvas and then to the selected region. It
// reports whether the key was used.
func (c *Controller) HandleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	if c.CanvasKey(e) {
		return true
	}
	return c.RegionKey(e)
}

// CanvasKey handles keys that apply regardless of focus: Ctrl+Z undoes the
// last freeform vertex.
func (c *Controller) CanvasKey(e key.Event) bool {
	if e.Modifiers&key.ModControl == 0 {
		return false
	}
	if e.Code != key.CodeZ && e.Rune != 'z' && e.Rune != 'Z' {
		return false
	}
	if c.tool != ToolFreeform {
		return false
	}
	c.builder.Undo()
	return true
}

// RegionKey handles keys aimed at the selected region: Delete removes it,
// arrows move it and Shift+arrows resize it.
func (c *Controller) RegionKey(e key.Event) bool {
	r := c.selection
	if r == nil {
		return false
	}
	move, scale := c.settings.MovementDelta, c.settings.ScaleDelta
	resize := e.Modifiers&key.ModShift != 0
	switch e.Code {
	case key.CodeDeleteForward, key.CodeDeleteBackspace:
		c.DeleteSelection()
	case key.CodeLeftArrow:
		if resize {
			r.ResizeWidth(-scale)
		} else {
			r.Translate(-move, 0)
		}
	case key.CodeRightArrow:
		if resize {
			r.ResizeWidth(scale)
		} else {
			r.Translate(move, 0)
		}
	case key.CodeUpArrow:
		if resize {
			r.ResizeHeight(-scale)
		} else {
			r.Translate(0, -move)
		}
	case key.CodeDownArrow:
		if resize {
			r.ResizeHeight(scale)
		} else {
			r.Translate(0, move)
		}
	default:
		return false
	}
	return true
}
