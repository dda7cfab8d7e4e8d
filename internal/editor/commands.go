package editor

import (
	"errors"
	"fmt"
	"log"

	"github.com/example/targeteditor/internal/geom"
	"github.com/example/targeteditor/internal/media"
	"github.com/example/targeteditor/internal/region"
	"github.com/example/targeteditor/internal/tags"
)

// SelectTool activates t the way the matching toolbar button does.
func (c *Controller) SelectTool(t Tool) {
	switch {
	case t == ToolCursor:
		c.SelectCursor()
	case t == ToolImage:
		c.OpenImage()
	case t == ToolFreeform:
		c.StartFreeform()
	default:
		if err := c.StartShape(t); err != nil {
			log.Printf("select tool: %v", err)
		}
	}
}

// OpenImage asks the picker for a file and starts placing it. A cancelled
// pick or a file that cannot be decoded leaves the editor untouched.
func (c *Controller) OpenImage() {
	if c.picker == nil {
		log.Printf("open image: no file picker")
		return
	}
	path, ok := c.picker.PickImage()
	if !ok {
		return
	}
	if err := c.OpenImageFile(path); err != nil {
		log.Printf("open image: %v", err)
	}
}

// OpenImageFile decodes path and makes it the candidate region. The decode
// completes before anything changes, so on error no region exists and the
// previous state is kept.
func (c *Controller) OpenImageFile(path string) error {
	img, err := c.loadImage(path)
	if err != nil {
		return err
	}
	c.leaveTool()
	c.deselect()
	c.tool = ToolImage
	c.imageFile = path
	c.setCandidate(img)
	return nil
}

// StartShape switches to a shape tool and drops a candidate at the last
// placement origin. Coming from a freeform trace, which is discarded, the
// candidate is centred on the pointer instead. A tool that is not a shape
// returns the editor to the cursor tool.
func (c *Controller) StartShape(t Tool) error {
	return c.startShape(t, c.tool == ToolFreeform)
}

// Drop places shape tool t with its top-left corner at p, as when a toolbar
// button is dragged onto the canvas.
func (c *Controller) Drop(t Tool, p geom.Point) error {
	c.origin = clampOrigin(p)
	return c.startShape(t, false)
}

func (c *Controller) startShape(t Tool, atPointer bool) error {
	if !t.Shape() {
		c.SelectCursor()
		return fmt.Errorf("start shape %v: %w", t, ErrUnknownTool)
	}
	r, err := c.newShape(t, c.origin)
	if err != nil {
		c.SelectCursor()
		return err
	}
	if atPointer {
		b := r.Bounds()
		c.origin = clampOrigin(geom.Pt(c.pointer.X-b.Width/2, c.pointer.Y-b.Height/2))
		r.MoveTo(c.origin)
	}
	c.leaveTool()
	c.deselect()
	c.tool = t
	c.setCandidate(r)
	return nil
}

// StartFreeform switches to the freeform tool with an empty trace.
func (c *Controller) StartFreeform() {
	c.leaveTool()
	c.deselect()
	c.tool = ToolFreeform
}

// SelectCursor returns to selection mode. The candidate and any freeform
// trace are discarded; committed regions and the selection are kept.
func (c *Controller) SelectCursor() {
	c.leaveTool()
	c.tool = ToolCursor
}

// BringForward raises the selection one step.
func (c *Controller) BringForward() {
	if c.selection == nil || !c.controls.Enabled {
		return
	}
	if err := c.store.BringForward(c.selection.ID()); err != nil {
		log.Printf("bring forward: %v", err)
	}
}

// SendBackward lowers the selection one step.
func (c *Controller) SendBackward() {
	if c.selection == nil || !c.controls.Enabled {
		return
	}
	if err := c.store.SendBackward(c.selection.ID()); err != nil {
		log.Printf("send backward: %v", err)
	}
}

// ToggleTagEditor opens the tag editor on the selection, or closes it.
func (c *Controller) ToggleTagEditor() {
	if c.tags.IsOpen() {
		c.tags.Close()
		c.notifyControls()
		return
	}
	if c.selection == nil || !c.controls.Enabled {
		return
	}
	c.openTags(c.selection)
	c.notifyControls()
}

// ChooseColor sets the color chooser and fills the selection with the named
// color. Image selections keep their pixels.
func (c *Controller) ChooseColor(name string) {
	c.controls.Color = region.NameOfColor(region.ColorByName(name))
	if col, ok := c.selection.(region.Colorable); ok && c.controls.Enabled {
		col.SetFill(region.ColorByName(c.controls.Color))
	}
	c.notifyControls()
}

// DeleteSelection removes the selected region from the target.
func (c *Controller) DeleteSelection() {
	r := c.selection
	if r == nil {
		return
	}
	if c.tags.IsOpen() {
		c.tags.Close()
	}
	c.store.Remove(r.ID())
	c.selection = nil
	c.setControls(false)
}

// Select makes the committed region id the selection. It reports false when
// id is not committed or the cursor tool is not active.
func (c *Controller) Select(id region.ID) bool {
	if c.tool != ToolCursor {
		return false
	}
	r, ok := c.store.Get(id)
	if !ok {
		return false
	}
	c.selectRegion(r)
	return true
}

// selectRegion moves the highlight, the controls and any open tag editor
// from the previous selection to r.
func (c *Controller) selectRegion(r region.Region) {
	reopen := c.tags.IsOpen()
	if c.selection != nil {
		setHighlight(c.selection, false)
		if reopen {
			c.tags.Close()
		}
	}
	c.selection = r
	setHighlight(r, true)
	if col, ok := r.(region.Colorable); ok {
		c.controls.Color = region.NameOfColor(col.Fill())
	}
	if reopen {
		c.openTags(r)
	}
	c.setControls(true)
}

func (c *Controller) deselect() {
	if c.selection != nil {
		setHighlight(c.selection, false)
	}
	if c.tags.IsOpen() {
		c.tags.Close()
	}
	c.selection = nil
	if c.controls.Enabled {
		c.setControls(false)
	}
}

func (c *Controller) openTags(r region.Region) {
	c.tags.Open(r, tags.AnchorBelow(c.tagTrigger, c.tagPadLeft, c.tagPadBottom))
}

// leaveTool drops the candidate and any freeform trace.
func (c *Controller) leaveTool() {
	c.discardCandidate()
	c.builder.Reset()
}

func (c *Controller) setCandidate(r region.Region) {
	c.discardCandidate()
	if err := c.canvas.Add(r); err != nil {
		log.Printf("place candidate: %v", err)
		return
	}
	c.candidate = r
}

func (c *Controller) discardCandidate() {
	if c.candidate == nil {
		return
	}
	c.canvas.Remove(c.candidate)
	c.candidate = nil
}

// commitCandidate moves the candidate into the store and stamps a fresh one
// of the same tool at the same origin.
func (c *Controller) commitCandidate() {
	r := c.candidate
	if r == nil || c.store.Contains(r.ID()) {
		return
	}
	if !c.tool.Placing() {
		log.Printf("commit: %v", ErrUnknownTool)
		c.discardCandidate()
		return
	}
	c.candidate = nil
	if err := c.store.Add(r); err != nil {
		log.Printf("commit: %v", err)
		c.canvas.Remove(r)
		return
	}
	if img, ok := r.(*region.Image); ok {
		c.playOnce(img)
	}
	c.stamp()
}

func (c *Controller) stamp() {
	var (
		next region.Region
		err  error
	)
	if c.tool == ToolImage {
		next, err = c.loadImage(c.imageFile)
	} else {
		next, err = c.newShape(c.tool, c.origin)
	}
	if err != nil {
		log.Printf("stamp %v: %v", c.tool, err)
		return
	}
	c.setCandidate(next)
}

// finishTrace turns the freeform trace into a committed polygon and returns
// to the cursor tool. A trace too short for a polygon is dropped.
func (c *Controller) finishTrace() {
	p, err := c.builder.Finalize()
	c.tool = ToolCursor
	if err != nil {
		log.Printf("finish trace: %v", err)
		return
	}
	c.paint(p)
	if err := c.store.Add(p); err != nil {
		log.Printf("finish trace: %v", err)
	}
}

// playOnce runs an image's frame sequence for one cycle, then rewinds it and
// detaches it from the region.
func (c *Controller) playOnce(img *region.Image) {
	anim, ok := img.Animation().(*media.Animation)
	if !ok || anim == nil {
		return
	}
	anim.SetCycleCount(1)
	anim.SetOnFinished(func() {
		anim.SetOnFinished(nil)
		anim.Reset()
		img.SetAnimation(nil)
	})
	anim.Play()
	c.animations = append(c.animations, anim)
}

func (c *Controller) loadImage(path string) (*region.Image, error) {
	if path == "" {
		return nil, errors.New("no image file")
	}
	dec, err := c.loader.Load(path)
	if err != nil {
		return nil, err
	}
	img := region.NewImage(c.origin.X, c.origin.Y, path, dec.Still)
	if dec.Animation != nil {
		img.SetAnimation(dec.Animation)
	}
	return img, nil
}

func (c *Controller) newShape(t Tool, at geom.Point) (region.Region, error) {
	d := c.settings.DefaultDim
	var r region.Region
	switch t {
	case ToolRect:
		r = region.NewRectangle(at.X, at.Y, d, d)
	case ToolEllipse:
		r = region.NewEllipse(at.X+d/2, at.Y+d/2, d/2, d/2)
	case ToolTriangle:
		r = region.NewTriangle(at, d)
	case ToolAQT3, ToolAQT4, ToolAQT5:
		s, _ := t.silhouette()
		p := region.NewSilhouette(s, at, c.settings.SilhouetteScale)
		if p == nil {
			return nil, fmt.Errorf("silhouette %v: %w", s, ErrUnknownTool)
		}
		r = p
	default:
		return nil, fmt.Errorf("new shape %v: %w", t, ErrUnknownTool)
	}
	r.MoveTo(at)
	c.paint(r)
	return r, nil
}

func (c *Controller) paint(r region.Region) {
	if col, ok := r.(region.Colorable); ok {
		col.SetFill(c.settings.Fill)
		col.SetOpacity(c.settings.Opacity)
	}
}

func setHighlight(r region.Region, on bool) {
	if col, ok := r.(region.Colorable); ok {
		col.SetHighlighted(on)
	}
}

func clampOrigin(p geom.Point) geom.Point {
	return geom.Pt(max(p.X, 0), max(p.Y, 0))
}
