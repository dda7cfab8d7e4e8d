package editor

import (
	"errors"
	"image"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/targeteditor/internal/canvas"
	"github.com/example/targeteditor/internal/geom"
	"github.com/example/targeteditor/internal/media"
	"github.com/example/targeteditor/internal/region"
	"github.com/example/targeteditor/internal/tags"
)

type fakeLoader struct {
	frames int
	err    error
}

func (f fakeLoader) Load(path string) (*media.Decoded, error) {
	if f.err != nil {
		return nil, f.err
	}
	frames := make([]image.Image, f.frames)
	for i := range frames {
		frames[i] = image.NewRGBA(image.Rect(0, 0, 4, 4))
	}
	dec := &media.Decoded{Still: frames[0]}
	if f.frames > 1 {
		dec.Animation = media.NewAnimation(frames, []time.Duration{10 * time.Millisecond})
	}
	return dec, nil
}

func newController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	return New(image.NewRGBA(image.Rect(0, 0, 400, 400)), opts...)
}

func click(c *Controller, x, y float64) {
	c.PointerMoved(geom.Pt(x, y))
	c.PointerReleased(geom.Pt(x, y), mouse.ButtonLeft)
}

func commitRect(t *testing.T, c *Controller, x, y float64) region.Region {
	t.Helper()
	if err := c.StartShape(ToolRect); err != nil {
		t.Fatalf("start shape: %v", err)
	}
	before := c.store.Len()
	click(c, x, y)
	if c.store.Len() != before+1 {
		t.Fatalf("click at %v,%v did not commit", x, y)
	}
	rs := c.Regions()
	return rs[len(rs)-1]
}

func assertInSync(t *testing.T, c *Controller) {
	t.Helper()
	var drawn []canvas.Node
	for _, n := range c.Canvas().Children() {
		if _, ok := n.(region.Region); ok && n != canvas.Node(c.candidate) {
			drawn = append(drawn, n)
		}
	}
	rs := c.Regions()
	if len(drawn) != len(rs) {
		t.Fatalf("canvas has %d regions, store has %d", len(drawn), len(rs))
	}
	for i := range rs {
		if drawn[i] != canvas.Node(rs[i]) {
			t.Fatalf("order differs at %d", i)
		}
	}
}

func TestDropRectangle(t *testing.T) {
	c := newController(t)
	if err := c.Drop(ToolRect, geom.Pt(30, 40)); err != nil {
		t.Fatalf("drop: %v", err)
	}
	r, ok := c.Candidate().(*region.Rectangle)
	if !ok {
		t.Fatalf("candidate is %T", c.Candidate())
	}
	if b := r.Bounds(); b != (geom.Rect{X: 30, Y: 40, Width: 40, Height: 40}) {
		t.Fatalf("bounds = %+v", b)
	}
	if r.Opacity() != 0.7 || region.NameOfColor(r.Fill()) != "black" {
		t.Fatalf("unexpected paint %v %v", r.Fill(), r.Opacity())
	}
	if c.store.Len() != 0 || c.Mode() != ModePlacing {
		t.Fatal("candidate must not be committed")
	}
}

func TestDropDiscardsTrace(t *testing.T) {
	c := newController(t)
	c.StartFreeform()
	click(c, 10, 10)
	click(c, 50, 10)
	c.PointerMoved(geom.Pt(60, 60))
	if err := c.Drop(ToolEllipse, geom.Pt(5, 5)); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if c.Trace().Active() || c.Trace().Preview() != nil {
		t.Fatal("trace survived the drop")
	}
	if got := c.Canvas().Len(); got != 1 {
		t.Fatalf("canvas has %d children, want only the candidate", got)
	}
}

func TestCommitStampsNextCandidate(t *testing.T) {
	c := newController(t)
	r := commitRect(t, c, 100, 100)
	if b := r.Bounds(); b.X != 80 || b.Y != 80 {
		t.Fatalf("committed at %+v", b)
	}
	next := c.Candidate()
	if next == nil || next == r || c.store.Contains(next.ID()) {
		t.Fatal("expected a fresh uncommitted candidate")
	}
	if got := c.Canvas().Len(); got != 2 {
		t.Fatalf("canvas children = %d", got)
	}
	c.PointerReleased(geom.Pt(100, 100), mouse.ButtonRight)
	if c.store.Len() != 1 {
		t.Fatal("right click must not commit")
	}
}

func TestCandidateClampedToOrigin(t *testing.T) {
	c := newController(t)
	if err := c.StartShape(ToolRect); err != nil {
		t.Fatal(err)
	}
	c.PointerMoved(geom.Pt(5, 100))
	if b := c.Candidate().Bounds(); b.X != 0 || b.Y != 80 {
		t.Fatalf("bounds = %+v", b)
	}
}

func TestFreeformEndToEnd(t *testing.T) {
	c := newController(t)
	c.StartFreeform()
	if c.Mode() != ModeTracing {
		t.Fatalf("mode = %v", c.Mode())
	}
	for _, p := range []geom.Point{{X: 10, Y: 10}, {X: 100, Y: 10}, {X: 100, Y: 100}, {X: 10, Y: 100}} {
		c.PointerMoved(p)
		c.PointerReleased(p, mouse.ButtonLeft)
	}
	c.PointerMoved(geom.Pt(20, 50))
	c.PointerReleased(geom.Pt(20, 50), mouse.ButtonRight)

	rs := c.Regions()
	if len(rs) != 1 {
		t.Fatalf("store has %d regions", len(rs))
	}
	p, ok := rs[0].(*region.Polygon)
	if !ok || len(p.Vertices()) != 4 {
		t.Fatalf("expected 4-vertex polygon, got %T", rs[0])
	}
	if c.Canvas().Len() != 1 {
		t.Fatalf("preview primitives left on canvas: %d children", c.Canvas().Len())
	}
	if c.Mode() != ModeIdle {
		t.Fatalf("mode = %v", c.Mode())
	}
}

func TestShortTraceProducesNothing(t *testing.T) {
	c := newController(t)
	c.StartFreeform()
	click(c, 1, 1)
	click(c, 9, 9)
	c.PointerReleased(geom.Pt(5, 5), mouse.ButtonRight)
	if c.store.Len() != 0 || c.Canvas().Len() != 0 {
		t.Fatal("short trace should leave nothing behind")
	}
}

func TestCtrlZUndoesVertex(t *testing.T) {
	c := newController(t)
	c.StartFreeform()
	click(c, 1, 1)
	click(c, 20, 1)
	ctrlZ := key.Event{Code: key.CodeZ, Rune: 'z', Modifiers: key.ModControl, Direction: key.DirPress}
	if !c.HandleKey(ctrlZ) {
		t.Fatal("ctrl+z not handled while tracing")
	}
	if got := len(c.Trace().Vertices()); got != 1 {
		t.Fatalf("vertices = %d", got)
	}
	c.HandleKey(ctrlZ)
	if c.Trace().Active() || c.Trace().UndoDepth() != 0 || c.Canvas().Len() != 0 {
		t.Fatal("builder not back to fresh state")
	}
	c.SelectCursor()
	if c.HandleKey(ctrlZ) {
		t.Fatal("ctrl+z should be ignored outside tracing")
	}
}

func TestSelectionMovesHighlightAndTagEditor(t *testing.T) {
	c := newController(t)
	a := commitRect(t, c, 50, 50)
	b := commitRect(t, c, 150, 150)
	c.SelectCursor()
	if c.Candidate() != nil {
		t.Fatal("cursor tool must discard the candidate")
	}
	click(c, 50, 50)
	if c.Selection() != a {
		t.Fatal("a not selected")
	}
	c.ToggleTagEditor()
	c.TagBinding().Editor().(*tags.Sheet).Set("zone", "alpha")

	click(c, 150, 150)
	if c.Selection() != b {
		t.Fatal("b not selected")
	}
	highlighted := 0
	for _, r := range c.Regions() {
		if r.(region.Colorable).Highlighted() {
			highlighted++
		}
	}
	if highlighted != 1 || !b.(region.Colorable).Highlighted() {
		t.Fatalf("highlighted = %d", highlighted)
	}
	if !c.TagBinding().IsOpen() || c.TagBinding().Target() != b {
		t.Fatal("tag editor should reopen on b")
	}
	if a.Tags()["zone"] != "alpha" {
		t.Fatalf("a tags = %v", a.Tags())
	}
}

func TestDeleteDisablesControls(t *testing.T) {
	var last Controls
	c := newController(t, WithControlsListener(func(ctl Controls) { last = ctl }))
	r := commitRect(t, c, 50, 50)
	c.SelectCursor()
	click(c, 50, 50)
	if !last.Enabled {
		t.Fatal("selection should enable controls")
	}
	c.ToggleTagEditor()
	if !c.HandleKey(key.Event{Code: key.CodeDeleteForward, Direction: key.DirPress}) {
		t.Fatal("delete not handled")
	}
	if c.store.Contains(r.ID()) || c.Canvas().Contains(r) {
		t.Fatal("region still present")
	}
	if last.Enabled || c.Controls().Enabled || c.TagBinding().IsOpen() {
		t.Fatalf("controls = %+v", c.Controls())
	}
	click(c, 300, 300)
	if c.Controls().Enabled || c.Selection() != nil {
		t.Fatal("clicking nothing must leave controls disabled")
	}
}

func TestArrowKeys(t *testing.T) {
	c := newController(t)
	r := commitRect(t, c, 50, 50)
	c.SelectCursor()
	click(c, 50, 50)
	press := func(code key.Code, mods key.Modifiers) {
		c.HandleKey(key.Event{Code: code, Modifiers: mods, Direction: key.DirPress})
	}
	press(key.CodeRightArrow, 0)
	press(key.CodeDownArrow, 0)
	press(key.CodeDownArrow, 0)
	press(key.CodeRightArrow, key.ModShift)
	press(key.CodeUpArrow, key.ModShift)
	want := geom.Rect{X: 31, Y: 32, Width: 41, Height: 39}
	if b := r.Bounds(); b != want {
		t.Fatalf("bounds = %+v, want %+v", b, want)
	}
}

func TestReorderKeepsCanvasInSync(t *testing.T) {
	c := newController(t)
	var rs []region.Region
	for i := 0; i < 4; i++ {
		rs = append(rs, commitRect(t, c, float64(50+i*60), 50))
	}
	c.SelectCursor()
	assertInSync(t, c)
	steps := []struct {
		pick    int
		forward bool
	}{{0, true}, {0, true}, {3, false}, {2, true}, {1, false}, {0, true}, {3, true}, {1, false}}
	for _, s := range steps {
		c.Select(rs[s.pick].ID())
		if s.forward {
			c.BringForward()
		} else {
			c.SendBackward()
		}
		assertInSync(t, c)
	}
}

func TestChooseColor(t *testing.T) {
	c := newController(t)
	r := commitRect(t, c, 50, 50)
	c.ChooseColor("red")
	if region.NameOfColor(r.(region.Colorable).Fill()) != "black" {
		t.Fatal("color applied without a selection")
	}
	c.SelectCursor()
	click(c, 50, 50)
	c.ChooseColor("red")
	if got := region.NameOfColor(r.(region.Colorable).Fill()); got != "red" {
		t.Fatalf("fill = %s", got)
	}
	if c.Controls().Color != "red" {
		t.Fatalf("chooser = %s", c.Controls().Color)
	}
}

func TestImagePlaysOnceOnCommit(t *testing.T) {
	c := newController(t, WithLoader(fakeLoader{frames: 3}))
	if err := c.OpenImageFile("target.gif"); err != nil {
		t.Fatalf("open: %v", err)
	}
	click(c, 10, 10)
	rs := c.Regions()
	if len(rs) != 1 {
		t.Fatalf("store has %d regions", len(rs))
	}
	img := rs[0].(*region.Image)
	if img.Animation() == nil || !c.Animating() {
		t.Fatal("animation should be playing")
	}
	if _, ok := c.Candidate().(*region.Image); !ok {
		t.Fatal("image tool should stamp another image")
	}
	c.Tick(time.Second)
	if img.Animation() != nil || c.Animating() {
		t.Fatal("animation should be detached after one cycle")
	}
	c.SelectCursor()
	click(c, 10, 10)
	c.ChooseColor("blue")
	if region.IsColorable(c.Selection()) {
		t.Fatal("image selection must not be colorable")
	}
}

func TestOpenImageFailureKeepsState(t *testing.T) {
	c := newController(t, WithLoader(fakeLoader{err: media.ErrUnsupportedFormat}))
	if err := c.StartShape(ToolTriangle); err != nil {
		t.Fatal(err)
	}
	cand := c.Candidate()
	if err := c.OpenImageFile("target.svg"); !errors.Is(err, media.ErrUnsupportedFormat) {
		t.Fatalf("err = %v", err)
	}
	if c.Tool() != ToolTriangle || c.Candidate() != cand {
		t.Fatal("failed open changed the editor state")
	}
}

func TestOpenImageCancelled(t *testing.T) {
	c := newController(t, WithPicker(PickerFunc(func() (string, bool) { return "", false })))
	c.OpenImage()
	if c.Tool() != ToolCursor || c.Candidate() != nil {
		t.Fatal("cancelled pick should be a no-op")
	}
}

func TestStartShapeRejectsNonShape(t *testing.T) {
	c := newController(t)
	if err := c.StartShape(ToolRect); err != nil {
		t.Fatal(err)
	}
	if err := c.StartShape(ToolCursor); !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("err = %v", err)
	}
	if c.Candidate() != nil || c.Canvas().Len() != 0 {
		t.Fatal("candidate should be cleared")
	}
	if c.Tool() != ToolCursor || c.Mode() != ModeIdle {
		t.Fatalf("tool=%v mode=%v, want cursor/idle", c.Tool(), c.Mode())
	}
}

func TestShapeAfterTraceCentresOnPointer(t *testing.T) {
	c := newController(t)
	c.StartFreeform()
	click(c, 200, 200)
	c.PointerMoved(geom.Pt(250, 260))
	if err := c.StartShape(ToolRect); err != nil {
		t.Fatal(err)
	}
	if b := c.Candidate().Bounds(); b != (geom.Rect{X: 230, Y: 240, Width: 40, Height: 40}) {
		t.Fatalf("candidate bounds = %+v", b)
	}
	if c.Trace().Active() || c.Mode() != ModePlacing {
		t.Fatal("trace should be discarded for placing")
	}
	c.PointerReleased(geom.Pt(250, 260), mouse.ButtonLeft)
	if rs := c.Regions(); len(rs) != 1 || rs[0].Bounds().X != 230 {
		t.Fatalf("committed %+v", rs)
	}
}

func TestParseTool(t *testing.T) {
	for _, tool := range Tools {
		got, ok := ParseTool(tool.String())
		if !ok || got != tool {
			t.Errorf("ParseTool(%q) = %v, %v", tool.String(), got, ok)
		}
	}
	if got, _ := ParseTool("oval"); got != ToolEllipse {
		t.Errorf("oval = %v", got)
	}
}
