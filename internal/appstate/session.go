package appstate

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/targeteditor/internal/capture"
	"github.com/example/targeteditor/internal/clipboard"
	"github.com/example/targeteditor/internal/editor"
	"github.com/example/targeteditor/internal/geom"
	"github.com/example/targeteditor/internal/notify"
	"github.com/example/targeteditor/internal/region"
	"github.com/example/targeteditor/internal/render"
	"github.com/example/targeteditor/internal/tags"
	"github.com/example/targeteditor/internal/theme"
)

const messageDuration = 2 * time.Second

// KeyShortcut identifies a key combination. Rune is lowercased; Code is used
// for keys without a rune.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

func shortcutOf(e key.Event) KeyShortcut {
	if e.Rune > 0 {
		return KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers &^ key.ModShift}
	}
	return KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}
}

var toolLabels = map[editor.Tool]string{
	editor.ToolCursor:   "C:Cursor",
	editor.ToolImage:    "I:Image",
	editor.ToolRect:     "R:Rect",
	editor.ToolEllipse:  "E:Ellipse",
	editor.ToolTriangle: "T:Triangle",
	editor.ToolAQT3:     "3:AQT 3",
	editor.ToolAQT4:     "4:AQT 4",
	editor.ToolAQT5:     "5:AQT 5",
	editor.ToolFreeform: "F:Freeform",
}

var toolKeys = map[rune]editor.Tool{
	'c': editor.ToolCursor,
	'i': editor.ToolImage,
	'r': editor.ToolRect,
	'e': editor.ToolEllipse,
	't': editor.ToolTriangle,
	'3': editor.ToolAQT3,
	'4': editor.ToolAQT4,
	'5': editor.ToolAQT5,
	'f': editor.ToolFreeform,
}

// session is the window-independent part of the front end: it routes input
// to the controller and paints frames. It is only used from the event loop.
type session struct {
	ctl      *editor.Controller
	theme    *theme.Theme
	notifier *notify.Notifier
	output   string
	render   render.Options

	items   []toolbarItem
	toolbar int // height
	hover   int

	keys map[KeyShortcut]func()

	prompting bool
	prompt    string

	message      string
	messageUntil time.Time
	now          func() time.Time
}

func newSession(a *AppState) *session {
	s := &session{
		theme:    a.Theme,
		notifier: a.Notifier,
		output:   a.Output,
		render:   render.DefaultOptions(),
		hover:    -1,
		now:      time.Now,
	}
	if s.theme == nil {
		s.theme = theme.Default()
	}
	tagsButton := s.buildToolbar()
	s.toolbar = layoutToolbar(s.items)
	trigger := tagsButton.Rect()
	s.ctl = editor.New(a.Background,
		editor.WithSettings(a.Settings),
		editor.WithTagEditor(func(initial map[string]string, anchor geom.Point) tags.Editor {
			return newTagPanel(initial, anchor)
		}),
		editor.WithTagTrigger(geom.Rect{
			X: float64(trigger.Min.X), Y: float64(trigger.Min.Y),
			Width: float64(trigger.Dx()), Height: float64(trigger.Dy()),
		}, tagPadLeft, tagPadBottom),
	)
	s.registerKeys()
	return s
}

func (s *session) buildToolbar() Button {
	add := func(section int, label string, fn func(), enabled, active func() bool) Button {
		b := &CacheButton{Button: &LabelButton{label: label, theme: s.theme, onActivate: fn}}
		s.items = append(s.items, toolbarItem{button: b, section: section, enabled: enabled, active: active})
		return b
	}
	for _, t := range editor.Tools {
		add(0, toolLabels[t], func() { s.selectTool(t) }, nil, func() bool { return s.ctl.Tool() == t })
	}
	selected := func() bool { return s.ctl.Controls().Enabled }
	add(1, "]:Forward", func() { s.ctl.BringForward() }, selected, nil)
	add(1, "[:Backward", func() { s.ctl.SendBackward() }, selected, nil)
	tagsButton := add(1, "G:Tags", func() { s.ctl.ToggleTagEditor() }, selected,
		func() bool { return s.ctl.Controls().TagsOpen })
	for _, name := range region.ColorChoices {
		c := region.ColorByName(name)
		b := &CacheButton{Button: &LabelButton{label: name, swatch: &c, theme: s.theme,
			onActivate: func() { s.ctl.ChooseColor(name) }}}
		s.items = append(s.items, toolbarItem{button: b, section: 2, enabled: selected,
			active: func() bool { return s.ctl.Controls().Color == name }})
	}
	add(3, "^C:Copy", s.copy, nil, nil)
	add(3, "^S:Save", s.save, nil, nil)
	add(3, "^V:Paste bg", s.pasteBackground, nil, nil)
	add(3, "^N:Screen bg", s.captureBackground, nil, nil)
	return tagsButton
}

func (s *session) registerKeys() {
	s.keys = map[KeyShortcut]func(){
		{Rune: 'c', Modifiers: key.ModControl}: s.copy,
		{Rune: 's', Modifiers: key.ModControl}: s.save,
		{Rune: 'o', Modifiers: key.ModControl}: s.startPrompt,
		{Rune: 'v', Modifiers: key.ModControl}: s.pasteBackground,
		{Rune: 'n', Modifiers: key.ModControl}: s.captureBackground,
		{Rune: ']'}:                            s.ctl.BringForward,
		{Rune: '['}:                            s.ctl.SendBackward,
		{Rune: 'g'}:                            s.ctl.ToggleTagEditor,
		{Code: key.CodeEscape}:                 s.escape,
	}
	for r, t := range toolKeys {
		s.keys[KeyShortcut{Rune: r}] = func() { s.selectTool(t) }
	}
}

func (s *session) selectTool(t editor.Tool) {
	if t == editor.ToolImage {
		s.startPrompt()
		return
	}
	s.ctl.SelectTool(t)
}

// windowSize fits the background beside the toolbar above the status line.
func (s *session) windowSize() image.Point {
	w, h := 640, 480
	if bg := s.ctl.Background(); bg != nil {
		w, h = bg.Bounds().Dx(), bg.Bounds().Dy()
	}
	return image.Pt(toolbarWidth+w, max(h, s.toolbar)+statusHeight)
}

func (s *session) canvasOrigin() image.Point { return image.Pt(toolbarWidth, 0) }

// handleMouse routes e and reports whether a repaint is needed.
func (s *session) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	if p.X < toolbarWidth {
		i := itemAt(s.items, p)
		changed := i != s.hover
		s.hover = i
		if i >= 0 && e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
			if it := s.items[i]; it.state(false) != StateDisabled {
				it.button.Activate()
			}
			return true
		}
		return changed
	}
	if s.hover >= 0 {
		s.hover = -1
	}
	o := s.canvasOrigin()
	e.X -= float32(o.X)
	e.Y -= float32(o.Y)
	s.ctl.HandleMouse(e)
	return true
}

// handleKey routes e to the prompt, the tag panel, the controller and the
// shortcuts in that order. It reports whether a repaint is needed.
func (s *session) handleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	if s.prompting {
		return s.promptKey(e)
	}
	if p := s.panel(); p != nil && e.Code != key.CodeEscape && p.handleKey(e) {
		return true
	}
	if s.ctl.HandleKey(e) {
		return true
	}
	if fn, ok := s.keys[shortcutOf(e)]; ok {
		fn()
		return true
	}
	return false
}

func (s *session) panel() *tagPanel {
	p, _ := s.ctl.TagBinding().Editor().(*tagPanel)
	return p
}

func (s *session) escape() {
	if s.ctl.TagBinding().IsOpen() {
		s.ctl.ToggleTagEditor()
		return
	}
	s.ctl.SelectCursor()
}

func (s *session) startPrompt() {
	s.prompting = true
	s.prompt = ""
}

func (s *session) promptKey(e key.Event) bool {
	switch e.Code {
	case key.CodeEscape:
		s.prompting = false
	case key.CodeReturnEnter:
		s.prompting = false
		path := s.prompt
		if err := s.ctl.OpenImageFile(path); err != nil {
			log.Printf("open image: %v", err)
			s.flash(fmt.Sprintf("cannot open %s", path))
		}
	case key.CodeDeleteBackspace:
		if _, n := utf8.DecodeLastRuneInString(s.prompt); n > 0 {
			s.prompt = s.prompt[:len(s.prompt)-n]
		}
	default:
		if !unicode.IsPrint(e.Rune) {
			return false
		}
		s.prompt += string(e.Rune)
	}
	return true
}

func (s *session) flash(msg string) {
	s.message = msg
	s.messageUntil = s.now().Add(messageDuration)
}

// snapshot renders the target over the background without the editor chrome.
func (s *session) snapshot() *image.RGBA {
	return render.Snapshot(s.ctl.Background(), s.ctl.Canvas().Children(), s.render)
}

func (s *session) copy() {
	if err := clipboard.WriteImage(s.snapshot()); err != nil {
		log.Printf("copy: %v", err)
		s.flash("copy failed")
		return
	}
	s.notifier.Copy("target")
	s.flash("target copied to clipboard")
}

func (s *session) save() {
	if err := writePNG(s.output, s.snapshot()); err != nil {
		log.Printf("save: %v", err)
		s.flash("save failed")
		return
	}
	s.notifier.Save(s.output)
	s.flash(fmt.Sprintf("saved %s", s.output))
}

func (s *session) pasteBackground() {
	img, err := clipboard.ReadImage()
	if err != nil {
		log.Printf("paste: %v", err)
		s.flash("no image on the clipboard")
		return
	}
	s.ctl.SetBackground(img)
	s.notifier.Load("clipboard", img)
}

func (s *session) captureBackground() {
	img, err := capture.Screen()
	if err != nil {
		log.Printf("capture screen: %v", err)
		s.flash("screen capture failed")
		return
	}
	s.ctl.SetBackground(img)
	s.notifier.Load("screen", img)
}

func writePNG(path string, img image.Image) error {
	if path == "" {
		return fmt.Errorf("no output file")
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		if cerr := out.Close(); cerr != nil {
			log.Printf("save: closing file: %v", cerr)
		}
		return err
	}
	return out.Close()
}

// draw paints a full frame into dst.
func (s *session) draw(dst *image.RGBA) {
	b := dst.Bounds()
	draw.Draw(dst, b, &image.Uniform{s.theme.Background}, image.Point{}, draw.Src)

	o := s.canvasOrigin()
	if bg := s.ctl.Background(); bg != nil {
		r := image.Rectangle{Min: o, Max: o.Add(bg.Bounds().Size())}
		draw.Draw(dst, r, bg, bg.Bounds().Min, draw.Src)
	}
	render.Canvas(dst, o, s.ctl.Canvas().Children(), s.render)

	side := image.Rect(0, 0, toolbarWidth, b.Max.Y)
	draw.Draw(dst, side, &image.Uniform{s.theme.ToolbarBackground}, image.Point{}, draw.Src)
	for i, it := range s.items {
		it.button.Draw(dst, it.state(i == s.hover))
	}

	if p := s.panel(); p != nil {
		p.draw(dst, s.theme)
	}
	s.drawStatus(dst)
}

func (s *session) drawStatus(dst *image.RGBA) {
	b := dst.Bounds()
	r := image.Rect(0, b.Max.Y-statusHeight, b.Max.X, b.Max.Y)
	draw.Draw(dst, r, &image.Uniform{s.theme.ToolbarBackground}, image.Point{}, draw.Src)
	p := s.ctl.Pointer()
	text := fmt.Sprintf("%s (%s)  %.0f,%.0f", s.ctl.Tool(), s.ctl.Mode(), p.X, p.Y)
	switch {
	case s.prompting:
		text = "open image: " + s.prompt + "_"
	case s.message != "" && s.now().Before(s.messageUntil):
		text = s.message
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(s.theme.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(r.Min.X+4, r.Min.Y+15)}
	d.DrawString(text)
}
