// Package appstate runs the shiny window that hosts the target editor.
package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/targeteditor/internal/theme"
)

const (
	toolbarWidth = 92
	buttonHeight = 20
	buttonGap    = 2
	sectionGap   = 8
	statusHeight = 20

	// tag editor placement relative to the Tags button
	tagPadLeft   = 4
	tagPadBottom = 2
)

var panelFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	panelFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 14, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// ButtonState is the visual state a button is drawn in.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StateActive
	StateDisabled
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [4]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [4]*image.RGBA{}
	}
}

// LabelButton is a toolbar button with a text label and, for color chooser
// entries, a swatch.
type LabelButton struct {
	label  string
	swatch *color.RGBA
	theme  *theme.Theme
	rect   image.Rectangle
	// onActivate is called when the button is clicked.
	onActivate func()
}

func (b *LabelButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := b.theme.ButtonBackground, b.theme.ButtonText
	switch state {
	case StateHover:
		bg = b.theme.ButtonBackgroundHover
	case StateActive:
		bg = b.theme.ButtonBackgroundActive
	case StateDisabled:
		fg = b.theme.ButtonTextDisabled
	}
	draw.Draw(dst, b.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, b.rect, b.theme.ButtonBorder, 1)
	x := b.rect.Min.X + 4
	if b.swatch != nil {
		sw := image.Rect(x, b.rect.Min.Y+4, x+12, b.rect.Max.Y-4)
		draw.Draw(dst, sw, &image.Uniform{*b.swatch}, image.Point{}, draw.Src)
		drawRect(dst, sw, b.theme.ButtonBorder, 1)
		x = sw.Max.X + 4
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(x, b.rect.Min.Y+15)}
	d.DrawString(b.label)
}

func (b *LabelButton) Rect() image.Rectangle { return b.rect }

func (b *LabelButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *LabelButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// toolbarItem is a button plus the predicates that pick its state.
type toolbarItem struct {
	button  Button
	section int
	enabled func() bool
	active  func() bool
}

func (it toolbarItem) state(hover bool) ButtonState {
	switch {
	case it.enabled != nil && !it.enabled():
		return StateDisabled
	case it.active != nil && it.active():
		return StateActive
	case hover:
		return StateHover
	}
	return StateDefault
}

// layoutToolbar stacks items top to bottom in the left column, leaving a gap
// between sections. It returns the height used.
func layoutToolbar(items []toolbarItem) int {
	y := buttonGap
	for i, it := range items {
		if i > 0 && it.section != items[i-1].section {
			y += sectionGap
		}
		it.button.SetRect(image.Rect(buttonGap, y, toolbarWidth-buttonGap, y+buttonHeight))
		y += buttonHeight + buttonGap
	}
	return y
}

// itemAt returns the index of the item under p, or -1.
func itemAt(items []toolbarItem, p image.Point) int {
	for i, it := range items {
		if p.In(it.button.Rect()) {
			return i
		}
	}
	return -1
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}
