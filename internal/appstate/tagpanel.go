package appstate

import (
	"image"
	"image/draw"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/targeteditor/internal/geom"
	"github.com/example/targeteditor/internal/render"
	"github.com/example/targeteditor/internal/tags"
	"github.com/example/targeteditor/internal/theme"
)

const panelPad = 6

// tagPanel is the on-canvas tag editor. Lines typed as key=value are applied
// to the sheet on Enter; key= removes a tag.
type tagPanel struct {
	sheet  *tags.Sheet
	anchor image.Point
	input  string
	err    string
}

var _ tags.Editor = (*tagPanel)(nil)

func newTagPanel(initial map[string]string, anchor geom.Point) *tagPanel {
	return &tagPanel{sheet: tags.NewSheet(initial), anchor: anchor.Image()}
}

func (p *tagPanel) Tags() map[string]string { return p.sheet.Tags() }

// handleKey edits the input line. It reports whether the key was consumed.
func (p *tagPanel) handleKey(e key.Event) bool {
	if e.Modifiers&(key.ModControl|key.ModAlt|key.ModMeta) != 0 {
		return false
	}
	switch e.Code {
	case key.CodeReturnEnter:
		if p.input == "" {
			return true
		}
		if err := p.sheet.Apply(p.input); err != nil {
			p.err = err.Error()
			return true
		}
		p.input, p.err = "", ""
		return true
	case key.CodeDeleteBackspace:
		if _, n := utf8.DecodeLastRuneInString(p.input); n > 0 {
			p.input = p.input[:len(p.input)-n]
		}
		return true
	}
	if unicode.IsPrint(e.Rune) {
		p.input += string(e.Rune)
		return true
	}
	return false
}

func (p *tagPanel) lines() []string {
	all := p.sheet.Tags()
	out := make([]string, 0, len(all)+2)
	for _, k := range p.sheet.Keys() {
		out = append(out, k+" = "+all[k])
	}
	if len(out) == 0 {
		out = append(out, "(no tags)")
	}
	out = append(out, "> "+p.input+"_")
	if p.err != "" {
		out = append(out, p.err)
	}
	return out
}

func (p *tagPanel) bounds() image.Rectangle {
	d := &font.Drawer{Face: panelFace}
	w := 120
	for _, l := range p.lines() {
		w = max(w, d.MeasureString(l).Ceil())
	}
	h := len(p.lines()) * lineHeight(panelFace)
	return image.Rect(0, 0, w+2*panelPad, h+2*panelPad).Add(p.anchor)
}

func (p *tagPanel) draw(dst *image.RGBA, th *theme.Theme) {
	r := p.bounds()
	render.DropShadow(dst, r, render.DefaultShadowOptions())
	draw.Draw(dst, r, &image.Uniform{th.PanelBackground}, image.Point{}, draw.Src)
	drawRect(dst, r, th.PanelBorder, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.PanelText), Face: panelFace}
	lh := lineHeight(panelFace)
	ascent := panelFace.Metrics().Ascent.Ceil()
	for i, l := range p.lines() {
		d.Dot = fixed.P(r.Min.X+panelPad, r.Min.Y+panelPad+ascent+i*lh)
		d.DrawString(l)
	}
}

func lineHeight(f font.Face) int {
	m := f.Metrics()
	return (m.Ascent + m.Descent).Ceil() + 2
}
