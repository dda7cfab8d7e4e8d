// Package tags binds a single tag editor to the selected region.
package tags

import (
	"github.com/example/targeteditor/internal/geom"
	"github.com/example/targeteditor/internal/region"
)

// Editor is an open tag editing surface.
type Editor interface {
	// Tags returns the mapping as currently edited.
	Tags() map[string]string
}

// Factory opens an editor showing initial at anchor.
type Factory func(initial map[string]string, anchor geom.Point) Editor

// Anchor placement offsets relative to the trigger control.
const (
	anchorInsetX = -2
	anchorGapY   = 2
)

// AnchorBelow positions an editor just under a trigger control with the given
// bounds and padding.
func AnchorBelow(trigger geom.Rect, padLeft, padBottom float64) geom.Point {
	return geom.Pt(
		trigger.X+padLeft+anchorInsetX,
		trigger.Y+trigger.Height+padBottom+anchorGapY,
	)
}

// Binding tracks the one open editor and the region it edits.
type Binding struct {
	factory Factory
	editor  Editor
	target  region.Region
	anchor  geom.Point
}

// NewBinding returns a closed binding. A nil factory opens Sheet editors.
func NewBinding(f Factory) *Binding {
	if f == nil {
		f = func(initial map[string]string, _ geom.Point) Editor { return NewSheet(initial) }
	}
	return &Binding{factory: f}
}

// Open shows an editor for r. An editor already open for another region is
// closed first.
func (b *Binding) Open(r region.Region, anchor geom.Point) {
	if b.editor != nil {
		b.Close()
	}
	b.target = r
	b.anchor = anchor
	b.editor = b.factory(r.Tags(), anchor)
}

// Close writes the edited tags back to the target and discards the editor.
func (b *Binding) Close() {
	if b.editor == nil {
		return
	}
	b.target.SetTags(b.editor.Tags())
	b.editor = nil
	b.target = nil
}

// IsOpen reports whether an editor is showing.
func (b *Binding) IsOpen() bool { return b.editor != nil }

// Target is the region being edited, or nil.
func (b *Binding) Target() region.Region { return b.target }

// Editor is the open editor, or nil.
func (b *Binding) Editor() Editor { return b.editor }

// Anchor is where the open editor was placed.
func (b *Binding) Anchor() geom.Point { return b.anchor }
