package editor

import (
	"strings"

	"github.com/example/targeteditor/internal/region"
)

// Tool is the active toolbar selection.
type Tool int

const (
	ToolCursor Tool = iota
	ToolImage
	ToolRect
	ToolEllipse
	ToolTriangle
	ToolAQT3
	ToolAQT4
	ToolAQT5
	ToolFreeform
)

var toolNames = map[Tool]string{
	ToolCursor:   "cursor",
	ToolImage:    "image",
	ToolRect:     "rect",
	ToolEllipse:  "ellipse",
	ToolTriangle: "triangle",
	ToolAQT3:     "aqt3",
	ToolAQT4:     "aqt4",
	ToolAQT5:     "aqt5",
	ToolFreeform: "freeform",
}

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolCursor, ToolImage, ToolRect, ToolEllipse, ToolTriangle, ToolAQT3, ToolAQT4, ToolAQT5, ToolFreeform}

func (t Tool) String() string {
	if n, ok := toolNames[t]; ok {
		return n
	}
	return "unknown"
}

// ParseTool resolves a tool name. "oval" and "rectangle" are accepted as
// aliases.
func ParseTool(s string) (Tool, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "oval":
		return ToolEllipse, true
	case "rectangle":
		return ToolRect, true
	}
	for t, n := range toolNames {
		if n == s {
			return t, true
		}
	}
	return 0, false
}

// Placing reports whether t drops a candidate region that follows the
// pointer.
func (t Tool) Placing() bool {
	switch t {
	case ToolImage, ToolRect, ToolEllipse, ToolTriangle, ToolAQT3, ToolAQT4, ToolAQT5:
		return true
	}
	return false
}

// Shape reports whether t builds a region without any file input.
func (t Tool) Shape() bool { return t.Placing() && t != ToolImage }

func (t Tool) silhouette() (region.Silhouette, bool) {
	switch t {
	case ToolAQT3:
		return region.SilhouetteAQT3, true
	case ToolAQT4:
		return region.SilhouetteAQT4, true
	case ToolAQT5:
		return region.SilhouetteAQT5, true
	}
	return 0, false
}

// Mode is the state of the interaction state machine.
type Mode int

const (
	// ModeIdle selects and manipulates committed regions.
	ModeIdle Mode = iota
	// ModePlacing has a candidate region tracking the pointer.
	ModePlacing
	// ModeTracing accumulates freeform vertices.
	ModeTracing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePlacing:
		return "placing"
	case ModeTracing:
		return "tracing"
	}
	return "unknown"
}
