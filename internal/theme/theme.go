// Package theme holds the colors of the editor chrome.
package theme

import (
	"image/color"
	"maps"
	"slices"
)

// Theme defines the color palette for the editor UI.
type Theme struct {
	Name string

	Background color.RGBA // behind the canvas
	Foreground color.RGBA // status text

	ToolbarBackground color.RGBA

	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundActive color.RGBA
	ButtonText             color.RGBA
	ButtonTextDisabled     color.RGBA
	ButtonBorder           color.RGBA

	// Tag editor panel
	PanelBackground color.RGBA
	PanelText       color.RGBA
	PanelBorder     color.RGBA
}

// Default returns the light theme.
func Default() *Theme {
	return &Theme{
		Name:                   "default",
		Background:             color.RGBA{220, 220, 220, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		ToolbarBackground:      color.RGBA{220, 220, 220, 255},
		ButtonBackground:       color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover:  color.RGBA{180, 180, 180, 255},
		ButtonBackgroundActive: color.RGBA{150, 150, 150, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonTextDisabled:     color.RGBA{130, 130, 130, 255},
		ButtonBorder:           color.RGBA{0, 0, 0, 255},
		PanelBackground:        color.RGBA{255, 248, 220, 255},
		PanelText:              color.RGBA{0, 0, 0, 255},
		PanelBorder:            color.RGBA{90, 90, 90, 255},
	}
}

// Dark returns the dark theme.
func Dark() *Theme {
	return &Theme{
		Name:                   "dark",
		Background:             color.RGBA{40, 40, 40, 255},
		Foreground:             color.RGBA{230, 230, 230, 255},
		ToolbarBackground:      color.RGBA{30, 30, 30, 255},
		ButtonBackground:       color.RGBA{60, 60, 60, 255},
		ButtonBackgroundHover:  color.RGBA{80, 80, 80, 255},
		ButtonBackgroundActive: color.RGBA{110, 110, 110, 255},
		ButtonText:             color.RGBA{230, 230, 230, 255},
		ButtonTextDisabled:     color.RGBA{120, 120, 120, 255},
		ButtonBorder:           color.RGBA{160, 160, 160, 255},
		PanelBackground:        color.RGBA{55, 55, 60, 255},
		PanelText:              color.RGBA{240, 240, 240, 255},
		PanelBorder:            color.RGBA{200, 200, 200, 255},
	}
}

var builtin = map[string]func() *Theme{
	"default": Default,
	"dark":    Dark,
}

// Builtin lists the names of the themes compiled in.
func Builtin() []string { return slices.Sorted(maps.Keys(builtin)) }
