package region

import (
	"image/color"
	"slices"

	"golang.org/x/image/colornames"
)

// DefaultColorName is reported for any fill outside the chooser palette.
const DefaultColorName = "cornsilk"

// ColorChoices lists the fills offered by the color chooser, in menu order.
var ColorChoices = []string{"black", "blue", "green", "orange", "red", "white"}

// ColorByName maps a chooser entry to its color. Unknown names map to
// cornsilk.
func ColorByName(name string) color.RGBA {
	if slices.Contains(ColorChoices, name) {
		return colornames.Map[name]
	}
	return colornames.Cornsilk
}

// NameOfColor is the inverse of ColorByName for chooser colors; any other
// color is reported as DefaultColorName.
func NameOfColor(c color.RGBA) string {
	for _, name := range ColorChoices {
		if colornames.Map[name] == c {
			return name
		}
	}
	return DefaultColorName
}
