// Package config reads and writes the targeteditor RC file.
package config

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/example/targeteditor/internal/editor"
	"github.com/example/targeteditor/internal/region"
	"github.com/example/targeteditor/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Load bool
	Save bool
	Copy bool
}

// Editor holds the [editor] section.
type Editor struct {
	Fill            string
	Opacity         float64
	MovementDelta   float64
	ScaleDelta      float64
	DefaultDim      float64
	SilhouetteScale float64
	VertexRadius    float64
	Dash            float64
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Editor  Editor
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	d := editor.DefaultSettings()
	return &Config{
		Editor: Editor{
			Fill:            region.NameOfColor(d.Fill),
			Opacity:         d.Opacity,
			MovementDelta:   d.MovementDelta,
			ScaleDelta:      d.ScaleDelta,
			DefaultDim:      d.DefaultDim,
			SilhouetteScale: d.SilhouetteScale,
			VertexRadius:    d.VertexRadius,
			Dash:            d.Dash,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// Settings converts the [editor] section for the controller.
func (c *Config) Settings() editor.Settings {
	e := c.Editor
	s := editor.DefaultSettings()
	if col, err := theme.ParseColor(e.Fill); err == nil {
		s.Fill = col
	}
	s.Opacity = e.Opacity
	s.MovementDelta = e.MovementDelta
	s.ScaleDelta = e.ScaleDelta
	s.DefaultDim = e.DefaultDim
	s.SilhouetteScale = e.SilhouetteScale
	s.VertexRadius = e.VertexRadius
	s.Dash = e.Dash
	return s
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	e := c.Editor
	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "fill = %s\n", e.Fill)
	for _, kv := range []struct {
		key string
		v   float64
	}{
		{"opacity", e.Opacity},
		{"movement_delta", e.MovementDelta},
		{"scale_delta", e.ScaleDelta},
		{"default_dim", e.DefaultDim},
		{"silhouette_scale", e.SilhouetteScale},
		{"vertex_radius", e.VertexRadius},
		{"dash", e.Dash},
	} {
		fmt.Fprintf(&sb, "%s = %s\n", kv.key, strconv.FormatFloat(kv.v, 'g', -1, 64))
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "load = %v\n", c.Notify.Load)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		t.Fields(func(field string, col color.RGBA) {
			fmt.Fprintf(&sb, "%s: %s\n", field, theme.Hex(col))
		})
		sb.WriteString("\n")
	}
	return sb.String()
}
