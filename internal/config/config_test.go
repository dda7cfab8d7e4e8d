package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/colornames"
)

func TestParse(t *testing.T) {
	input := `
theme = night
save_dir = /tmp/targets

[editor]
fill = red
opacity = 0.5
default_dim = 60
dash = 3

[notify]
load = true
save = false
copy = true

[theme.night]
Background = #111111
Foreground: #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Theme != "night" || cfg.SaveDir != "/tmp/targets" {
		t.Errorf("root = %q %q", cfg.Theme, cfg.SaveDir)
	}
	if !cfg.Notify.Load || cfg.Notify.Save || !cfg.Notify.Copy {
		t.Errorf("notify = %+v", cfg.Notify)
	}
	s := cfg.Settings()
	if s.Fill != colornames.Red || s.Opacity != 0.5 || s.DefaultDim != 60 || s.Dash != 3 {
		t.Errorf("settings = %+v", s)
	}
	if s.MovementDelta != 1 || s.SilhouetteScale != 2.5 {
		t.Errorf("unset keys should keep defaults: %+v", s)
	}
	th, ok := cfg.Themes["night"]
	if !ok {
		t.Fatal("theme night not loaded")
	}
	if th.Background.R != 0x11 || th.Foreground.R != 0xff {
		t.Errorf("theme = %+v", th)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	for _, in := range []string{
		"[editor]\nopacity = 2\n",
		"[editor]\ndash = x\n",
		"[editor]\nfill = notacolor\n",
		"[notify]\nsave = maybe\n",
	} {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark

[editor]
fill = blue
vertex_radius = 4.5

[notify]
load = true

[theme.custom]
Name = custom
Background = #000000
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}
	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}
	if cfg.Theme != cfg2.Theme || cfg.Editor != cfg2.Editor || cfg.Notify != cfg2.Notify {
		t.Errorf("mismatch:\n%+v\n%+v", cfg, cfg2)
	}
	t1, t2 := cfg.Themes["custom"], cfg2.Themes["custom"]
	if t1 == nil || t2 == nil || *t1 != *t2 {
		t.Fatalf("custom theme not preserved: %+v vs %+v", t1, t2)
	}
}

func TestLoaderOverrideAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.rc")
	cfg := New()
	cfg.Editor.Fill = "green"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
	got, err := NewLoader("v1", path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Editor.Fill != "green" {
		t.Fatalf("fill = %q", got.Editor.Fill)
	}
}
