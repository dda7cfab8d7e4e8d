package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"path/filepath"

	"github.com/example/targeteditor/internal/appstate"
	"github.com/example/targeteditor/internal/capture"
	"github.com/example/targeteditor/internal/clipboard"
	"github.com/example/targeteditor/internal/media"
)

// replaced in tests
var (
	captureScreenFn = capture.Screen
	readClipboardFn = clipboard.ReadImage
	runWindowFn     = func(a *appstate.AppState) { a.Run() }
)

type editCmd struct {
	*root
	fs            *flag.FlagSet
	file          string
	fromClipboard bool
	fromScreen    bool
	output        string
	width, height int
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	saveDir := ""
	if r.config != nil {
		saveDir = r.config.SaveDir
	}
	fs.StringVar(&e.file, "file", "", "background image file")
	fs.BoolVar(&e.fromClipboard, "from-clipboard", false, "use the clipboard image as background")
	fs.BoolVar(&e.fromScreen, "capture", false, "use a capture of the screen as background")
	fs.StringVar(&e.output, "output", filepath.Join(saveDir, "target.png"), "file Ctrl+S writes the rendered target to")
	fs.IntVar(&e.width, "width", 800, "blank canvas width")
	fs.IntVar(&e.height, "height", 600, "blank canvas height")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: e}
	}
	sources := 0
	for _, on := range []bool{e.file != "", e.fromClipboard, e.fromScreen} {
		if on {
			sources++
		}
	}
	if sources > 1 {
		return nil, errors.New("choose only one of -file, -from-clipboard and -capture")
	}
	if e.width <= 0 || e.height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", e.width, e.height)
	}
	return e, nil
}

func (e *editCmd) Run() error {
	bg, detail, err := e.background()
	if err != nil {
		return err
	}
	if detail != "" {
		e.notifier.Load(detail, bg)
	}
	state := appstate.New(
		appstate.WithBackground(bg),
		appstate.WithOutput(e.output),
		appstate.WithTheme(e.activeTheme),
		appstate.WithSettings(e.config.Settings()),
		appstate.WithNotifier(e.notifier),
	)
	runWindowFn(state)
	return nil
}

// background returns the starting background and a description of where it
// came from, empty for a blank canvas.
func (e *editCmd) background() (image.Image, string, error) {
	switch {
	case e.file != "":
		dec, err := media.NewRegistry().Load(e.file)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load background: %w", err)
		}
		return dec.Still, e.file, nil
	case e.fromClipboard:
		img, err := readClipboardFn()
		if err != nil {
			return nil, "", fmt.Errorf("failed to read clipboard: %w", err)
		}
		return img, "clipboard", nil
	case e.fromScreen:
		img, err := captureScreenFn()
		if err != nil {
			return nil, "", fmt.Errorf("failed to capture screen: %w", err)
		}
		return img, "screen", nil
	}
	blank := image.NewRGBA(image.Rect(0, 0, e.width, e.height))
	draw.Draw(blank, blank.Bounds(), image.White, image.Point{}, draw.Src)
	return blank, "", nil
}
