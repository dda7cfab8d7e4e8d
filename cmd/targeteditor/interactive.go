package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/targeteditor/internal/clipboard"
	"github.com/example/targeteditor/internal/editor"
	"github.com/example/targeteditor/internal/geom"
	"github.com/example/targeteditor/internal/media"
	"github.com/example/targeteditor/internal/region"
	"github.com/example/targeteditor/internal/render"
	"github.com/example/targeteditor/internal/tags"
)

var writeClipboardFn = clipboard.WriteImage

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

type interactiveCmd struct {
	*root
	fs            *flag.FlagSet
	execs         commandList
	background    string
	image         string
	width, height int

	stdin  io.Reader
	stderr io.Writer
	ctl    *editor.Controller
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	i := &interactiveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(i)
	fs.Var(&i.execs, "e", "execute command in immediate mode (may be specified multiple times)")
	fs.StringVar(&i.background, "file", "", "background image file")
	fs.StringVar(&i.image, "image", "", "image file picked by 'tool image'")
	fs.IntVar(&i.width, "width", 800, "blank canvas width")
	fs.IntVar(&i.height, "height", 600, "blank canvas height")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func (i *interactiveCmd) errOut() io.Writer {
	if i.stderr == nil {
		return os.Stderr
	}
	return i.stderr
}

func (i *interactiveCmd) setup() error {
	var bg image.Image
	if i.background != "" {
		dec, err := media.NewRegistry().Load(i.background)
		if err != nil {
			return fmt.Errorf("failed to load background: %w", err)
		}
		bg = dec.Still
		i.notifier.Load(i.background, bg)
	} else {
		blank := image.NewRGBA(image.Rect(0, 0, max(i.width, 1), max(i.height, 1)))
		draw.Draw(blank, blank.Bounds(), image.White, image.Point{}, draw.Src)
		bg = blank
	}
	settings := editor.DefaultSettings()
	if i.config != nil {
		settings = i.config.Settings()
	}
	i.ctl = editor.New(bg,
		editor.WithSettings(settings),
		editor.WithPicker(editor.PickerFunc(func() (string, bool) { return i.image, i.image != "" })),
	)
	return nil
}

func (i *interactiveCmd) Run() error {
	if err := i.setup(); err != nil {
		return err
	}
	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	in := i.stdin
	if in == nil {
		in = os.Stdin
	}
	out := i.out()
	fmt.Fprintln(out, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.errOut(), err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one command. done reports an exit request.
func (i *interactiveCmd) executeLine(line string) (done bool, err error) {
	args := strings.Fields(line)
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return false, nil
	}
	c := i.ctl
	name, rest := args[0], args[1:]
	switch name {
	case "exit", "quit":
		return true, nil
	case "tool":
		if len(rest) != 1 {
			return false, errors.New("usage: tool <name>")
		}
		t, ok := editor.ParseTool(rest[0])
		if !ok {
			return false, fmt.Errorf("unknown tool %q", rest[0])
		}
		if t == editor.ToolImage && i.image == "" {
			return false, errors.New("tool image needs -image or 'open <path>'")
		}
		c.SelectTool(t)
	case "open":
		if len(rest) != 1 {
			return false, errors.New("usage: open <path>")
		}
		if err := c.OpenImageFile(rest[0]); err != nil {
			return false, err
		}
		i.image = rest[0]
	case "drop":
		if len(rest) != 3 {
			return false, errors.New("usage: drop <tool> <x> <y>")
		}
		t, ok := editor.ParseTool(rest[0])
		if !ok {
			return false, fmt.Errorf("unknown tool %q", rest[0])
		}
		p, err := parsePoint(rest[1:])
		if err != nil {
			return false, err
		}
		return false, c.Drop(t, p)
	case "move":
		p, err := parsePoint(rest)
		if err != nil {
			return false, err
		}
		c.PointerMoved(p)
	case "click", "rclick", "select":
		p := c.Pointer()
		if len(rest) > 0 || name != "rclick" {
			if p, err = parsePoint(rest); err != nil {
				return false, err
			}
		}
		if name == "select" && c.Tool() != editor.ToolCursor {
			return false, errors.New("select needs the cursor tool")
		}
		button := mouse.ButtonLeft
		if name == "rclick" {
			button = mouse.ButtonRight
		}
		c.PointerMoved(p)
		c.PointerReleased(p, button)
	case "key":
		if len(rest) != 1 {
			return false, errors.New("usage: key <keys>")
		}
		e, err := parseKey(rest[0])
		if err != nil {
			return false, err
		}
		if !c.HandleKey(e) {
			return false, fmt.Errorf("key %s had no effect", rest[0])
		}
	case "forward":
		c.BringForward()
	case "backward":
		c.SendBackward()
	case "delete":
		c.DeleteSelection()
	case "tags":
		open := c.TagBinding().IsOpen()
		want := !open
		if len(rest) == 1 {
			want = rest[0] == "on"
		}
		if want != open {
			c.ToggleTagEditor()
		}
		if want && !c.TagBinding().IsOpen() {
			return false, errors.New("tags need a selection")
		}
	case "tag":
		sheet, ok := c.TagBinding().Editor().(*tags.Sheet)
		if !ok {
			return false, errors.New("tag editor is not open")
		}
		return false, sheet.Apply(strings.Join(rest, " "))
	case "color":
		if len(rest) != 1 {
			return false, errors.New("usage: color <name>")
		}
		c.ChooseColor(rest[0])
	case "regions":
		for n, r := range c.Regions() {
			fmt.Fprintln(i.out(), formatRegion(n+1, r))
		}
	case "status":
		sel := "none"
		if r := c.Selection(); r != nil {
			sel = r.Kind().String()
		}
		p := c.Pointer()
		fmt.Fprintf(i.out(), "tool=%s mode=%s pointer=%g,%g selection=%s color=%s\n",
			c.Tool(), c.Mode(), p.X, p.Y, sel, c.Controls().Color)
	case "save":
		if len(rest) != 1 {
			return false, errors.New("usage: save <path>")
		}
		return false, i.save(rest[0])
	case "copy":
		if err := writeClipboardFn(i.snapshot()); err != nil {
			return false, fmt.Errorf("failed to copy: %w", err)
		}
		i.notifier.Copy("target")
	case "help":
		fmt.Fprint(i.out(), (&UsageError{of: i}).Error())
	default:
		return false, fmt.Errorf("unknown command %q", name)
	}
	return false, nil
}

func (i *interactiveCmd) snapshot() *image.RGBA {
	return render.Snapshot(i.ctl.Background(), i.ctl.Canvas().Children(), render.DefaultOptions())
}

func (i *interactiveCmd) save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	if err := png.Encode(f, i.snapshot()); err != nil {
		f.Close()
		return fmt.Errorf("failed to save: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	i.notifier.Save(path)
	fmt.Fprintf(i.out(), "saved %s\n", path)
	return nil
}

func parsePoint(args []string) (geom.Point, error) {
	if len(args) != 2 {
		return geom.Point{}, errors.New("expected <x> <y>")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("bad x %q", args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("bad y %q", args[1])
	}
	return geom.Pt(x, y), nil
}

var namedKeys = map[string]key.Code{
	"delete":    key.CodeDeleteForward,
	"del":       key.CodeDeleteForward,
	"backspace": key.CodeDeleteBackspace,
	"left":      key.CodeLeftArrow,
	"right":     key.CodeRightArrow,
	"up":        key.CodeUpArrow,
	"down":      key.CodeDownArrow,
	"escape":    key.CodeEscape,
	"esc":       key.CodeEscape,
	"enter":     key.CodeReturnEnter,
}

// parseKey turns "ctrl+z" or "shift+left" into a key press.
func parseKey(spec string) (key.Event, error) {
	e := key.Event{Rune: -1, Direction: key.DirPress}
	parts := strings.Split(strings.ToLower(spec), "+")
	for _, m := range parts[:len(parts)-1] {
		switch m {
		case "ctrl", "control":
			e.Modifiers |= key.ModControl
		case "shift":
			e.Modifiers |= key.ModShift
		case "alt":
			e.Modifiers |= key.ModAlt
		default:
			return key.Event{}, fmt.Errorf("unknown modifier %q", m)
		}
	}
	name := parts[len(parts)-1]
	if code, ok := namedKeys[name]; ok {
		e.Code = code
		return e, nil
	}
	if utf8.RuneCountInString(name) != 1 {
		return key.Event{}, fmt.Errorf("unknown key %q", name)
	}
	r, _ := utf8.DecodeRuneInString(name)
	e.Rune = r
	if r >= 'a' && r <= 'z' {
		e.Code = key.CodeA + key.Code(r-'a')
	}
	return e, nil
}

// formatRegion renders one line of the region listing. Polygons also list
// their vertices in drawing order.
func formatRegion(n int, r region.Region) string {
	b := r.Bounds()
	fill := "-"
	if col, ok := r.(region.Colorable); ok {
		fill = region.NameOfColor(col.Fill())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s x=%g y=%g w=%g h=%g fill=%s", n, r.Kind(), b.X, b.Y, b.Width, b.Height, fill)
	switch v := r.(type) {
	case *region.Polygon:
		pts := v.Vertices()
		coords := make([]string, len(pts))
		for j, p := range pts {
			coords[j] = fmt.Sprintf("%g,%g", p.X, p.Y)
		}
		fmt.Fprintf(&sb, " vertices=%s", strings.Join(coords, ";"))
	case *region.Image:
		fmt.Fprintf(&sb, " file=%s", v.File())
	}
	t := r.Tags()
	if len(t) > 0 {
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for j, k := range keys {
			pairs[j] = k + "=" + t[k]
		}
		fmt.Fprintf(&sb, " tags=%s", strings.Join(pairs, ","))
	}
	return sb.String()
}
