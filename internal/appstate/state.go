package appstate

import (
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/targeteditor/internal/editor"
	"github.com/example/targeteditor/internal/notify"
	"github.com/example/targeteditor/internal/theme"
)

// frameInterval is the animation clock period.
const frameInterval = 30 * time.Millisecond

// AppState holds application configuration for the UI.
type AppState struct {
	Background image.Image
	Output     string
	Title      string
	Theme      *theme.Theme
	Settings   editor.Settings
	Notifier   *notify.Notifier

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithBackground sets the image the target is drawn over.
func WithBackground(img image.Image) Option { return func(a *AppState) { a.Background = img } }

// WithOutput sets the file Ctrl+S writes the rendered target to.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithTheme sets the colors of the editor chrome.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithSettings sets the editor tunables.
func WithSettings(s editor.Settings) Option { return func(a *AppState) { a.Settings = s } }

// WithNotifier sets the desktop notifier for copy, save and load events.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Title:    "Target Editor",
		Theme:    theme.Default(),
		Settings: editor.DefaultSettings(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// tickEvent carries the animation clock into the event loop.
type tickEvent struct{ at time.Time }

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the editor window on s until it is closed.
func (a *AppState) Main(s screen.Screen) {
	sess := newSession(a)
	sz := sess.windowSize()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: sz.X, Height: sz.Y, Title: a.Title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(frameInterval)
		defer t.Stop()
		for {
			select {
			case now := <-t.C:
				w.Send(tickEvent{at: now})
			case <-done:
				return
			}
		}
	}()

	width, height := sz.X, sz.Y
	last := time.Now()
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			if width <= 0 || height <= 0 {
				continue
			}
			b, err := s.NewBuffer(image.Pt(width, height))
			if err != nil {
				log.Printf("new buffer: %v", err)
				continue
			}
			sess.draw(b.RGBA())
			w.Upload(image.Point{}, b, b.Bounds())
			b.Release()
			w.Publish()
		case tickEvent:
			dt := e.at.Sub(last)
			last = e.at
			if sess.ctl.Tick(dt) {
				w.Send(paint.Event{})
			}
		case mouse.Event:
			if sess.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if sess.handleKey(e) {
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}
