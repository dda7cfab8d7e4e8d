package notify

import (
	"image"
	"os"
	"testing"

	"github.com/example/targeteditor/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	original := send
	send = func(title, body string, opts platform.Options) error {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			_, err := os.Stat(opts.IconPath)
			s.iconExisted = err == nil
		}
		got = append(got, s)
		return nil
	}
	t.Cleanup(func() { send = original })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Copy("x")
	n.Save("a.png")
	n.Load("a.gif", nil)
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications", len(*got))
	}
}

func TestLoadWithPreview(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventLoad, true)
	n.Load("/tmp/dir/target.gif", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.body != "Loaded target.gif" || s.title != "Target Editor" {
		t.Fatalf("unexpected notification %+v", s)
	}
	if !s.iconExisted {
		t.Fatal("preview icon should exist while sending")
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatal("preview icon should be removed afterwards")
	}
}

func TestCopyTemplateOverride(t *testing.T) {
	got := capture(t)
	t.Setenv("TARGETEDITOR_NOTIFY_COPY_TEXT", "clip: %s")
	n := New(LoadPreferences())
	n.Enable(EventCopy, true)
	n.Copy("")
	if len(*got) != 1 || (*got)[0].body != "clip: target" {
		t.Fatalf("unexpected %+v", *got)
	}
}
