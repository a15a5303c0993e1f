package keys

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/matheus3301/convo/internal/nav"
)

func TestPlatformDefaults(t *testing.T) {
	tests := []struct {
		goos string
		want tcell.ModMask
	}{
		{"linux", tcell.ModCtrl},
		{"windows", tcell.ModCtrl},
		{"darwin", tcell.ModAlt},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			p, err := NewPlatform(tt.goos, "auto")
			if err != nil {
				t.Fatal(err)
			}
			if p.Primary != tt.want {
				t.Errorf("Primary = %v, want %v", p.Primary, tt.want)
			}
		})
	}
}

func TestPlatformOverride(t *testing.T) {
	p, err := NewPlatform("darwin", "meta")
	if err != nil {
		t.Fatal(err)
	}
	if p.Primary != tcell.ModMeta {
		t.Errorf("Primary = %v, want ModMeta", p.Primary)
	}
	if _, err := NewPlatform("linux", "hyper"); err == nil {
		t.Error("NewPlatform() with unknown modifier should fail")
	}
}

func TestPlatformResolve(t *testing.T) {
	p, err := NewPlatform("linux", "")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"ctrl up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModCtrl), nav.ActionFocusFirst},
		{"ctrl down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModCtrl), nav.ActionFocusLast},
		{"plain up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ""},
		{"ctrl shift up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModCtrl|tcell.ModShift), ""},
		{"ctrl alt down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModCtrl|tcell.ModAlt), ""},
		{"alt down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModAlt), ""},
		{"ctrl left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Resolve(tt.ev); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlatformShiftChord(t *testing.T) {
	p, _ := NewPlatform("linux", "ctrl")
	p.Bind(Chord{Key: tcell.KeyDown, Shift: true}, "list.select_last")

	ev := tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModCtrl|tcell.ModShift)
	if got := p.Resolve(ev); got != "list.select_last" {
		t.Errorf("Resolve() = %q, want list.select_last", got)
	}
	if got := p.Label(Chord{Key: tcell.KeyDown, Shift: true}); got != "Ctrl+Shift+Down" {
		t.Errorf("Label() = %q, want Ctrl+Shift+Down", got)
	}
}

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()
	var hit string
	r.AddGlobal("quit", &Action{Key: tcell.KeyRune, Rune: 'q', Description: "q:quit", Visible: true, Handler: func() { hit = "quit" }})
	r.AddView("list", "open", &Action{Key: tcell.KeyEnter, Description: "enter:open", Visible: true, Handler: func() { hit = "open" }})
	r.AddView("list", "hidden", &Action{Key: tcell.KeyTab, Handler: func() { hit = "tab" }})

	if !r.HandleEvent("list", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)) || hit != "open" {
		t.Errorf("enter: hit = %q, want open", hit)
	}
	if !r.HandleEvent("search", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) || hit != "quit" {
		t.Errorf("q: hit = %q, want quit", hit)
	}
	if r.HandleEvent("search", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)) {
		t.Error("enter outside list view should not match")
	}

	hints := r.Hints("list")
	if len(hints) != 2 || hints[0] != "enter:open" || hints[1] != "q:quit" {
		t.Errorf("Hints(list) = %v", hints)
	}
}

func TestRegistryHelpOrderAndReplace(t *testing.T) {
	r := NewRegistry()
	r.AddGlobal("quit", &Action{Key: tcell.KeyRune, Rune: 'q', Help: "Quit", Handler: func() {}})
	r.AddView("list", "back", &Action{Key: tcell.KeyEscape, Help: "Back", Handler: func() {}})
	r.AddView("list", "archive", &Action{Key: tcell.KeyRune, Rune: 'a', Help: "Archive", Handler: func() {}})
	r.AddView("list", "tab", &Action{Key: tcell.KeyTab, Handler: func() {}})

	var hit bool
	r.AddView("list", "back", &Action{Key: tcell.KeyEscape, Help: "Leave", Handler: func() { hit = true }})

	want := []HelpLine{{"Esc", "Leave"}, {"a", "Archive"}, {"q", "Quit"}}
	if diff := cmp.Diff(want, r.Help("list")); diff != "" {
		t.Errorf("Help(list) mismatch (-want +got):\n%s", diff)
	}
	if !r.HandleEvent("list", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) || !hit {
		t.Error("replaced binding not dispatched")
	}
}
