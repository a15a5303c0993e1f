package keys

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/convo/internal/nav"
)

// Chord is a key pressed together with the platform's primary modifier and,
// optionally, Shift.
type Chord struct {
	Key   tcell.Key
	Shift bool
}

// Platform maps primary-modifier chords to action names. The primary
// modifier is Ctrl on most systems; on darwin the Cmd key never reaches a
// terminal, so Option (reported as Alt) stands in for it.
type Platform struct {
	Primary tcell.ModMask
	chords  map[Chord]string
}

// NewPlatform returns the mapping for goos. modifier overrides the default
// and may be "", "auto", "ctrl", "alt" or "meta".
func NewPlatform(goos, modifier string) (*Platform, error) {
	var primary tcell.ModMask
	switch strings.ToLower(modifier) {
	case "", "auto":
		primary = tcell.ModCtrl
		if goos == "darwin" {
			primary = tcell.ModAlt
		}
	case "ctrl":
		primary = tcell.ModCtrl
	case "alt":
		primary = tcell.ModAlt
	case "meta":
		primary = tcell.ModMeta
	default:
		return nil, fmt.Errorf("unknown primary modifier %q", modifier)
	}

	p := &Platform{Primary: primary, chords: make(map[Chord]string)}
	p.Bind(Chord{Key: tcell.KeyUp}, nav.ActionFocusFirst)
	p.Bind(Chord{Key: tcell.KeyDown}, nav.ActionFocusLast)
	return p, nil
}

// Bind maps a chord to an action name.
func (p *Platform) Bind(c Chord, action string) {
	p.chords[c] = action
}

// Resolve implements nav.KeyMapper. The event must carry exactly the
// primary modifier, plus Shift when the chord asks for it.
func (p *Platform) Resolve(ev *tcell.EventKey) string {
	mods := ev.Modifiers()
	if mods&p.Primary == 0 {
		return ""
	}
	shift := mods&tcell.ModShift != 0
	if mods&^(p.Primary|tcell.ModShift) != 0 {
		return ""
	}
	return p.chords[Chord{Key: ev.Key(), Shift: shift}]
}

// Label renders a chord for help text, e.g. "Ctrl+Up".
func (p *Platform) Label(c Chord) string {
	var parts []string
	switch p.Primary {
	case tcell.ModCtrl:
		parts = append(parts, "Ctrl")
	case tcell.ModAlt:
		parts = append(parts, "Alt")
	case tcell.ModMeta:
		parts = append(parts, "Meta")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	name := tcell.KeyNames[c.Key]
	if name == "" {
		name = fmt.Sprintf("Key(%d)", c.Key)
	}
	parts = append(parts, name)
	return strings.Join(parts, "+")
}
