package keys

import (
	"slices"

	"github.com/gdamore/tcell/v2"
)

// Action represents a keybinding action.
type Action struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
	// Description is the short menu hint, e.g. "q:quit".
	Description string
	// Help is the longer text shown in the key reference; actions without
	// it are left out.
	Help    string
	Handler func()
	Visible bool
}

// Matches returns true if the event matches this action.
func (a *Action) Matches(ev *tcell.EventKey) bool {
	if a.Key != tcell.KeyRune {
		return ev.Key() == a.Key && ev.Modifiers() == a.Mod
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == a.Rune
}

// Label names the key for the key reference, e.g. "Esc" or "q".
func (a *Action) Label() string {
	if a.Key == tcell.KeyRune {
		return string(a.Rune)
	}
	name := tcell.KeyNames[a.Key]
	if name == "" {
		name = "?"
	}
	return name
}

// HelpLine is one entry of the key reference.
type HelpLine struct {
	Key  string
	Text string
}

type binding struct {
	name   string
	action *Action
}

// Registry holds keybindings organized by scope. Bindings are tried in
// the order they were added, view bindings before global ones.
type Registry struct {
	global []binding
	views  map[string][]binding
}

// NewRegistry creates a new keybinding registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[string][]binding)}
}

// AddGlobal registers a global keybinding, replacing one of the same name.
func (r *Registry) AddGlobal(name string, action *Action) {
	r.global = put(r.global, name, action)
}

// AddView registers a view-specific keybinding, replacing one of the same
// name.
func (r *Registry) AddView(view, name string, action *Action) {
	r.views[view] = put(r.views[view], name, action)
}

func put(bs []binding, name string, action *Action) []binding {
	i := slices.IndexFunc(bs, func(b binding) bool { return b.name == name })
	if i >= 0 {
		bs[i].action = action
		return bs
	}
	return append(bs, binding{name: name, action: action})
}

func (r *Registry) scope(view string) []binding {
	return slices.Concat(r.views[view], r.global)
}

// Hints returns visible keybinding descriptions for a given view, sorted so
// the menu does not reshuffle when bindings change.
func (r *Registry) Hints(view string) []string {
	var hints []string
	for _, b := range r.scope(view) {
		if b.action.Visible {
			hints = append(hints, b.action.Description)
		}
	}
	slices.Sort(hints)
	return hints
}

// Help returns the key reference for a view in registration order.
func (r *Registry) Help(view string) []HelpLine {
	var lines []HelpLine
	for _, b := range r.scope(view) {
		if b.action.Help != "" {
			lines = append(lines, HelpLine{Key: b.action.Label(), Text: b.action.Help})
		}
	}
	return lines
}

// HandleEvent dispatches a key event to the first matching action in the
// given view. Returns true if a handler matched.
func (r *Registry) HandleEvent(view string, ev *tcell.EventKey) bool {
	for _, b := range r.scope(view) {
		if b.action.Matches(ev) {
			b.action.Handler()
			return true
		}
	}
	return false
}
