package nav

import "github.com/gdamore/tcell/v2"

// Action names bound to jump shortcuts.
const (
	ActionFocusFirst = "list.focus_first"
	ActionFocusLast  = "list.focus_last"
)

// KeyMapper resolves platform-specific key combinations to action names,
// returning "" for keys it does not bind.
type KeyMapper interface {
	Resolve(ev *tcell.EventKey) string
}

// Navigator handles the jump-to-first and jump-to-last shortcuts.
type Navigator struct {
	keys     KeyMapper
	viewport Viewport
	coord    *Coordinator
	count    func() int
}

// NewNavigator creates a navigator. count returns the current row count.
func NewNavigator(keys KeyMapper, vp Viewport, coord *Coordinator, count func() int) *Navigator {
	return &Navigator{keys: keys, viewport: vp, coord: coord, count: count}
}

// HandleKey is a tcell input capture: it returns nil for the events it
// consumes so they reach neither the list's own key handling nor any
// enclosing primitive, and returns every other event unchanged.
func (n *Navigator) HandleKey(ev *tcell.EventKey) *tcell.EventKey {
	switch n.keys.Resolve(ev) {
	case ActionFocusFirst:
		if n.count() > 0 {
			n.coord.Request(IntentFocusFirst)
			n.viewport.ScrollToRow(0)
		}
		return nil
	case ActionFocusLast:
		if count := n.count(); count > 0 {
			n.coord.Request(IntentFocusLast)
			n.viewport.ScrollToRow(count - 1)
		}
		return nil
	}
	return ev
}
