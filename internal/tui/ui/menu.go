package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// Menu displays keyboard shortcut hints on a single line.
type Menu struct {
	*tview.TextView
	theme *Theme
}

// NewMenu creates a new menu hint bar.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 0)

	return &Menu{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders hints of the form "key:description".
func (m *Menu) Update(hints []string) {
	m.Clear()
	_, _ = fmt.Fprint(m, FormatHints(hints, colorName(m.theme.MenuKeyColor)))
}

// FormatHints renders "key:description" hints with the key in keyColor.
// Hints without a colon are shown as plain text.
func FormatHints(hints []string, keyColor string) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		key, desc, ok := strings.Cut(h, ":")
		if !ok {
			parts = append(parts, tview.Escape(h))
			continue
		}
		parts = append(parts, fmt.Sprintf("[%s::b]<%s>[-:-:-] %s", keyColor, tview.Escape(key), tview.Escape(desc)))
	}
	return strings.Join(parts, "  ")
}
