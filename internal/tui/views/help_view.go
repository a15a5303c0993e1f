package views

import (
	"fmt"

	"github.com/matheus3301/convo/internal/tui/ui"
	"github.com/rivo/tview"
)

// HelpEntry is one line of the key reference.
type HelpEntry struct {
	Key         string
	Description string
}

// HelpView displays key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	return &HelpView{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the entries, keys padded to a common width.
func (hv *HelpView) Update(entries []HelpEntry) {
	hv.Clear()
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Key))
	}
	kc := ui.Tag(hv.theme.MenuKeyColor)
	_, _ = fmt.Fprint(hv, "\n  [::b]Keys[-:-:-]\n\n")
	for _, e := range entries {
		_, _ = fmt.Fprintf(hv, "  %s%-*s[-]  %s\n", kc, width, tview.Escape(e.Key), tview.Escape(e.Description))
	}
}
