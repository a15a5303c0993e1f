package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/convo/internal/i18n"
	"github.com/matheus3301/convo/internal/rows"
	"github.com/matheus3301/convo/internal/tui/ui"
	"github.com/rivo/tview"
)

// StatusBar displays the profile, view mode, search and flash messages.
type StatusBar struct {
	*tview.TextView
	theme   *ui.Theme
	tr      i18n.Translator
	profile string
	mode    rows.ViewMode
	total   int
	query   string
	flash   string
	now     func() time.Time
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *ui.Theme, tr i18n.Translator) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv, theme: theme, tr: tr, now: time.Now}
}

// SetProfile updates the profile name display.
func (sb *StatusBar) SetProfile(name string) {
	sb.profile = name
	sb.render()
}

// SetList updates the mode, conversation count and active query.
func (sb *StatusBar) SetList(mode rows.ViewMode, total int, query string) {
	sb.mode, sb.total, sb.query = mode, total, query
	sb.render()
}

// SetFlash sets the flash markup, already colored.
func (sb *StatusBar) SetFlash(markup string) {
	sb.flash = markup
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()
	_, _ = fmt.Fprint(sb, sb.line())
}

func (sb *StatusBar) line() string {
	mode := sb.tr.T(i18n.InboxTitle)
	if sb.mode == rows.Archive {
		mode = sb.tr.T(i18n.ArchiveTitle)
	}
	line := fmt.Sprintf(" [::b]%s[-:-:-] | %s | %s",
		tview.Escape(sb.profile), mode, sb.tr.T(i18n.ConversationsCount, sb.total))
	if sb.query != "" {
		line += fmt.Sprintf(" | %s/%s[-]", ui.Tag(sb.theme.MenuKeyColor), tview.Escape(sb.query))
	}
	line += " | " + sb.now().Format("15:04")
	if sb.flash != "" {
		line += " | " + sb.flash
	}
	return line
}
