package views

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/convo/internal/conversation"
	"github.com/matheus3301/convo/internal/i18n"
	"github.com/matheus3301/convo/internal/rows"
	"github.com/matheus3301/convo/internal/tui/ui"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

// Columns of a list row.
const (
	ColMarker = iota
	ColTitle
	ColMeta
	columnCount
)

const maxTitleWidth = 60

// RowRenderer turns rows into table cells.
type RowRenderer struct {
	theme *ui.Theme
	tr    i18n.Translator
	now   func() time.Time
}

// NewRowRenderer creates a renderer. now may be nil to use time.Now.
func NewRowRenderer(theme *ui.Theme, tr i18n.Translator, now func() time.Time) *RowRenderer {
	if now == nil {
		now = time.Now
	}
	return &RowRenderer{theme: theme, tr: tr, now: now}
}

// Cell returns the cell for column col of row r. openedID marks the
// conversation currently open.
func (rr *RowRenderer) Cell(a rows.Addressor, r rows.Row, col int, openedID string) *tview.TableCell {
	switch r := r.(type) {
	case rows.Header:
		caption := rr.tr.T(i18n.HeaderChats)
		if r.Kind == rows.HeaderPinned {
			caption = rr.tr.T(i18n.HeaderPinned)
		}
		return rr.header(caption, col)
	case rows.PinnedConversation, rows.Conversation, rows.ArchivedConversation:
		c, _ := a.Resolve(r)
		return rr.conversation(c, col, openedID)
	case rows.ArchiveButton:
		return rr.archiveButton(a.Sections(), col)
	case rows.SearchRow:
		return rr.searchItem(r.Item, col, openedID)
	default:
		rows.Unhandled(r)
		return nil
	}
}

func (rr *RowRenderer) searchItem(item rows.SearchItem, col int, openedID string) *tview.TableCell {
	switch item := item.(type) {
	case rows.SearchHeader:
		return rr.header(item.Caption, col)
	case rows.SearchConversation:
		return rr.conversation(item.Summary, col, openedID)
	case rows.SearchContact:
		return rr.conversation(item.Summary, col, openedID)
	case rows.StartNewConversation:
		switch col {
		case ColMarker:
			return rr.cell("+", rr.theme.ArchiveButtonFg)
		case ColTitle:
			return rr.cell(rr.tr.T(i18n.SearchStartNew, item.Query), rr.theme.ArchiveButtonFg).SetExpansion(1)
		}
		return rr.cell("", rr.theme.FgColor)
	default:
		panic(fmt.Sprintf("views: unhandled search item %T", item))
	}
}

func (rr *RowRenderer) header(caption string, col int) *tview.TableCell {
	text := ""
	if col == ColTitle {
		text = caption
	}
	return rr.cell(text, rr.theme.SectionHeaderFg).
		SetAttributes(tcell.AttrBold).
		SetSelectable(false).
		SetExpansion(expansion(col))
}

func (rr *RowRenderer) conversation(c conversation.Summary, col int, openedID string) *tview.TableCell {
	fg := rr.theme.FgColor
	if c.ID == openedID {
		fg = rr.theme.OpenedFg
	}
	switch col {
	case ColMarker:
		switch {
		case c.IsUnread():
			return rr.cell("●", rr.theme.UnreadColor)
		case c.IsPinned:
			return rr.cell("▲", rr.theme.PinnedColor)
		}
		return rr.cell(" ", fg)
	case ColTitle:
		title := Truncate(cleanTitle(displayTitle(c)), maxTitleWidth)
		cell := rr.cell(title, fg).SetExpansion(1)
		if c.IsUnread() {
			cell.SetAttributes(tcell.AttrBold)
		}
		return cell
	default:
		meta := formatTimestamp(c.LastUpdated, rr.now())
		if c.UnreadCount > 0 {
			meta = fmt.Sprintf("(%d) %s", c.UnreadCount, meta)
		}
		return rr.cell(meta, fg).SetAlign(tview.AlignRight)
	}
}

func (rr *RowRenderer) archiveButton(s conversation.Sections, col int) *tview.TableCell {
	switch col {
	case ColMarker:
		return rr.cell("▼", rr.theme.ArchiveButtonFg)
	case ColTitle:
		return rr.cell(rr.tr.T(i18n.ArchiveButton, len(s.Archived)), rr.theme.ArchiveButtonFg).SetExpansion(1)
	default:
		if n := s.UnreadArchived(); n > 0 {
			return rr.cell(fmt.Sprintf("(%d)", n), rr.theme.UnreadColor).SetAlign(tview.AlignRight)
		}
		return rr.cell("", rr.theme.FgColor)
	}
}

func (rr *RowRenderer) cell(text string, fg tcell.Color) *tview.TableCell {
	return tview.NewTableCell(" " + tview.Escape(text)).
		SetTextColor(fg).
		SetBackgroundColor(rr.theme.BgColor)
}

func expansion(col int) int {
	if col == ColTitle {
		return 1
	}
	return 0
}

func displayTitle(c conversation.Summary) string {
	if c.Title != "" {
		return c.Title
	}
	return c.ID
}

// Truncate shortens s to at most width terminal cells, ending in an
// ellipsis when anything was cut.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

func formatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(now.Location())
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("01/02")
}
