package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/convo/internal/i18n"
	"github.com/matheus3301/convo/internal/nav"
	"github.com/matheus3301/convo/internal/rows"
	"github.com/matheus3301/convo/internal/tui/ui"
	"github.com/rivo/tview"
)

// ConversationList is the virtualized conversation list. The table pulls
// cells on demand from the current row snapshot, so only the rows in view
// are ever built.
type ConversationList struct {
	*tview.Table
	theme    *ui.Theme
	tr       i18n.Translator
	renderer *RowRenderer
	content  *listContent

	addr     rows.Addressor
	key      rows.ListKey
	openedID string

	setFocus func(p tview.Primitive)
	onSettle func()
	onFocus  func()
	onEnter  func(row int)
}

// listContent serves table cells from the list's addressor.
type listContent struct {
	tview.TableContentReadOnly
	list *ConversationList
}

func (c *listContent) GetRowCount() int    { return c.list.addr.Count() }
func (c *listContent) GetColumnCount() int { return columnCount }

func (c *listContent) GetCell(row, column int) *tview.TableCell {
	a := c.list.addr
	if row < 0 || row >= a.Count() || column < 0 || column >= columnCount {
		return nil
	}
	return c.list.renderer.Cell(a, a.At(row), column, c.list.openedID)
}

// NewConversationList creates the list. setFocus moves application focus,
// normally tview.Application.SetFocus.
func NewConversationList(theme *ui.Theme, tr i18n.Translator, renderer *RowRenderer, setFocus func(p tview.Primitive)) *ConversationList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitleColor(theme.TitleColor)

	cl := &ConversationList{
		Table:    table,
		theme:    theme,
		tr:       tr,
		renderer: renderer,
		setFocus: setFocus,
	}
	cl.content = &listContent{list: cl}
	table.SetContent(cl.content)
	table.SetSelectedFunc(func(row, _ int) {
		if cl.onEnter != nil {
			cl.onEnter(row)
		}
	})
	table.SetFocusFunc(func() {
		table.SetBorderColor(theme.BorderFocusColor)
		if cl.onFocus != nil {
			cl.onFocus()
		}
	})
	table.SetBlurFunc(func() {
		table.SetBorderColor(theme.BorderColor)
	})
	cl.setTitle()
	return cl
}

// OnSettle registers fn to run after every draw.
func (cl *ConversationList) OnSettle(fn func()) { cl.onSettle = fn }

// OnContainerFocus registers fn to run when the list receives focus.
func (cl *ConversationList) OnContainerFocus(fn func()) { cl.onFocus = fn }

// OnActivate registers fn to run when Enter is pressed on a row.
func (cl *ConversationList) OnActivate(fn func(row int)) { cl.onEnter = fn }

// Draw draws the table and then reports the draw.
func (cl *ConversationList) Draw(screen tcell.Screen) {
	cl.Table.Draw(screen)
	if cl.onSettle != nil {
		cl.onSettle()
	}
}

// Update swaps in a new row snapshot. When reset is set the list belongs
// to a new key and its scroll position and selection start over. Otherwise
// the cursor follows the conversation it was on, wherever the snapshot moved
// it.
func (cl *ConversationList) Update(a rows.Addressor, key rows.ListKey, reset bool, openedID string) {
	var followID string
	if row := cl.SelectedRow(); !reset && row >= 0 && row < cl.addr.Count() {
		followID = cl.addr.DataID(cl.addr.At(row))
	}
	cl.addr = a
	cl.key = key
	cl.openedID = openedID
	switch {
	case reset:
		cl.ScrollToBeginning()
		cl.selectFirstSelectable()
	case followID != "":
		if i := a.Index(followID); i >= 0 {
			cl.Select(i, 0)
		}
	}
	cl.ReportRowCount(a.Count())
	cl.setTitle()
}

// ReportRowCount keeps the selection inside a list of n rows.
func (cl *ConversationList) ReportRowCount(n int) {
	row, _ := cl.GetSelection()
	if n == 0 {
		cl.Select(0, 0)
		return
	}
	if row >= n {
		cl.Select(n-1, 0)
	}
}

// Key returns the key of the shown list.
func (cl *ConversationList) Key() rows.ListKey { return cl.key }

// ScrollToRow implements nav.Viewport.
func (cl *ConversationList) ScrollToRow(index int) {
	count := cl.addr.Count()
	switch {
	case index <= 0:
		cl.ScrollToBeginning()
	case index >= count-1:
		cl.ScrollToEnd()
	default:
		_, _, _, height := cl.GetInnerRect()
		offset := index - height/2
		if offset < 0 {
			offset = 0
		}
		cl.SetOffset(offset, 0)
	}
}

// MountedRows implements nav.Viewport: the rows inside the drawn window.
func (cl *ConversationList) MountedRows() []nav.MountedRow {
	_, _, _, height := cl.GetInnerRect()
	offset, _ := cl.GetOffset()
	count := cl.addr.Count()
	end := min(offset+height, count)
	if offset < 0 || offset >= end {
		return nil
	}
	out := make([]nav.MountedRow, 0, end-offset)
	for i := offset; i < end; i++ {
		r := cl.addr.At(i)
		out = append(out, nav.MountedRow{Index: i, Row: r, DataID: cl.addr.DataID(r)})
	}
	return out
}

// FocusRow implements nav.Viewport.
func (cl *ConversationList) FocusRow(index int) {
	cl.Select(index, 0)
	if !cl.HasFocus() && cl.setFocus != nil {
		cl.setFocus(cl)
	}
}

// SelectedRow returns the index of the selected row.
func (cl *ConversationList) SelectedRow() int {
	row, _ := cl.GetSelection()
	return row
}

func (cl *ConversationList) selectFirstSelectable() {
	for i := range cl.addr.Count() {
		if rows.Selectable(cl.addr.At(i)) {
			cl.Select(i, 0)
			return
		}
	}
	cl.Select(0, 0)
}

func (cl *ConversationList) setTitle() {
	s := cl.addr.Sections()
	title, n := cl.tr.T(i18n.InboxTitle), len(s.Pinned)+len(s.Regular)
	if cl.addr.Mode() == rows.Archive {
		title, n = cl.tr.T(i18n.ArchiveTitle), len(s.Archived)
	}
	cl.SetTitle(fmt.Sprintf(" %s (%d) ", title, n))
}

var _ nav.Viewport = (*ConversationList)(nil)
