package views

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/convo/internal/conversation"
	"github.com/matheus3301/convo/internal/i18n"
	"github.com/matheus3301/convo/internal/rows"
	"github.com/matheus3301/convo/internal/tui/ui"
	"github.com/rivo/tview"
)

func testCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	c, err := i18n.New("en")
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func sections(pinned, regular, archived int) conversation.Sections {
	mk := func(prefix string, n int) []conversation.Summary {
		out := make([]conversation.Summary, n)
		for i := range out {
			out[i] = conversation.Summary{ID: fmt.Sprintf("%s%d", prefix, i+1), Title: fmt.Sprintf("%s title %d", prefix, i+1)}
		}
		return out
	}
	return conversation.Sections{Pinned: mk("P", pinned), Regular: mk("R", regular), Archived: mk("A", archived)}
}

func newList(t *testing.T, height int) (*ConversationList, tcell.SimulationScreen, *[]tview.Primitive) {
	t.Helper()
	theme := ui.DefaultTheme()
	tr := testCatalog(t)
	var focused []tview.Primitive
	cl := NewConversationList(theme, tr, NewRowRenderer(theme, tr, nil), func(p tview.Primitive) {
		focused = append(focused, p)
	})
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, height)
	cl.SetRect(0, 0, 40, height)
	return cl, screen, &focused
}

func TestRendererCellsPerRow(t *testing.T) {
	theme := ui.DefaultTheme()
	rr := NewRowRenderer(theme, testCatalog(t), nil)
	a := rows.New(sections(1, 1, 2), nil, rows.Inbox)

	header := rr.Cell(a, a.At(0), ColTitle, "")
	if !strings.Contains(header.Text, "Pinned") || !header.NotSelectable {
		t.Errorf("header cell = %q selectable=%v", header.Text, !header.NotSelectable)
	}
	conv := rr.Cell(a, a.At(1), ColTitle, "")
	if !strings.Contains(conv.Text, "P title 1") {
		t.Errorf("pinned cell = %q", conv.Text)
	}
	button := rr.Cell(a, a.At(a.Count()-1), ColTitle, "")
	if !strings.Contains(button.Text, "2 archived chats") {
		t.Errorf("archive button cell = %q", button.Text)
	}
}

func TestRendererSearchItems(t *testing.T) {
	rr := NewRowRenderer(ui.DefaultTheme(), testCatalog(t), nil)
	proj := rows.Projection{
		rows.StartNewConversation{Query: "+15550100"},
		rows.SearchHeader{Caption: "Chats"},
	}
	a := rows.New(conversation.Sections{}, proj, rows.Inbox)

	if got := rr.Cell(a, a.At(0), ColTitle, "").Text; !strings.Contains(got, "+15550100") {
		t.Errorf("start cell = %q", got)
	}
	if got := rr.Cell(a, a.At(1), ColTitle, ""); !got.NotSelectable {
		t.Error("search header cell is selectable")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 4); got != "abc…" {
		t.Errorf("Truncate() = %q, want abc…", got)
	}
	if got := Truncate("日本語テキスト", 6); got != "日本…" {
		t.Errorf("Truncate(wide) = %q, want 日本…", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short) = %q", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Time{}, ""},
		{time.Date(2026, 3, 4, 9, 5, 0, 0, time.UTC), "09:05"},
		{time.Date(2026, 1, 2, 9, 5, 0, 0, time.UTC), "01/02"},
	}
	for _, tt := range tests {
		if got := formatTimestamp(tt.in, now); got != tt.want {
			t.Errorf("formatTimestamp(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMountedRowsFollowDrawnWindow(t *testing.T) {
	// 10 rows high with a border leaves 8 visible rows.
	cl, screen, _ := newList(t, 10)
	a := rows.New(sections(0, 30, 1), nil, rows.Inbox)
	cl.Update(a, rows.ListKey{}, true, "")

	cl.Draw(screen)
	mounted := cl.MountedRows()
	if len(mounted) != 8 || mounted[0].Index != 0 {
		t.Fatalf("mounted = %v, want 8 rows from 0", mounted)
	}

	cl.ScrollToRow(a.Count() - 1)
	cl.Draw(screen)
	mounted = cl.MountedRows()
	if len(mounted) == 0 {
		t.Fatal("nothing mounted after scrolling to the end")
	}
	last := mounted[len(mounted)-1]
	if last.Index != a.Count()-1 {
		t.Fatalf("last mounted = %d, want %d", last.Index, a.Count()-1)
	}
	if _, ok := last.Row.(rows.ArchiveButton); !ok {
		t.Errorf("last mounted row = %v, want archive button", last.Row)
	}
}

func TestMountedRowsEmptyBeforeDraw(t *testing.T) {
	cl, _, _ := newList(t, 10)
	cl.SetRect(0, 0, 0, 0)
	cl.Update(rows.New(sections(0, 3, 0), nil, rows.Inbox), rows.ListKey{}, true, "")
	if got := cl.MountedRows(); len(got) != 0 {
		t.Errorf("MountedRows() = %v, want none for a zero-height list", got)
	}
}

func TestFocusRowSelectsAndFocuses(t *testing.T) {
	cl, _, focused := newList(t, 10)
	cl.Update(rows.New(sections(0, 5, 0), nil, rows.Inbox), rows.ListKey{}, true, "")

	cl.FocusRow(3)
	if got := cl.SelectedRow(); got != 3 {
		t.Errorf("SelectedRow() = %d, want 3", got)
	}
	if len(*focused) != 1 {
		t.Errorf("setFocus called %d times, want 1", len(*focused))
	}
}

func TestUpdateResetSkipsHeader(t *testing.T) {
	cl, _, _ := newList(t, 10)
	cl.Update(rows.New(sections(2, 2, 0), nil, rows.Inbox), rows.ListKey{Generation: 1}, true, "")
	if got := cl.SelectedRow(); got != 1 {
		t.Errorf("SelectedRow() = %d, want 1 (first conversation after header)", got)
	}
}

func TestReportRowCountClampsSelection(t *testing.T) {
	cl, _, _ := newList(t, 10)
	cl.Update(rows.New(sections(0, 5, 0), nil, rows.Inbox), rows.ListKey{}, true, "")
	cl.Select(4, 0)

	cl.Update(rows.New(sections(0, 2, 0), nil, rows.Inbox), rows.ListKey{}, false, "")
	if got := cl.SelectedRow(); got != 1 {
		t.Errorf("SelectedRow() = %d, want 1 after shrink", got)
	}
}

func TestUpdateFollowsSelectedConversation(t *testing.T) {
	cl, _, _ := newList(t, 10)
	cl.Update(rows.New(sections(0, 3, 0), nil, rows.Inbox), rows.ListKey{}, true, "")
	cl.Select(1, 0) // R2

	// A pinned conversation arrives: R2 moves down past two headers and P1.
	cl.Update(rows.New(sections(1, 3, 0), nil, rows.Inbox), rows.ListKey{}, false, "")
	a := rows.New(sections(1, 3, 0), nil, rows.Inbox)
	if got := a.DataID(a.At(cl.SelectedRow())); got != "R2" {
		t.Errorf("selected %q after reload, want R2", got)
	}
}

func TestDrawReportsSettle(t *testing.T) {
	cl, screen, _ := newList(t, 10)
	draws := 0
	cl.OnSettle(func() { draws++ })
	cl.Draw(screen)
	cl.Draw(screen)
	if draws != 2 {
		t.Errorf("settle callbacks = %d, want 2", draws)
	}
}

func TestStatusBarLine(t *testing.T) {
	sb := NewStatusBar(ui.DefaultTheme(), testCatalog(t))
	sb.now = func() time.Time { return time.Date(2026, 1, 1, 12, 30, 0, 0, time.UTC) }
	sb.SetProfile("work")
	sb.SetList(rows.Archive, 3, "bob")

	line := sb.line()
	for _, want := range []string{"work", "Archive", "3 conversations", "bob", "12:30"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Alice", "Alice"},
		{"  two\nlines\t here ", "two lines here"},
		{"evil\x1b[2Jtitle", "evil[2Jtitle"},
		{"thumbs 👍🏻", "thumbs 👍"},
		{"family 👨‍👩", "family 👨👩"},
	}
	for _, tt := range tests {
		if got := cleanTitle(tt.in); got != tt.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
