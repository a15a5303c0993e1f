// Package nav turns jump shortcuts into scroll requests and resolves the
// resulting focus intent once the list has drawn the target rows.
package nav

import "github.com/matheus3301/convo/internal/rows"

// MountedRow is a row the list is currently drawing.
type MountedRow struct {
	Index int
	Row   rows.Row
	// DataID is the conversation id for conversation rows, empty otherwise.
	DataID string
}

// Selectable reports whether focus may land on the row.
func (m MountedRow) Selectable() bool { return rows.Selectable(m.Row) }

// Viewport is the virtualized list as seen by navigation. It only draws
// rows near the visible window, so MountedRows is usually a small slice of
// the full list.
type Viewport interface {
	ScrollToRow(index int)
	// MountedRows returns the drawn rows in ascending index order.
	MountedRows() []MountedRow
	FocusRow(index int)
}
