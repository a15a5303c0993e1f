// Package inbox owns the conversation list state: sections, view mode,
// search projection, selection and focus intent. Every method runs on the
// UI goroutine.
package inbox

import "github.com/matheus3301/convo/internal/rows"

// ModeController holds the current view mode.
type ModeController struct {
	mode rows.ViewMode
}

// Mode returns the current mode.
func (m *ModeController) Mode() rows.ViewMode { return m.mode }

// Set switches to mode and reports whether it changed.
func (m *ModeController) Set(mode rows.ViewMode) bool {
	if m.mode == mode {
		return false
	}
	m.mode = mode
	return true
}

// Toggle flips between Inbox and Archive and returns the new mode.
func (m *ModeController) Toggle() rows.ViewMode {
	if m.mode == rows.Inbox {
		m.mode = rows.Archive
	} else {
		m.mode = rows.Inbox
	}
	return m.mode
}
