// Package rows maps conversation sections and search results onto the flat,
// index-addressable sequence of rows a virtualized list draws.
package rows

import (
	"fmt"

	"github.com/matheus3301/convo/internal/conversation"
)

// ViewMode selects which sections are addressable.
type ViewMode int

const (
	Inbox ViewMode = iota
	Archive
)

func (m ViewMode) String() string {
	switch m {
	case Inbox:
		return "inbox"
	case Archive:
		return "archive"
	}
	return fmt.Sprintf("ViewMode(%d)", int(m))
}

// HeaderKind names a section header.
type HeaderKind int

const (
	HeaderPinned HeaderKind = iota
	HeaderChats
)

func (k HeaderKind) String() string {
	if k == HeaderPinned {
		return "pinned"
	}
	return "chats"
}

// Row describes what the list renders at one index. The set of
// implementations is closed: every switch over a Row handles all of
// Header, PinnedConversation, Conversation, ArchivedConversation,
// ArchiveButton and SearchRow, and calls Unhandled in its default branch.
type Row interface {
	isRow()
	String() string
}

// Header is a non-selectable section caption.
type Header struct{ Kind HeaderKind }

// PinnedConversation addresses Sections.Pinned[Index].
type PinnedConversation struct{ Index int }

// Conversation addresses Sections.Regular[Index].
type Conversation struct{ Index int }

// ArchivedConversation addresses Sections.Archived[Index].
type ArchivedConversation struct{ Index int }

// ArchiveButton opens the archive. It is always the last inbox row.
type ArchiveButton struct{}

// SearchRow wraps one item of the active search projection.
type SearchRow struct{ Item SearchItem }

func (Header) isRow()               {}
func (PinnedConversation) isRow()   {}
func (Conversation) isRow()         {}
func (ArchivedConversation) isRow() {}
func (ArchiveButton) isRow()        {}
func (SearchRow) isRow()            {}

func (r Header) String() string               { return "Header(" + r.Kind.String() + ")" }
func (r PinnedConversation) String() string   { return fmt.Sprintf("PinnedConversation(%d)", r.Index) }
func (r Conversation) String() string         { return fmt.Sprintf("Conversation(%d)", r.Index) }
func (r ArchivedConversation) String() string { return fmt.Sprintf("ArchivedConversation(%d)", r.Index) }
func (ArchiveButton) String() string          { return "ArchiveButton" }
func (r SearchRow) String() string            { return "SearchRow(" + r.Item.String() + ")" }

// Unhandled panics for a Row variant the caller does not know about.
func Unhandled(r Row) {
	panic(fmt.Sprintf("rows: unhandled row variant %T", r))
}

// Selectable reports whether keyboard focus may land on the row.
func Selectable(r Row) bool {
	switch r := r.(type) {
	case Header:
		return false
	case PinnedConversation, Conversation, ArchivedConversation, ArchiveButton:
		return true
	case SearchRow:
		_, isHeader := r.Item.(SearchHeader)
		return !isHeader
	default:
		Unhandled(r)
		return false
	}
}

// SearchItem is one entry of a search projection. Like Row, the set of
// implementations is closed.
type SearchItem interface {
	isSearchItem()
	String() string
}

// SearchHeader groups the items that follow it.
type SearchHeader struct{ Caption string }

// SearchConversation is a matched conversation with history.
type SearchConversation struct{ Summary conversation.Summary }

// SearchContact is a matched direct conversation without history.
type SearchContact struct{ Summary conversation.Summary }

// StartNewConversation offers to start a conversation with the query itself.
type StartNewConversation struct{ Query string }

func (SearchHeader) isSearchItem()         {}
func (SearchConversation) isSearchItem()   {}
func (SearchContact) isSearchItem()        {}
func (StartNewConversation) isSearchItem() {}

func (i SearchHeader) String() string         { return "header:" + i.Caption }
func (i SearchConversation) String() string   { return "conversation:" + i.Summary.ID }
func (i SearchContact) String() string        { return "contact:" + i.Summary.ID }
func (i StartNewConversation) String() string { return "start:" + i.Query }

// Projection is an ordered set of search items. A nil Projection means no
// search is active; an empty non-nil one is a search with no results.
type Projection []SearchItem

// ListKey identifies one logical list. The view resets its scroll offset
// whenever the key changes instead of reusing a position that belonged to
// another list.
type ListKey struct {
	Mode       ViewMode
	Searching  bool
	Generation uint64
}

func (k ListKey) String() string {
	if k.Searching {
		return fmt.Sprintf("%s/search#%d", k.Mode, k.Generation)
	}
	return fmt.Sprintf("%s#%d", k.Mode, k.Generation)
}
