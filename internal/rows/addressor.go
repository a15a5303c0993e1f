package rows

import (
	"fmt"

	"github.com/matheus3301/convo/internal/conversation"
)

// IndexOutOfRangeError is the panic value of Addressor.At for an index
// outside [0, Count()). It means the list and the addressor disagree on the
// row count, which is a bug in the caller.
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("rows: index %d out of range [0, %d)", e.Index, e.Count)
}

// Addressor answers Count and At for one snapshot of sections, search
// projection and view mode. It holds no state beyond that snapshot.
type Addressor struct {
	sections   conversation.Sections
	projection Projection
	mode       ViewMode

	// Derived layout for inbox mode.
	headers bool
	button  bool
}

// New returns the addressor for the given snapshot. A non-nil projection
// replaces section addressing entirely.
func New(sections conversation.Sections, projection Projection, mode ViewMode) Addressor {
	a := Addressor{
		sections:   sections,
		projection: projection,
		mode:       mode,
	}
	if projection == nil && mode == Inbox {
		a.headers = len(sections.Pinned) > 0 && len(sections.Regular) > 0
		a.button = len(sections.Archived) > 0
	}
	return a
}

// Mode returns the view mode of the snapshot.
func (a Addressor) Mode() ViewMode { return a.mode }

// Searching reports whether rows come from a search projection.
func (a Addressor) Searching() bool { return a.projection != nil }

// Sections returns the sections of the snapshot.
func (a Addressor) Sections() conversation.Sections { return a.sections }

// Count returns the number of addressable rows.
func (a Addressor) Count() int {
	if a.projection != nil {
		return len(a.projection)
	}
	if a.mode == Archive {
		return len(a.sections.Archived)
	}
	n := len(a.sections.Pinned) + len(a.sections.Regular)
	if a.headers {
		n += 2
	}
	if a.button {
		n++
	}
	return n
}

// At returns the row at index i. It panics with *IndexOutOfRangeError when i
// is outside [0, Count()).
func (a Addressor) At(i int) Row {
	count := a.Count()
	if i < 0 || i >= count {
		panic(&IndexOutOfRangeError{Index: i, Count: count})
	}

	if a.projection != nil {
		return SearchRow{Item: a.projection[i]}
	}
	if a.mode == Archive {
		return ArchivedConversation{Index: i}
	}

	if a.button && i == count-1 {
		return ArchiveButton{}
	}

	pinned := len(a.sections.Pinned)
	if !a.headers {
		if pinned > 0 {
			return PinnedConversation{Index: i}
		}
		return Conversation{Index: i}
	}

	switch {
	case i == 0:
		return Header{Kind: HeaderPinned}
	case i <= pinned:
		return PinnedConversation{Index: i - 1}
	case i == pinned+1:
		return Header{Kind: HeaderChats}
	default:
		return Conversation{Index: i - pinned - 2}
	}
}

// Rows returns every row in order.
func (a Addressor) Rows() []Row {
	n := a.Count()
	out := make([]Row, n)
	for i := range n {
		out[i] = a.At(i)
	}
	return out
}

// Resolve returns the conversation a row points at, if any.
func (a Addressor) Resolve(r Row) (conversation.Summary, bool) {
	switch r := r.(type) {
	case Header, ArchiveButton:
		return conversation.Summary{}, false
	case PinnedConversation:
		return a.sections.Pinned[r.Index], true
	case Conversation:
		return a.sections.Regular[r.Index], true
	case ArchivedConversation:
		return a.sections.Archived[r.Index], true
	case SearchRow:
		switch item := r.Item.(type) {
		case SearchConversation:
			return item.Summary, true
		case SearchContact:
			return item.Summary, true
		case SearchHeader, StartNewConversation:
			return conversation.Summary{}, false
		default:
			panic(fmt.Sprintf("rows: unhandled search item %T", item))
		}
	default:
		Unhandled(r)
		return conversation.Summary{}, false
	}
}

// DataID is the stable per-row identifier the list tags each drawn row
// with: the conversation id for conversation rows, and "" for headers,
// buttons and any other row that addresses no conversation. Conversation
// ids are opaque and compared verbatim.
func (a Addressor) DataID(r Row) string {
	if c, ok := a.Resolve(r); ok {
		return c.ID
	}
	return ""
}

// Index returns the index of the row addressing the conversation with the
// given id, or -1.
func (a Addressor) Index(id string) int {
	if id == "" {
		return -1
	}
	for i := range a.Count() {
		if a.DataID(a.At(i)) == id {
			return i
		}
	}
	return -1
}
