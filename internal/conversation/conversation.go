package conversation

import (
	"sort"
	"time"
)

// Type distinguishes one-to-one conversations from groups.
type Type int

const (
	TypeDirect Type = iota
	TypeGroup
)

func (t Type) String() string {
	if t == TypeGroup {
		return "group"
	}
	return "direct"
}

// Summary is an immutable snapshot of one conversation as shown in the list.
type Summary struct {
	ID           string
	Title        string
	Type         Type
	IsPinned     bool
	IsArchived   bool
	LastUpdated  time.Time
	UnreadCount  int
	MarkedUnread bool
}

// IsUnread reports whether the conversation should be shown as unread.
func (s Summary) IsUnread() bool {
	return s.UnreadCount > 0 || s.MarkedUnread
}

// Sections holds the three conversation buckets the list is built from.
// Sections are never mutated after construction; callers build a new value
// on every change.
type Sections struct {
	Pinned   []Summary
	Regular  []Summary
	Archived []Summary
}

// NewSections partitions conversations into buckets. Archived wins over
// pinned, so an archived conversation is never addressable as pinned or
// regular. Pinned conversations keep their input order; regular and
// archived are ordered by LastUpdated, newest first. When an id occurs more
// than once only the first occurrence is kept and the rest are returned as
// dropped.
func NewSections(all []Summary) (Sections, []Summary) {
	var s Sections
	var dropped []Summary
	seen := make(map[string]struct{}, len(all))
	for _, c := range all {
		if _, ok := seen[c.ID]; ok {
			dropped = append(dropped, c)
			continue
		}
		seen[c.ID] = struct{}{}
		switch {
		case c.IsArchived:
			s.Archived = append(s.Archived, c)
		case c.IsPinned:
			s.Pinned = append(s.Pinned, c)
		default:
			s.Regular = append(s.Regular, c)
		}
	}
	sortByRecency(s.Regular)
	sortByRecency(s.Archived)
	return s, dropped
}

// Len returns the total number of conversations across all buckets.
func (s Sections) Len() int {
	return len(s.Pinned) + len(s.Regular) + len(s.Archived)
}

// Find returns the conversation with the given id.
func (s Sections) Find(id string) (Summary, bool) {
	for _, bucket := range [][]Summary{s.Pinned, s.Regular, s.Archived} {
		for _, c := range bucket {
			if c.ID == id {
				return c, true
			}
		}
	}
	return Summary{}, false
}

// UnreadArchived counts archived conversations that are unread.
func (s Sections) UnreadArchived() int {
	n := 0
	for _, c := range s.Archived {
		if c.IsUnread() {
			n++
		}
	}
	return n
}

func sortByRecency(list []Summary) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].LastUpdated.Equal(list[j].LastUpdated) {
			return list[i].LastUpdated.After(list[j].LastUpdated)
		}
		return list[i].ID < list[j].ID
	})
}
