package nav

import (
	"fmt"

	"github.com/matheus3301/convo/internal/conversation"
)

func testSections(pinned, regular, archived int) conversation.Sections {
	mk := func(prefix string, n int) []conversation.Summary {
		out := make([]conversation.Summary, n)
		for i := range out {
			out[i] = conversation.Summary{ID: fmt.Sprintf("%s%d", prefix, i+1)}
		}
		return out
	}
	return conversation.Sections{
		Pinned:   mk("P", pinned),
		Regular:  mk("R", regular),
		Archived: mk("A", archived),
	}
}
