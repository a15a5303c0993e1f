package views

import (
	"strings"
	"unicode"
)

// cleanTitle makes a conversation title safe to draw on one table row.
// Control characters are dropped so a title cannot emit escape sequences.
// Whitespace runs, newlines included, collapse to one space. Emoji joiners
// and modifiers are removed since tcell measures those sequences wrongly.
func cleanTitle(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = b.Len() > 0
			continue
		case unicode.IsControl(r), isEmojiModifier(r):
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isEmojiModifier(r rune) bool {
	switch {
	case r >= 0x1F3FB && r <= 0x1F3FF: // skin tones
		return true
	case r == 0x200D: // zero width joiner
		return true
	case r >= 0xFE00 && r <= 0xFE0F, r >= 0xE0100 && r <= 0xE01EF: // variation selectors
		return true
	}
	return false
}
