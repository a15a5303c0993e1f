package search

import (
	"strings"
	"unicode"

	"github.com/matheus3301/convo/internal/conversation"
	"github.com/matheus3301/convo/internal/i18n"
	"github.com/matheus3301/convo/internal/rows"
)

// BuildProjection groups lookup results into the rows the list shows while
// searching: a start-new-conversation entry when the query looks like a
// phone number, conversations with history under a "Chats" header, then
// direct conversations without history under a "Contacts" header. Headers
// are only emitted for non-empty groups. The result is never nil.
func BuildProjection(query string, results []conversation.Summary, t i18n.Translator) rows.Projection {
	proj := rows.Projection{}
	if LooksLikePhoneNumber(query) {
		proj = append(proj, rows.StartNewConversation{Query: strings.TrimSpace(query)})
	}

	var chats, contacts []conversation.Summary
	for _, c := range results {
		if c.LastUpdated.IsZero() && c.Type == conversation.TypeDirect {
			contacts = append(contacts, c)
			continue
		}
		chats = append(chats, c)
	}

	if len(chats) > 0 {
		proj = append(proj, rows.SearchHeader{Caption: t.T(i18n.SearchChats)})
		for _, c := range chats {
			proj = append(proj, rows.SearchConversation{Summary: c})
		}
	}
	if len(contacts) > 0 {
		proj = append(proj, rows.SearchHeader{Caption: t.T(i18n.SearchContacts)})
		for _, c := range contacts {
			proj = append(proj, rows.SearchContact{Summary: c})
		}
	}
	return proj
}

// LooksLikePhoneNumber reports whether q is a plausible phone number: an
// optional leading +, then at least 6 digits, allowing spaces, dashes,
// dots and parentheses as separators.
func LooksLikePhoneNumber(q string) bool {
	q = strings.TrimSpace(q)
	q = strings.TrimPrefix(q, "+")
	digits := 0
	for _, r := range q {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 6 && digits <= 15
}
