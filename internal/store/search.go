package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/matheus3301/convo/internal/conversation"
	"github.com/matheus3301/convo/internal/search"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchConversations returns conversations whose title contains query,
// ignoring case, most recently active first. Archived conversations are
// included. It implements search.Searcher.
func (db *DB) SearchConversations(ctx context.Context, query string, opts search.Options) ([]conversation.Summary, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + likeEscaper.Replace(fold(strings.TrimSpace(query))) + "%"

	rows, err := db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM conversations
		WHERE title_folded LIKE ? ESCAPE '\'
		ORDER BY last_updated DESC, id
		LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search conversations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []conversation.Summary
	for rows.Next() {
		c, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("search conversations: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ search.Searcher = (*DB)(nil)
