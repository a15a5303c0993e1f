package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/matheus3301/convo/internal/bus"
	"github.com/matheus3301/convo/internal/conversation"
	"golang.org/x/text/cases"
)

// Filter selects which conversations ListConversations returns.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterArchived
)

const selectColumns = `id, title, type, is_pinned, is_archived, last_updated, unread_count, marked_unread`

// fold is the case-insensitive matching key for titles and queries.
func fold(s string) string {
	return cases.Fold().String(s)
}

// UpsertConversation inserts a conversation or updates its title, type,
// last activity and unread count. Pin, archive and marked-unread flags are
// only set on insert; use the dedicated setters to change them afterwards.
func (db *DB) UpsertConversation(ctx context.Context, c conversation.Summary) error {
	now := time.Now().UnixMilli()
	pinOrder := 0
	if c.IsPinned && !c.IsArchived {
		var err error
		if pinOrder, err = db.nextPinOrder(ctx); err != nil {
			return err
		}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO conversations (id, title, title_folded, type, is_pinned, pin_order, is_archived,
			last_updated, unread_count, marked_unread, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			title_folded = excluded.title_folded,
			type = excluded.type,
			last_updated = excluded.last_updated,
			unread_count = excluded.unread_count,
			updated_at = excluded.updated_at`,
		c.ID, c.Title, fold(c.Title), c.Type.String(), c.IsPinned && !c.IsArchived, pinOrder, c.IsArchived,
		toMillis(c.LastUpdated), c.UnreadCount, c.MarkedUnread, now, now)
	if err != nil {
		return fmt.Errorf("upsert conversation %s: %w", c.ID, err)
	}
	db.changed(bus.OpUpsert, c.ID)
	return nil
}

// GetConversation returns one conversation by id.
func (db *DB) GetConversation(ctx context.Context, id string) (conversation.Summary, error) {
	row := db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM conversations WHERE id = ?`, id)
	c, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return conversation.Summary{}, fmt.Errorf("get conversation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return conversation.Summary{}, fmt.Errorf("get conversation %s: %w", id, err)
	}
	return c, nil
}

// ListConversations returns pinned conversations first, most recently
// pinned on top, then the rest by last activity, newest first.
func (db *DB) ListConversations(ctx context.Context, f Filter) ([]conversation.Summary, error) {
	where := ""
	switch f {
	case FilterActive:
		where = "WHERE is_archived = 0"
	case FilterArchived:
		where = "WHERE is_archived = 1"
	}
	rows, err := db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM conversations `+where+`
		ORDER BY is_pinned DESC, pin_order DESC, last_updated DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []conversation.Summary
	for rows.Next() {
		c, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("list conversations: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SetPinned pins or unpins a conversation. Pinning an archived conversation
// unarchives it.
func (db *DB) SetPinned(ctx context.Context, id string, pinned bool) error {
	if !pinned {
		return db.update(ctx, bus.OpUnpin, id,
			`UPDATE conversations SET is_pinned = 0, pin_order = 0, updated_at = ? WHERE id = ?`)
	}
	order, err := db.nextPinOrder(ctx)
	if err != nil {
		return err
	}
	return db.update(ctx, bus.OpPin, id,
		`UPDATE conversations SET is_pinned = 1, is_archived = 0, pin_order = ?, updated_at = ? WHERE id = ?`, order)
}

// SetArchived archives or unarchives a conversation. Archiving unpins it.
func (db *DB) SetArchived(ctx context.Context, id string, archived bool) error {
	if !archived {
		return db.update(ctx, bus.OpUnarchive, id,
			`UPDATE conversations SET is_archived = 0, updated_at = ? WHERE id = ?`)
	}
	return db.update(ctx, bus.OpArchive, id,
		`UPDATE conversations SET is_archived = 1, is_pinned = 0, pin_order = 0, updated_at = ? WHERE id = ?`)
}

// MarkUnread flags a conversation as unread without touching its count.
func (db *DB) MarkUnread(ctx context.Context, id string) error {
	return db.update(ctx, bus.OpUnread, id,
		`UPDATE conversations SET marked_unread = 1, updated_at = ? WHERE id = ?`)
}

// MarkRead clears both the unread count and the unread flag.
func (db *DB) MarkRead(ctx context.Context, id string) error {
	return db.update(ctx, bus.OpRead, id,
		`UPDATE conversations SET marked_unread = 0, unread_count = 0, updated_at = ? WHERE id = ?`)
}

// DeleteConversation removes a conversation.
func (db *DB) DeleteConversation(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete conversation %s: %w", id, err)
	}
	if err := requireRow(res, id); err != nil {
		return err
	}
	db.changed(bus.OpDelete, id)
	return nil
}

// update runs a single-row UPDATE whose trailing placeholders are
// updated_at and id, after any leading args.
func (db *DB) update(ctx context.Context, op bus.Op, id, query string, args ...any) error {
	args = append(args, time.Now().UnixMilli(), id)
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s conversation %s: %w", op, id, err)
	}
	if err := requireRow(res, id); err != nil {
		return err
	}
	db.changed(op, id)
	return nil
}

func (db *DB) nextPinOrder(ctx context.Context) (int, error) {
	var order int
	err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(pin_order), 0) + 1 FROM conversations`).Scan(&order)
	if err != nil {
		return 0, fmt.Errorf("next pin order: %w", err)
	}
	return order, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("conversation %s: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(s scanner) (conversation.Summary, error) {
	var (
		c       conversation.Summary
		typ     string
		updated int64
	)
	if err := s.Scan(&c.ID, &c.Title, &typ, &c.IsPinned, &c.IsArchived, &updated, &c.UnreadCount, &c.MarkedUnread); err != nil {
		return conversation.Summary{}, err
	}
	if typ == "group" {
		c.Type = conversation.TypeGroup
	}
	c.LastUpdated = fromMillis(updated)
	return c, nil
}

// Zero times are stored as 0 so "no history" survives a round trip.
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// Stats counts conversations by bucket.
type Stats struct {
	Total    int
	Pinned   int
	Archived int
	Unread   int
}

// ConversationStats returns the bucket counts of the whole table.
func (db *DB) ConversationStats() (Stats, error) {
	var s Stats
	err := db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(is_pinned), 0),
			COALESCE(SUM(is_archived), 0),
			COALESCE(SUM(CASE WHEN unread_count > 0 OR marked_unread = 1 THEN 1 ELSE 0 END), 0)
		FROM conversations`).Scan(&s.Total, &s.Pinned, &s.Archived, &s.Unread)
	if err != nil {
		return Stats{}, fmt.Errorf("conversation stats: %w", err)
	}
	return s, nil
}
