package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/matheus3301/convo/internal/bus"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a conversation id does not exist.
var ErrNotFound = errors.New("store: conversation not found")

// DB wraps a SQLite database connection for a profile's convo.db.
type DB struct {
	*sql.DB
	events *bus.Bus
}

// Open creates a new SQLite connection with WAL mode and recommended pragmas.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Verify connection.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &DB{DB: db}, nil
}

// AttachBus makes every successful mutation publish a
// bus.KindConversationsChanged event on b.
func (db *DB) AttachBus(b *bus.Bus) {
	db.events = b
}

func (db *DB) changed(op bus.Op, ids ...string) {
	if db.events == nil {
		return
	}
	db.events.Emit(bus.KindConversationsChanged, bus.ConversationsChanged{Op: op, IDs: ids})
}
