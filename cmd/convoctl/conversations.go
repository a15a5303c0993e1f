package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/convo/internal/conversation"
	"github.com/matheus3301/convo/internal/search"
	"github.com/matheus3301/convo/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// conversationJSON is the --json form of a conversation.
type conversationJSON struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Type         string     `json:"type"`
	Pinned       bool       `json:"pinned"`
	Archived     bool       `json:"archived"`
	LastUpdated  *time.Time `json:"last_updated,omitempty"`
	UnreadCount  int        `json:"unread_count"`
	MarkedUnread bool       `json:"marked_unread"`
}

func toJSON(c conversation.Summary) conversationJSON {
	out := conversationJSON{
		ID:           c.ID,
		Title:        c.Title,
		Type:         c.Type.String(),
		Pinned:       c.IsPinned,
		Archived:     c.IsArchived,
		UnreadCount:  c.UnreadCount,
		MarkedUnread: c.MarkedUnread,
	}
	if !c.LastUpdated.IsZero() {
		t := c.LastUpdated.UTC()
		out.LastUpdated = &t
	}
	return out
}

func (e *env) print(w io.Writer, cs []conversation.Summary) error {
	if e.jsonOut {
		items := make([]conversationJSON, len(cs))
		for i, c := range cs {
			items[i] = toJSON(c)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	if len(cs) == 0 {
		_, err := fmt.Fprintln(w, "No conversations.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range cs {
		flags := ""
		if c.IsPinned {
			flags += "P"
		}
		if c.IsArchived {
			flags += "A"
		}
		if c.IsUnread() {
			flags += "U"
		}
		last := "-"
		if !c.LastUpdated.IsZero() {
			last = c.LastUpdated.Local().Format("2006-01-02 15:04")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Title, c.Type, flags, last)
	}
	return tw.Flush()
}

func newListCmd(e *env) *cobra.Command {
	var archived, all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := store.FilterActive
			switch {
			case all:
				f = store.FilterAll
			case archived:
				f = store.FilterArchived
			}
			cs, err := e.db.ListConversations(cmd.Context(), f)
			if err != nil {
				return err
			}
			return e.print(cmd.OutOrStdout(), cs)
		},
	}
	cmd.Flags().BoolVar(&archived, "archived", false, "list archived conversations")
	cmd.Flags().BoolVar(&all, "all", false, "list every conversation")
	return cmd
}

func newAddCmd(e *env) *cobra.Command {
	var (
		id     string
		group  bool
		unread int
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a conversation, or update the title of an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = uuid.NewString()
			}
			c := conversation.Summary{
				ID:          id,
				Title:       args[0],
				LastUpdated: time.Now(),
				UnreadCount: unread,
			}
			if group {
				c.Type = conversation.TypeGroup
			}
			if err := e.db.UpsertConversation(cmd.Context(), c); err != nil {
				return err
			}
			e.logger.Info("conversation added", zap.String("id", id))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "conversation id (default: a new UUID)")
	cmd.Flags().BoolVar(&group, "group", false, "create a group conversation")
	cmd.Flags().IntVar(&unread, "unread", 0, "initial unread count")
	return cmd
}

func newSearchCmd(e *env) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search conversations by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit == 0 {
				limit = e.cfg.Search.Limit
			}
			cs, err := e.db.SearchConversations(cmd.Context(), args[0], search.Options{Limit: limit})
			if err != nil {
				return err
			}
			return e.print(cmd.OutOrStdout(), cs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (default from config)")
	return cmd
}

func newRemoveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Delete conversations",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := e.db.DeleteConversation(cmd.Context(), id); err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
			}
			return nil
		},
	}
}

// flagCommand is a subcommand that flips one conversation flag.
type flagCommand struct {
	use   string
	short string
	apply func(ctx context.Context, db *store.DB, id string) error
}

var flagCommands = []flagCommand{
	{"pin", "Pin conversations", func(ctx context.Context, db *store.DB, id string) error { return db.SetPinned(ctx, id, true) }},
	{"unpin", "Unpin conversations", func(ctx context.Context, db *store.DB, id string) error { return db.SetPinned(ctx, id, false) }},
	{"archive", "Archive conversations", func(ctx context.Context, db *store.DB, id string) error { return db.SetArchived(ctx, id, true) }},
	{"unarchive", "Unarchive conversations", func(ctx context.Context, db *store.DB, id string) error { return db.SetArchived(ctx, id, false) }},
	{"unread", "Mark conversations unread", func(ctx context.Context, db *store.DB, id string) error { return db.MarkUnread(ctx, id) }},
	{"read", "Mark conversations read", func(ctx context.Context, db *store.DB, id string) error { return db.MarkRead(ctx, id) }},
}

func newFlagCmd(e *env, f flagCommand) *cobra.Command {
	return &cobra.Command{
		Use:   f.use + " <id>...",
		Short: f.short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := f.apply(cmd.Context(), e.db, id); err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
			}
			return nil
		},
	}
}
