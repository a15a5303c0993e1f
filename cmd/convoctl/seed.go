package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/convo/internal/conversation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedNames = []string{
	"Alice", "Bruno", "Camila", "Daniel", "Eva", "Felipe", "Gabriela",
	"Hugo", "Isabela", "João", "Karin", "Lucas", "Marta", "Nicolás",
}

var seedGroups = []string{"Family", "Book club", "Climbing", "Release crew", "Neighbors"}

// seedConversations builds n sample conversations. Every seventh is pinned
// and every fifth archived; archiving wins.
func seedConversations(n int, now time.Time) []conversation.Summary {
	out := make([]conversation.Summary, 0, n)
	for i := range n {
		c := conversation.Summary{
			ID:          uuid.NewString(),
			LastUpdated: now.Add(-time.Duration(i) * 37 * time.Minute),
		}
		if i%4 == 3 {
			c.Type = conversation.TypeGroup
			c.Title = seedGroups[i%len(seedGroups)]
		} else {
			c.Title = seedNames[i%len(seedNames)]
		}
		if i >= len(seedNames) {
			c.Title += " " + strconv.Itoa(i/len(seedNames)+1)
		}
		if i%3 == 0 {
			c.UnreadCount = i%5 + 1
		}
		c.IsPinned = i%7 == 0
		c.IsArchived = i%5 == 4
		if c.IsArchived {
			c.IsPinned = false
		}
		out = append(out, c)
	}
	return out
}

func newSeedCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [n]",
		Short: "Add n sample conversations (default 40)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 40
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v < 1 {
					return fmt.Errorf("invalid count %q", args[0])
				}
				n = v
			}
			ctx := cmd.Context()
			for _, c := range seedConversations(n, time.Now()) {
				if err := e.db.UpsertConversation(ctx, c); err != nil {
					return err
				}
			}
			e.logger.Info("seeded conversations", zap.Int("count", n))
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Added %d conversations.\n", n)
			return err
		},
	}
}
