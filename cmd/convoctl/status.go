package main

import (
	"encoding/json"
	"fmt"

	"github.com/matheus3301/convo/internal/lock"
	"github.com/matheus3301/convo/internal/profile"
	"github.com/spf13/cobra"
)

type statusJSON struct {
	Profile       string `json:"profile"`
	Database      string `json:"database"`
	SchemaVersion uint   `json:"schema_version"`
	Total         int    `json:"total"`
	Pinned        int    `json:"pinned"`
	Archived      int    `json:"archived"`
	Unread        int    `json:"unread"`
	// OpenBy is the PID of the convo TUI holding the profile, if any.
	OpenBy int `json:"open_by,omitempty"`
}

func newStatusCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the profile's database and conversation counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, dirty, err := e.db.SchemaVersion()
			if err != nil {
				return err
			}
			stats, err := e.db.ConversationStats()
			if err != nil {
				return err
			}
			holder, err := lock.Probe(profile.Dir(e.name))
			if err != nil {
				return err
			}
			s := statusJSON{
				Profile:       e.name,
				Database:      e.dbPath,
				SchemaVersion: version,
				Total:         stats.Total,
				Pinned:        stats.Pinned,
				Archived:      stats.Archived,
				Unread:        stats.Unread,
			}
			held := "no"
			if holder != nil {
				s.OpenBy = holder.PID
				held = fmt.Sprintf("yes, PID %d", holder.PID)
			}
			w := cmd.OutOrStdout()
			if e.jsonOut {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			schema := fmt.Sprint(version)
			if dirty {
				schema += " (dirty)"
			}
			_, err = fmt.Fprintf(w, "Profile:  %s\nDatabase: %s\nSchema:   %s\nChats:    %d (%d pinned, %d archived, %d unread)\nOpen:     %s\n",
				s.Profile, s.Database, schema, s.Total, s.Pinned, s.Archived, s.Unread, held)
			return err
		},
	}
}
