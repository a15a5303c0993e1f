package main

import (
	"fmt"

	"github.com/matheus3301/convo/internal/config"
	"github.com/matheus3301/convo/internal/logging"
	"github.com/matheus3301/convo/internal/profile"
	"github.com/matheus3301/convo/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// env is the state shared by every subcommand.
type env struct {
	profileName string
	jsonOut     bool
	verbose     bool

	name   string
	dbPath string
	cfg    *config.Config
	db     *store.DB
	logger *zap.Logger
}

// newRootCmd builds the command tree. The caller closes e once the command
// has run.
func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "convoctl",
		Short:         "Manage the conversations of a convo profile",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return e.open()
		},
	}
	root.PersistentFlags().StringVar(&e.profileName, "profile", "", "profile name (overrides config default)")
	root.PersistentFlags().BoolVar(&e.jsonOut, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "log to stderr at debug level")

	root.AddCommand(
		newListCmd(e),
		newAddCmd(e),
		newSearchCmd(e),
		newRemoveCmd(e),
		newSeedCmd(e),
		newStatusCmd(e),
		newConfigCmd(e),
	)
	for _, f := range flagCommands {
		root.AddCommand(newFlagCmd(e, f))
	}
	return root
}

// open loads the config, resolves the profile and opens its database.
// convoctl does not take the profile lock; SQLite serializes its writes
// against a running TUI, which picks them up on its next refresh.
func (e *env) open() error {
	cfg, err := config.LoadOrDefault(profile.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	e.cfg = cfg

	name := profile.Resolve(e.profileName, cfg)
	if err := profile.ValidateName(name); err != nil {
		return err
	}
	if err := profile.EnsureDir(name); err != nil {
		return err
	}

	opts := logging.Options{Stderr: e.verbose, Level: zapcore.InfoLevel}
	if e.verbose {
		opts.Level = zapcore.DebugLevel
	}
	logger, err := logging.New(profile.LogPath(name), name, opts)
	if err != nil {
		return err
	}
	e.logger = logger.Named("convoctl")

	e.name, e.dbPath = name, profile.DBPath(name)
	db, err := store.Open(e.dbPath)
	if err != nil {
		return err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return err
	}
	if result.Changed {
		e.logger.Info("migrations applied", zap.Uint("version", result.Version))
	}
	e.db = db
	return nil
}

func (e *env) close() error {
	if e.logger != nil {
		_ = e.logger.Sync()
	}
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}
