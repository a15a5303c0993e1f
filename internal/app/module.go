// Package app wires convo's components together with fx.
package app

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/matheus3301/convo/internal/bus"
	"github.com/matheus3301/convo/internal/config"
	"github.com/matheus3301/convo/internal/i18n"
	"github.com/matheus3301/convo/internal/inbox"
	"github.com/matheus3301/convo/internal/lock"
	"github.com/matheus3301/convo/internal/logging"
	"github.com/matheus3301/convo/internal/nav"
	"github.com/matheus3301/convo/internal/profile"
	"github.com/matheus3301/convo/internal/search"
	"github.com/matheus3301/convo/internal/store"
	"github.com/matheus3301/convo/internal/tui"
	"github.com/matheus3301/convo/internal/tui/keys"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Params holds the resolved profile and configuration passed to the module.
type Params struct {
	Profile string
	Config  *config.Config
	// Home overrides the profile's directory; empty uses profile.Dir.
	Home string
}

func (p Params) dir() string {
	if p.Home != "" {
		return p.Home
	}
	return profile.Dir(p.Profile)
}

// Module returns the fx module for the TUI, composing all providers and
// lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("convo",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideBus,
			provideLock,
			provideStore,
			provideTranslator,
			providePlatform,
			provideOptions,
			provideTUI,
		),
		fx.Invoke(registerLifecycle),
	)
}

// Logger routes fx's own events to the module's zap logger.
func Logger() fx.Option {
	return fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: l.Named("fx")}
	})
}

func provideLogger(p Params) (*zap.Logger, error) {
	path := profile.LogPath(p.Profile)
	if p.Home != "" {
		path = filepath.Join(p.Home, "logs", "convo.log")
	}
	return logging.New(path, p.Profile, logging.Options{})
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if p.Home == "" {
		if err := profile.EnsureDir(p.Profile); err != nil {
			return nil, err
		}
	}
	logger.Info("acquiring profile lock", zap.String("profile", p.Profile))
	l, err := lock.Acquire(p.dir())
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired", zap.String("path", l.Path()))
	return l, nil
}

// provideStore depends on the lock so the database is only opened by the
// process holding the profile.
func provideStore(p Params, _ *lock.Lock, b *bus.Bus, logger *zap.Logger) (*store.DB, error) {
	dbPath := filepath.Join(p.dir(), "convo.db")
	if p.Home == "" {
		dbPath = profile.DBPath(p.Profile)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	db.AttachBus(b)
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideTranslator(p Params) (i18n.Translator, error) {
	c, err := i18n.New(p.Config.Locale)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func providePlatform(p Params) (*keys.Platform, error) {
	return keys.NewPlatform(runtime.GOOS, p.Config.Keys.PrimaryModifier)
}

func provideOptions(p Params) inbox.Options {
	cfg := p.Config
	opts := inbox.DefaultOptions()
	opts.Search = search.Config{
		Debounce: cfg.SearchDebounce(),
		Limit:    cfg.Search.Limit,
		Timeout:  opts.Search.Timeout,
	}
	opts.Focus = nav.Options{
		SettleWait:    cfg.SettleWait(),
		SettleMaxWait: cfg.SettleMaxWait(),
		MaxAttempts:   cfg.Focus.MaxAttempts,
	}
	return opts
}

func provideTUI(p Params, db *store.DB, b *bus.Bus, tr i18n.Translator, platform *keys.Platform, opts inbox.Options, logger *zap.Logger) *tui.App {
	return tui.NewApp(tui.Deps{
		Profile:    p.Profile,
		Store:      db,
		Bus:        b,
		Translator: tr,
		Platform:   platform,
		Options:    opts,
		Refresh:    p.Config.RefreshInterval(),
		Logger:     logger.Named("tui"),
	})
}

func registerLifecycle(lc fx.Lifecycle, app *tui.App, lk *lock.Lock, db *store.DB, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("convo started")
			return nil
		},
		OnStop: func(_ context.Context) error {
			app.Stop()
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("convo stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
