// Package tui is the terminal front end: a searchable, keyboard-driven
// conversation list.
package tui

import (
	"context"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/convo/internal/bus"
	"github.com/matheus3301/convo/internal/conversation"
	"github.com/matheus3301/convo/internal/debounce"
	"github.com/matheus3301/convo/internal/i18n"
	"github.com/matheus3301/convo/internal/inbox"
	"github.com/matheus3301/convo/internal/nav"
	"github.com/matheus3301/convo/internal/rows"
	"github.com/matheus3301/convo/internal/search"
	"github.com/matheus3301/convo/internal/store"
	"github.com/matheus3301/convo/internal/tui/keys"
	"github.com/matheus3301/convo/internal/tui/ui"
	"github.com/matheus3301/convo/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// Page and key scope names.
const (
	pageList   = "list"
	pageHelp   = "help"
	scopeList  = "list"
	scopeHelp  = "help"
	reloadWait = 50 * time.Millisecond
)

// Store is what the TUI reads and writes.
type Store interface {
	search.Searcher
	ListConversations(ctx context.Context, f store.Filter) ([]conversation.Summary, error)
	MarkRead(ctx context.Context, id string) error
}

// Deps are the collaborators of an App.
type Deps struct {
	Profile    string
	Store      Store
	Bus        *bus.Bus
	Translator i18n.Translator
	Platform   *keys.Platform
	Options    inbox.Options
	// Refresh is how often conversations are reloaded; zero disables it.
	Refresh time.Duration
	Logger  *zap.Logger
}

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	pages    *tview.Pages
	registry *keys.Registry
	platform *keys.Platform
	theme    *ui.Theme
	tr       i18n.Translator
	flash    *ui.FlashModel

	list   *views.ConversationList
	prompt *ui.Prompt
	status *views.StatusBar
	menu   *ui.Menu
	help   *views.HelpView

	ctrl    *inbox.Controller
	store   Store
	events  *bus.Bus
	reload  *debounce.Debouncer
	refresh time.Duration
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(d Deps) *App {
	ctx, cancel := context.WithCancel(context.Background())
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Platform == nil {
		d.Platform, _ = keys.NewPlatform(runtime.GOOS, "")
	}
	theme := ui.DefaultTheme()

	a := &App{
		app:      tview.NewApplication(),
		pages:    tview.NewPages(),
		registry: keys.NewRegistry(),
		platform: d.Platform,
		theme:    theme,
		tr:       d.Translator,
		flash:    ui.NewFlashModel(),
		status:   views.NewStatusBar(theme, d.Translator),
		menu:     ui.NewMenu(theme),
		help:     views.NewHelpView(theme),
		prompt:   ui.NewPrompt(theme, " / ", " "+d.Translator.T(i18n.PromptTitle)+" "),
		store:    d.Store,
		events:   d.Bus,
		refresh:  d.Refresh,
		logger:   d.Logger,
		ctx:      ctx,
		cancel:   cancel,
	}

	renderer := views.NewRowRenderer(theme, d.Translator, nil)
	a.list = views.NewConversationList(theme, d.Translator, renderer, func(p tview.Primitive) { a.app.SetFocus(p) })

	sched := debounce.Posted(debounce.Wall, a.post)
	a.reload = debounce.New(sched, reloadWait, 4*reloadWait, nil)
	a.ctrl = inbox.New(ctx, inbox.Deps{
		Viewport:   a.list,
		Keys:       d.Platform,
		Searcher:   d.Store,
		Scheduler:  sched,
		Translator: d.Translator,
		Post:       a.post,
		Logger:     d.Logger,
	}, d.Options)

	a.help.SetTitle(" " + d.Translator.T(i18n.HelpTitle) + " ")
	a.status.SetProfile(d.Profile)
	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

// post runs f on the UI goroutine and redraws.
func (a *App) post(f func()) {
	a.app.QueueUpdateDraw(f)
}

func (a *App) setupBindings() {
	a.registry.AddGlobal("quit", &keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Description: a.tr.T(i18n.HintQuit), Help: a.tr.T(i18n.HelpQuit), Visible: true,
		Handler: func() { a.Stop() },
	})
	a.registry.AddGlobal("help", &keys.Action{
		Rune: '?', Key: tcell.KeyRune,
		Description: a.tr.T(i18n.HintHelp), Help: a.tr.T(i18n.HelpToggleHelp), Visible: true,
		Handler: func() { a.toggleHelp() },
	})
	a.registry.AddView(scopeList, "search", &keys.Action{
		Rune: '/', Key: tcell.KeyRune,
		Description: a.tr.T(i18n.HintSearch), Help: a.tr.T(i18n.HelpSearch), Visible: true,
		Handler: func() { a.app.SetFocus(a.prompt) },
	})
	a.registry.AddView(scopeList, "archive", &keys.Action{
		Rune: 'a', Key: tcell.KeyRune,
		Description: a.tr.T(i18n.HintArchive), Help: a.tr.T(i18n.HelpArchive), Visible: true,
		Handler: func() { a.ctrl.ToggleMode() },
	})
	a.registry.AddView(scopeList, "back", &keys.Action{
		Key:         tcell.KeyEscape,
		Description: a.tr.T(i18n.HintBack), Help: a.tr.T(i18n.HelpBack), Visible: true,
		Handler:     func() { a.back() },
	})
	a.registry.AddView(scopeList, "tab", &keys.Action{
		Key:     tcell.KeyTab,
		Help:    a.tr.T(i18n.HelpTab),
		Handler: func() { a.app.SetFocus(a.prompt) },
	})
	a.registry.AddView(scopeHelp, "close", &keys.Action{
		Key:         tcell.KeyEscape,
		Description: a.tr.T(i18n.HintClose), Visible: true,
		Handler:     func() { a.toggleHelp() },
	})
}

func (a *App) setupCallbacks() {
	a.ctrl.OnChange(func(key rows.ListKey, reset bool) {
		// A mode switch drops the search; the prompt must not keep its text.
		if reset && a.ctrl.Query() == "" && a.prompt.GetText() != "" {
			a.prompt.Reset()
		}
		a.list.Update(a.ctrl.Addressor(), key, reset, a.ctrl.SelectedID())
		a.refreshStatus()
	})

	a.list.SetInputCapture(a.ctrl.HandleKey)
	a.list.OnSettle(a.ctrl.Rendered)
	a.list.OnContainerFocus(func() { a.ctrl.ContainerFocused() })
	a.list.OnActivate(a.activate)

	a.prompt.SetOnChange(func(text string) {
		a.ctrl.SetQuery(text)
		a.refreshStatus()
	})
	a.prompt.SetOnSubmit(func(string) {
		a.ctrl.SubmitSearch()
		a.app.SetFocus(a.list)
	})
	a.prompt.SetOnCancel(func() {
		a.ctrl.ClearSearch()
		a.prompt.Reset()
		a.app.SetFocus(a.list)
	})
	a.prompt.SetOnLeave(func() { a.app.SetFocus(a.list) })
}

func (a *App) refreshStatus() {
	s := a.ctrl.Sections()
	total := len(s.Pinned) + len(s.Regular)
	if a.ctrl.Mode() == rows.Archive {
		total = len(s.Archived)
	}
	a.status.SetList(a.ctrl.Mode(), total, a.ctrl.Query())
}

func (a *App) setupLayout() {
	a.help.Update(a.helpEntries())
	a.pages.AddPage(pageList, a.list, true, true)
	a.pages.AddPage(pageHelp, a.help, true, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.prompt, 3, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.menu, 1, 0, false).
		AddItem(a.status, 1, 0, false)

	a.app.SetRoot(root, true)
	a.app.SetFocus(a.list)
	a.menu.Update(a.registry.Hints(scopeList))

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Let the search prompt handle all keys normally.
		if a.prompt.HasFocus() {
			return event
		}
		scope := scopeList
		if page, _ := a.pages.GetFrontPage(); page == pageHelp {
			scope = scopeHelp
		}
		if a.registry.HandleEvent(scope, event) {
			return nil
		}
		return event
	})
}

func (a *App) helpEntries() []views.HelpEntry {
	entries := []views.HelpEntry{
		{Key: "Enter", Description: a.tr.T(i18n.HelpOpen)},
		{Key: a.platform.Label(keys.Chord{Key: tcell.KeyUp}), Description: a.tr.T(i18n.HelpJumpFirst)},
		{Key: a.platform.Label(keys.Chord{Key: tcell.KeyDown}), Description: a.tr.T(i18n.HelpJumpLast)},
	}
	for _, l := range a.registry.Help(scopeList) {
		entries = append(entries, views.HelpEntry{Key: l.Key, Description: l.Text})
	}
	return entries
}

func (a *App) toggleHelp() {
	if page, _ := a.pages.GetFrontPage(); page == pageHelp {
		a.pages.SwitchToPage(pageList)
		a.app.SetFocus(a.list)
		a.menu.Update(a.registry.Hints(scopeList))
		return
	}
	a.pages.SwitchToPage(pageHelp)
	a.app.SetFocus(a.help)
	a.menu.Update(a.registry.Hints(scopeHelp))
}

func (a *App) back() {
	if a.ctrl.Escape() {
		a.prompt.Reset()
	}
}

func (a *App) activate(row int) {
	act := a.ctrl.Activate(row)
	switch act.Kind {
	case inbox.ActivationOpen:
		a.flash.Info(act.Conversation.Title)
		if act.Conversation.IsUnread() {
			id := act.Conversation.ID
			go func() {
				if err := a.store.MarkRead(a.ctx, id); err != nil {
					a.logger.Warn("mark read failed", zap.String("id", id), zap.Error(err))
					a.flash.Err(err)
				}
			}()
		}
		a.list.Update(a.ctrl.Addressor(), a.ctrl.Key(), false, a.ctrl.SelectedID())
	case inbox.ActivationStartNew:
		a.flash.Info(a.tr.T(i18n.SearchStartNew, act.Query))
	}
}

// load fetches every conversation and hands the snapshot to the controller.
func (a *App) load() {
	go func() {
		all, err := a.store.ListConversations(a.ctx, store.FilterAll)
		if a.ctx.Err() != nil {
			return
		}
		a.post(func() {
			if err != nil {
				a.logger.Error("load conversations", zap.Error(err))
				a.flash.Err(err)
				return
			}
			a.ctrl.SetConversations(all)
		})
	}()
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	a.load()
	a.watchEvents()
	a.watchFlash()
	a.startRefreshLoop()
	defer a.cancel()
	return a.app.Run()
}

func (a *App) watchEvents() {
	if a.events == nil {
		return
	}
	ch, unsub := a.events.Subscribe(bus.NamespaceConversations, 16)
	go func() {
		defer unsub()
		for {
			select {
			case <-ch:
				a.post(func() {
					if a.reload.Pending() {
						a.logger.Debug("reload coalesced")
					}
					a.reload.Trigger(a.load)
				})
			case <-a.ctx.Done():
				a.logger.Debug("event watcher stopped", zap.Uint64("dropped", a.events.Dropped()))
				return
			}
		}
	}()
}

func (a *App) watchFlash() {
	go func() {
		for {
			select {
			case <-a.flash.Watch():
				a.post(func() { a.status.SetFlash(a.flash.Markup(a.theme)) })
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

func (a *App) startRefreshLoop() {
	if a.refresh <= 0 {
		return
	}
	ticker := time.NewTicker(a.refresh)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.post(func() {
					a.reload.Trigger(a.load)
					a.status.SetFlash(a.flash.Markup(a.theme))
				})
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}

var _ nav.KeyMapper = (*keys.Platform)(nil)
