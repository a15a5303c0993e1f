package inbox

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/convo/internal/conversation"
	"github.com/matheus3301/convo/internal/debounce"
	"github.com/matheus3301/convo/internal/i18n"
	"github.com/matheus3301/convo/internal/nav"
	"github.com/matheus3301/convo/internal/rows"
	"github.com/matheus3301/convo/internal/search"
	"go.uber.org/zap"
)

// Options tunes the controller's search and focus timing.
type Options struct {
	Search search.Config
	Focus  nav.Options
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{Search: search.DefaultConfig(), Focus: nav.DefaultOptions()}
}

// Deps are the collaborators a Controller drives.
type Deps struct {
	Viewport   nav.Viewport
	Keys       nav.KeyMapper
	Searcher   search.Searcher
	Scheduler  debounce.Scheduler
	Translator i18n.Translator
	// Post hands a function to the UI goroutine.
	Post   func(func())
	Now    func() time.Time
	Logger *zap.Logger
}

// ActivationKind says what activating a row did.
type ActivationKind int

const (
	ActivationNone ActivationKind = iota
	ActivationOpen
	ActivationArchive
	ActivationStartNew
)

// Activation is the outcome of Activate.
type Activation struct {
	Kind         ActivationKind
	Conversation conversation.Summary
	// Query is the number typed for ActivationStartNew.
	Query string
}

// Controller is the single owner of list state. The view pulls rows from
// Addressor and is told to redraw through the change callback.
type Controller struct {
	logger *zap.Logger
	tr     i18n.Translator

	modes      ModeController
	sections   conversation.Sections
	projection rows.Projection
	key        rows.ListKey
	selectedID string

	coord    *nav.Coordinator
	nav      *nav.Navigator
	search   *search.Session
	onChange func(key rows.ListKey, reset bool)
}

// New creates a controller in inbox mode with no conversations. ctx bounds
// search lookups.
func New(ctx context.Context, d Deps, opts Options) *Controller {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	c := &Controller{
		logger:   d.Logger,
		tr:       d.Translator,
		onChange: func(rows.ListKey, bool) {},
	}
	c.coord = nav.NewCoordinator(d.Viewport, d.Scheduler, opts.Focus, d.Now, d.Logger.Named("nav"))
	c.nav = nav.NewNavigator(d.Keys, d.Viewport, c.coord, func() int { return c.Addressor().Count() })
	c.search = search.NewSession(ctx, d.Searcher, d.Scheduler, d.Now, d.Post, opts.Search,
		d.Logger.Named("search"), c.applyResult)
	return c
}

// OnChange registers the callback run after every state change. reset is
// true when the list key changed and the view must drop its scroll offset.
func (c *Controller) OnChange(fn func(key rows.ListKey, reset bool)) {
	c.onChange = fn
}

// Addressor returns the addressor for the current snapshot.
func (c *Controller) Addressor() rows.Addressor {
	return rows.New(c.sections, c.projection, c.modes.Mode())
}

// Key returns the current list key.
func (c *Controller) Key() rows.ListKey { return c.key }

// Mode returns the current view mode.
func (c *Controller) Mode() rows.ViewMode { return c.modes.Mode() }

// Sections returns the current sections.
func (c *Controller) Sections() conversation.Sections { return c.sections }

// Query returns the active search query, or "".
func (c *Controller) Query() string { return c.search.Query() }

// Coordinator exposes the focus coordinator.
func (c *Controller) Coordinator() *nav.Coordinator { return c.coord }

// SetConversations replaces every conversation with the given snapshot. An
// opened conversation missing from the snapshot is no longer selected.
func (c *Controller) SetConversations(all []conversation.Summary) {
	sections, dropped := conversation.NewSections(all)
	for _, d := range dropped {
		c.logger.Warn("duplicate conversation id dropped", zap.String("id", d.ID))
	}
	c.sections = sections
	if _, ok := sections.Find(c.selectedID); c.selectedID != "" && !ok {
		c.logger.Debug("opened conversation gone", zap.String("id", c.selectedID))
		c.selectedID = ""
	}
	c.changed(false)
}

// SetMode switches the view mode. A switch clears the search and any
// pending focus intent and starts a new list. It reports whether the mode
// changed.
func (c *Controller) SetMode(mode rows.ViewMode) bool {
	if !c.modes.Set(mode) {
		return false
	}
	c.modeSwitched()
	return true
}

// ToggleMode flips between inbox and archive.
func (c *Controller) ToggleMode() {
	c.modes.Toggle()
	c.modeSwitched()
}

func (c *Controller) modeSwitched() {
	c.search.Reset()
	c.projection = nil
	c.coord.Clear("mode switch")
	c.logger.Info("view mode changed", zap.Stringer("mode", c.modes.Mode()))
	c.changed(true)
}

// SetQuery records an edit of the search text. A blank query drops the
// projection immediately; anything else is looked up after the debounce
// period. Starting a search clears the pending focus intent.
func (c *Controller) SetQuery(raw string) {
	wasActive := c.search.Query() != ""
	active := c.search.SetQuery(raw)
	switch {
	case active && !wasActive:
		c.coord.Clear("search activated")
	case !active && wasActive:
		c.dropProjection()
	}
}

// SubmitSearch looks up the pending query without waiting.
func (c *Controller) SubmitSearch() { c.search.Submit() }

// ClearSearch drops the query and projection and reports whether a search
// was active.
func (c *Controller) ClearSearch() bool {
	active := c.search.Query() != "" || c.projection != nil
	c.search.Reset()
	if active {
		c.dropProjection()
	}
	return active
}

// Escape backs out one level: out of search first, then out of archive.
func (c *Controller) Escape() bool {
	if c.ClearSearch() {
		return true
	}
	return c.SetMode(rows.Inbox)
}

func (c *Controller) dropProjection() {
	if c.projection == nil {
		return
	}
	c.projection = nil
	c.changed(true)
}

func (c *Controller) applyResult(r search.Result) {
	wasSearching := c.projection != nil
	switch {
	case r.Err == nil:
		c.projection = search.BuildProjection(r.Query, r.Conversations, c.tr)
	case c.projection == nil:
		c.projection = rows.Projection{}
	default:
		// Keep what is shown.
		return
	}
	c.changed(!wasSearching)
}

// Select records the conversation the user opened.
func (c *Controller) Select(id string) { c.selectedID = id }

// SelectedID returns the opened conversation id, or "".
func (c *Controller) SelectedID() string { return c.selectedID }

// Activate acts on the row at index i as if it were clicked.
func (c *Controller) Activate(i int) Activation {
	a := c.Addressor()
	if i < 0 || i >= a.Count() {
		return Activation{}
	}
	row := a.At(i)
	switch r := row.(type) {
	case rows.ArchiveButton:
		c.SetMode(rows.Archive)
		return Activation{Kind: ActivationArchive}
	case rows.Header:
		return Activation{}
	case rows.PinnedConversation, rows.Conversation, rows.ArchivedConversation:
		summary, _ := a.Resolve(r)
		c.Select(summary.ID)
		return Activation{Kind: ActivationOpen, Conversation: summary}
	case rows.SearchRow:
		if start, ok := r.Item.(rows.StartNewConversation); ok {
			return Activation{Kind: ActivationStartNew, Query: start.Query}
		}
		summary, ok := a.Resolve(r)
		if !ok {
			return Activation{}
		}
		c.Select(summary.ID)
		return Activation{Kind: ActivationOpen, Conversation: summary}
	default:
		rows.Unhandled(row)
		return Activation{}
	}
}

// HandleKey is the list's input capture for jump shortcuts.
func (c *Controller) HandleKey(ev *tcell.EventKey) *tcell.EventKey {
	return c.nav.HandleKey(ev)
}

// Rendered forwards a draw notification to the focus coordinator.
func (c *Controller) Rendered() { c.coord.Rendered() }

// ContainerFocused restores focus to the selected conversation's row when
// the list itself receives focus.
func (c *Controller) ContainerFocused() bool {
	return c.coord.ContainerFocused(c.selectedID)
}

func (c *Controller) changed(reset bool) {
	if reset {
		c.key = rows.ListKey{
			Mode:       c.modes.Mode(),
			Searching:  c.projection != nil,
			Generation: c.key.Generation + 1,
		}
	}
	c.onChange(c.key, reset)
}
