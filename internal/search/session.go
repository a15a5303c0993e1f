// Package search runs debounced conversation lookups and turns their
// results into list projections.
package search

import (
	"context"
	"strings"
	"time"

	"github.com/matheus3301/convo/internal/conversation"
	"github.com/matheus3301/convo/internal/debounce"
	"go.uber.org/zap"
)

// Options are passed through to the search engine.
type Options struct {
	Limit int
}

// Searcher is the external search engine.
type Searcher interface {
	SearchConversations(ctx context.Context, query string, opts Options) ([]conversation.Summary, error)
}

// Result is a completed lookup.
type Result struct {
	RequestID     uint64
	Query         string
	Conversations []conversation.Summary
	Err           error
}

// Config tunes a Session.
type Config struct {
	Debounce time.Duration
	Limit    int
	// Timeout bounds one lookup; zero means no bound.
	Timeout time.Duration
}

// DefaultConfig returns the stock search tuning.
func DefaultConfig() Config {
	return Config{Debounce: 200 * time.Millisecond, Limit: 50, Timeout: 10 * time.Second}
}

// Session debounces query edits into lookups and delivers only the result
// of the most recently issued lookup. Older lookups are left to finish and
// their results are dropped.
//
// All methods, and the deliver callback, run on the goroutine the Scheduler
// and post function deliver to.
type Session struct {
	ctx      context.Context
	searcher Searcher
	debounce *debounce.Debouncer
	post     func(func())
	deliver  func(Result)
	cfg      Config
	logger   *zap.Logger

	query  string
	latest uint64
}

// NewSession creates a search session. post hands a lookup's completion
// back to the owning goroutine; deliver receives the latest result.
func NewSession(ctx context.Context, searcher Searcher, sched debounce.Scheduler, now func() time.Time, post func(func()), cfg Config, logger *zap.Logger, deliver func(Result)) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		ctx:      ctx,
		searcher: searcher,
		debounce: debounce.New(sched, cfg.Debounce, 0, now),
		post:     post,
		deliver:  deliver,
		cfg:      cfg,
		logger:   logger,
	}
}

// SetQuery records the raw query text. A non-blank query schedules a lookup
// after the debounce period; a blank one cancels any pending lookup and
// invalidates lookups in flight. It reports whether a search is active.
func (s *Session) SetQuery(raw string) bool {
	q := strings.TrimSpace(raw)
	if q == s.query {
		return q != ""
	}
	if q == "" {
		s.Reset()
		return false
	}
	s.query = q
	s.debounce.Trigger(func() { s.issue(q) })
	return true
}

// Submit issues the pending lookup immediately.
func (s *Session) Submit() {
	s.debounce.Flush()
}

// Reset clears the query and invalidates pending and in-flight lookups.
func (s *Session) Reset() {
	s.query = ""
	s.Invalidate()
}

// Invalidate drops the pending lookup and marks every lookup issued so far
// as stale.
func (s *Session) Invalidate() {
	s.debounce.Cancel()
	s.latest++
}

// Query returns the current trimmed query.
func (s *Session) Query() string { return s.query }

func (s *Session) issue(q string) {
	s.latest++
	id := s.latest
	s.logger.Debug("search issued", zap.Uint64("request_id", id), zap.Int("query_len", len(q)))

	go func() {
		ctx, cancel := s.lookupContext()
		defer cancel()
		res, err := s.searcher.SearchConversations(ctx, q, Options{Limit: s.cfg.Limit})
		s.post(func() {
			s.complete(Result{RequestID: id, Query: q, Conversations: res, Err: err})
		})
	}()
}

func (s *Session) lookupContext() (context.Context, context.CancelFunc) {
	if s.cfg.Timeout > 0 {
		return context.WithTimeout(s.ctx, s.cfg.Timeout)
	}
	return context.WithCancel(s.ctx)
}

func (s *Session) complete(r Result) {
	if r.RequestID != s.latest {
		s.logger.Debug("stale search result discarded",
			zap.Uint64("request_id", r.RequestID), zap.Uint64("latest", s.latest))
		return
	}
	if r.Err != nil {
		s.logger.Warn("search failed", zap.Uint64("request_id", r.RequestID), zap.Error(r.Err))
	}
	s.deliver(r)
}
