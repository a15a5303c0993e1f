package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matheus3301/convo/internal/conversation"
	"github.com/matheus3301/convo/internal/debounce/debouncetest"
	"go.uber.org/goleak"
)

// gatedSearcher blocks each lookup until the test releases it.
type gatedSearcher struct {
	mu    sync.Mutex
	calls []string
	gates map[string]chan lookup
}

type lookup struct {
	res []conversation.Summary
	err error
}

func newGatedSearcher() *gatedSearcher {
	return &gatedSearcher{gates: make(map[string]chan lookup)}
}

func (g *gatedSearcher) gate(q string) chan lookup {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[q]
	if !ok {
		ch = make(chan lookup, 1)
		g.gates[q] = ch
	}
	return ch
}

func (g *gatedSearcher) SearchConversations(ctx context.Context, q string, _ Options) ([]conversation.Summary, error) {
	g.mu.Lock()
	g.calls = append(g.calls, q)
	g.mu.Unlock()
	select {
	case l := <-g.gate(q):
		return l.res, l.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedSearcher) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

type harness struct {
	t         *testing.T
	clock     *debouncetest.Clock
	searcher  *gatedSearcher
	posted    chan func()
	delivered []Result
	session   *Session
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		clock:    debouncetest.NewClock(),
		searcher: newGatedSearcher(),
		posted:   make(chan func(), 16),
	}
	h.session = NewSession(context.Background(), h.searcher, h.clock, h.clock.Now,
		func(f func()) { h.posted <- f }, DefaultConfig(), nil,
		func(r Result) { h.delivered = append(h.delivered, r) })
	return h
}

// release lets the lookup for q finish and runs its posted completion.
func (h *harness) release(q string, res []conversation.Summary, err error) {
	h.t.Helper()
	h.searcher.gate(q) <- lookup{res: res, err: err}
	select {
	case f := <-h.posted:
		f()
	case <-time.After(2 * time.Second):
		h.t.Fatalf("timeout waiting for lookup %q to complete", q)
	}
}

func (h *harness) waitCalls(n int) []string {
	h.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if calls := h.searcher.Calls(); len(calls) >= n {
			return calls
		}
		time.Sleep(time.Millisecond)
	}
	h.t.Fatalf("timeout waiting for %d lookups, got %v", n, h.searcher.Calls())
	return nil
}

func TestRapidEditsIssueOneLookup(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)

	h.session.SetQuery("a")
	h.clock.Advance(60 * time.Millisecond)
	h.session.SetQuery("ab")
	h.clock.Advance(60 * time.Millisecond)
	h.session.SetQuery("abc")
	h.clock.Advance(199 * time.Millisecond)
	if calls := h.searcher.Calls(); len(calls) != 0 {
		t.Fatalf("calls = %v before quiet period, want none", calls)
	}
	h.clock.Advance(time.Millisecond)

	calls := h.waitCalls(1)
	if len(calls) != 1 || calls[0] != "abc" {
		t.Fatalf("calls = %v, want [abc]", calls)
	}

	h.release("abc", []conversation.Summary{{ID: "c1"}}, nil)
	if len(h.delivered) != 1 || h.delivered[0].Query != "abc" {
		t.Fatalf("delivered = %+v, want one result for abc", h.delivered)
	}
}

func TestLateStaleResultDiscarded(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)

	h.session.SetQuery("a")
	h.clock.Advance(200 * time.Millisecond)
	h.waitCalls(1)

	h.session.SetQuery("abc")
	h.clock.Advance(200 * time.Millisecond)
	h.waitCalls(2)

	h.release("abc", []conversation.Summary{{ID: "abc-hit"}}, nil)
	h.release("a", []conversation.Summary{{ID: "a-hit"}}, nil)

	if len(h.delivered) != 1 {
		t.Fatalf("delivered %d results, want 1", len(h.delivered))
	}
	got := h.delivered[0]
	if got.Query != "abc" || len(got.Conversations) != 1 || got.Conversations[0].ID != "abc-hit" {
		t.Errorf("delivered = %+v, want latest abc", got)
	}
}

func TestClearingQueryInvalidatesInFlight(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)

	if !h.session.SetQuery("bob") {
		t.Fatal("SetQuery(bob) = false, want active")
	}
	h.clock.Advance(200 * time.Millisecond)
	h.waitCalls(1)

	if h.session.SetQuery("   ") {
		t.Fatal("SetQuery(blank) = true, want inactive")
	}
	h.release("bob", []conversation.Summary{{ID: "b"}}, nil)
	if len(h.delivered) != 0 {
		t.Errorf("delivered = %+v after clearing, want none", h.delivered)
	}
}

func TestClearingQueryCancelsPendingLookup(t *testing.T) {
	h := newHarness(t)
	h.session.SetQuery("bo")
	h.session.SetQuery("")
	h.clock.Advance(time.Second)
	if calls := h.searcher.Calls(); len(calls) != 0 {
		t.Errorf("calls = %v, want none", calls)
	}
}

func TestFailedLookupIsDelivered(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)

	h.session.SetQuery("x")
	h.clock.Advance(200 * time.Millisecond)
	h.waitCalls(1)
	h.release("x", nil, errors.New("engine down"))

	if len(h.delivered) != 1 || h.delivered[0].Err == nil {
		t.Fatalf("delivered = %+v, want one failed result", h.delivered)
	}
}

func TestSubmitIssuesImmediately(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)

	h.session.SetQuery("now")
	h.session.Submit()
	if calls := h.waitCalls(1); calls[0] != "now" {
		t.Fatalf("calls = %v, want [now]", calls)
	}
	h.release("now", nil, nil)
	if len(h.delivered) != 1 {
		t.Errorf("delivered = %d, want 1", len(h.delivered))
	}
}

func TestUnchangedQueryDoesNotReissue(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)

	h.session.SetQuery("same")
	h.clock.Advance(200 * time.Millisecond)
	h.waitCalls(1)
	h.release("same", nil, nil)

	h.session.SetQuery(" same ")
	h.clock.Advance(time.Second)
	if calls := h.searcher.Calls(); len(calls) != 1 {
		t.Errorf("calls = %v, want a single lookup", calls)
	}
}
