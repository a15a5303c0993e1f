package nav

import (
	"fmt"
	"time"

	"github.com/matheus3301/convo/internal/debounce"
	"github.com/matheus3301/convo/internal/rows"
	"go.uber.org/zap"
)

// Intent is a pending request to move focus once its target is drawn.
type Intent int

const (
	IntentNone Intent = iota
	IntentFocusFirst
	IntentFocusLast
)

func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "none"
	case IntentFocusFirst:
		return "focus-first"
	case IntentFocusLast:
		return "focus-last"
	}
	return fmt.Sprintf("Intent(%d)", int(i))
}

// State is the coordinator's state.
type State int

const (
	Idle State = iota
	PendingFirst
	PendingLast
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case PendingFirst:
		return "PENDING_FIRST"
	case PendingLast:
		return "PENDING_LAST"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options tunes settle coalescing and the abandonment bound.
type Options struct {
	SettleWait    time.Duration
	SettleMaxWait time.Duration
	// MaxAttempts is the number of settles without a drawn target after
	// which the intent is dropped.
	MaxAttempts int
}

// DefaultOptions returns the stock settle tuning.
func DefaultOptions() Options {
	return Options{
		SettleWait:    100 * time.Millisecond,
		SettleMaxWait: 100 * time.Millisecond,
		MaxAttempts:   5,
	}
}

// Coordinator holds at most one focus intent and satisfies it on the first
// settle that finds the target drawn. It must be used from a single
// goroutine.
type Coordinator struct {
	viewport    Viewport
	logger      *zap.Logger
	settle      *debounce.Debouncer
	maxAttempts int

	state    State
	attempts int
}

// NewCoordinator creates an idle coordinator.
func NewCoordinator(vp Viewport, sched debounce.Scheduler, opts Options, now func() time.Time, logger *zap.Logger) *Coordinator {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultOptions().MaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		viewport:    vp,
		logger:      logger,
		settle:      debounce.New(sched, opts.SettleWait, opts.SettleMaxWait, now),
		maxAttempts: opts.MaxAttempts,
	}
}

// State returns the current state.
func (c *Coordinator) State() State { return c.state }

// Intent returns the pending intent.
func (c *Coordinator) Intent() Intent {
	switch c.state {
	case PendingFirst:
		return IntentFocusFirst
	case PendingLast:
		return IntentFocusLast
	}
	return IntentNone
}

// Request replaces any pending intent with i. IntentNone clears.
func (c *Coordinator) Request(i Intent) {
	switch i {
	case IntentFocusFirst:
		c.transition(PendingFirst)
	case IntentFocusLast:
		c.transition(PendingLast)
	default:
		c.Clear("request none")
		return
	}
	c.attempts = 0
}

// Clear drops the pending intent from any state.
func (c *Coordinator) Clear(reason string) {
	c.settle.Cancel()
	c.attempts = 0
	if c.state != Idle {
		c.logger.Debug("focus intent cleared",
			zap.Stringer("state", c.state), zap.String("reason", reason))
	}
	c.transition(Idle)
}

// Rendered notifies the coordinator that the list drew. Bursts of
// notifications collapse into one Settle. Nothing is scheduled while idle.
func (c *Coordinator) Rendered() {
	if c.state == Idle {
		return
	}
	c.settle.Trigger(c.Settle)
}

// Settle tries to satisfy the pending intent against the drawn rows.
func (c *Coordinator) Settle() {
	if c.state == Idle {
		return
	}
	mounted := c.viewport.MountedRows()

	var target int
	var found bool
	switch c.state {
	case PendingFirst:
		target, found = firstSelectable(mounted)
	case PendingLast:
		target, found = archiveButton(mounted)
		if !found {
			target, found = lastSelectable(mounted)
		}
	}

	if found {
		c.viewport.FocusRow(target)
		c.attempts = 0
		c.transition(Idle)
		return
	}

	c.attempts++
	if c.attempts >= c.maxAttempts {
		c.logger.Debug("focus intent abandoned",
			zap.Stringer("state", c.state), zap.Int("attempts", c.attempts))
		c.attempts = 0
		c.transition(Idle)
	}
}

// ContainerFocused handles focus arriving on the list itself. While an
// intent is pending it does nothing; otherwise it focuses the drawn row of
// the selected conversation, or the first drawn selectable row. It reports
// whether a row was focused.
func (c *Coordinator) ContainerFocused(selectedID string) bool {
	if c.state != Idle {
		return false
	}
	mounted := c.viewport.MountedRows()
	if selectedID != "" {
		for _, m := range mounted {
			if m.DataID == selectedID && m.Selectable() {
				c.viewport.FocusRow(m.Index)
				return true
			}
		}
	}
	if i, ok := firstSelectable(mounted); ok {
		c.viewport.FocusRow(i)
		return true
	}
	return false
}

func (c *Coordinator) transition(to State) {
	c.state = to
}

func firstSelectable(mounted []MountedRow) (int, bool) {
	for _, m := range mounted {
		if m.Selectable() {
			return m.Index, true
		}
	}
	return 0, false
}

func lastSelectable(mounted []MountedRow) (int, bool) {
	for i := len(mounted) - 1; i >= 0; i-- {
		if mounted[i].Selectable() {
			return mounted[i].Index, true
		}
	}
	return 0, false
}

func archiveButton(mounted []MountedRow) (int, bool) {
	for _, m := range mounted {
		if _, ok := m.Row.(rows.ArchiveButton); ok {
			return m.Index, true
		}
	}
	return 0, false
}
