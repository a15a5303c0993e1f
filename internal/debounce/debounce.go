// Package debounce coalesces bursts of calls into one trailing call.
package debounce

import "time"

// Timer is a scheduled callback that can be stopped before it fires.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. Implementations decide which goroutine f
// runs on; the TUI schedules onto the tview event loop so callers never see
// concurrent access.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, f func()) Timer

// AfterFunc implements Scheduler.
func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer { return fn(d, f) }

// Wall schedules on the runtime timer and runs f on the timer goroutine.
var Wall Scheduler = SchedulerFunc(func(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
})

// Posted wraps a Scheduler so every callback is handed to post instead of
// being run directly, e.g. tview's Application.QueueUpdateDraw.
func Posted(s Scheduler, post func(func())) Scheduler {
	return SchedulerFunc(func(d time.Duration, f func()) Timer {
		return s.AfterFunc(d, func() { post(f) })
	})
}

// Debouncer runs the most recently triggered function once calls have been
// quiet for Wait, or once MaxWait has elapsed since the first call of a
// burst, whichever is first. A zero MaxWait disables the upper bound.
//
// A Debouncer is not safe for concurrent use; its Scheduler must deliver
// callbacks on the goroutine that calls Trigger.
type Debouncer struct {
	wait    time.Duration
	maxWait time.Duration
	sched   Scheduler
	now     func() time.Time

	timer    Timer
	fn       func()
	first    time.Time
	gen      uint64
	inFlight bool
}

// New creates a debouncer. now may be nil to use time.Now.
func New(sched Scheduler, wait, maxWait time.Duration, now func() time.Time) *Debouncer {
	if now == nil {
		now = time.Now
	}
	return &Debouncer{wait: wait, maxWait: maxWait, sched: sched, now: now}
}

// Trigger records fn as the pending call and restarts the quiet period.
func (d *Debouncer) Trigger(fn func()) {
	d.fn = fn
	now := d.now()
	if !d.inFlight {
		d.first = now
		d.inFlight = true
	}

	delay := d.wait
	if d.maxWait > 0 {
		if remaining := d.maxWait - now.Sub(d.first); remaining < delay {
			delay = max(remaining, 0)
		}
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.sched.AfterFunc(delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	// A stopped timer may still deliver if it was already queued.
	if gen != d.gen || !d.inFlight {
		return
	}
	fn := d.fn
	d.reset()
	if fn != nil {
		fn()
	}
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.reset()
}

// Flush runs the pending call immediately.
func (d *Debouncer) Flush() {
	if !d.inFlight {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	fn := d.fn
	d.reset()
	if fn != nil {
		fn()
	}
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool { return d.inFlight }

func (d *Debouncer) reset() {
	d.timer = nil
	d.fn = nil
	d.inFlight = false
}
