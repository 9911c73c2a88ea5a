// Package scheduler implements the cooperative, single-threaded,
// run-to-completion task scheduler: an ordered main queue, an ISR
// handoff ring drained on every Step, and the status/observer surface
// built on top of them.
//
// Foreground scheduling entries (ScheduleAt/ScheduleIn/ScheduleNow,
// RescheduleNow/RescheduleIn, Remove, Step) are not safe to call
// concurrently with each other or from interrupt context. Only the
// ISR-prefixed entries (ISRScheduleAt/ISRScheduleIn/ISRScheduleNow)
// are interrupt-safe; they never touch the main queue, matching the
// design documented in SPEC_FULL.md's Resolved Open Questions. Besides
// the SPSC ring, ISRScheduleIn/ISRScheduleNow read the clock source,
// and ISRScheduleAt calls the rate limiter and the Logger when the
// ring is full; those calls run in the ISR caller's context.
package scheduler

import (
	"time"

	"github.com/driftwood-systems/schedcore/dlist"
	"github.com/driftwood-systems/schedcore/isrqueue"
	"github.com/driftwood-systems/schedcore/schedtime"
	"github.com/driftwood-systems/schedcore/task"
)

var clockEpoch = time.Now()

func defaultClock() schedtime.Time {
	return schedtime.Time(time.Since(clockEpoch).Nanoseconds())
}

// GetDefaultIdleTask returns a fresh no-op idle task: a task whose
// callable tolerates being invoked with an absent argument and does
// nothing. Each call returns a distinct *task.Task so that multiple
// Scheduler instances never share idle-task profiling counters.
func GetDefaultIdleTask() *task.Task {
	return task.New(func(ctx, arg any) {}, nil, "idle")
}

// Scheduler is the ordered main queue plus ISR handoff ring described
// by package scheduler's doc comment. The zero value is not usable;
// construct with [New].
type Scheduler struct {
	main    dlist.Link
	clock   schedtime.Clock
	idle    *task.Task
	current *task.Task
	ring    *isrqueue.Ring[*task.Task]
	logger  Logger
	limiter diagnosticLimiter
}

// diagnosticLimiter is the subset of *catrate.Limiter the scheduler
// needs, so a nil *catrate.Limiter (the default, when
// WithDiagnosticRateLimit is not used) can be represented without a
// separate bool flag.
type diagnosticLimiter interface {
	Allow(category any) (time.Time, bool)
}

// New constructs a Scheduler. With no options, it uses a monotonic
// nanosecond clock source, the built-in no-op idle task, a 64-slot ISR ring,
// and a no-op Logger -- init() from the original design, expressed as
// defaults rather than a separate step.
func New(opts ...Option) (*Scheduler, error) {
	c, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	s := &Scheduler{
		clock:  c.clock,
		idle:   c.idle,
		ring:   isrqueue.New[*task.Task](c.isrRingCapacity),
		logger: c.logger,
	}
	if c.limiter != nil {
		s.limiter = c.limiter
	}
	dlist.Init(&s.main)
	return s, nil
}

// Reset drains the ISR ring and main queue without invoking any task.
// Every drained task's link becomes unlinked. The currently-running
// reference, if any, is cleared.
func (s *Scheduler) Reset() {
	for {
		if _, ok := s.ring.Pop(); !ok {
			break
		}
	}
	for {
		link := dlist.PopFront(&s.main)
		if link == nil {
			break
		}
	}
	s.current = nil
	s.logger.Info("scheduler reset")
}

// SetClockSource replaces the time source queried by Step and every
// schedule call.
func (s *Scheduler) SetClockSource(clock schedtime.Clock) {
	if clock == nil {
		return
	}
	s.clock = clock
}

// GetClockSource returns the current time source.
func (s *Scheduler) GetClockSource() schedtime.Clock {
	return s.clock
}

// GetCurrentTime returns the current time, as reported by the active
// clock source.
func (s *Scheduler) GetCurrentTime() schedtime.Time {
	return s.clock()
}

// SetIdleTask replaces the task invoked when no main-queue task is
// runnable.
func (s *Scheduler) SetIdleTask(t *task.Task) error {
	if t == nil {
		return ErrNullTask
	}
	s.idle = t
	return nil
}

// GetIdleTask returns the task currently configured to run on idle.
func (s *Scheduler) GetIdleTask() *task.Task {
	return s.idle
}

// queue inserts t into the main queue at its ordered position,
// unlinking it first if it was already linked anywhere. This is the
// "ordered insertion policy" from spec.md §4.4: scan from the head,
// stop at the first existing element whose fire-time is strictly
// preceded by t's fire-time, insert before it. Equal fire-times fall
// through to the end of their run, preserving insertion order.
func (s *Scheduler) queue(t *task.Task) {
	dlist.Unlink(t.Link())
	at := t.Time()
	anchor := dlist.Traverse(&s.main, func(e *dlist.Link) bool {
		return schedtime.Precedes(at, task.FromLink(e).Time())
	})
	if anchor == nil {
		anchor = &s.main
	}
	dlist.InsertBefore(anchor, t.Link())
}

// ScheduleAt is task_at: unlink t if linked, set its fire-time to at,
// and insert it into the main queue at the correct ordered position.
func (s *Scheduler) ScheduleAt(t *task.Task, at schedtime.Time) error {
	if t == nil {
		return ErrNullTask
	}
	t.SetTime(at)
	s.queue(t)
	s.logger.Debug("task scheduled", "name", t.Name(), "at", uint64(at))
	return nil
}

// ScheduleIn is task_in: schedule t to fire at the current time plus
// d.
func (s *Scheduler) ScheduleIn(t *task.Task, d schedtime.Duration) error {
	if t == nil {
		return ErrNullTask
	}
	return s.ScheduleAt(t, schedtime.Offset(s.GetCurrentTime(), d))
}

// ScheduleNow is task_now: schedule t to fire at the current time.
func (s *Scheduler) ScheduleNow(t *task.Task) error {
	if t == nil {
		return ErrNullTask
	}
	return s.ScheduleAt(t, s.GetCurrentTime())
}

// RescheduleNow is reschedule_now: sets the currently-running task's
// fire-time to the current time and re-inserts it, yielding to any
// other tasks already runnable at that time. Returns ErrNotFound if
// there is no currently-running task (i.e. not called from within a
// task's callable).
func (s *Scheduler) RescheduleNow() error {
	if s.current == nil {
		return ErrNotFound
	}
	return s.ScheduleNow(s.current)
}

// RescheduleIn is reschedule_in: increments the currently-running
// task's existing fire-time by d -- not current time plus d -- so a
// periodic task maintains cadence even if a step was invoked late.
// Returns ErrNotFound if there is no currently-running task.
func (s *Scheduler) RescheduleIn(d schedtime.Duration) error {
	if s.current == nil {
		return ErrNotFound
	}
	return s.ScheduleAt(s.current, schedtime.Offset(s.current.Time(), d))
}

// Remove unlinks t from the main queue. Returns ErrNotFound if t was
// not linked (it was already idle, active, or never scheduled).
func (s *Scheduler) Remove(t *task.Task) error {
	if t == nil {
		return ErrNullTask
	}
	if dlist.Unlink(t.Link()) == nil {
		return ErrNotFound
	}
	s.logger.Debug("task removed", "name", t.Name())
	return nil
}

// ISRScheduleAt is isr_task_at: sets t's fire-time and pushes it onto
// the ISR handoff ring. Safe to call from interrupt context; never
// touches the main queue. Returns ErrFull if the ring has no free
// slots, after logging a warning (throttled by the diagnostic rate
// limiter, if any) from the caller's context.
func (s *Scheduler) ISRScheduleAt(t *task.Task, at schedtime.Time) error {
	if t == nil {
		return ErrNullTask
	}
	t.SetTime(at)
	if err := s.ring.Push(t); err != nil {
		s.diagnostic("isr_full", func() { s.logger.Warn("isr ring full", "name", t.Name()) })
		return ErrFull
	}
	return nil
}

// ISRScheduleIn is isr_task_in.
func (s *Scheduler) ISRScheduleIn(t *task.Task, d schedtime.Duration) error {
	if t == nil {
		return ErrNullTask
	}
	return s.ISRScheduleAt(t, schedtime.Offset(s.GetCurrentTime(), d))
}

// ISRScheduleNow is isr_task_now.
func (s *Scheduler) ISRScheduleNow(t *task.Task) error {
	if t == nil {
		return ErrNullTask
	}
	return s.ISRScheduleAt(t, s.GetCurrentTime())
}

// drain empties the ISR ring into the main queue, in ISR enqueue
// order, per the ordered-insertion policy. Each popped task's
// fire-time was already set at enqueue time by the isr* entries.
func (s *Scheduler) drain() {
	for {
		t, ok := s.ring.Pop()
		if !ok {
			return
		}
		s.queue(t)
	}
}

// Step is the scheduler's sole run point: (1) drain the ISR ring into
// the main queue; (2) if the main queue's head task's fire-time does
// not follow the current time, pop it, mark it as currently-running,
// invoke it, then clear currently-running; otherwise invoke the idle
// task with no currently-running marker. Always returns nil -- the
// original design's NONE -- and is retained as an error return only
// so a future failure mode has somewhere to surface without an API
// break.
func (s *Scheduler) Step() error {
	s.drain()

	now := s.GetCurrentTime()
	head := dlist.First(&s.main)
	if head != nil {
		t := task.FromLink(head)
		if !schedtime.Follows(t.Time(), now) {
			dlist.Unlink(head)
			s.current = t
			s.logger.Debug("task firing", "name", t.Name())
			t.Call(nil)
			s.current = nil
			return nil
		}
	}

	s.diagnostic("idle", func() { s.logger.Debug("idle task invoked") })
	s.idle.Call(nil)
	return nil
}

// diagnostic logs via fn, throttled by the configured rate limiter
// (if any) under category. With no limiter configured, fn always
// runs -- still subject to the Logger's own level filtering.
func (s *Scheduler) diagnostic(category string, fn func()) {
	if s.limiter != nil {
		if _, ok := s.limiter.Allow(category); !ok {
			return
		}
	}
	fn()
}

// TaskCount returns the number of tasks currently in the main queue.
// O(n); for diagnostics.
func (s *Scheduler) TaskCount() int {
	return dlist.Length(&s.main)
}

// IsEmpty reports whether the main queue has no tasks.
func (s *Scheduler) IsEmpty() bool {
	return dlist.IsEmpty(&s.main)
}

// GetCurrentTask returns the currently-running task, or nil between
// steps (or while the idle task is running -- the idle task is never
// "the currently-running task" per spec.md's state machine).
func (s *Scheduler) GetCurrentTask() *task.Task {
	return s.current
}

// GetNextTask returns the main queue's head task (the next one Step
// would run), or nil if the queue is empty.
func (s *Scheduler) GetNextTask() *task.Task {
	head := dlist.First(&s.main)
	if head == nil {
		return nil
	}
	return task.FromLink(head)
}

// GetTaskStatus reports t's current Status with respect to s.
func (s *Scheduler) GetTaskStatus(t *task.Task) Status {
	if t == s.current {
		return Active
	}
	if !t.Scheduled() {
		return Idle
	}
	if schedtime.Follows(t.Time(), s.GetCurrentTime()) {
		return Scheduled
	}
	return Runnable
}

// Traverse walks the main queue head-to-tail, invoking fn with each
// task and its Status (always Scheduled or Runnable -- Traverse is
// never called mid-Step), stopping early if fn returns false. This
// completes mu_sched_traverse, left as a TODO in the original design
// this module was distilled from; see SPEC_FULL.md's Supplemented
// Features.
func (s *Scheduler) Traverse(fn func(t *task.Task, status Status) (cont bool)) {
	dlist.Traverse(&s.main, func(e *dlist.Link) bool {
		t := task.FromLink(e)
		return !fn(t, s.GetTaskStatus(t))
	})
}
