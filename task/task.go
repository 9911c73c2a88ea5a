// Package task defines the deferrable unit of work the scheduler
// queues and runs: a time-ordered link, a fire-time, and a deferred
// call (a context value plus a two-argument callable).
//
// A Task's lifetime is owned entirely by the caller -- [New] allocates
// it once on the caller's behalf, the scheduler never allocates or
// frees a Task, and a Task must not be reused or
// destroyed while it is linked into a scheduler's queue (check
// [Task.Scheduled] first).
package task

import (
	"time"
	"unsafe"

	"github.com/driftwood-systems/schedcore/dlist"
	"github.com/driftwood-systems/schedcore/schedtime"
)

// Func is the deferred call a Task invokes when it fires. ctx is the
// context value the Task was constructed with; arg is always nil when
// the scheduler invokes a task from Step, and is reserved for direct
// callers that want to pass something through [Task.Call] themselves.
type Func func(ctx any, arg any)

// Task is a deferrable unit of work. The zero value is not usable;
// construct with [New]. A Task's embedded [dlist.Link] is the sole
// piece of state that determines whether it is scheduled -- there is
// no separate "is scheduled" flag to fall out of sync.
type Task struct {
	link   dlist.Link
	fireAt schedtime.Time
	fn     Func
	ctx    any
	name   string
	stats  taskStats
}

// New constructs a Task bound to fn and ctx. name is used only for
// diagnostics (profiling output, logging); it may be empty.
func New(fn Func, ctx any, name string) *Task {
	return &Task{fn: fn, ctx: ctx, name: name}
}

// Link returns the embedded intrusive link, for use by a scheduler's
// queue implementation. Callers outside package scheduler should treat
// this as opaque.
func (t *Task) Link() *dlist.Link {
	return &t.link
}

// FromLink recovers the Task containing link, the Go analogue of the
// original implementation's MU_DLIST_CONTAINER container_of macro.
// link must have been obtained from that same Task's Link method;
// passing any other *dlist.Link is undefined behavior. This relies on
// link being Task's first field, so its address equals the Task's.
func FromLink(link *dlist.Link) *Task {
	return (*Task)(unsafe.Pointer(link))
}

// Scheduled reports whether the task is currently linked into some
// queue (i.e. not idle and not the currently-running task, from the
// link's point of view -- a scheduler layers RUNNING/ACTIVE semantics
// on top of this).
func (t *Task) Scheduled() bool {
	return t.link.Linked()
}

// Time returns the task's fire-time.
func (t *Task) Time() schedtime.Time {
	return t.fireAt
}

// SetTime sets the task's fire-time. It does not reorder the task
// within any queue it may currently belong to; that is the scheduler's
// job (see scheduler.Scheduler.ScheduleAt et al.).
func (t *Task) SetTime(at schedtime.Time) {
	t.fireAt = at
}

// Name returns the task's diagnostic name, or "" if none was given.
func (t *Task) Name() string {
	return t.name
}

// Context returns the context value the task was constructed with.
func (t *Task) Context() any {
	return t.ctx
}

// Call invokes the task's deferred call with arg, updating profiling
// counters around the call when profiling is built in (see
// stats_profiling.go / stats_noprofiling.go).
func (t *Task) Call(arg any) {
	start := t.stats.begin()
	t.fn(t.ctx, arg)
	t.stats.end(start)
}

// CallCount returns the number of times Call has completed. Always 0
// in a build without the profiling tag.
func (t *Task) CallCount() uint64 {
	return t.stats.callCount()
}

// TotalRuntime returns the accumulated time spent inside Call. Always
// 0 in a build without the profiling tag.
func (t *Task) TotalRuntime() time.Duration {
	return t.stats.totalRuntime()
}

// MaxRuntime returns the longest single Call observed. Always 0 in a
// build without the profiling tag.
func (t *Task) MaxRuntime() time.Duration {
	return t.stats.maxRuntime()
}
