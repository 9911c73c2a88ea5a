package scheduler

import "errors"

// Sentinel errors replacing the enumerated error kind from the
// original design. A nil error is that design's NONE/success.
var (
	// ErrEmpty is the error kind for an operation that requires a
	// present task when none applies. No entry currently returns it:
	// GetNextTask reports an empty main queue by returning nil.
	ErrEmpty = errors.New("scheduler: empty")

	// ErrFull is returned by the ISR-side schedule entries when the
	// handoff ring is at capacity; the task was not enqueued.
	ErrFull = errors.New("scheduler: isr ring full")

	// ErrNotFound is returned by RescheduleNow/RescheduleIn when
	// there is no currently-running task, and by Remove of a task
	// that was not linked.
	ErrNotFound = errors.New("scheduler: not found")

	// ErrNullTask is returned by scheduling entries given a nil
	// *task.Task.
	ErrNullTask = errors.New("scheduler: null task")
)
