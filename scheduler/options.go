package scheduler

import (
	"fmt"

	"github.com/driftwood-systems/schedcore/schedtime"
	"github.com/driftwood-systems/schedcore/task"
	"github.com/joeycumines/go-catrate"
)

// config holds the resolved configuration for a Scheduler, built by
// applying a slice of Option to defaults.
type config struct {
	clock           schedtime.Clock
	idle            *task.Task
	logger          Logger
	limiter         *catrate.Limiter
	isrRingCapacity int
}

// Option configures a Scheduler at construction time, grounded on the
// teacher's LoopOption pattern (eventloop/options.go): an interface
// wrapping an error-returning apply function, so a single bad option
// (e.g. a non-power-of-two ring capacity) surfaces as an error from
// New rather than a panic deep inside isrqueue.
type Option interface {
	apply(*config) error
}

type optionFunc func(*config) error

func (f optionFunc) apply(c *config) error { return f(c) }

// WithClock sets the scheduler's time source. Without this option New
// uses a monotonic default; passing a nil clock is an error. Pass this
// to use a fake clock in tests, matching every spec scenario that
// specifies time by explicit value rather than wall time.
func WithClock(clock schedtime.Clock) Option {
	return optionFunc(func(c *config) error {
		if clock == nil {
			return fmt.Errorf("scheduler: WithClock: clock must not be nil")
		}
		c.clock = clock
		return nil
	})
}

// WithIdleTask overrides the task invoked whenever no main-queue task
// is runnable. The default is GetDefaultIdleTask's no-op.
func WithIdleTask(t *task.Task) Option {
	return optionFunc(func(c *config) error {
		if t == nil {
			return fmt.Errorf("scheduler: WithIdleTask: %w", ErrNullTask)
		}
		c.idle = t
		return nil
	})
}

// WithLogger attaches a Logger. The default is a no-op logger, so
// attaching one is purely opt-in diagnostics.
func WithLogger(logger Logger) Option {
	return optionFunc(func(c *config) error {
		if logger == nil {
			logger = NewNoOpLogger()
		}
		c.logger = logger
		return nil
	})
}

// WithDiagnosticRateLimit attaches a github.com/joeycumines/go-catrate
// Limiter used to throttle repeated diagnostic log lines (ISR ring
// FULL, idle invocations) so a tight polling loop under sustained
// backpressure doesn't flood the configured Logger. Without this
// option, every occurrence is logged (still subject to the Logger's
// own level filtering).
func WithDiagnosticRateLimit(limiter *catrate.Limiter) Option {
	return optionFunc(func(c *config) error {
		c.limiter = limiter
		return nil
	})
}

// WithISRRingCapacity sets the capacity of the ISR handoff ring. Must
// be a power of two; the ring has capacity-1 usable slots (see
// package isrqueue). Defaults to 64.
func WithISRRingCapacity(capacity int) Option {
	return optionFunc(func(c *config) error {
		if capacity <= 0 || capacity&(capacity-1) != 0 {
			return fmt.Errorf("scheduler: WithISRRingCapacity: %d is not a positive power of two", capacity)
		}
		c.isrRingCapacity = capacity
		return nil
	})
}

func resolveOptions(opts []Option) (*config, error) {
	c := &config{
		clock:           schedtime.Clock(defaultClock),
		idle:            GetDefaultIdleTask(),
		logger:          NewNoOpLogger(),
		isrRingCapacity: 64,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
