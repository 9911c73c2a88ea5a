// Command schedrun is a runnable demonstration of package scheduler:
// a software clock standing in for a hardware free-running timer, a
// periodic blink-style task, and a goroutine simulating an interrupt
// service routine that posts work through the ISR handoff ring. This
// stands in for the peripherals (terminal UI, FSM driver, umbrella
// init shim) a full embedded repository built around this core would
// ship around it, but that this core itself does not implement.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/driftwood-systems/schedcore/schedlog"
	"github.com/driftwood-systems/schedcore/scheduler"
	"github.com/driftwood-systems/schedcore/schedtime"
	"github.com/driftwood-systems/schedcore/task"
)

// softwareClock simulates a free-running millisecond tick counter.
// Advance is called exactly once per main-loop iteration, so a
// Scheduler driven by it sees a monotonic, bounded-granularity clock
// the same way a real embedded target would.
type softwareClock struct {
	ticks atomic.Uint64
}

func (c *softwareClock) Now() schedtime.Time {
	return schedtime.Time(c.ticks.Load())
}

func (c *softwareClock) Advance(d schedtime.Duration) {
	c.ticks.Add(uint64(d))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := schedlog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	clock := &softwareClock{}
	s, err := scheduler.New(
		scheduler.WithClock(clock.Now),
		scheduler.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "schedrun:", err)
		os.Exit(1)
	}

	var blinks atomic.Uint64
	blink := task.New(func(ctx, arg any) {
		blinks.Add(1)
		if err := s.RescheduleIn(100); err != nil {
			panic(err)
		}
	}, nil, "blink")
	if err := s.ScheduleNow(blink); err != nil {
		fmt.Fprintln(os.Stderr, "schedrun:", err)
		os.Exit(1)
	}

	// Simulate an ISR goroutine posting an ad-hoc task every so
	// often. It only ever calls the isr* entries, matching the
	// contract that ISR code must never touch the main queue
	// directly.
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		n := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n++
				note := task.New(func(ctx, arg any) {
					fmt.Printf("isr-posted task #%d ran\n", n)
				}, nil, "isr-note")
				if err := s.ISRScheduleNow(note); err != nil && !errors.Is(err, scheduler.ErrFull) {
					fmt.Fprintln(os.Stderr, "schedrun: isr schedule:", err)
				}
			}
		}
	}()

	for ctx.Err() == nil {
		if err := s.Step(); err != nil {
			fmt.Fprintln(os.Stderr, "schedrun:", err)
			os.Exit(1)
		}
		clock.Advance(10)
		time.Sleep(10 * time.Millisecond)
	}

	fmt.Printf("blink ran %d times\n", blinks.Load())
}
