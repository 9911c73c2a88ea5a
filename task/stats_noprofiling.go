//go:build !task_profiling

package task

import "time"

// taskStats is the zero-overhead stand-in used when built without the
// task_profiling tag: begin/end compile down to nothing a caller can
// observe, and every accessor returns a zero value.
type taskStats struct{}

func (s *taskStats) begin() time.Time       { return time.Time{} }
func (s *taskStats) end(start time.Time)    {}
func (s *taskStats) callCount() uint64      { return 0 }
func (s *taskStats) totalRuntime() time.Duration { return 0 }
func (s *taskStats) maxRuntime() time.Duration   { return 0 }
