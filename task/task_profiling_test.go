//go:build task_profiling

package task

import (
	"testing"
	"time"
)

func TestProfilingCountersAccumulate(t *testing.T) {
	tk := New(func(ctx, arg any) {
		time.Sleep(time.Millisecond)
	}, nil, "profiled")

	tk.Call(nil)
	tk.Call(nil)
	tk.Call(nil)

	if tk.CallCount() != 3 {
		t.Fatalf("CallCount() = %d, want 3", tk.CallCount())
	}
	if tk.TotalRuntime() < 3*time.Millisecond {
		t.Fatalf("TotalRuntime() = %v, want >= 3ms", tk.TotalRuntime())
	}
	if tk.MaxRuntime() <= 0 {
		t.Fatal("MaxRuntime() must be > 0 once a call has been profiled")
	}
}
