package task

import (
	"testing"

	"github.com/driftwood-systems/schedcore/schedtime"
)

func TestNewAndAccessors(t *testing.T) {
	var calls int
	tk := New(func(ctx, arg any) {
		calls++
	}, "ctx-value", "demo")

	if tk.Name() != "demo" {
		t.Errorf("Name() = %q, want demo", tk.Name())
	}
	if tk.Context() != "ctx-value" {
		t.Errorf("Context() = %v, want ctx-value", tk.Context())
	}
	if tk.Scheduled() {
		t.Error("a freshly constructed task must not be scheduled")
	}

	tk.SetTime(schedtime.Time(42))
	if tk.Time() != 42 {
		t.Errorf("Time() = %d, want 42", tk.Time())
	}

	tk.Call(nil)
	if calls != 1 {
		t.Errorf("Call did not invoke fn exactly once, calls=%d", calls)
	}
}

func TestCallPassesContextAndArg(t *testing.T) {
	var gotCtx, gotArg any
	tk := New(func(ctx, arg any) {
		gotCtx = ctx
		gotArg = arg
	}, 7, "")

	tk.Call("hello")
	if gotCtx != 7 {
		t.Errorf("ctx = %v, want 7", gotCtx)
	}
	if gotArg != "hello" {
		t.Errorf("arg = %v, want hello", gotArg)
	}
}

func TestFromLinkRoundTrips(t *testing.T) {
	tk := New(func(ctx, arg any) {}, nil, "")
	if FromLink(tk.Link()) != tk {
		t.Error("FromLink(tk.Link()) must recover tk")
	}
}

func TestNoProfilingBuildCountersAreZero(t *testing.T) {
	tk := New(func(ctx, arg any) {}, nil, "")
	tk.Call(nil)
	tk.Call(nil)
	if tk.CallCount() != 0 {
		t.Errorf("CallCount() = %d, want 0 without task_profiling tag", tk.CallCount())
	}
	if tk.TotalRuntime() != 0 || tk.MaxRuntime() != 0 {
		t.Error("runtime counters must be 0 without task_profiling tag")
	}
}
