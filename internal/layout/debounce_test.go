package layout

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	var last atomic.Int32

	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
		})
	}

	deadline := time.Now().Add(time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(40 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one run, got %d", got)
	}
	if got := last.Load(); got != 5 {
		t.Fatalf("expected last trigger to win, got %d", got)
	}
}

func TestDebouncerFlush(t *testing.T) {
	d := NewDebouncer(time.Hour)
	ran := false
	d.Trigger(func() { ran = true })

	if !d.Pending() {
		t.Fatalf("expected pending call")
	}
	if !d.Flush() {
		t.Fatalf("expected flush to run the call")
	}
	if !ran {
		t.Fatalf("flush did not run the call")
	}
	if d.Flush() {
		t.Fatalf("second flush should have nothing to run")
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(30 * time.Millisecond)
	if calls.Load() != 0 {
		t.Fatalf("stopped call ran")
	}
	if d.Pending() {
		t.Fatalf("stop left a pending call")
	}
}
