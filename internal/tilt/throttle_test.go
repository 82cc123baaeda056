package tilt

import (
	"testing"
	"time"
)

func TestThrottleLeadingEdge(t *testing.T) {
	start := time.Unix(1000, 0)
	th := NewThrottle(100 * time.Millisecond)

	tests := []struct {
		at   time.Duration
		want bool
	}{
		{0, true},
		{10 * time.Millisecond, false},
		{99 * time.Millisecond, false},
		{100 * time.Millisecond, true},
		{150 * time.Millisecond, false},
		{250 * time.Millisecond, true},
	}
	for _, tt := range tests {
		if got := th.Allow(start.Add(tt.at)); got != tt.want {
			t.Errorf("Allow(+%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestThrottleZeroInterval(t *testing.T) {
	th := NewThrottle(0)
	now := time.Unix(1000, 0)
	for i := 0; i < 3; i++ {
		if !th.Allow(now) {
			t.Fatalf("call %d dropped with a zero interval", i)
		}
	}
}

func TestThrottleRemaining(t *testing.T) {
	start := time.Unix(1000, 0)
	th := NewThrottle(50 * time.Millisecond)
	if r := th.Remaining(start); r != 0 {
		t.Errorf("unprimed remaining = %v", r)
	}
	th.Allow(start)
	if r := th.Remaining(start.Add(20 * time.Millisecond)); r != 30*time.Millisecond {
		t.Errorf("remaining = %v, want 30ms", r)
	}
	if r := th.Remaining(start.Add(80 * time.Millisecond)); r != 0 {
		t.Errorf("remaining after interval = %v", r)
	}
}
