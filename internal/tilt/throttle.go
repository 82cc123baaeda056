package tilt

import "time"

const (
	DefaultMotionInterval = 100 * time.Millisecond
	DefaultResizeInterval = 50 * time.Millisecond
	DefaultSettleDelay    = 60 * time.Millisecond
)

// Throttle lets one call through and then drops calls until interval has
// passed.
type Throttle struct {
	interval time.Duration
	last     time.Time
	primed   bool
}

func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

func (t *Throttle) Allow(now time.Time) bool {
	if t.primed && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	t.primed = true
	return true
}

// Remaining is how long until Allow lets a call through again.
func (t *Throttle) Remaining(now time.Time) time.Duration {
	if !t.primed {
		return 0
	}
	if r := t.interval - now.Sub(t.last); r > 0 {
		return r
	}
	return 0
}
