package tilt

import (
	"time"
)

// DefaultFrameInterval is the fallback frame spacing, roughly 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

type FrameID uint64

// FrameFunc receives the timestamp of the frame it runs in.
type FrameFunc func(ts time.Time)

// Frames is what the controller needs from a scheduler.
type Frames interface {
	RequestFrame(fn FrameFunc) FrameID
	After(d time.Duration, fn FrameFunc) FrameID
	Cancel(id FrameID)
}

type pendingFrame struct {
	id  FrameID
	due time.Time
	fn  FrameFunc
}

// Scheduler runs callbacks before the next repaint. The host calls Tick once
// per repaint from the goroutine that owns the document.
//
// In fallback mode, for hosts without a refresh callback, frame callbacks are
// spaced at least interval apart and receive their computed due time, the
// way a timer based requestAnimationFrame shim behaves.
type Scheduler struct {
	interval time.Duration
	fallback bool
	lastTime time.Time
	now      func() time.Time

	nextID  FrameID
	pending []pendingFrame
}

// NewScheduler returns a display-synced scheduler: frame callbacks run on
// the next Tick.
func NewScheduler() *Scheduler {
	return &Scheduler{now: time.Now}
}

func NewFallbackScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Scheduler{interval: interval, fallback: true, now: time.Now}
}

// SetClock replaces the scheduler's time source.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Scheduler) Fallback() bool { return s.fallback }

func (s *Scheduler) Interval() time.Duration { return s.interval }

func (s *Scheduler) RequestFrame(fn FrameFunc) FrameID {
	var due time.Time
	if s.fallback {
		now := s.now()
		timeToCall := s.interval - now.Sub(s.lastTime)
		if timeToCall < 0 {
			timeToCall = 0
		}
		due = now.Add(timeToCall)
		s.lastTime = due
	}
	return s.push(due, fn)
}

// After runs fn on the first Tick at or past now+d.
func (s *Scheduler) After(d time.Duration, fn FrameFunc) FrameID {
	return s.push(s.now().Add(d), fn)
}

func (s *Scheduler) Cancel(id FrameID) {
	for i, p := range s.pending {
		if p.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of callbacks not yet run.
func (s *Scheduler) Pending() int { return len(s.pending) }

// Tick runs every callback due at now, in request order, and returns how
// many ran. Callbacks requested while ticking wait for the next Tick.
func (s *Scheduler) Tick(now time.Time) int {
	if len(s.pending) == 0 {
		return 0
	}
	batch := s.pending
	s.pending = nil

	var ran []pendingFrame
	for _, p := range batch {
		if p.due.After(now) {
			s.pending = append(s.pending, p)
			continue
		}
		ran = append(ran, p)
	}
	for _, p := range ran {
		ts := now
		if !p.due.IsZero() {
			ts = p.due
		}
		p.fn(ts)
	}
	return len(ran)
}

func (s *Scheduler) push(due time.Time, fn FrameFunc) FrameID {
	s.nextID++
	s.pending = append(s.pending, pendingFrame{id: s.nextID, due: due, fn: fn})
	return s.nextID
}
