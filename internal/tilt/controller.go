package tilt

import (
	"time"

	"linux-tiltfx/internal/utils"
	"linux-tiltfx/internal/wallpaper"
)

type State int

const (
	StateIdle State = iota
	StateTracking
	StateResetting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTracking:
		return "tracking"
	case StateResetting:
		return "resetting"
	}
	return "unknown"
}

type Option func(*Controller)

// WithSettleDelay sets the pause between pointer-leave and the reset.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Controller) { c.settle = d }
}

func WithMotionInterval(d time.Duration) Option {
	return func(c *Controller) { c.motion = NewThrottle(d) }
}

func WithResizeInterval(d time.Duration) Option {
	return func(c *Controller) { c.resize = NewThrottle(d) }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller drives one instance: it stores the intent from input events
// and renders it on the next frame. All methods must be called from the
// goroutine that ticks the scheduler.
type Controller struct {
	inst   *Instance
	host   Host
	frames Frames
	state  State
	now    func() time.Time
	settle time.Duration
	motion *Throttle
	resize *Throttle

	framePending  bool
	resetPending  bool
	resetID       FrameID
	resizePending bool
	renders       int
}

// New builds the layers for image and returns the controller driving them.
func New(doc *wallpaper.Document, image *wallpaper.Node, opts Options, frames Frames, options ...Option) (*Controller, error) {
	inst, err := BuildLayers(doc, image, opts)
	if err != nil {
		return nil, err
	}
	return NewController(inst, doc, frames, options...), nil
}

func NewController(inst *Instance, host Host, frames Frames, options ...Option) *Controller {
	c := &Controller{
		inst:   inst,
		host:   host,
		frames: frames,
		now:    time.Now,
		settle: DefaultSettleDelay,
		motion: NewThrottle(DefaultMotionInterval),
		resize: NewThrottle(DefaultResizeInterval),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *Controller) Instance() *Instance { return c.inst }
func (c *Controller) State() State        { return c.state }

// Renders counts the frames rendered so far.
func (c *Controller) Renders() int { return c.renders }

func (c *Controller) PointerMove(ev PointerEvent) {
	bounds := c.host.BoundingClientRect(c.inst.Wrapper)
	c.inst.Intent = NormalizePointer(ev, bounds, c.host.ScrollOffset())
	c.track()
}

// PointerLeave schedules the reset to the neutral transform.
func (c *Controller) PointerLeave() {
	c.cancelReset()
	c.state = StateResetting
	c.resetPending = true
	c.resetID = c.frames.After(c.settle, func(time.Time) {
		c.resetPending = false
		ApplyNeutral(c.inst)
		c.state = StateIdle
		utils.Debug("tilt: %s reset", c.inst.Name)
	})
}

// DeviceMotion feeds a rotation rate sample. Samples arriving faster than
// the motion interval are dropped; the return value tells whether this one
// was used.
func (c *Controller) DeviceMotion(ev MotionEvent) bool {
	if !c.motion.Allow(c.now()) {
		return false
	}
	c.inst.Intent = NormalizeMotion(ev, c.inst.View)
	c.track()
	return true
}

// Resize re-reads the viewport, rate limited like DeviceMotion. A dropped
// call schedules one trailing re-read at the end of the interval so the
// last size of a burst always lands.
func (c *Controller) Resize() bool {
	now := c.now()
	if !c.resize.Allow(now) {
		if !c.resizePending {
			c.resizePending = true
			c.frames.After(c.resize.Remaining(now), func(time.Time) {
				c.resizePending = false
				UpdateViewport(c.inst, c.host)
				if c.state == StateTracking {
					c.requestRender()
				}
			})
		}
		return false
	}
	UpdateViewport(c.inst, c.host)
	return true
}

func (c *Controller) track() {
	c.cancelReset()
	c.state = StateTracking
	c.requestRender()
}

func (c *Controller) requestRender() {
	if c.framePending {
		return
	}
	c.framePending = true
	c.frames.RequestFrame(func(time.Time) {
		c.framePending = false
		Render(c.inst)
		c.renders++
	})
}

func (c *Controller) cancelReset() {
	if c.resetPending {
		c.frames.Cancel(c.resetID)
		c.resetPending = false
	}
}
