package engine2D

import (
	"linux-tiltfx/internal/tilt"
	"linux-tiltfx/internal/wallpaper"
)

// Dispatcher routes window input to the controllers of one document.
// Pointer moves reach only the instance under the pointer and a leave is
// sent when the pointer exits it; motion and resize go to every instance.
type Dispatcher struct {
	doc         *wallpaper.Document
	controllers []*tilt.Controller
	hovered     map[*tilt.Controller]bool
}

func NewDispatcher(doc *wallpaper.Document, controllers []*tilt.Controller) *Dispatcher {
	return &Dispatcher{
		doc:         doc,
		controllers: controllers,
		hovered:     make(map[*tilt.Controller]bool),
	}
}

func (d *Dispatcher) Controllers() []*tilt.Controller { return d.controllers }

// Instances returns the instance of every controller.
func (d *Dispatcher) Instances() []*tilt.Instance {
	out := make([]*tilt.Instance, len(d.controllers))
	for i, c := range d.controllers {
		out[i] = c.Instance()
	}
	return out
}

// PointerMove takes a pointer position in client pixels.
func (d *Dispatcher) PointerMove(clientX, clientY float64) {
	scroll := d.doc.ScrollOffset()
	ev := tilt.PointerEvent{PageX: clientX + scroll.X, PageY: clientY + scroll.Y}

	for _, c := range d.controllers {
		rect := d.doc.BoundingClientRect(c.Instance().Wrapper)
		if rect.Contains(clientX, clientY) {
			d.hovered[c] = true
			c.PointerMove(ev)
			continue
		}
		if d.hovered[c] {
			delete(d.hovered, c)
			c.PointerLeave()
		}
	}
}

// PointerLeave is sent when the pointer leaves the window.
func (d *Dispatcher) PointerLeave() {
	for c := range d.hovered {
		c.PointerLeave()
	}
	clear(d.hovered)
}

// Motion broadcasts a rotation rate sample and returns how many
// instances accepted it.
func (d *Dispatcher) Motion(ev tilt.MotionEvent) int {
	n := 0
	for _, c := range d.controllers {
		if c.DeviceMotion(ev) {
			n++
		}
	}
	return n
}

func (d *Dispatcher) Resize() int {
	n := 0
	for _, c := range d.controllers {
		if c.Resize() {
			n++
		}
	}
	return n
}

// Scroll moves the page by a wheel delta in client pixels.
func (d *Dispatcher) Scroll(dx, dy float64) {
	d.doc.ScrollBy(dx, dy)
}

// GamepadAxes are stick axes in [-1,1] and triggers in [0,1].
type GamepadAxes struct {
	LeftX, LeftY float64
	LeftTrigger  float64
	RightTrigger float64
}

// GamepadMotion turns stick deflection into a rotation rate sample: the
// left stick drives beta and gamma, the trigger difference drives alpha.
// It reports false while the stick rests inside the dead zone.
func GamepadMotion(axes GamepadAxes, deadZone float64) (tilt.MotionEvent, bool) {
	dz := func(v float64) float64 {
		if v > -deadZone && v < deadZone {
			return 0
		}
		return tilt.Clamp(v, -1, 1)
	}
	ev := tilt.MotionEvent{
		Beta:  dz(axes.LeftX),
		Gamma: dz(axes.LeftY),
		Alpha: dz((axes.RightTrigger - axes.LeftTrigger) / 2),
	}
	return ev, ev != tilt.MotionEvent{}
}
