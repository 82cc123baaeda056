package tilt

import (
	"math"

	"linux-tiltfx/internal/wallpaper"
)

// Source tells which input path produced an intent. The motion path reads
// the z component for rotateZ and translateZ.
type Source int

const (
	SourcePointer Source = iota
	SourceMotion
)

func (s Source) String() string {
	if s == SourceMotion {
		return "motion"
	}
	return "pointer"
}

// Intent is the latest input position, relative to the instance's box.
type Intent struct {
	X, Y, Z float64
	Source  Source
}

// Viewport is the size of the instance's box in client pixels.
type Viewport struct {
	Width, Height float64
}

// PointerEvent carries a pointer position in page coordinates (client
// position plus scroll).
type PointerEvent struct {
	PageX, PageY float64
}

// MotionEvent carries a device rotation rate. Alpha is about the z axis,
// Beta about x and Gamma about y. The effect expects values in [-1, 1].
type MotionEvent struct {
	Alpha, Beta, Gamma float64
}

// NormalizePointer converts a pointer event into an intent relative to the
// box's origin. The result is not clamped: the pointer may sit on the edge
// or slightly outside the box.
func NormalizePointer(ev PointerEvent, bounds wallpaper.Rect, scroll wallpaper.Vec2) Intent {
	return Intent{
		X:      ev.PageX - bounds.X - scroll.X,
		Y:      ev.PageY - bounds.Y - scroll.Y,
		Source: SourcePointer,
	}
}

// NormalizeMotion rescales the rotation rate from [-1, 1] onto the viewport
// and clamps the result to it.
func NormalizeMotion(ev MotionEvent, view Viewport) Intent {
	x := MapRange(ev.Beta, -1, 1, 0, view.Width)
	y := MapRange(ev.Gamma, -1, 1, 0, view.Height)
	z := MapRange(ev.Alpha, -1, 1, 0, view.Height)
	return Intent{
		X:      Clamp(x, 0, view.Width),
		Y:      Clamp(y, 0, view.Height),
		Z:      Clamp(z, 0, view.Height),
		Source: SourceMotion,
	}
}

// MapRange maps value linearly from [low1, high1] onto [low2, high2]. The
// result is not clamped.
func MapRange(value, low1, high1, low2, high2 float64) float64 {
	if high1 == low1 {
		return low2
	}
	return low2 + (high2-low2)*(value-low1)/(high1-low1)
}

// Clamp limits value to [min, max]. NaN clamps to min.
func Clamp(value, min, max float64) float64 {
	if math.IsNaN(value) {
		return min
	}
	return math.Min(math.Max(value, min), max)
}
