package tilt

import (
	"math"
	"testing"

	"linux-tiltfx/internal/wallpaper"
)

func TestNormalizePointer(t *testing.T) {
	bounds := wallpaper.Rect{X: 50, Y: 20, Width: 200, Height: 100}

	got := NormalizePointer(PointerEvent{PageX: 150, PageY: 70}, bounds, wallpaper.Vec2{})
	if got.X != 100 || got.Y != 50 || got.Source != SourcePointer {
		t.Errorf("no scroll: got %+v", got)
	}

	// page coordinates include the scroll, the client rect does not
	got = NormalizePointer(PointerEvent{PageX: 150, PageY: 370}, bounds, wallpaper.Vec2{Y: 300})
	if got.X != 100 || got.Y != 50 {
		t.Errorf("scrolled: got %+v", got)
	}

	// outside the box is not clamped
	got = NormalizePointer(PointerEvent{PageX: 0, PageY: 500}, bounds, wallpaper.Vec2{})
	if got.X != -50 || got.Y != 480 {
		t.Errorf("outside: got %+v", got)
	}
}

func TestNormalizeMotion(t *testing.T) {
	view := Viewport{Width: 200, Height: 100}
	tests := []struct {
		name    string
		ev      MotionEvent
		x, y, z float64
	}{
		{"rest", MotionEvent{}, 100, 50, 50},
		{"low edge", MotionEvent{Alpha: -1, Beta: -1, Gamma: -1}, 0, 0, 0},
		{"high edge", MotionEvent{Alpha: 1, Beta: 1, Gamma: 1}, 200, 100, 100},
		{"beyond range", MotionEvent{Alpha: 7, Beta: -4, Gamma: 2.5}, 0, 100, 100},
		{"half", MotionEvent{Alpha: -0.5, Beta: 0.5, Gamma: 0}, 150, 50, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeMotion(tt.ev, view)
			if !near(got.X, tt.x) || !near(got.Y, tt.y) || !near(got.Z, tt.z) {
				t.Errorf("got (%v,%v,%v), want (%v,%v,%v)", got.X, got.Y, got.Z, tt.x, tt.y, tt.z)
			}
			if got.Source != SourceMotion {
				t.Errorf("source = %v", got.Source)
			}
		})
	}
}

func TestNormalizeMotionAlwaysInsideViewport(t *testing.T) {
	view := Viewport{Width: 320, Height: 180}
	for v := -10.0; v <= 10; v += 0.25 {
		got := NormalizeMotion(MotionEvent{Alpha: v, Beta: -v, Gamma: v * 3}, view)
		if got.X < 0 || got.X > view.Width || got.Y < 0 || got.Y > view.Height || got.Z < 0 || got.Z > view.Height {
			t.Fatalf("input %v escaped the viewport: %+v", v, got)
		}
	}
	got := NormalizeMotion(MotionEvent{Beta: math.NaN()}, view)
	if got.X != 0 {
		t.Errorf("NaN input: x = %v, want 0", got.X)
	}
}

func TestMapRange(t *testing.T) {
	if got := MapRange(0, -1, 1, 0, 200); got != 100 {
		t.Errorf("MapRange(0) = %v", got)
	}
	if got := MapRange(3, -1, 1, 0, 200); got != 400 {
		t.Errorf("MapRange(3) = %v, want unclamped 400", got)
	}
	if got := MapRange(5, 1, 1, 7, 9); got != 7 {
		t.Errorf("degenerate domain = %v, want 7", got)
	}
}
