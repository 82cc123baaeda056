package tilt

import (
	"testing"
)

var fullMovement = Movement{
	Perspective: 1000,
	TranslateX:  -10,
	TranslateY:  -10,
	TranslateZ:  20,
	RotateX:     2,
	RotateY:     2,
	RotateZ:     3,
}

func TestComputeTransformZeroMagnitude(t *testing.T) {
	view := Viewport{Width: 200, Height: 100}
	intents := []Intent{
		{X: 0, Y: 0},
		{X: 200, Y: 100},
		{X: 37, Y: 91, Z: 12, Source: SourceMotion},
		{X: -500, Y: 900},
	}
	for _, in := range intents {
		for i := 0; i < 5; i++ {
			tr := ComputeTransform(i, 5, Movement{Perspective: 1000}, in, view)
			if !tr.IsIdentity() {
				t.Errorf("layer %d intent %+v: got %+v, want identity", i, in, tr)
			}
		}
	}
}

func TestComputeTransformCenterIsZero(t *testing.T) {
	view := Viewport{Width: 200, Height: 100}
	for _, src := range []Source{SourcePointer, SourceMotion} {
		in := Intent{X: 100, Y: 50, Z: 50, Source: src}
		for i := 0; i < 3; i++ {
			tr := ComputeTransform(i, 3, fullMovement, in, view)
			if !tr.IsIdentity() {
				t.Errorf("%s layer %d: got %+v, want identity", src, i, tr)
			}
		}
	}
}

func TestMotionAtRestIsIdentity(t *testing.T) {
	for _, view := range []Viewport{{Width: 200, Height: 100}, {Width: 100, Height: 300}} {
		in := NormalizeMotion(MotionEvent{}, view)
		for i := 0; i < 2; i++ {
			if tr := ComputeTransform(i, 2, fullMovement, in, view); !tr.IsIdentity() {
				t.Errorf("%vx%v layer %d: %s", view.Width, view.Height, i, tr)
			}
		}
	}
}

func TestComputeTransformOddSymmetry(t *testing.T) {
	view := Viewport{Width: 300, Height: 200}
	tests := []struct {
		name      string
		low, high Intent
	}{
		{"pointer", Intent{X: 0, Y: 0}, Intent{X: 300, Y: 200}},
		{"motion", Intent{Source: SourceMotion}, Intent{X: 300, Y: 200, Z: 200, Source: SourceMotion}},
		{"pointer off-center", Intent{X: 40, Y: 20}, Intent{X: 260, Y: 180}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 4; i++ {
				lo := ComputeTransform(i, 4, fullMovement, tt.low, view)
				hi := ComputeTransform(i, 4, fullMovement, tt.high, view)
				for a := 0; a < 3; a++ {
					if !near(lo.Translate[a], -hi.Translate[a]) {
						t.Errorf("layer %d translate[%d]: %v vs %v", i, a, lo.Translate[a], hi.Translate[a])
					}
					if !near(lo.Rotate[a], -hi.Rotate[a]) {
						t.Errorf("layer %d rotate[%d]: %v vs %v", i, a, lo.Rotate[a], hi.Rotate[a])
					}
				}
			}
		})
	}
}

func TestComputeTransformEdgesReachMagnitude(t *testing.T) {
	view := Viewport{Width: 200, Height: 100}
	m := Movement{TranslateX: 10}

	// right edge, vertical center
	in := Intent{X: 200, Y: 50}
	want := []float64{5, 10}
	for i, w := range want {
		tr := ComputeTransform(i, 2, m, in, view)
		if !near(tr.Translate[0], w) {
			t.Errorf("layer %d translateX = %v, want %v", i, tr.Translate[0], w)
		}
	}

	left := ComputeTransform(1, 2, m, Intent{X: 0, Y: 50}, view)
	if !near(left.Translate[0], -10) {
		t.Errorf("left edge translateX = %v, want -10", left.Translate[0])
	}
}

func TestComputeTransformAxisPairing(t *testing.T) {
	view := Viewport{Width: 200, Height: 100}
	// x at the right edge, y at the center, z at the bottom
	pointer := ComputeTransform(0, 1, fullMovement, Intent{X: 200, Y: 50, Z: 100}, view)
	motion := ComputeTransform(0, 1, fullMovement, Intent{X: 200, Y: 50, Z: 100, Source: SourceMotion}, view)

	// pointer: translateZ follows y (centered), rotateZ follows x (edge)
	if pointer.Translate[2] != 0 {
		t.Errorf("pointer translateZ = %v, want 0", pointer.Translate[2])
	}
	if !near(pointer.Rotate[2], 3) {
		t.Errorf("pointer rotateZ = %v, want 3", pointer.Rotate[2])
	}
	// motion: both follow z
	if !near(motion.Translate[2], 20) {
		t.Errorf("motion translateZ = %v, want 20", motion.Translate[2])
	}
	if !near(motion.Rotate[2], 3) {
		t.Errorf("motion rotateZ = %v, want 3 (z at the bottom)", motion.Rotate[2])
	}
	if !near(pointer.Rotate[1], 2) || !near(pointer.Translate[0], -10) {
		t.Errorf("x axes: rotateY=%v translateX=%v", pointer.Rotate[1], pointer.Translate[0])
	}
	if pointer.Rotate[0] != 0 || pointer.Translate[1] != 0 {
		t.Errorf("y axes should be centered: rotateX=%v translateY=%v", pointer.Rotate[0], pointer.Translate[1])
	}
}

func TestComputeTransformEmptyViewport(t *testing.T) {
	tr := ComputeTransform(0, 2, fullMovement, Intent{X: 10, Y: 10}, Viewport{})
	if !tr.IsIdentity() {
		t.Errorf("got %+v, want identity", tr)
	}
}

func TestComputeAll(t *testing.T) {
	got := ComputeAll(3, Movement{TranslateX: 9}, Intent{X: 200}, Viewport{Width: 200, Height: 100})
	want := []float64{3, 6, 9}
	if len(got) != len(want) {
		t.Fatalf("len = %d", len(got))
	}
	for i := range want {
		if !near(got[i].Translate[0], want[i]) {
			t.Errorf("layer %d = %v, want %v", i, got[i].Translate[0], want[i])
		}
	}
}

func TestTransformString(t *testing.T) {
	tr := Transform{
		Perspective: 1000,
		Translate:   [3]float64{5, -2.5, 0},
		Rotate:      [3]float64{1, 0, -0.5},
	}
	want := "perspective(1000px) translate3d(5px,-2.5px,0px) rotate3d(1,0,0,1deg) rotate3d(0,1,0,0deg) rotate3d(0,0,1,-0.5deg)"
	if got := tr.String(); got != want {
		t.Errorf("String() = %q\nwant %q", got, want)
	}

	neutral := "perspective(1000px) translate3d(0,0,0) rotate3d(1,1,1,0deg)"
	if got := Neutral(1000).String(); got != neutral {
		t.Errorf("Neutral.String() = %q, want %q", got, neutral)
	}
}
