package debug

import (
	"linux-tiltfx/internal/engine2D"
	"linux-tiltfx/internal/tilt"
	"linux-tiltfx/internal/wallpaper"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawBoundingBoxes outlines every wrapper in its client rect and the
// projected quad of each animated layer.
func (d *DebugOverlay) drawBoundingBoxes(doc *wallpaper.Document, dispatcher *engine2D.Dispatcher) {
	for _, c := range dispatcher.Controllers() {
		inst := c.Instance()
		r := doc.BoundingClientRect(inst.Wrapper)

		wrapperCol := rl.NewColor(0, 255, 0, 255)
		if c.State() == tilt.StateTracking {
			wrapperCol = rl.NewColor(255, 255, 0, 255)
		}
		rl.DrawRectangleLines(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height), wrapperCol)

		// origin of the transforms
		center := r.Center()
		rl.DrawRectangle(int32(center.X-2), int32(center.Y-2), 4, 4, rl.Red)

		for _, layer := range inst.Layers {
			drawQuadLines(engine2D.ProjectRect(doc.BoundingClientRect(layer.Node), layer.Transform), rl.NewColor(0, 255, 255, 100))
		}
	}
}

func drawQuadLines(q engine2D.Quad, col rl.Color) {
	for i := range q {
		a, b := q[i], q[(i+1)%len(q)]
		rl.DrawLineV(rl.NewVector2(float32(a.X), float32(a.Y)), rl.NewVector2(float32(b.X), float32(b.Y)), col)
	}
}
