package debug

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"linux-tiltfx/internal/engine2D"
	"linux-tiltfx/internal/tilt"
	"linux-tiltfx/internal/wallpaper"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DebugOverlay shows per-instance effect state next to the scene.
type DebugOverlay struct {
	ShowBoundingBoxes bool

	fontHeight int
	lineHeight int
	panelWidth int

	sample   *tilt.Throttle
	memStats runtime.MemStats
}

func NewDebugOverlay() *DebugOverlay {
	d := &DebugOverlay{
		ShowBoundingBoxes: true,
		sample:            tilt.NewThrottle(time.Second),
	}
	d.updateLayout()
	return d
}

func (d *DebugOverlay) updateLayout() {
	scale := math.Max(1, float64(rl.GetMonitorHeight(rl.GetCurrentMonitor()))/1080)
	d.fontHeight = int(16 * scale)
	d.lineHeight = int(22 * scale)
	d.panelWidth = int(420 * scale)
}

func (d *DebugOverlay) Update() {
	// heap and monitor scale change slowly
	if d.sample.Allow(time.Now()) {
		runtime.ReadMemStats(&d.memStats)
		d.updateLayout()
	}

	if rl.IsKeyPressed(rl.KeyB) {
		d.ShowBoundingBoxes = !d.ShowBoundingBoxes
	}
}

func (d *DebugOverlay) Draw(doc *wallpaper.Document, dispatcher *engine2D.Dispatcher) {
	if d.ShowBoundingBoxes {
		d.drawBoundingBoxes(doc, dispatcher)
	}

	lines := []string{
		fmt.Sprintf("FPS: %d  Heap: %.1f MB", rl.GetFPS(), float64(d.memStats.HeapAlloc)/1024/1024),
		fmt.Sprintf("Scroll: %.0f,%.0f  Scale: %.2f", doc.ScrollOffset().X, doc.ScrollOffset().Y, doc.Layout().Scale),
	}
	for _, c := range dispatcher.Controllers() {
		inst := c.Instance()
		lines = append(lines, fmt.Sprintf("%s [%s] %s %.0f,%.0f,%.0f view %.0fx%.0f renders %d",
			inst.Name, c.State(), inst.Intent.Source, inst.Intent.X, inst.Intent.Y, inst.Intent.Z,
			inst.View.Width, inst.View.Height, c.Renders()))
	}

	h := int32(d.lineHeight*len(lines) + 10)
	rl.DrawRectangle(0, 0, int32(d.panelWidth), h, rl.NewColor(0, 0, 0, 200))
	for i, line := range lines {
		rl.DrawText(line, 10, int32(5+i*d.lineHeight), int32(d.fontHeight), rl.White)
	}
}
