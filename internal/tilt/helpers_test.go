package tilt

import (
	"testing"
	"time"

	"linux-tiltfx/internal/wallpaper"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

const testScene = `{
	"general": {"orthogonalprojection": {"width": 400, "height": 300}},
	"objects": [
		{"id": 1, "name": "gallery", "origin": "200 150", "size": "400 300"},
		{"id": 2, "name": "photo", "class": "tilt-effect", "image": "photo.png",
		 "origin": "100 50", "size": "200 100", "parent": 1,
		 "attributes": {"data-tilt-options": "{\"extraImgs\": 2, \"movement\": {\"translateX\": 10, \"perspective\": 1000}}"}},
		{"id": 3, "name": "caption", "origin": "200 250", "size": "200 20", "parent": 1}
	]
}`

func parseTestDoc(t *testing.T, data string) *wallpaper.Document {
	t.Helper()
	scene, err := wallpaper.ParseScene([]byte(data))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	return wallpaper.BuildDocument(scene, t.TempDir())
}

func near(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
