package engine2D

import (
	"math"

	"linux-tiltfx/internal/tilt"
	"linux-tiltfx/internal/wallpaper"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws a document and its tilt instances in the raylib window.
type Renderer struct {
	Doc       *wallpaper.Document
	Instances []*tilt.Instance
	Scaling   string

	textures map[string]*rl.Texture2D
	failed   map[string]bool
}

// ComputeLayout places a scene of sceneW×sceneH in a screen of
// screenW×screenH. "fit" letterboxes the whole scene; "fill" covers the
// screen and leaves the overflowing axis scrollable from its start.
func ComputeLayout(sceneW, sceneH float64, screenW, screenH int, scalingMode string) wallpaper.Layout {
	viewW, viewH := float64(screenW), float64(screenH)
	if sceneW <= 0 || sceneH <= 0 {
		return wallpaper.Layout{Scale: 1, ViewWidth: viewW, ViewHeight: viewH}
	}
	scaleW := viewW / sceneW
	scaleH := viewH / sceneH

	l := wallpaper.Layout{ViewWidth: viewW, ViewHeight: viewH}
	if scalingMode == "fill" {
		l.Scale = math.Max(scaleW, scaleH)
	} else {
		l.Scale = math.Min(scaleW, scaleH)
	}
	if l.Scale <= 0 {
		l.Scale = 1
	}

	if w := sceneW * l.Scale; w < viewW {
		l.OffsetX = (viewW - w) / 2
	}
	if h := sceneH * l.Scale; h < viewH {
		l.OffsetY = (viewH - h) / 2
	}
	return l
}
