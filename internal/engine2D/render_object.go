package engine2D

import (
	"linux-tiltfx/internal/tilt"
	"linux-tiltfx/internal/utils"
	"linux-tiltfx/internal/wallpaper"
)

// RenderObject is one image to draw, already placed in client pixels.
type RenderObject struct {
	Node    *wallpaper.Node
	Path    string
	Quad    Quad
	Opacity float64
	Tilted  bool
}

// BuildRenderObjects flattens the visible part of doc into draw order.
// Nodes that are animated layers of one of instances are projected with
// their current transform; everything else is drawn flat.
func BuildRenderObjects(doc *wallpaper.Document, instances []*tilt.Instance) []RenderObject {
	transforms := make(map[*wallpaper.Node]tilt.Transform)
	for _, inst := range instances {
		for _, layer := range inst.Layers {
			transforms[layer.Node] = layer.Transform
		}
	}

	var out []RenderObject
	var visit func(n *wallpaper.Node, opacity float64)
	visit = func(n *wallpaper.Node, opacity float64) {
		if !n.Visible {
			return
		}
		if n != doc.Root {
			opacity *= n.Style.Opacity
		}
		if opacity <= 0 {
			return
		}
		if n.Image != "" {
			ro := RenderObject{
				Node:    n,
				Path:    utils.ResolveAssetPath(doc.Dir, n.Image),
				Opacity: opacity,
			}
			rect := doc.BoundingClientRect(n)
			if t, ok := transforms[n]; ok {
				ro.Quad = ProjectRect(rect, t)
				ro.Tilted = true
			} else {
				ro.Quad = RectQuad(rect)
			}
			out = append(out, ro)
		}
		for _, c := range n.Children() {
			visit(c, opacity)
		}
	}
	visit(doc.Root, 1)
	return out
}

// ImagePaths returns the distinct image paths of objects in draw order.
func ImagePaths(objects []RenderObject) []string {
	seen := make(map[string]bool, len(objects))
	var paths []string
	for _, ro := range objects {
		if !seen[ro.Path] {
			seen[ro.Path] = true
			paths = append(paths, ro.Path)
		}
	}
	return paths
}
