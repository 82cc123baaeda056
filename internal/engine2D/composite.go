package engine2D

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"linux-tiltfx/internal/utils"
)

// Compositor draws render objects in software, for output without a
// window.
type Compositor struct {
	Images map[string]*image.NRGBA
	Interp draw.Transformer
}

func NewCompositor(images map[string]*image.NRGBA) *Compositor {
	if images == nil {
		images = make(map[string]*image.NRGBA)
	}
	return &Compositor{Images: images, Interp: draw.BiLinear}
}

// Compose fills dst with bg and draws objects over it in order. It returns
// the number of objects drawn; objects with a missing image or a collapsed
// quad are skipped.
func (c *Compositor) Compose(dst draw.Image, bg color.Color, objects []RenderObject) int {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	drawn := 0
	for _, ro := range objects {
		src, ok := c.Images[ro.Path]
		if !ok {
			utils.Warn("compositor: no image loaded for %s", ro.Path)
			continue
		}
		b := src.Bounds()
		m := ro.Quad.Affine(b.Dx(), b.Dy())
		if Degenerate(m) {
			continue
		}

		var opts *draw.Options
		if ro.Opacity < 1 {
			a := uint16(clampUnit(ro.Opacity) * 0xffff)
			opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha16{A: a})}
		}
		c.Interp.Transform(dst, m, src, b, draw.Over, opts)
		drawn++
	}
	return drawn
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
