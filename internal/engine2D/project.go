package engine2D

import (
	"math"

	"golang.org/x/image/math/f64"

	"linux-tiltfx/internal/tilt"
	"linux-tiltfx/internal/wallpaper"
)

// minDepth keeps points behind the eye from flipping through the
// projection.
const minDepth = 1e-3

// Quad is a projected rectangle in client pixels. Corners are top-left,
// top-right, bottom-right, bottom-left.
type Quad [4]wallpaper.Vec2

// RectQuad is the untransformed quad of r.
func RectQuad(r wallpaper.Rect) Quad {
	return Quad{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}

// ProjectRect applies t to r about the centre of r. Rotations run Z, Y, X,
// then the translation, then the perspective divide; a perspective of 0
// projects orthographically.
func ProjectRect(r wallpaper.Rect, t tilt.Transform) Quad {
	c := r.Center()
	cx, cy := c.X, c.Y
	if t.Resting || t.IsIdentity() {
		return RectQuad(r)
	}

	rx := t.Rotate[0] * math.Pi / 180
	ry := t.Rotate[1] * math.Pi / 180
	rz := t.Rotate[2] * math.Pi / 180
	sinX, cosX := math.Sincos(rx)
	sinY, cosY := math.Sincos(ry)
	sinZ, cosZ := math.Sincos(rz)

	var q Quad
	for i, corner := range RectQuad(r) {
		x, y, z := corner.X-cx, corner.Y-cy, 0.0

		x, y = x*cosZ-y*sinZ, x*sinZ+y*cosZ
		x, z = x*cosY+z*sinY, -x*sinY+z*cosY
		y, z = y*cosX-z*sinX, y*sinX+z*cosX

		x += t.Translate[0]
		y += t.Translate[1]
		z += t.Translate[2]

		if p := t.Perspective; p > 0 {
			s := p / math.Max(p-z, minDepth)
			x *= s
			y *= s
		}
		q[i] = wallpaper.Vec2{X: cx + x, Y: cy + y}
	}
	return q
}

// Bounds is the axis-aligned box enclosing q.
func (q Quad) Bounds() wallpaper.Rect {
	minX, minY := q[0].X, q[0].Y
	maxX, maxY := minX, minY
	for _, p := range q[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return wallpaper.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Affine maps source pixel space of a w×h image onto q through its top-left,
// top-right and bottom-left corners.
func (q Quad) Affine(w, h int) f64.Aff3 {
	if w <= 0 || h <= 0 {
		return f64.Aff3{}
	}
	fw, fh := float64(w), float64(h)
	return f64.Aff3{
		(q[1].X - q[0].X) / fw, (q[3].X - q[0].X) / fh, q[0].X,
		(q[1].Y - q[0].Y) / fw, (q[3].Y - q[0].Y) / fh, q[0].Y,
	}
}

// Degenerate reports whether m collapses the image to a line or a point.
func Degenerate(m f64.Aff3) bool {
	det := m[0]*m[4] - m[1]*m[3]
	return math.Abs(det) < 1e-9 || math.IsNaN(det) || math.IsInf(det, 0)
}
