package tilt

import (
	"strconv"
	"strings"
)

// Transform is the 3D transform of one layer: a perspective distance, a
// translation in pixels and rotations in degrees about X, Y and Z, applied
// in that order.
type Transform struct {
	Perspective float64
	Translate   [3]float64
	Rotate      [3]float64

	// Resting marks the neutral transform, a zero angle rotation about the
	// (1,1,1) diagonal.
	Resting bool
}

// Neutral is the resting transform applied once input stops.
func Neutral(perspective float64) Transform {
	return Transform{Perspective: perspective, Resting: true}
}

// IsIdentity reports whether t displaces nothing.
func (t Transform) IsIdentity() bool {
	return t.Translate == [3]float64{} && t.Rotate == [3]float64{}
}

// String renders t in CSS transform syntax.
func (t Transform) String() string {
	var b strings.Builder
	b.WriteString("perspective(")
	b.WriteString(formatFloat(t.Perspective))
	b.WriteString("px) ")
	if t.Resting {
		b.WriteString("translate3d(0,0,0) rotate3d(1,1,1,0deg)")
		return b.String()
	}
	b.WriteString("translate3d(")
	b.WriteString(formatFloat(t.Translate[0]))
	b.WriteString("px,")
	b.WriteString(formatFloat(t.Translate[1]))
	b.WriteString("px,")
	b.WriteString(formatFloat(t.Translate[2]))
	b.WriteString("px) rotate3d(1,0,0,")
	b.WriteString(formatFloat(t.Rotate[0]))
	b.WriteString("deg) rotate3d(0,1,0,")
	b.WriteString(formatFloat(t.Rotate[1]))
	b.WriteString("deg) rotate3d(0,0,1,")
	b.WriteString(formatFloat(t.Rotate[2]))
	b.WriteString("deg)")
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ComputeTransform returns the transform of layer layerIndex out of
// layerCount animated layers. Each enabled axis moves linearly from
// -w to +w across the viewport, w being the axis magnitude scaled by
// (layerIndex+1)/layerCount, so deeper layers move further.
func ComputeTransform(layerIndex, layerCount int, m Movement, in Intent, view Viewport) Transform {
	x, y := in.X, in.Y
	zRot, zTrans := in.X, in.Y
	zRotDim := view.Width
	if in.Source == SourceMotion {
		// motion z is normalized over the height, so it is read against
		// the height on both z axes
		zRot, zTrans = in.Z, in.Z
		zRotDim = view.Height
	}

	axis := func(magnitude, component, dimension float64) float64 {
		if magnitude == 0 || layerCount <= 0 || dimension == 0 {
			return 0
		}
		w := float64(layerIndex+1) * magnitude / float64(layerCount)
		return 2*w*(component/dimension) - w
	}

	return Transform{
		Perspective: m.Perspective,
		Translate: [3]float64{
			axis(m.TranslateX, x, view.Width),
			axis(m.TranslateY, y, view.Height),
			axis(m.TranslateZ, zTrans, view.Height),
		},
		Rotate: [3]float64{
			axis(m.RotateX, y, view.Height),
			axis(m.RotateY, x, view.Width),
			axis(m.RotateZ, zRot, zRotDim),
		},
	}
}

// ComputeAll returns one transform per animated layer.
func ComputeAll(layerCount int, m Movement, in Intent, view Viewport) []Transform {
	out := make([]Transform, layerCount)
	for i := range out {
		out[i] = ComputeTransform(i, layerCount, m, in, view)
	}
	return out
}
