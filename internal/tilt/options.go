package tilt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

const (
	MinExtraImages = 1
	MaxExtraImages = 5
)

var ErrInvalidOptions = errors.New("tilt: invalid options")

// Movement holds the per-axis magnitudes. Translations are in pixels,
// rotations in degrees; a zero magnitude disables the axis.
type Movement struct {
	Perspective float64
	TranslateX  float64
	TranslateY  float64
	TranslateZ  float64
	RotateX     float64
	RotateY     float64
	RotateZ     float64
}

// Options configure one instance. They are fixed once the instance is
// built.
type Options struct {
	ExtraImgs int
	Opacity   float64
	BgFixed   bool
	Movement  Movement
}

func DefaultOptions() Options {
	return Options{
		ExtraImgs: 2,
		Opacity:   0.7,
		BgFixed:   true,
		Movement: Movement{
			Perspective: 1000,
			TranslateX:  -10,
			TranslateY:  -10,
			TranslateZ:  20,
			RotateX:     2,
			RotateY:     2,
			RotateZ:     0,
		},
	}
}

// LayerCount is the number of animated layers: the extra layers plus the
// base layer when it is not fixed.
func (o Options) LayerCount() int {
	if o.BgFixed {
		return o.ExtraImgs
	}
	return o.ExtraImgs + 1
}

// RawOptions is the wire form of Options. A nil field is unset and takes
// its value from the defaults during Merge.
type RawOptions struct {
	ExtraImgs *int         `json:"extraImgs,omitempty" yaml:"extraImgs,omitempty"`
	Opacity   *float64     `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	BgFixed   *bool        `json:"bgfixed,omitempty" yaml:"bgfixed,omitempty"`
	Movement  *RawMovement `json:"movement,omitempty" yaml:"movement,omitempty"`
}

type RawMovement struct {
	Perspective *float64 `json:"perspective,omitempty" yaml:"perspective,omitempty"`
	TranslateX  *float64 `json:"translateX,omitempty" yaml:"translateX,omitempty"`
	TranslateY  *float64 `json:"translateY,omitempty" yaml:"translateY,omitempty"`
	TranslateZ  *float64 `json:"translateZ,omitempty" yaml:"translateZ,omitempty"`
	RotateX     *float64 `json:"rotateX,omitempty" yaml:"rotateX,omitempty"`
	RotateY     *float64 `json:"rotateY,omitempty" yaml:"rotateY,omitempty"`
	RotateZ     *float64 `json:"rotateZ,omitempty" yaml:"rotateZ,omitempty"`
}

// ParseOptions decodes an options attribute. An empty attribute or a JSON
// null yields unset options.
func ParseOptions(data []byte) (RawOptions, error) {
	var raw RawOptions
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return raw, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(&raw); err != nil {
		return RawOptions{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if dec.More() {
		return RawOptions{}, fmt.Errorf("%w: trailing data after options object", ErrInvalidOptions)
	}
	return raw, nil
}

// Merge overlays raw onto defaults. A field set in raw wins, an unset one
// keeps the default, and nested movement fields are merged one by one.
// The result is normalised: ExtraImgs is clamped to [1,5] and a perspective
// that is not a finite non-negative number becomes 0.
func Merge(defaults Options, raw RawOptions) Options {
	out := defaults
	if raw.ExtraImgs != nil {
		out.ExtraImgs = *raw.ExtraImgs
	}
	if raw.Opacity != nil {
		out.Opacity = *raw.Opacity
	}
	if raw.BgFixed != nil {
		out.BgFixed = *raw.BgFixed
	}
	if m := raw.Movement; m != nil {
		setIf(&out.Movement.Perspective, m.Perspective)
		setIf(&out.Movement.TranslateX, m.TranslateX)
		setIf(&out.Movement.TranslateY, m.TranslateY)
		setIf(&out.Movement.TranslateZ, m.TranslateZ)
		setIf(&out.Movement.RotateX, m.RotateX)
		setIf(&out.Movement.RotateY, m.RotateY)
		setIf(&out.Movement.RotateZ, m.RotateZ)
	}
	return out.normalize()
}

// Overlay merges two raw option sets, b winning over a.
func Overlay(a, b RawOptions) RawOptions {
	out := a
	if b.ExtraImgs != nil {
		out.ExtraImgs = b.ExtraImgs
	}
	if b.Opacity != nil {
		out.Opacity = b.Opacity
	}
	if b.BgFixed != nil {
		out.BgFixed = b.BgFixed
	}
	if b.Movement != nil {
		m := RawMovement{}
		if a.Movement != nil {
			m = *a.Movement
		}
		pick(&m.Perspective, b.Movement.Perspective)
		pick(&m.TranslateX, b.Movement.TranslateX)
		pick(&m.TranslateY, b.Movement.TranslateY)
		pick(&m.TranslateZ, b.Movement.TranslateZ)
		pick(&m.RotateX, b.Movement.RotateX)
		pick(&m.RotateY, b.Movement.RotateY)
		pick(&m.RotateZ, b.Movement.RotateZ)
		out.Movement = &m
	}
	return out
}

func (o Options) normalize() Options {
	if o.ExtraImgs < MinExtraImages {
		o.ExtraImgs = MinExtraImages
	} else if o.ExtraImgs > MaxExtraImages {
		o.ExtraImgs = MaxExtraImages
	}
	p := o.Movement.Perspective
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		o.Movement.Perspective = 0
	}
	return o
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func pick(dst **float64, v *float64) {
	if v != nil {
		*dst = v
	}
}
