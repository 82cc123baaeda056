package tilt

import (
	"errors"
	"fmt"

	"linux-tiltfx/internal/wallpaper"
)

const (
	WrapperClass = "tilt"
	BackClass    = "tilt__back"
	FrontClass   = "tilt__front"
)

var (
	ErrNoParent      = errors.New("tilt: image has no parent node")
	ErrNoImage       = errors.New("tilt: node has no image")
	ErrLayerMismatch = errors.New("tilt: transform count does not match layer count")
)

// Host is the part of the document an instance reads geometry from.
type Host interface {
	BoundingClientRect(n *wallpaper.Node) wallpaper.Rect
	ScrollOffset() wallpaper.Vec2
}

// Layer is one stacked copy of the image.
type Layer struct {
	// Z is the layer's position in the wrapper, the base layer being 0.
	Z         int
	Opacity   float64
	Image     string
	Transform Transform
	Node      *wallpaper.Node
}

// Instance is the tilt effect state of one image.
type Instance struct {
	Name    string
	Options Options
	Wrapper *wallpaper.Node
	Base    *Layer

	// Layers are the animated layers in z order. The base layer is last
	// when it is not fixed.
	Layers []*Layer

	View   Viewport
	Intent Intent
}

// BuildLayers replaces image in the document with a wrapper holding the base
// layer and opts.ExtraImgs front layers.
func BuildLayers(doc *wallpaper.Document, image *wallpaper.Node, opts Options) (*Instance, error) {
	if image.Image == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoImage, image.Name)
	}
	parent := image.Parent()
	if parent == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoParent, image.Name)
	}
	opts = opts.normalize()

	wrapper := doc.CreateNode(image.Name, WrapperClass)
	wrapper.Rect = image.Rect
	wrapper.Visible = image.Visible
	wrapper.Style.Opacity = image.Style.Opacity

	inst := &Instance{
		Name:    image.Name,
		Options: opts,
		Wrapper: wrapper,
	}

	inst.Base = newLayer(doc, wrapper, image, BackClass, 0, 1)
	for i := 0; i < opts.ExtraImgs; i++ {
		inst.Layers = append(inst.Layers, newLayer(doc, wrapper, image, FrontClass, i+1, opts.Opacity))
	}
	if !opts.BgFixed {
		inst.Layers = append(inst.Layers, inst.Base)
	}

	// scene objects parented to the image stay above its layers
	for _, child := range append([]*wallpaper.Node(nil), image.Children()...) {
		doc.AppendChild(wrapper, child)
	}

	if err := doc.InsertBefore(parent, wrapper, image); err != nil {
		return nil, fmt.Errorf("tilt: insert wrapper for %s: %w", image.Name, err)
	}
	if err := doc.RemoveChild(parent, image); err != nil {
		return nil, fmt.Errorf("tilt: remove image %s: %w", image.Name, err)
	}

	UpdateViewport(inst, doc)
	return inst, nil
}

func newLayer(doc *wallpaper.Document, wrapper, image *wallpaper.Node, class string, z int, opacity float64) *Layer {
	node := doc.CreateNode(fmt.Sprintf("%s#%d", image.Name, z), class)
	node.Rect = image.Rect
	node.Image = image.Image
	node.Style.BackgroundImage = image.Image
	node.Style.Opacity = opacity
	doc.AppendChild(wrapper, node)
	return &Layer{Z: z, Opacity: opacity, Image: image.Image, Node: node}
}

// ApplyTransforms writes one transform per animated layer. Applying the
// same transforms twice leaves the same state.
func ApplyTransforms(inst *Instance, transforms []Transform) error {
	if len(transforms) != len(inst.Layers) {
		return fmt.Errorf("%w: %d transforms for %d layers", ErrLayerMismatch, len(transforms), len(inst.Layers))
	}
	for i, layer := range inst.Layers {
		setTransform(layer, transforms[i])
	}
	return nil
}

func setTransform(layer *Layer, t Transform) {
	layer.Transform = t
	layer.Node.Style.Transform = t.String()
}

// ApplyNeutral puts every animated layer back to rest.
func ApplyNeutral(inst *Instance) {
	neutral := Neutral(inst.Options.Movement.Perspective)
	for _, layer := range inst.Layers {
		setTransform(layer, neutral)
	}
}

// UpdateViewport re-reads the wrapper's size from the host.
func UpdateViewport(inst *Instance, host Host) {
	r := host.BoundingClientRect(inst.Wrapper)
	inst.View = Viewport{Width: r.Width, Height: r.Height}
}

// Render computes the transforms for the current intent and applies them.
func Render(inst *Instance) {
	n := len(inst.Layers)
	for i, layer := range inst.Layers {
		setTransform(layer, ComputeTransform(i, n, inst.Options.Movement, inst.Intent, inst.View))
	}
}
