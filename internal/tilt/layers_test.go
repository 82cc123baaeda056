package tilt

import (
	"errors"
	"testing"

	"linux-tiltfx/internal/wallpaper"
)

func TestBuildLayersReplacesImage(t *testing.T) {
	doc := parseTestDoc(t, testScene)
	photo := doc.FindByName("photo")
	gallery := photo.Parent()

	inst, err := BuildLayers(doc, photo, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildLayers: %v", err)
	}

	if photo.Parent() != nil {
		t.Error("image is still attached")
	}
	children := gallery.Children()
	if len(children) != 2 || children[0] != inst.Wrapper {
		t.Fatalf("wrapper not inserted in place of the image: %v", children)
	}
	if !inst.Wrapper.HasClass(WrapperClass) {
		t.Errorf("wrapper class = %q", inst.Wrapper.Class)
	}

	layers := inst.Wrapper.Children()
	if len(layers) != 3 {
		t.Fatalf("wrapper has %d children, want base + 2", len(layers))
	}
	if layers[0] != inst.Base.Node || !layers[0].HasClass(BackClass) {
		t.Error("first child is not the base layer")
	}
	for i, n := range layers[1:] {
		if !n.HasClass(FrontClass) {
			t.Errorf("layer %d class = %q", i+1, n.Class)
		}
		if n.Style.BackgroundImage != "photo.png" || n.Style.Opacity != 0.7 {
			t.Errorf("layer %d style = %+v", i+1, n.Style)
		}
	}
	if len(inst.Layers) != 2 {
		t.Errorf("animated layers = %d, want 2 with a fixed base", len(inst.Layers))
	}
	if inst.View != (Viewport{Width: 200, Height: 100}) {
		t.Errorf("view = %+v", inst.View)
	}
}

func TestBuildLayersKeepsImageChildren(t *testing.T) {
	doc := parseTestDoc(t, `{
		"objects": [
			{"id": 1, "name": "gallery", "origin": "200 150", "size": "400 300"},
			{"id": 2, "name": "photo", "class": "tilt-effect", "image": "photo.png",
			 "origin": "100 50", "size": "200 100", "parent": 1},
			{"id": 3, "name": "badge", "image": "badge.png", "origin": "180 20", "size": "20 20", "parent": 2}
		]
	}`)

	photo := doc.FindByName("photo")
	inst, err := BuildLayers(doc, photo, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildLayers: %v", err)
	}

	badge := doc.FindByName("badge")
	if badge == nil {
		t.Fatal("child of the tilted image left the document")
	}
	if badge.Parent() != inst.Wrapper {
		t.Errorf("badge parent = %v, want the wrapper", badge.Parent())
	}
	children := inst.Wrapper.Children()
	if children[len(children)-1] != badge {
		t.Error("badge should be drawn after the layers")
	}
	if len(photo.Children()) != 0 {
		t.Error("detached image still holds children")
	}
}

func TestBuildLayersAnimatedBase(t *testing.T) {
	doc := parseTestDoc(t, testScene)
	opts := DefaultOptions()
	opts.BgFixed = false
	opts.ExtraImgs = 3

	inst, err := BuildLayers(doc, doc.FindByName("photo"), opts)
	if err != nil {
		t.Fatalf("BuildLayers: %v", err)
	}
	if len(inst.Layers) != 4 {
		t.Fatalf("animated layers = %d, want 4", len(inst.Layers))
	}
	if inst.Layers[3] != inst.Base {
		t.Error("base layer should be animated last")
	}
	if inst.Base.Opacity != 1 {
		t.Errorf("base opacity = %v, want 1", inst.Base.Opacity)
	}
}

func TestBuildLayersClampsCount(t *testing.T) {
	for _, tt := range []struct{ requested, want int }{{0, 1}, {9, 5}} {
		doc := parseTestDoc(t, testScene)
		opts := DefaultOptions()
		opts.ExtraImgs = tt.requested
		inst, err := BuildLayers(doc, doc.FindByName("photo"), opts)
		if err != nil {
			t.Fatalf("BuildLayers: %v", err)
		}
		if len(inst.Layers) != tt.want || inst.Options.ExtraImgs != tt.want {
			t.Errorf("requested %d: got %d layers, want %d", tt.requested, len(inst.Layers), tt.want)
		}
	}
}

func TestBuildLayersPreconditions(t *testing.T) {
	doc := wallpaper.NewDocument(400, 300)

	detached := doc.CreateNode("loose", "tilt-effect")
	detached.Image = "loose.png"
	if _, err := BuildLayers(doc, detached, DefaultOptions()); !errors.Is(err, ErrNoParent) {
		t.Errorf("detached image: err = %v, want ErrNoParent", err)
	}

	blank := doc.CreateNode("blank", "tilt-effect")
	doc.AppendChild(doc.Root, blank)
	if _, err := BuildLayers(doc, blank, DefaultOptions()); !errors.Is(err, ErrNoImage) {
		t.Errorf("no image: err = %v, want ErrNoImage", err)
	}
	if len(doc.Root.Children()) != 1 {
		t.Error("failed build mutated the document")
	}
}

func TestApplyTransformsIdempotent(t *testing.T) {
	doc := parseTestDoc(t, testScene)
	inst, err := BuildLayers(doc, doc.FindByName("photo"), DefaultOptions())
	if err != nil {
		t.Fatalf("BuildLayers: %v", err)
	}

	transforms := ComputeAll(len(inst.Layers), inst.Options.Movement, Intent{X: 30, Y: 80}, inst.View)
	if err := ApplyTransforms(inst, transforms); err != nil {
		t.Fatalf("ApplyTransforms: %v", err)
	}
	first := snapshotLayers(inst)
	if err := ApplyTransforms(inst, transforms); err != nil {
		t.Fatalf("ApplyTransforms: %v", err)
	}
	second := snapshotLayers(inst)

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("layer %d changed: %+v -> %+v", i, first[i], second[i])
		}
	}
	if inst.Layers[0].Node.Style.Transform != transforms[0].String() {
		t.Errorf("node style = %q", inst.Layers[0].Node.Style.Transform)
	}
}

type layerState struct {
	transform Transform
	style     wallpaper.Style
}

func snapshotLayers(inst *Instance) []layerState {
	out := make([]layerState, len(inst.Layers))
	for i, l := range inst.Layers {
		out[i] = layerState{transform: l.Transform, style: l.Node.Style}
	}
	return out
}

func TestApplyTransformsMismatch(t *testing.T) {
	doc := parseTestDoc(t, testScene)
	inst, err := BuildLayers(doc, doc.FindByName("photo"), DefaultOptions())
	if err != nil {
		t.Fatalf("BuildLayers: %v", err)
	}
	if err := ApplyTransforms(inst, make([]Transform, 5)); !errors.Is(err, ErrLayerMismatch) {
		t.Errorf("err = %v, want ErrLayerMismatch", err)
	}
}

func TestUpdateViewportFollowsLayout(t *testing.T) {
	doc := parseTestDoc(t, testScene)
	inst, err := BuildLayers(doc, doc.FindByName("photo"), DefaultOptions())
	if err != nil {
		t.Fatalf("BuildLayers: %v", err)
	}
	before := inst.Options

	doc.SetLayout(wallpaper.Layout{Scale: 2, ViewWidth: 800, ViewHeight: 600})
	UpdateViewport(inst, doc)
	if inst.View != (Viewport{Width: 400, Height: 200}) {
		t.Errorf("view = %+v", inst.View)
	}
	if inst.Options != before {
		t.Error("UpdateViewport changed the options")
	}
}

func TestRenderWritesEveryLayer(t *testing.T) {
	doc := parseTestDoc(t, testScene)
	opts := DefaultOptions()
	opts.BgFixed = false
	opts.Movement.TranslateX = 10
	inst, err := BuildLayers(doc, doc.FindByName("photo"), opts)
	if err != nil {
		t.Fatalf("BuildLayers: %v", err)
	}
	inst.Intent = Intent{X: 200, Y: 50}

	Render(inst)

	want := ComputeAll(len(inst.Layers), inst.Options.Movement, inst.Intent, inst.View)
	for i, layer := range inst.Layers {
		if layer.Transform != want[i] {
			t.Errorf("layer %d transform = %+v, want %+v", i, layer.Transform, want[i])
		}
		if layer.Node.Style.Transform != want[i].String() {
			t.Errorf("layer %d style = %q", i, layer.Node.Style.Transform)
		}
	}
}
