package engine2D

import (
	"linux-tiltfx/internal/convert"
	"linux-tiltfx/internal/tilt"
	"linux-tiltfx/internal/utils"
	"linux-tiltfx/internal/wallpaper"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func NewRenderer(doc *wallpaper.Document, instances []*tilt.Instance, scalingMode string) *Renderer {
	return &Renderer{
		Doc:       doc,
		Instances: instances,
		Scaling:   scalingMode,
		textures:  make(map[string]*rl.Texture2D),
		failed:    make(map[string]bool),
	}
}

// SetScene swaps the document after a reload. Textures stay cached.
func (r *Renderer) SetScene(doc *wallpaper.Document, instances []*tilt.Instance) {
	scroll := r.Doc.ScrollOffset()
	r.Doc = doc
	r.Instances = instances
	r.UpdateViewport(rl.GetScreenWidth(), rl.GetScreenHeight())
	doc.ScrollTo(scroll.X, scroll.Y)
	clear(r.failed)
}

// UpdateViewport recomputes the document layout for the window size.
func (r *Renderer) UpdateViewport(screenWidth, screenHeight int) {
	r.Doc.SetLayout(ComputeLayout(r.Doc.Width, r.Doc.Height, screenWidth, screenHeight, r.Scaling))
}

// Preload decodes every image of the scene in parallel and uploads the
// results. It must run on the window thread.
func (r *Renderer) Preload() {
	paths := ImagePaths(BuildRenderObjects(r.Doc, r.Instances))
	var pending []string
	for _, p := range paths {
		if _, ok := r.textures[p]; !ok {
			pending = append(pending, p)
		}
	}
	if len(pending) == 0 {
		return
	}

	images, err := convert.LoadAll(pending)
	if err != nil {
		utils.Warn("Some images failed to load: %v", err)
	}
	for _, p := range pending {
		img, ok := images[p]
		if !ok {
			r.failed[p] = true
			continue
		}
		rlImg := rl.NewImageFromImage(img)
		tex := rl.LoadTextureFromImage(rlImg)
		rl.UnloadImage(rlImg)
		rl.SetTextureFilter(tex, rl.FilterBilinear)
		r.textures[p] = &tex
	}
	utils.Info("Loaded %d textures", len(r.textures))
}

func (r *Renderer) texture(path string) *rl.Texture2D {
	if tex, ok := r.textures[path]; ok {
		return tex
	}
	if r.failed[path] {
		return nil
	}
	img, err := convert.LoadImage(path)
	if err != nil {
		utils.Error("Failed to load texture %s: %v", path, err)
		r.failed[path] = true
		return nil
	}
	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	r.textures[path] = &tex
	return &tex
}

// Render draws the document clipped to the visible scene area.
func (r *Renderer) Render() {
	rl.ClearBackground(rl.Black)

	l := r.Doc.Layout()
	scroll := r.Doc.ScrollOffset()
	sceneRectX := int32(l.OffsetX - scroll.X)
	sceneRectY := int32(l.OffsetY - scroll.Y)
	sceneRectW := int32(r.Doc.Width * l.Scale)
	sceneRectH := int32(r.Doc.Height * l.Scale)

	bg := r.Doc.ClearColor
	rl.BeginScissorMode(sceneRectX, sceneRectY, sceneRectW, sceneRectH)
	rl.ClearBackground(rl.NewColor(bg.R, bg.G, bg.B, 255))

	screenW := float64(rl.GetScreenWidth())
	screenH := float64(rl.GetScreenHeight())
	for _, ro := range BuildRenderObjects(r.Doc, r.Instances) {
		b := ro.Quad.Bounds()
		if b.X+b.Width < 0 || b.X > screenW || b.Y+b.Height < 0 || b.Y > screenH {
			continue
		}
		tex := r.texture(ro.Path)
		if tex == nil {
			continue
		}
		drawQuad(tex, ro.Quad, uint8(clampUnit(ro.Opacity)*255))
	}

	rl.EndScissorMode()
}

// drawQuad maps the whole texture onto q, like DrawTexturePro does for a
// rectangle.
func drawQuad(tex *rl.Texture2D, q Quad, alpha uint8) {
	rl.SetTexture(tex.ID)
	rl.Begin(rl.Quads)

	rl.Color4ub(255, 255, 255, alpha)
	rl.Normal3f(0, 0, 1)

	rl.TexCoord2f(0, 0)
	rl.Vertex2f(float32(q[0].X), float32(q[0].Y))
	rl.TexCoord2f(0, 1)
	rl.Vertex2f(float32(q[3].X), float32(q[3].Y))
	rl.TexCoord2f(1, 1)
	rl.Vertex2f(float32(q[2].X), float32(q[2].Y))
	rl.TexCoord2f(1, 0)
	rl.Vertex2f(float32(q[1].X), float32(q[1].Y))

	rl.End()
	rl.SetTexture(0)
}

// Invalidate drops the cached texture of path so the next frame reloads it.
func (r *Renderer) Invalidate(path string) {
	if tex, ok := r.textures[path]; ok {
		rl.UnloadTexture(*tex)
		delete(r.textures, path)
	}
	delete(r.failed, path)
}

// Unload frees every cached texture.
func (r *Renderer) Unload() {
	for p, tex := range r.textures {
		rl.UnloadTexture(*tex)
		delete(r.textures, p)
	}
}
