package wallpaper

import (
	"errors"
	"image/color"
	"math"
	"strings"

	"linux-tiltfx/internal/utils"
)

var (
	ErrNotChild  = errors.New("wallpaper: node is not a child of parent")
	ErrNilParent = errors.New("wallpaper: nil parent")
)

// Style is the presentation state renderers read from a node.
type Style struct {
	BackgroundImage string
	Opacity         float64
	Transform       string
}

// Node is one element of the scene document.
type Node struct {
	ID         int
	Name       string
	Class      string
	Image      string
	Rect       Rect
	Visible    bool
	Style      Style
	Attributes Attributes

	parent   *Node
	children []*Node
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

func (n *Node) Attribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	v, ok := n.Attributes[name]
	return v, ok
}

// Layout maps scene units onto the client area of the host window.
type Layout struct {
	Scale      float64
	OffsetX    float64
	OffsetY    float64
	ViewWidth  float64
	ViewHeight float64
}

// Document is the tree of scene nodes. It is owned by a single goroutine.
type Document struct {
	Root       *Node
	Width      float64
	Height     float64
	ClearColor color.RGBA
	Dir        string

	layout Layout
	scroll Vec2
	nextID int
}

func NewDocument(width, height float64) *Document {
	if width <= 0 || height <= 0 {
		width, height = 1280, 720
	}
	doc := &Document{
		Width:      width,
		Height:     height,
		ClearColor: color.RGBA{0, 0, 0, 255},
		layout:     Layout{Scale: 1, ViewWidth: width, ViewHeight: height},
	}
	doc.Root = &Node{Name: "root", Visible: true, Rect: Rect{Width: width, Height: height}}
	return doc
}

// BuildDocument turns a parsed scene into a document. Objects naming an
// unknown parent are kept but left detached.
func BuildDocument(scene Scene, dir string) *Document {
	doc := NewDocument(float64(scene.General.OrthogonalProjection.Width), float64(scene.General.OrthogonalProjection.Height))
	doc.Dir = dir
	if scene.General.ClearColor != "" {
		doc.ClearColor = ParseColor(scene.General.ClearColor)
	}

	byID := make(map[int]*Node, len(scene.Objects))
	nodes := make([]*Node, len(scene.Objects))
	for i := range scene.Objects {
		object := &scene.Objects[i]
		node := &Node{
			ID:         object.ID,
			Name:       object.Name,
			Class:      object.Class,
			Image:      object.Image,
			Rect:       object.Bounds(),
			Visible:    object.Visible.GetBool(),
			Attributes: object.Attributes,
			Style: Style{
				BackgroundImage: object.Image,
				Opacity:         object.Alpha.GetFloat(),
			},
		}
		if object.ID > doc.nextID {
			doc.nextID = object.ID
		}
		if object.ID != 0 {
			byID[object.ID] = node
		}
		nodes[i] = node
	}

	for i, node := range nodes {
		parentID := scene.Objects[i].Parent
		if parentID == 0 {
			doc.AppendChild(doc.Root, node)
			continue
		}
		parent, ok := byID[parentID]
		if !ok || parent == node {
			utils.Warn("Object %s references missing parent %d, leaving it detached", node.Name, parentID)
			continue
		}
		doc.AppendChild(parent, node)
	}

	return doc
}

// CreateNode allocates a detached node with a fresh ID.
func (d *Document) CreateNode(name, class string) *Node {
	d.nextID++
	return &Node{ID: d.nextID, Name: name, Class: class, Visible: true, Style: Style{Opacity: 1}}
}

func (d *Document) AppendChild(parent, child *Node) {
	if child.parent != nil {
		d.RemoveChild(child.parent, child)
	}
	child.parent = parent
	parent.children = append(parent.children, child)
}

// InsertBefore inserts child into parent ahead of ref. A nil ref appends.
func (d *Document) InsertBefore(parent, child, ref *Node) error {
	if parent == nil {
		return ErrNilParent
	}
	if ref == nil {
		d.AppendChild(parent, child)
		return nil
	}
	idx := indexOf(parent.children, ref)
	if idx < 0 {
		return ErrNotChild
	}
	if child.parent != nil {
		d.RemoveChild(child.parent, child)
		idx = indexOf(parent.children, ref)
	}
	parent.children = append(parent.children, nil)
	copy(parent.children[idx+1:], parent.children[idx:])
	parent.children[idx] = child
	child.parent = parent
	return nil
}

func (d *Document) RemoveChild(parent, child *Node) error {
	if parent == nil {
		return ErrNilParent
	}
	idx := indexOf(parent.children, child)
	if idx < 0 {
		return ErrNotChild
	}
	parent.children = append(parent.children[:idx], parent.children[idx+1:]...)
	child.parent = nil
	return nil
}

func indexOf(nodes []*Node, n *Node) int {
	for i, c := range nodes {
		if c == n {
			return i
		}
	}
	return -1
}

// Walk visits attached nodes depth first in document order. Returning false
// from fn skips the node's children.
func (d *Document) Walk(fn func(*Node) bool) {
	var visit func(n *Node)
	visit = func(n *Node) {
		if !fn(n) {
			return
		}
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(d.Root)
}

// QueryAll returns every attached node carrying class, in document order.
func (d *Document) QueryAll(class string) []*Node {
	var out []*Node
	d.Walk(func(n *Node) bool {
		if n.HasClass(class) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func (d *Document) FindByName(name string) *Node {
	var found *Node
	d.Walk(func(n *Node) bool {
		if found == nil && n.Name == name {
			found = n
		}
		return found == nil
	})
	return found
}

func (d *Document) SetLayout(l Layout) {
	if l.Scale <= 0 {
		l.Scale = 1
	}
	d.layout = l
	d.ScrollTo(d.scroll.X, d.scroll.Y)
}

func (d *Document) Layout() Layout { return d.layout }

// ScrollTo moves the page, clamped to the part of the scene that overflows
// the view.
func (d *Document) ScrollTo(x, y float64) {
	maxX := math.Max(0, d.Width*d.layout.Scale+d.layout.OffsetX-d.layout.ViewWidth)
	maxY := math.Max(0, d.Height*d.layout.Scale+d.layout.OffsetY-d.layout.ViewHeight)
	d.scroll = Vec2{X: clamp(x, 0, maxX), Y: clamp(y, 0, maxY)}
}

func (d *Document) ScrollBy(dx, dy float64) {
	d.ScrollTo(d.scroll.X+dx, d.scroll.Y+dy)
}

func (d *Document) ScrollOffset() Vec2 { return d.scroll }

// BoundingClientRect is the node's box in client (window) pixels.
func (d *Document) BoundingClientRect(n *Node) Rect {
	l := d.layout
	return Rect{
		X:      n.Rect.X*l.Scale + l.OffsetX - d.scroll.X,
		Y:      n.Rect.Y*l.Scale + l.OffsetY - d.scroll.Y,
		Width:  n.Rect.Width * l.Scale,
		Height: n.Rect.Height * l.Scale,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
