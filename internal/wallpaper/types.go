package wallpaper

type Vec2 struct {
	X, Y float64
}

type Vec3 struct {
	X, Y, Z float64
}

// Rect is an axis aligned box, X/Y being the top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

type Scene struct {
	General General  `json:"general"`
	Objects []Object `json:"objects"`
	Version int      `json:"version"`
}

type General struct {
	ClearColor           string               `json:"clearcolor"`
	OrthogonalProjection OrthogonalProjection `json:"orthogonalprojection"`
}

type OrthogonalProjection struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Object is one entry of scene.json. Origin is the centre of the object in
// scene units; Parent refers to another object's ID, 0 meaning the scene
// root.
type Object struct {
	ID         int          `json:"id"`
	Name       string       `json:"name"`
	Class      string       `json:"class"`
	Image      string       `json:"image"`
	Origin     Vec3         `json:"origin"`
	Size       Vec2         `json:"size"`
	Parent     int          `json:"parent"`
	Alpha      BindingFloat `json:"alpha"`
	Visible    BindingBool  `json:"visible"`
	Attributes Attributes   `json:"attributes"`
}

// BindingFloat is a number that may be bound to a user property, in which
// case scene.json wraps it as {"user": ..., "value": n}.
type BindingFloat struct {
	Value float64
}

func (bf BindingFloat) GetFloat() float64 { return bf.Value }

type BindingBool struct {
	Value bool
}

func (bb BindingBool) GetBool() bool { return bb.Value }

// Attributes holds element attributes as raw strings, the way a markup
// attribute would be read. Values given as inline JSON in scene.json are
// kept as their JSON text.
type Attributes map[string]string
