package wallpaper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// sceneFloats reads the loose number forms scene.json uses for vectors:
// "x y z" strings, a bare number, or an {"x","y","z"} object. A single
// value is repeated across all n components; missing components stay 0.
func sceneFloats(data []byte, n int) []float64 {
	out := make([]float64, n)

	var str string
	if json.Unmarshal(data, &str) == nil {
		fields := strings.Fields(str)
		if len(fields) == 1 {
			v, _ := strconv.ParseFloat(fields[0], 64)
			for i := range out {
				out[i] = v
			}
			return out
		}
		for i := 0; i < n && i < len(fields); i++ {
			out[i], _ = strconv.ParseFloat(fields[i], 64)
		}
		return out
	}

	var num float64
	if json.Unmarshal(data, &num) == nil {
		for i := range out {
			out[i] = num
		}
		return out
	}

	var obj struct{ X, Y, Z float64 }
	if json.Unmarshal(data, &obj) == nil {
		copy(out, []float64{obj.X, obj.Y, obj.Z})
	}
	return out
}

// unwrapValue strips the {"value": ...} envelope of user-bound properties.
func unwrapValue(data []byte) []byte {
	var bound struct {
		Value json.RawMessage `json:"value"`
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) && json.Unmarshal(data, &bound) == nil && bound.Value != nil {
		return bound.Value
	}
	return data
}

func (vec2 *Vec2) UnmarshalJSON(data []byte) error {
	v := sceneFloats(data, 2)
	vec2.X, vec2.Y = v[0], v[1]
	return nil
}

func (vec3 *Vec3) UnmarshalJSON(data []byte) error {
	v := sceneFloats(data, 3)
	vec3.X, vec3.Y, vec3.Z = v[0], v[1], v[2]
	return nil
}

func (binding *BindingFloat) UnmarshalJSON(data []byte) error {
	data = unwrapValue(data)
	if json.Unmarshal(data, &binding.Value) == nil {
		return nil
	}
	var str string
	if json.Unmarshal(data, &str) == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			binding.Value = v
		}
	}
	return nil
}

func (binding *BindingBool) UnmarshalJSON(data []byte) error {
	_ = json.Unmarshal(unwrapValue(data), &binding.Value)
	return nil
}

func (attrs *Attributes) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("attributes: %w", err)
	}
	out := make(Attributes, len(raw))
	for key, value := range raw {
		var str string
		if err := json.Unmarshal(value, &str); err == nil {
			out[key] = str
			continue
		}
		out[key] = string(bytes.TrimSpace(value))
	}
	*attrs = out
	return nil
}

func (obj *Object) UnmarshalJSON(data []byte) error {
	obj.Alpha = BindingFloat{Value: 1.0}
	obj.Visible = BindingBool{Value: true}

	type Alias Object
	return json.Unmarshal(data, (*Alias)(obj))
}

// Bounds returns the object's box in scene units.
func (obj *Object) Bounds() Rect {
	return Rect{
		X:      obj.Origin.X - obj.Size.X/2,
		Y:      obj.Origin.Y - obj.Size.Y/2,
		Width:  obj.Size.X,
		Height: obj.Size.Y,
	}
}

// ParseScene decodes scene.json content.
func ParseScene(data []byte) (Scene, error) {
	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return Scene{}, fmt.Errorf("scene: parse: %w", err)
	}
	return scene, nil
}

func ParseColor(colorStr string) color.RGBA {
	colorParts := strings.Fields(colorStr)
	if len(colorParts) < 3 {
		return color.RGBA{0, 0, 0, 255}
	}
	red, _ := strconv.ParseFloat(colorParts[0], 64)
	green, _ := strconv.ParseFloat(colorParts[1], 64)
	blue, _ := strconv.ParseFloat(colorParts[2], 64)
	return color.RGBA{toByte(red), toByte(green), toByte(blue), 255}
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
