package wallpaper

import (
	"encoding/json"
	"image/color"
	"testing"
)

func TestLooseVectors(t *testing.T) {
	tests := []struct {
		in   string
		want Vec3
	}{
		{`"1 2 3"`, Vec3{1, 2, 3}},
		{`"1 2"`, Vec3{1, 2, 0}},
		{`"4"`, Vec3{4, 4, 4}},
		{`7`, Vec3{7, 7, 7}},
		{`{"x": 1, "y": -1}`, Vec3{1, -1, 0}},
		{`[1, 2]`, Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got Vec3
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBindings(t *testing.T) {
	var obj Object
	if err := json.Unmarshal([]byte(`{"id": 1}`), &obj); err != nil {
		t.Fatal(err)
	}
	if obj.Alpha.GetFloat() != 1 || !obj.Visible.GetBool() {
		t.Errorf("defaults = %v, %v", obj.Alpha, obj.Visible)
	}

	tests := []struct {
		in   string
		want float64
	}{
		{`0.25`, 0.25},
		{`"0.5"`, 0.5},
		{`{"user": "opacity", "value": 0.75}`, 0.75},
		{`{"user": "opacity", "value": "0.1"}`, 0.1},
	}
	for _, tt := range tests {
		b := BindingFloat{Value: 1}
		if err := json.Unmarshal([]byte(tt.in), &b); err != nil {
			t.Fatal(err)
		}
		if b.GetFloat() != tt.want {
			t.Errorf("%s: got %v, want %v", tt.in, b.GetFloat(), tt.want)
		}
	}

	b := BindingBool{Value: true}
	if err := json.Unmarshal([]byte(`{"user": "show", "value": false}`), &b); err != nil || b.GetBool() {
		t.Errorf("bound bool = %v, %v", b.GetBool(), err)
	}
}

func TestParseColor(t *testing.T) {
	if got := ParseColor("1 0.5 0"); got != (color.RGBA{255, 128, 0, 255}) {
		t.Errorf("ParseColor = %v", got)
	}
	if got := ParseColor("bad"); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("ParseColor(bad) = %v", got)
	}
}
