package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveAssetPath(t *testing.T) {
	scene := t.TempDir()
	shared := t.TempDir()
	touch(t, filepath.Join(scene, "photo.png"))
	touch(t, filepath.Join(scene, "materials", "card.tex"))
	touch(t, filepath.Join(scene, "images", "deep", "badge.jpg"))
	touch(t, filepath.Join(shared, "common.png"))

	prev := AssetRoots
	AssetRoots = []string{shared}
	defer func() { AssetRoots = prev }()

	tests := []struct {
		name, rel, want string
	}{
		{"direct", "photo.png", filepath.Join(scene, "photo.png")},
		{"asset root", "common.png", filepath.Join(shared, "common.png")},
		{"materials prefix without extension", "materials/card", filepath.Join(scene, "materials", "card.tex")},
		{"bare name", "card", filepath.Join(scene, "materials", "card.tex")},
		{"walk by base name", "materials/badge", filepath.Join(scene, "images", "deep", "badge.jpg")},
		{"missing keeps scene path", "gone.png", filepath.Join(scene, "gone.png")},
		{"missing bare name", "gone", filepath.Join(scene, "gone")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveAssetPath(scene, tt.rel); got != tt.want {
				t.Errorf("ResolveAssetPath(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}
}

func TestFindImageFileEmpty(t *testing.T) {
	if got := FindImageFile(t.TempDir(), ""); got != "" {
		t.Errorf("FindImageFile(\"\") = %q", got)
	}
}
