package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// AssetRoots are searched, in order, after the scene directory when an image
// reference does not resolve directly.
var AssetRoots []string

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tga", ".tex"}

var errFound = errors.New("found")

// ResolveAssetPath returns the first existing location of relPath below
// sceneDir or one of AssetRoots. Image names without an extension or under
// materials/ are then looked up with FindImageFile. The sceneDir candidate
// is returned when nothing exists so callers get a meaningful path in their
// error.
func ResolveAssetPath(sceneDir, relPath string) string {
	if filepath.IsAbs(relPath) {
		return relPath
	}

	localPath := filepath.Join(sceneDir, relPath)
	if _, err := os.Stat(localPath); err == nil {
		return localPath
	}

	for _, root := range AssetRoots {
		p := filepath.Join(root, relPath)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	slashed := filepath.ToSlash(relPath)
	if filepath.Ext(relPath) == "" || strings.HasPrefix(slashed, "materials/") {
		if p := FindImageFile(sceneDir, slashed); p != "" {
			return p
		}
	}

	return localPath
}

// FindImageFile locates an image by name, trying the known image extensions
// when the name has none, then falling back to a recursive walk of the
// search dirs matching on base name.
func FindImageFile(sceneDir, name string) string {
	if name == "" {
		return ""
	}

	searchDirs := []string{
		sceneDir,
		filepath.Join(sceneDir, "materials"),
		filepath.Join(sceneDir, "images"),
	}
	searchDirs = append(searchDirs, AssetRoots...)

	cleanName := strings.TrimPrefix(name, "materials/")
	for _, dir := range searchDirs {
		for _, n := range []string{name, cleanName} {
			p := filepath.Join(dir, n)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p
			}
		}
		if filepath.Ext(cleanName) != "" {
			continue
		}
		for _, ext := range imageExtensions {
			p := filepath.Join(dir, cleanName+ext)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}

	var foundPath string
	targetBase := strings.TrimSuffix(filepath.Base(cleanName), filepath.Ext(cleanName))
	for _, d := range searchDirs {
		if _, err := os.Stat(d); err != nil {
			continue
		}
		filepath.Walk(d, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			base := filepath.Base(path)
			ext := strings.ToLower(filepath.Ext(base))
			if strings.TrimSuffix(base, filepath.Ext(base)) == targetBase && IsImageExt(ext) {
				foundPath = path
				return errFound
			}
			return nil
		})
		if foundPath != "" {
			break
		}
	}

	return foundPath
}

func IsImageExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range imageExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
