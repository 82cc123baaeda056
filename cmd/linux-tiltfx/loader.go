package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"linux-tiltfx/internal/config"
	"linux-tiltfx/internal/convert"
	"linux-tiltfx/internal/engine2D"
	"linux-tiltfx/internal/tilt"
	"linux-tiltfx/internal/utils"
	"linux-tiltfx/internal/wallpaper"
)

// Scene is a loaded document with its tilt instances wired to input.
type Scene struct {
	Path       string
	Doc        *wallpaper.Document
	Dispatcher *engine2D.Dispatcher
}

// resolveScenePath turns the command line argument into a scene.json path.
// A .pkg is unpacked into a temporary directory that cleanup removes.
func resolveScenePath(arg string) (scenePath string, cleanup func(), err error) {
	cleanup = func() {}
	info, err := os.Stat(arg)
	if err != nil {
		return "", cleanup, err
	}

	switch {
	case info.IsDir():
		scenePath, err = convert.FindSceneJSON(arg)
		return scenePath, cleanup, err

	case strings.EqualFold(filepath.Ext(arg), ".pkg"):
		tmp, err := os.MkdirTemp("", "linux-tiltfx-*")
		if err != nil {
			return "", cleanup, err
		}
		cleanup = func() { os.RemoveAll(tmp) }

		utils.Info("Unpacking %s...", arg)
		if err := convert.ExtractPkg(arg, tmp); err != nil {
			cleanup()
			return "", func() {}, fmt.Errorf("failed to extract pkg: %w", err)
		}
		utils.AssetRoots = append(utils.AssetRoots, filepath.Dir(arg))
		scenePath, err = convert.FindSceneJSON(tmp)
		if err != nil {
			cleanup()
			return "", func() {}, err
		}
		return scenePath, cleanup, nil
	}

	return arg, cleanup, nil
}

func loadScene(scenePath string, frames tilt.Frames, cfg *config.Config) (*Scene, error) {
	return loadSceneWith(scenePath, frames, cfg.DiscoverOptions())
}

// loadSceneWith parses scenePath and converts its tilt elements. Elements
// that fail are logged and left out; the scene itself still loads.
func loadSceneWith(scenePath string, frames tilt.Frames, opts tilt.DiscoverOptions) (*Scene, error) {
	data, err := os.ReadFile(scenePath)
	if err != nil {
		return nil, err
	}
	parsed, err := wallpaper.ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling %s: %w", scenePath, err)
	}
	utils.Info("Scene loaded: %d objects found", len(parsed.Objects))

	doc := wallpaper.BuildDocument(parsed, filepath.Dir(scenePath))
	controllers, err := tilt.Discover(doc, frames, opts)
	if err != nil {
		utils.Warn("Some tilt elements were skipped: %v", err)
	}
	utils.Info("%d tilt instances", len(controllers))

	return &Scene{
		Path:       scenePath,
		Doc:        doc,
		Dispatcher: engine2D.NewDispatcher(doc, controllers),
	}, nil
}

func newScheduler(cfg *config.Config) *tilt.Scheduler {
	if cfg.Scheduler.Fallback {
		utils.Debug("Using fallback frame scheduler (%s)", cfg.Scheduler.Interval)
		return tilt.NewFallbackScheduler(cfg.Scheduler.Interval)
	}
	return tilt.NewScheduler()
}
