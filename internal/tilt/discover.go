package tilt

import (
	"errors"
	"fmt"

	"linux-tiltfx/internal/utils"
	"linux-tiltfx/internal/wallpaper"
)

const (
	DefaultEffectClass      = "tilt-effect"
	DefaultOptionsAttribute = "data-tilt-options"
)

type DiscoverOptions struct {
	Class     string
	Attribute string
	Defaults  Options

	// Controller options applied to every discovered instance.
	Controller []Option
}

func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		Class:     DefaultEffectClass,
		Attribute: DefaultOptionsAttribute,
		Defaults:  DefaultOptions(),
	}
}

// Discover converts every image carrying the effect class into an instance.
// A failing element is reported in the joined error and skipped; the other
// elements are still converted.
func Discover(doc *wallpaper.Document, frames Frames, opts DiscoverOptions) ([]*Controller, error) {
	if opts.Class == "" {
		opts.Class = DefaultEffectClass
	}
	if opts.Attribute == "" {
		opts.Attribute = DefaultOptionsAttribute
	}

	var controllers []*Controller
	var errs []error
	for _, node := range doc.QueryAll(opts.Class) {
		if node.Image == "" {
			utils.Debug("tilt: %s has the effect class but no image, skipping", node.Name)
			continue
		}

		raw, _ := node.Attribute(opts.Attribute)
		overrides, err := ParseOptions([]byte(raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("tilt: %s: %w", node.Name, err))
			continue
		}

		c, err := New(doc, node, Merge(opts.Defaults, overrides), frames, opts.Controller...)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		inst := c.Instance()
		utils.Info("tilt: %s ready with %d layers (%.0fx%.0f)", inst.Name, len(inst.Layers), inst.View.Width, inst.View.Height)
		controllers = append(controllers, c)
	}

	return controllers, errors.Join(errs...)
}
