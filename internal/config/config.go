package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"linux-tiltfx/internal/tilt"
)

// Scaling modes for fitting the scene into the window.
const (
	ScalingFit  = "fit"
	ScalingFill = "fill"
)

// Config holds viewer, scheduler and effect settings.
type Config struct {
	Window    Window    `yaml:"window"`
	Scheduler Scheduler `yaml:"scheduler"`
	Effect    Effect    `yaml:"effect"`
	Input     Input     `yaml:"input"`
	Log       Log       `yaml:"log"`
	Watch     bool      `yaml:"watch"`
}

type Window struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	FPS     int    `yaml:"fps"`
	Scaling string `yaml:"scaling"`
}

// Scheduler selects display-synced frames or the fixed-interval fallback.
type Scheduler struct {
	Fallback bool          `yaml:"fallback"`
	Interval time.Duration `yaml:"interval"`
}

type Effect struct {
	Class          string          `yaml:"class"`
	Attribute      string          `yaml:"attribute"`
	SettleDelay    time.Duration   `yaml:"settleDelay"`
	MotionInterval time.Duration   `yaml:"motionInterval"`
	ResizeInterval time.Duration   `yaml:"resizeInterval"`
	Defaults       tilt.RawOptions `yaml:"defaults"`
}

type Input struct {
	GlobalPointer bool `yaml:"globalPointer"`
	Gamepad       int  `yaml:"gamepad"`
	Motion        bool `yaml:"motion"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Width:   1280,
			Height:  720,
			Title:   "linux-tiltfx",
			FPS:     60,
			Scaling: ScalingFit,
		},
		Scheduler: Scheduler{
			Interval: tilt.DefaultFrameInterval,
		},
		Effect: Effect{
			Class:          tilt.DefaultEffectClass,
			Attribute:      tilt.DefaultOptionsAttribute,
			SettleDelay:    tilt.DefaultSettleDelay,
			MotionInterval: tilt.DefaultMotionInterval,
			ResizeInterval: tilt.DefaultResizeInterval,
		},
		Input: Input{
			Gamepad: -1,
			Motion:  true,
		},
		Log: Log{Level: "warn"},
	}
}

// Load reads a YAML config file over the built-in defaults. Keys missing
// from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := cfg.decode(data); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, except a missing file yields the defaults.
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return c.Validate()
}

// Validate rejects settings the viewer cannot run with.
func (c *Config) Validate() error {
	switch c.Window.Scaling {
	case ScalingFit, ScalingFill:
	default:
		return fmt.Errorf("window.scaling: unknown mode %q", c.Window.Scaling)
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window: negative size %dx%d", c.Window.Width, c.Window.Height)
	}
	for name, d := range map[string]time.Duration{
		"scheduler.interval":    c.Scheduler.Interval,
		"effect.settleDelay":    c.Effect.SettleDelay,
		"effect.motionInterval": c.Effect.MotionInterval,
		"effect.resizeInterval": c.Effect.ResizeInterval,
	} {
		if d < 0 {
			return fmt.Errorf("%s: negative duration %s", name, d)
		}
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width         int
	Height        int
	FPS           int
	Fallback      bool
	GlobalPointer bool
	Watch         bool
	Debug         bool
	Verbose       bool
	Options       string
}

// Resolve applies CLI flags over the loaded file. Non-zero flags win.
func (c *Config) Resolve(flags Flags) error {
	if flags.Width > 0 {
		c.Window.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Window.Height = flags.Height
	}
	if flags.FPS > 0 {
		c.Window.FPS = flags.FPS
	}
	if flags.Fallback {
		c.Scheduler.Fallback = true
	}
	if flags.GlobalPointer {
		c.Input.GlobalPointer = true
	}
	if flags.Watch {
		c.Watch = true
	}
	if flags.Verbose {
		c.Log.Level = "info"
	}
	if flags.Debug {
		c.Log.Level = "debug"
	}
	if flags.Options != "" {
		raw, err := tilt.ParseOptions([]byte(flags.Options))
		if err != nil {
			return fmt.Errorf("config: -options: %w", err)
		}
		c.Effect.Defaults = tilt.Overlay(c.Effect.Defaults, raw)
	}

	if c.Window.Width == 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height == 0 {
		c.Window.Height = 720
	}
	if c.Window.FPS <= 0 {
		c.Window.FPS = 60
	}
	if c.Scheduler.Interval == 0 {
		c.Scheduler.Interval = tilt.DefaultFrameInterval
	}
	return nil
}

// DefaultPath is $XDG_CONFIG_HOME/linux-tiltfx/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "linux-tiltfx", "config.yaml")
}

// DiscoverOptions builds discovery settings from the effect section.
func (c *Config) DiscoverOptions() tilt.DiscoverOptions {
	opts := tilt.DefaultDiscoverOptions()
	if c.Effect.Class != "" {
		opts.Class = c.Effect.Class
	}
	if c.Effect.Attribute != "" {
		opts.Attribute = c.Effect.Attribute
	}
	opts.Defaults = tilt.Merge(opts.Defaults, c.Effect.Defaults)
	opts.Controller = append(opts.Controller,
		tilt.WithSettleDelay(c.Effect.SettleDelay),
		tilt.WithMotionInterval(c.Effect.MotionInterval),
		tilt.WithResizeInterval(c.Effect.ResizeInterval),
	)
	return opts
}
