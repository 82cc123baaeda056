package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"linux-tiltfx/internal/config"
	"linux-tiltfx/internal/convert"
	"linux-tiltfx/internal/engine2D"
	"linux-tiltfx/internal/tilt"
	"linux-tiltfx/internal/utils"
)

// snapshotSlackTicks covers the frames rendered after the last timer fires.
const snapshotSlackTicks = 8

// snapshotTicks bounds the frames run while waiting for the scheduler to
// drain: long enough for the slowest timer a controller can arm, the
// settle reset or a trailing resize.
func snapshotTicks(cfg *config.Config, interval time.Duration) int {
	longest := cfg.Effect.SettleDelay
	if cfg.Effect.ResizeInterval > longest {
		longest = cfg.Effect.ResizeInterval
	}
	return int((longest+interval-1)/interval) + snapshotSlackTicks
}

// drain advances clock one frame interval per tick until nothing is
// pending or maxTicks ran. It reports whether the scheduler drained.
func drain(sched *tilt.Scheduler, clock *time.Time, interval time.Duration, maxTicks int) bool {
	for i := 0; i < maxTicks && sched.Pending() > 0; i++ {
		*clock = clock.Add(interval)
		sched.Tick(*clock)
	}
	return sched.Pending() == 0
}

func runSnapshot(args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	common := registerCommonFlags(fs)
	out := fs.String("out", "snapshot.webp", "Output file (.webp or .png)")
	pointer := fs.String("pointer", "", "Pointer position in client pixels, as x,y")
	motion := fs.String("motion", "", "Rotation rate sample in [-1,1], as alpha,beta,gamma")
	leave := fs.Bool("leave", false, "Move the pointer out again and let the layers settle")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected one scene argument")
	}

	cfg, err := loadConfig(common, config.Flags{})
	if err != nil {
		return err
	}

	scenePath, cleanup, err := resolveScenePath(fs.Arg(0))
	if err != nil {
		return err
	}
	defer cleanup()

	clock := time.Unix(0, 0)
	now := func() time.Time { return clock }
	sched := tilt.NewFallbackScheduler(cfg.Scheduler.Interval)
	sched.SetClock(now)
	interval := sched.Interval()

	opts := cfg.DiscoverOptions()
	opts.Controller = append(opts.Controller, tilt.WithClock(now))
	scene, err := loadSceneWith(scenePath, sched, opts)
	if err != nil {
		return err
	}

	doc := scene.Doc
	doc.SetLayout(engine2D.ComputeLayout(doc.Width, doc.Height, cfg.Window.Width, cfg.Window.Height, cfg.Window.Scaling))
	scene.Dispatcher.Resize()

	if *pointer != "" {
		v, err := parseFloats(*pointer, 2)
		if err != nil {
			return fmt.Errorf("-pointer: %w", err)
		}
		scene.Dispatcher.PointerMove(v[0], v[1])
	}
	if *motion != "" {
		v, err := parseFloats(*motion, 3)
		if err != nil {
			return fmt.Errorf("-motion: %w", err)
		}
		scene.Dispatcher.Motion(tilt.MotionEvent{Alpha: v[0], Beta: v[1], Gamma: v[2]})
	}
	if *leave {
		scene.Dispatcher.PointerLeave()
	}

	if !drain(sched, &clock, interval, snapshotTicks(cfg, interval)) {
		utils.Warn("Snapshot taken with %d callbacks still pending", sched.Pending())
	}

	objects := engine2D.BuildRenderObjects(doc, scene.Dispatcher.Instances())
	images, err := convert.LoadAll(engine2D.ImagePaths(objects))
	if err != nil {
		utils.Warn("Some images failed to load: %v", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, cfg.Window.Width, cfg.Window.Height))
	drawn := engine2D.NewCompositor(images).Compose(dst, doc.ClearColor, objects)
	utils.Info("Composited %d of %d objects", drawn, len(objects))

	if err := writeImage(*out, dst); err != nil {
		return err
	}
	utils.Info("Snapshot saved to: %s", *out)
	return nil
}

func writeImage(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".webp":
		err = nativewebp.Encode(f, img, nil)
	default:
		err = fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
