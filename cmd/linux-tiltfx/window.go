package main

import (
	"path/filepath"
	"time"

	"linux-tiltfx/internal/config"
	"linux-tiltfx/internal/debug"
	"linux-tiltfx/internal/engine2D"
	"linux-tiltfx/internal/tilt"
	"linux-tiltfx/internal/utils"
	"linux-tiltfx/internal/wallpaper"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	wheelStep       = 40.0
	gamepadDeadZone = 0.15
	reloadDebounce  = 200 * time.Millisecond
)

type Window struct {
	cfg      *config.Config
	sched    *tilt.Scheduler
	scene    *Scene
	renderer *engine2D.Renderer
	pointer  *utils.GlobalPointer
	watcher  *wallpaper.Watcher

	debugOverlay *debug.DebugOverlay

	mouseX, mouseY float64
	pointerInside  bool
}

// NewWindow opens the raylib window and loads the scene into it.
func NewWindow(cfg *config.Config, scenePath string) (*Window, error) {
	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)

	window := &Window{
		cfg:          cfg,
		sched:        newScheduler(cfg),
		debugOverlay: debug.NewDebugOverlay(),
	}

	scene, err := loadScene(scenePath, window.sched, cfg)
	if err != nil {
		rl.CloseWindow()
		return nil, err
	}
	window.scene = scene
	window.renderer = engine2D.NewRenderer(scene.Doc, scene.Dispatcher.Instances(), cfg.Window.Scaling)
	window.renderer.UpdateViewport(rl.GetScreenWidth(), rl.GetScreenHeight())
	window.scene.Dispatcher.Resize()
	window.renderer.Preload()

	if cfg.Input.GlobalPointer {
		if p, err := utils.NewGlobalPointer(); err != nil {
			utils.Warn("Global pointer unavailable, using window events: %v", err)
		} else {
			window.pointer = p
		}
	}

	if cfg.Watch {
		if w, err := wallpaper.NewWatcher(reloadDebounce, filepath.Dir(scenePath)); err != nil {
			utils.Warn("Hot reload disabled: %v", err)
		} else {
			window.watcher = w
			utils.Info("Watching %s for changes", filepath.Dir(scenePath))
		}
	}

	return window, nil
}

func (window *Window) Run() {
	rl.SetTargetFPS(int32(window.cfg.Window.FPS))

	for !rl.WindowShouldClose() {
		window.Update(time.Now())

		rl.BeginDrawing()
		window.Draw()
		rl.EndDrawing()
	}
}

func (window *Window) Close() {
	if window.watcher != nil {
		window.watcher.Close()
	}
	if window.pointer != nil {
		window.pointer.Close()
	}
	window.renderer.Unload()
	rl.CloseWindow()
}

func (window *Window) Update(now time.Time) {
	dispatcher := window.scene.Dispatcher

	if rl.IsWindowResized() {
		window.renderer.UpdateViewport(rl.GetScreenWidth(), rl.GetScreenHeight())
		dispatcher.Resize()
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		dispatcher.Scroll(0, -float64(wheel)*wheelStep)
	}

	window.updatePointer(dispatcher)
	window.updateGamepad(dispatcher)
	window.pollWatcher()

	if rl.IsKeyPressed(rl.KeyF8) {
		utils.DebugMode = !utils.DebugMode
	}
	if utils.DebugMode {
		window.debugOverlay.Update()
	}

	window.sched.Tick(now)
}

func (window *Window) updatePointer(dispatcher *engine2D.Dispatcher) {
	var x, y float64
	var inside bool

	if window.pointer != nil {
		rootX, rootY, err := window.pointer.Position()
		if err != nil {
			utils.Warn("Global pointer query failed, falling back to window events: %v", err)
			window.pointer.Close()
			window.pointer = nil
			return
		}
		pos := rl.GetWindowPosition()
		x = float64(rootX) - float64(pos.X)
		y = float64(rootY) - float64(pos.Y)
		inside = x >= 0 && y >= 0 && x < float64(rl.GetScreenWidth()) && y < float64(rl.GetScreenHeight())
	} else {
		mPos := rl.GetMousePosition()
		x, y = float64(mPos.X), float64(mPos.Y)
		inside = rl.IsCursorOnScreen()
	}

	switch {
	case inside && (!window.pointerInside || x != window.mouseX || y != window.mouseY):
		dispatcher.PointerMove(x, y)
	case !inside && window.pointerInside:
		dispatcher.PointerLeave()
	}
	window.mouseX, window.mouseY = x, y
	window.pointerInside = inside
}

func (window *Window) updateGamepad(dispatcher *engine2D.Dispatcher) {
	pad := int32(window.cfg.Input.Gamepad)
	if !window.cfg.Input.Motion || pad < 0 || !rl.IsGamepadAvailable(pad) {
		return
	}
	trigger := func(axis int32) float64 {
		// triggers rest at -1
		return (float64(rl.GetGamepadAxisMovement(pad, axis)) + 1) / 2
	}
	axes := engine2D.GamepadAxes{
		LeftX:        float64(rl.GetGamepadAxisMovement(pad, rl.GamepadAxisLeftX)),
		LeftY:        float64(rl.GetGamepadAxisMovement(pad, rl.GamepadAxisLeftY)),
		LeftTrigger:  trigger(rl.GamepadAxisLeftTrigger),
		RightTrigger: trigger(rl.GamepadAxisRightTrigger),
	}
	if ev, ok := engine2D.GamepadMotion(axes, gamepadDeadZone); ok {
		dispatcher.Motion(ev)
	}
}

func (window *Window) pollWatcher() {
	if window.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path, ok := <-window.watcher.Events:
			if !ok {
				window.watcher = nil
				return
			}
			utils.Debug("Changed: %s", path)
			window.renderer.Invalidate(path)
			changed = true
			continue
		case err, ok := <-window.watcher.Errors:
			if !ok {
				window.watcher = nil
				return
			}
			utils.Warn("Watcher error: %v", err)
			continue
		default:
		}
		break
	}
	if changed {
		window.reload()
	}
}

func (window *Window) reload() {
	sched := newScheduler(window.cfg)
	scene, err := loadScene(window.scene.Path, sched, window.cfg)
	if err != nil {
		utils.Error("Reload failed, keeping the previous scene: %v", err)
		return
	}
	window.sched = sched
	window.scene = scene
	window.renderer.SetScene(scene.Doc, scene.Dispatcher.Instances())
	scene.Dispatcher.Resize()
	window.renderer.Preload()
	window.pointerInside = false
	utils.Info("Scene reloaded")
}

func (window *Window) Draw() {
	window.renderer.Render()

	if utils.DebugMode {
		window.debugOverlay.Draw(window.scene.Doc, window.scene.Dispatcher)
	}
}
