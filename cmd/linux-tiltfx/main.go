package main

import (
	"flag"
	"fmt"
	"os"

	"linux-tiltfx/internal/config"
	"linux-tiltfx/internal/utils"
)

type commonFlags struct {
	configFile string
	width      int
	height     int
	fallback   bool
	debug      bool
	verbose    bool
	options    string
}

func registerCommonFlags(fs *flag.FlagSet) *commonFlags {
	f := &commonFlags{}
	fs.StringVar(&f.configFile, "config", config.DefaultPath(), "Path to config.yaml")
	fs.IntVar(&f.width, "width", 0, "Window or output width (default: from config)")
	fs.IntVar(&f.height, "height", 0, "Window or output height (default: from config)")
	fs.BoolVar(&f.fallback, "fallback", false, "Use the fixed-interval frame scheduler")
	fs.BoolVar(&f.debug, "debug", false, "Enable verbose debug logging")
	fs.BoolVar(&f.verbose, "verbose", false, "Enable info logging")
	fs.StringVar(&f.options, "options", "", "JSON tilt options applied to every element")
	return f
}

// loadConfig reads the config file and applies the flags over it.
func loadConfig(f *commonFlags, extra config.Flags) (*config.Config, error) {
	cfg, err := config.LoadOptional(f.configFile)
	if err != nil {
		return nil, err
	}
	extra.Width = f.width
	extra.Height = f.height
	extra.Fallback = f.fallback
	extra.Debug = f.debug
	extra.Verbose = f.verbose
	extra.Options = f.options
	if err := cfg.Resolve(extra); err != nil {
		return nil, err
	}
	utils.CurrentLevel = utils.ParseLevel(cfg.Log.Level)
	return &cfg, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n  linux-tiltfx [flags] <scene.json|scene dir|scene.pkg>\n  linux-tiltfx snapshot [flags] <scene>\n\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "snapshot" {
		if err := runSnapshot(os.Args[2:]); err != nil {
			utils.Error("Snapshot failed: %v", err)
			os.Exit(1)
		}
		return
	}

	common := registerCommonFlags(flag.CommandLine)
	fps := flag.Int("fps", 0, "Target frame rate (default: from config)")
	globalPointer := flag.Bool("global-pointer", false, "Track the X11 pointer outside the window")
	watch := flag.Bool("watch", false, "Reload the scene when its files change")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(common, config.Flags{
		FPS:           *fps,
		GlobalPointer: *globalPointer,
		Watch:         *watch,
	})
	if err != nil {
		utils.Error("Error loading config: %v", err)
		os.Exit(1)
	}

	utils.Info("--- linux-tiltfx start ---")

	scenePath, cleanup, err := resolveScenePath(flag.Arg(0))
	if err != nil {
		utils.Error("Failed to find scene: %v", err)
		os.Exit(1)
	}
	defer cleanup()

	window, err := NewWindow(cfg, scenePath)
	if err != nil {
		utils.Error("Failed to load scene: %v", err)
		cleanup()
		os.Exit(1)
	}
	defer window.Close()

	utils.Info("Starting render loop...")
	window.Run()
}
