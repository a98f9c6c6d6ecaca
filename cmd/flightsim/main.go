package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"flightsim/internal/cache"
	"flightsim/internal/config"
	"flightsim/internal/game"
	"flightsim/internal/input"

	"github.com/faiface/mainthread"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

var (
	configPath = flag.String("config", filepath.Join("assets", "terrain.yaml"), "terrain config (.yaml, .yml or .toml); empty for defaults")
	seed       = flag.String("seed", "", "terrain seed, a number or any text; empty keeps the configured one")
	radius     = flag.Int("radius", -1, "render radius in chunks; -1 keeps the configured one")
	fpsLimit   = flag.Int("fps", 120, "frame cap; 0 for uncapped")
	showStats  = flag.Bool("stats", false, "start with the stats overlay visible")
	verbose    = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	settings, err := loadSettings(log)
	if err != nil {
		log.Error("terrain config", "err", err)
		os.Exit(2)
	}
	config.SetRenderRadius(settings.RenderRadius, settings.CacheDim)
	config.SetFPSLimit(*fpsLimit)
	config.SetShowStats(*showStats)

	mainthread.Run(func() { run(settings, log) })
}

func loadSettings(log *slog.Logger) (config.Terrain, error) {
	settings := config.DefaultTerrain()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		switch {
		case err == nil:
			settings = loaded
		case errors.Is(err, os.ErrNotExist):
			log.Warn("terrain config not found, using defaults", "path", *configPath)
		default:
			return settings, err
		}
	}
	if s := config.ParseSeed(*seed); s != 0 {
		settings.Seed = s
	}
	if *radius >= 0 {
		settings.RenderRadius = *radius
	}
	return settings, settings.Validate()
}

// run owns the flight. GL and GLFW calls go through mainthread.Call; the
// closer handlers run on this goroutine or the signal handler's, never on
// the main thread.
func run(settings config.Terrain, log *slog.Logger) {
	var app *game.App
	closer.Bind(func() {
		mainthread.Call(func() {
			if app != nil {
				app.Dispose()
			}
			glfw.Terminate()
		})
	})
	defer closer.Close()

	err := mainthread.CallErr(func() error {
		if err := glfw.Init(); err != nil {
			return err
		}
		window, err := game.SetupWindow("flightsim")
		if err != nil {
			return err
		}
		app, err = game.NewApp(window, input.NewInputManager(), settings, log)
		if err != nil {
			return err
		}
		game.SetupInputHandlers(app)
		return nil
	})
	if err != nil {
		log.Error("startup failed", "err", err)
		closer.Exit(closer.ExitCodeErr)
	}

	log.Info("flying", "chunk_width", settings.ChunkWidth, "cache_dim", settings.CacheDim,
		"radius", config.GetRenderRadius(), "seed", settings.Seed)

	for {
		var done bool
		err := mainthread.CallErr(func() error {
			done = app.Done()
			if done {
				return nil
			}
			return app.Tick()
		})
		if err != nil {
			var werr *cache.WindowError
			if errors.As(err, &werr) {
				log.Error("camera left the terrain cache window", "err", err)
			} else {
				log.Error("frame failed", "err", err)
			}
			closer.Exit(closer.ExitCodeErr)
		}
		if done {
			return
		}
	}
}
