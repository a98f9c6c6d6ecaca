package game

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"flightsim/internal/config"
	"flightsim/internal/graphics"
	"flightsim/internal/graphics/renderables/hud"
	"flightsim/internal/graphics/renderables/instruments"
	"flightsim/internal/graphics/renderables/landscape"
	"flightsim/internal/graphics/renderables/wireframe"
	"flightsim/internal/graphics/renderer"
	"flightsim/internal/input"
	"flightsim/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// maxDT caps the simulated time of one frame after a stall.
	maxDT = 0.1
	// spawnAltitude is how far above the ground the camera starts.
	spawnAltitude = 60
	slowFrame     = 16 * time.Millisecond
)

// App is the flight demo: a free camera over streamed terrain.
type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	log          *slog.Logger

	camera    *graphics.Camera
	renderer  *renderer.Renderer
	landscape *landscape.Landscape
	hud       *hud.HUD

	mouseCaptured bool
	chunkWidth    int
	cacheDim      int

	fpsLimiter   *FPSLimiter
	lastTime     time.Time
	frames       int
	fps          int
	lastFPSCheck time.Time
	disposed     bool
}

// NewApp builds the renderer and places the camera above the terrain at the
// origin. The window's context must be current.
func NewApp(window *glfw.Window, im *input.InputManager, settings config.Terrain, log *slog.Logger) (*App, error) {
	width, height := window.GetSize()

	land := landscape.NewLandscape(settings, log)
	overlay := hud.NewHUD(width, height)

	spawn := mgl32.Vec3{0, land.HeightAt(0, 0) + spawnAltitude, 0}
	camera := graphics.NewCamera(width, height, spawn)

	// the landscape fills the frame report the later passes read
	r, err := renderer.NewRenderer(camera,
		land,
		wireframe.NewWireframe(settings.ChunkWidth, settings.Amplitude),
		instruments.NewInstruments(),
		overlay,
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &App{
		window:        window,
		inputManager:  im,
		log:           log,
		camera:        camera,
		renderer:      r,
		landscape:     land,
		hud:           overlay,
		mouseCaptured: true,
		chunkWidth:    settings.ChunkWidth,
		cacheDim:      settings.CacheDim,
		fpsLimiter:    NewFPSLimiter(),
		lastTime:      now,
		lastFPSCheck:  now,
	}, nil
}

// Done reports whether the window was asked to close.
func (a *App) Done() bool {
	return a.disposed || a.window.ShouldClose()
}

// Tick runs one frame. An error ends the flight; it wraps a
// *cache.WindowError if the camera outran the terrain cache.
func (a *App) Tick() error {
	if a.disposed {
		return nil
	}
	profiling.ResetFrame()
	start := time.Now()
	dt := min(start.Sub(a.lastTime).Seconds(), maxFrameDT(a.camera, a.chunkWidth))
	a.lastTime = start

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	a.handleInputActions()
	if a.mouseCaptured {
		a.fly(dt)
	}

	if err := a.renderer.Render(dt, a.fps); err != nil {
		return err
	}

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	// Clear edge flags at end of frame
	a.inputManager.PostUpdate()

	a.frames++
	if time.Since(a.lastFPSCheck) >= time.Second {
		a.fps = a.frames
		a.frames = 0
		a.lastFPSCheck = time.Now()
		a.log.Debug("fps", "fps", a.fps, "position", a.camera.Position)
	}

	total := time.Since(start)
	a.hud.RecordFrame(total)
	if total > slowFrame {
		a.log.Debug("slow frame", "duration", total, "top", profiling.TopN(5))
	}

	a.fpsLimiter.Wait(!a.mouseCaptured)
	return nil
}

// maxFrameDT bounds a frame so the camera moves less than one chunk at top
// speed. Every chunk drawn then lies at most one step outside the cache
// window.
func maxFrameDT(c *graphics.Camera, chunkWidth int) float64 {
	top := float64(c.MaxStep(1))
	if top <= 0 {
		return maxDT
	}
	return min(maxDT, 0.9*float64(chunkWidth)/top)
}

func (a *App) fly(dt float64) {
	im := a.inputManager
	a.camera.Fly(
		im.Axis(input.ActionMoveBackward, input.ActionMoveForward),
		im.Axis(input.ActionMoveLeft, input.ActionMoveRight),
		im.Axis(input.ActionDescend, input.ActionAscend),
		dt,
		im.IsActive(input.ActionBoost),
	)
}

func (a *App) handleInputActions() {
	im := a.inputManager

	if im.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionReleaseMouse) {
		a.setMouseCaptured(!a.mouseCaptured)
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		config.SetWireframe(!config.GetWireframe())
	}
	if im.JustPressed(input.ActionToggleStats) {
		config.SetShowStats(!config.GetShowStats())
	}
	if im.JustPressed(input.ActionReseed) {
		a.landscape.Reseed(rand.Int64())
	}
	if im.JustPressed(input.ActionRadiusUp) {
		a.changeRadius(1)
	}
	if im.JustPressed(input.ActionRadiusDown) {
		a.changeRadius(-1)
	}
}

func (a *App) changeRadius(delta int) {
	before := config.GetRenderRadius()
	config.SetRenderRadius(before+delta, a.cacheDim)
	if after := config.GetRenderRadius(); after != before {
		a.log.Info("render radius changed", "radius", after)
	}
}

func (a *App) setMouseCaptured(captured bool) {
	a.mouseCaptured = captured
	if captured {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		a.camera.ResetMouse()
	} else {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// Dispose frees every GL resource and stops the terrain worker. It is safe
// to call more than once.
func (a *App) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true
	a.renderer.Dispose()
}
