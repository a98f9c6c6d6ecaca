package renderer

import (
	"flightsim/internal/cache"
	"flightsim/internal/graphics"
	"flightsim/internal/terrain"
	"flightsim/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameReport collects what the renderables did this frame, for the HUD and
// the slow-frame log.
type FrameReport struct {
	Terrain world.FrameStats
	Cache   cache.Stats
	Window  terrain.ChunkCoord // cache reference
	Radius  int
	Dim     int
	FPS     int
}

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera *graphics.Camera
	DT     float64
	View   mgl32.Mat4
	Proj   mgl32.Mat4
	Report *FrameReport
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext) error
	Dispose()
	SetViewport(width, height int)
}
