package renderer

import (
	"fmt"

	"flightsim/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// SkyColor is the clear colour, also used as the terrain fog colour.
var SkyColor = mgl32.Vec3{0.443, 0.560, 0.756}

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera
	report      FrameReport
}

// NewRenderer creates a new renderer with the given renderables. If one
// fails to initialise, those already initialised are disposed.
func NewRenderer(camera *graphics.Camera, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	renderer := &Renderer{
		renderables: rs,
		camera:      camera,
	}

	for i, r := range rs {
		if err := r.Init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, fmt.Errorf("init renderable %d: %w", i, err)
		}
	}

	return renderer, nil
}

// Render clears the frame and draws every renderable in order. The first
// error stops the frame.
func (r *Renderer) Render(dt float64, fps int) error {
	gl.ClearColor(SkyColor.X(), SkyColor.Y(), SkyColor.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.report.FPS = fps
	ctx := RenderContext{
		Camera: r.camera,
		DT:     dt,
		View:   r.camera.ViewMatrix(),
		Proj:   r.camera.ProjectionMatrix(),
		Report: &r.report,
	}

	for _, renderable := range r.renderables {
		if err := renderable.Render(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Report returns the last frame's report.
func (r *Renderer) Report() FrameReport {
	return r.report
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// Camera returns the camera instance
func (r *Renderer) Camera() *graphics.Camera {
	return r.camera
}

// UpdateViewport updates the camera and every renderable with the window
// size in screen coordinates.
func (r *Renderer) UpdateViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.camera.SetViewport(width, height)
	for _, renderable := range r.renderables {
		renderable.SetViewport(width, height)
	}
}
