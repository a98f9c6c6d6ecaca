package wireframe

import (
	"path/filepath"

	"flightsim/internal/config"
	"flightsim/internal/graphics"
	renderer "flightsim/internal/graphics/renderer"
	"flightsim/internal/profiling"
	"flightsim/internal/terrain"
	"flightsim/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	WireframeVertShader = filepath.Join(graphics.ShadersDir, "wireframe", "wireframe.vert")
	WireframeFragShader = filepath.Join(graphics.ShadersDir, "wireframe", "wireframe.frag")
)

var (
	activeColor = mgl32.Vec3{1, 0.85, 0.1}
	windowColor = mgl32.Vec3{0.1, 0.1, 0.1}
)

// Wireframe outlines the chunk under the camera and the resident cache
// window while wireframe mode is on.
type Wireframe struct {
	shader     *graphics.Shader
	vao        uint32
	vbo        uint32
	chunkWidth float32
	height     float32
}

// NewWireframe creates the outline renderable for chunks chunkWidth wide and
// terrain reaching amplitude above and below zero.
func NewWireframe(chunkWidth int, amplitude float64) *Wireframe {
	return &Wireframe{
		chunkWidth: float32(chunkWidth),
		height:     2 * float32(amplitude),
	}
}

// Init initializes the wireframe rendering system
func (w *Wireframe) Init() error {
	var err error
	w.shader, err = graphics.NewShader(WireframeVertShader, WireframeFragShader)
	if err != nil {
		return err
	}
	w.setupWireframeVAO()
	return nil
}

// Render draws the outlines. It needs the landscape to have filled the frame
// report first.
func (w *Wireframe) Render(ctx renderer.RenderContext) error {
	if !config.GetWireframe() || ctx.Report == nil || ctx.Report.Dim == 0 {
		return nil
	}
	defer profiling.Track("renderer.wireframe")()

	w.shader.Use()
	w.shader.SetMat4("proj", ctx.Proj)
	w.shader.SetMat4("view", ctx.View)
	gl.BindVertexArray(w.vao)
	gl.LineWidth(1.0)

	active := world.ActiveChunk(ctx.Camera.Position, w.chunkWidth)
	w.drawBox(ChunkBox(active, w.chunkWidth, w.height), activeColor)
	w.drawBox(WindowBox(ctx.Report.Window, ctx.Report.Dim, w.chunkWidth, w.height), windowColor)

	gl.BindVertexArray(0)
	return nil
}

func (w *Wireframe) drawBox(model mgl32.Mat4, color mgl32.Vec3) {
	w.shader.SetMat4("model", model)
	w.shader.SetVec3("color", color)
	gl.DrawArrays(gl.LINES, 0, 24)
}

// ChunkBox maps the unit cube onto chunk c, height units tall and centred
// on y = 0.
func ChunkBox(c terrain.ChunkCoord, chunkWidth, height float32) mgl32.Mat4 {
	return mgl32.Translate3D(float32(c.X)*chunkWidth, 0, float32(c.Z)*chunkWidth).
		Mul4(mgl32.Scale3D(chunkWidth, height, chunkWidth))
}

// WindowBox maps the unit cube onto the dim x dim chunks starting at ref.
func WindowBox(ref terrain.ChunkCoord, dim int, chunkWidth, height float32) mgl32.Mat4 {
	half := float32(dim-1) / 2
	span := float32(dim) * chunkWidth
	return mgl32.Translate3D((float32(ref.X)+half)*chunkWidth, 0, (float32(ref.Z)+half)*chunkWidth).
		Mul4(mgl32.Scale3D(span, height, span))
}

// SetViewport is a no-op; outlines live in world space.
func (w *Wireframe) SetViewport(width, height int) {}

// Dispose cleans up OpenGL resources
func (w *Wireframe) Dispose() {
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	if w.shader != nil {
		w.shader.Delete()
	}
}

func (w *Wireframe) setupWireframeVAO() {
	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)

	vertices := CubeEdges()
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// CubeEdges returns the twelve edges of the unit cube centred on the origin
// as line vertex pairs.
func CubeEdges() []float32 {
	return []float32{
		// top
		-0.5, 0.5, -0.5, 0.5, 0.5, -0.5,
		0.5, 0.5, -0.5, 0.5, 0.5, 0.5,
		0.5, 0.5, 0.5, -0.5, 0.5, 0.5,
		-0.5, 0.5, 0.5, -0.5, 0.5, -0.5,

		// bottom
		-0.5, -0.5, -0.5, 0.5, -0.5, -0.5,
		0.5, -0.5, -0.5, 0.5, -0.5, 0.5,
		0.5, -0.5, 0.5, -0.5, -0.5, 0.5,
		-0.5, -0.5, 0.5, -0.5, -0.5, -0.5,

		// pillars
		-0.5, -0.5, -0.5, -0.5, 0.5, -0.5,
		0.5, -0.5, -0.5, 0.5, 0.5, -0.5,
		0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
		-0.5, -0.5, 0.5, -0.5, 0.5, 0.5,
	}
}
