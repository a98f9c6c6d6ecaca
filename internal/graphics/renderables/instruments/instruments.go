package instruments

import (
	"math"
	"path/filepath"

	"flightsim/internal/graphics"
	renderer "flightsim/internal/graphics/renderer"
	"flightsim/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	VertShader = filepath.Join(graphics.ShadersDir, "instruments", "line.vert")
	FragShader = filepath.Join(graphics.ShadersDir, "instruments", "line.frag")
)

// Reticle is a boresight cross, in NDC scaled by aspect ratio.
var Reticle = []float32{
	-0.02, 0.0, -0.006, 0.0,
	0.006, 0.0, 0.02, 0.0,
	0.0, -0.02, 0.0, -0.006,
	0.0, 0.006, 0.0, 0.02,
}

// Arrow points up; body is a line loop of 4, head a line loop of 3.
var Arrow = []float32{
	-0.01, -0.08,
	0.01, -0.08,
	0.01, -0.02,
	-0.01, -0.02,

	-0.03, -0.02,
	0.03, -0.02,
	0.0, 0.02,
}

var letters = map[string][]float32{
	"N": {
		-0.02, -0.02, -0.02, 0.02,
		-0.02, 0.02, 0.02, -0.02,
		0.02, -0.02, 0.02, 0.02,
	},
	"E": {
		-0.02, -0.02, -0.02, 0.02,
		-0.02, 0.02, 0.02, 0.02,
		-0.02, 0.0, 0.01, 0.0,
		-0.02, -0.02, 0.02, -0.02,
	},
	"S": {
		0.02, 0.02, -0.02, 0.02,
		-0.02, 0.02, -0.02, 0.0,
		-0.02, 0.0, 0.02, 0.0,
		0.02, 0.0, 0.02, -0.02,
		0.02, -0.02, -0.02, -0.02,
	},
	"W": {
		-0.02, 0.02, -0.02, -0.02,
		-0.02, -0.02, -0.01, 0.0,
		-0.01, 0.0, 0.01, -0.02,
		0.01, -0.02, 0.02, 0.0,
		0.02, 0.0, 0.02, 0.02,
	},
}

var (
	reticleColor = mgl32.Vec3{1, 1, 1}
	headingColor = mgl32.Vec3{1, 0.2, 0.1}
)

// Instruments draws the boresight and a heading indicator.
type Instruments struct {
	shader *graphics.Shader

	reticleVAO, reticleVBO uint32
	arrowVAO, arrowVBO     uint32
	letterVAO, letterVBO   uint32
}

// NewInstruments creates the instruments renderable
func NewInstruments() *Instruments {
	return &Instruments{}
}

// Init compiles the line shader and uploads the static shapes.
func (in *Instruments) Init() error {
	var err error
	in.shader, err = graphics.NewShader(VertShader, FragShader)
	if err != nil {
		return err
	}
	in.reticleVAO, in.reticleVBO = lineBuffer(Reticle, gl.STATIC_DRAW)
	in.arrowVAO, in.arrowVBO = lineBuffer(Arrow, gl.STATIC_DRAW)
	in.letterVAO, in.letterVBO = lineBuffer(nil, gl.DYNAMIC_DRAW)
	return nil
}

func lineBuffer(vertices []float32, usage uint32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), usage)
	}
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// Render draws over the scene without depth testing.
func (in *Instruments) Render(ctx renderer.RenderContext) error {
	defer profiling.Track("renderer.instruments")()

	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	in.shader.Use()
	in.shader.SetFloat("aspectRatio", ctx.Camera.AspectRatio)
	gl.LineWidth(1.0)

	in.place(reticleColor, 0, 0, 0)
	gl.BindVertexArray(in.reticleVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(Reticle)/2))

	in.place(headingColor, 0, -0.85, arrowRotation(ctx.Camera.Yaw))
	gl.BindVertexArray(in.arrowVAO)
	gl.DrawArrays(gl.LINE_LOOP, 0, 4)
	gl.DrawArrays(gl.LINE_LOOP, 4, 3)

	letter := letters[Cardinal(ctx.Camera.Yaw)]
	in.place(headingColor, 0, -0.75, 0)
	gl.BindVertexArray(in.letterVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, in.letterVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(letter)*4, gl.Ptr(letter), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(letter)/2))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return nil
}

func (in *Instruments) place(color mgl32.Vec3, x, y, rotation float32) {
	in.shader.SetVec3("color", color)
	in.shader.SetFloat("positionX", x)
	in.shader.SetFloat("positionY", y)
	in.shader.SetFloat("rotation", rotation)
}

// Cardinal names the compass direction closest to yaw. North is -Z
// (yaw -90) and east is +X (yaw 0).
func Cardinal(yaw float64) string {
	deg := math.Mod(yaw, 360)
	if deg < 0 {
		deg += 360
	}
	switch {
	case deg >= 315 || deg < 45:
		return "E"
	case deg < 135:
		return "S"
	case deg < 225:
		return "W"
	default:
		return "N"
	}
}

// arrowRotation turns the up-pointing arrow counter-clockwise so that it
// points up when flying north and right when flying east.
func arrowRotation(yaw float64) float32 {
	return -mgl32.DegToRad(float32(yaw + 90))
}

// SetViewport is a no-op; shapes are placed in NDC.
func (in *Instruments) SetViewport(width, height int) {}

// Dispose cleans up OpenGL resources
func (in *Instruments) Dispose() {
	for _, vbo := range []uint32{in.reticleVBO, in.arrowVBO, in.letterVBO} {
		if vbo != 0 {
			gl.DeleteBuffers(1, &vbo)
		}
	}
	for _, vao := range []uint32{in.reticleVAO, in.arrowVAO, in.letterVAO} {
		if vao != 0 {
			gl.DeleteVertexArrays(1, &vao)
		}
	}
	if in.shader != nil {
		in.shader.Delete()
	}
}
