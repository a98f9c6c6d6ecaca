package landscape

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"path/filepath"

	"flightsim/internal/cache"
	"flightsim/internal/config"
	"flightsim/internal/graphics"
	renderer "flightsim/internal/graphics/renderer"
	"flightsim/internal/profiling"
	"flightsim/internal/terrain"
	"flightsim/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GrassTexturePath is tried before falling back to a generated texture.
var GrassTexturePath = filepath.Join("assets", "textures", "grass.png")

const generatedTextureSize = 256

var (
	lightDir   = mgl32.Vec3{-0.4, 1.0, 0.3}.Normalize()
	lightColor = mgl32.Vec3{1, 1, 1}
)

// Landscape draws the streamed terrain around the camera. The chunk cache
// is created on the first frame, centred on wherever the camera is then.
type Landscape struct {
	settings config.Terrain
	log      *slog.Logger

	backend *graphics.GLBackend
	shader  *graphics.Shader
	texture uint32

	cache *cache.Cache
	scene *world.Scene
}

// NewLandscape creates the terrain renderable.
func NewLandscape(settings config.Terrain, log *slog.Logger) *Landscape {
	if log == nil {
		log = slog.Default()
	}
	return &Landscape{settings: settings, log: log.With("component", "landscape")}
}

// Init compiles the terrain shader and loads the ground texture.
func (l *Landscape) Init() error {
	shader, err := graphics.NewShader(
		filepath.Join(graphics.ShadersDir, "terrain", "main.vert"),
		filepath.Join(graphics.ShadersDir, "terrain", "main.frag"),
	)
	if err != nil {
		return err
	}
	l.shader = shader
	l.backend = graphics.NewGLBackend()

	tex, err := graphics.Textures.Acquire(GrassTexturePath, l.groundImage)
	if err != nil {
		l.shader.Delete()
		return fmt.Errorf("ground texture: %w", err)
	}
	l.texture = tex
	return nil
}

// groundImage reads the ground texture from disk, generating a tileable
// one from the terrain seed when there is none.
func (l *Landscape) groundImage() (*image.RGBA, error) {
	img, err := graphics.ReadRGBA(GrassTexturePath)
	if errors.Is(err, fs.ErrNotExist) {
		l.log.Info("no ground texture on disk, generating one", "path", GrassTexturePath)
		return terrain.GrassTexture(generatedTextureSize, l.settings.Seed), nil
	}
	return img, err
}

// Render uploads at most one finished chunk and draws the render volume
// around the camera. A *cache.WindowError means the camera outran the
// cache window.
func (l *Landscape) Render(ctx renderer.RenderContext) error {
	defer profiling.Track("renderer.landscape")()

	if l.cache == nil {
		if err := l.start(ctx.Camera.Position); err != nil {
			return err
		}
	}
	l.scene.SetRadius(config.GetRenderRadius())

	if config.GetWireframe() {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	// chunk triangles wind clockwise seen from above
	gl.FrontFace(gl.CW)
	defer gl.FrontFace(gl.CCW)

	l.bindUniforms(ctx)

	stats, err := l.scene.Frame(ctx.Camera.Position)
	if ctx.Report != nil {
		ctx.Report.Terrain = stats
		ctx.Report.Cache = l.cache.Stats()
		ctx.Report.Radius = l.scene.Radius()
		ctx.Report.Dim = l.cache.Dim()
		ctx.Report.Window = l.cache.Reference()
	}
	return err
}

func (l *Landscape) bindUniforms(ctx renderer.RenderContext) {
	l.shader.Use()
	l.shader.SetMat4("proj", ctx.Proj)
	l.shader.SetMat4("view", ctx.View)
	l.shader.SetMat4("model", mgl32.Ident4())
	l.shader.SetMat3("normalMatrix", mgl32.Ident3())
	l.shader.SetVec3("viewPos", ctx.Camera.Position)
	l.shader.SetVec3("lightDir", lightDir)
	l.shader.SetVec3("lightColor", lightColor)
	l.shader.SetVec3("fogColor", renderer.SkyColor)
	l.shader.SetFloat("fogDensity", fogDensity(l.settings.ChunkWidth, config.GetRenderRadius()))
	l.shader.SetFloat("texScale", 1/l.settings.TexScale)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, l.texture)
	l.shader.SetInt("tex", 0)
}

// fogDensity makes exp2 fog reach about 98% at the edge of the render volume.
func fogDensity(chunkWidth, radius int) float32 {
	edge := float32(chunkWidth) * (float32(radius) + 0.5)
	if edge <= 0 {
		return 0
	}
	return 2 / edge
}

func (l *Landscape) start(pos mgl32.Vec3) error {
	radius := config.GetRenderRadius()
	active := world.ActiveChunk(pos, float32(l.settings.ChunkWidth))
	// centre the window so the radius can grow to its limit without a shift
	ref := world.WindowOrigin(active, (l.settings.CacheDim-1)/2)

	c, err := cache.New(cache.Config{
		Dim:       l.settings.CacheDim,
		RefX:      ref.X,
		RefZ:      ref.Z,
		Generator: terrain.NewGenerator(l.settings),
		Backend:   l.backend,
		Log:       l.log,
		PollDelay: l.settings.PollDelay(),
	})
	if err != nil {
		return fmt.Errorf("start terrain cache: %w", err)
	}
	l.cache = c
	l.scene = world.NewScene(c, l.settings.ChunkWidth, radius)
	l.log.Info("terrain cache started",
		"active", active, "reference", ref, "dim", l.settings.CacheDim,
		"radius", radius, "seed", l.settings.Seed)
	return nil
}

// Reseed drops every resident chunk and regenerates the terrain from seed
// around the camera on the next frame.
func (l *Landscape) Reseed(seed int64) {
	l.stop()
	l.settings.Seed = seed
	l.log.Info("terrain reseeded", "seed", seed)
}

// Seed returns the current terrain seed.
func (l *Landscape) Seed() int64 { return l.settings.Seed }

// Settings returns the terrain settings in use.
func (l *Landscape) Settings() config.Terrain { return l.settings }

// HeightAt samples the terrain under a world position. It is valid before
// the first frame.
func (l *Landscape) HeightAt(x, z float32) float32 {
	return terrain.NewHeightField(l.settings).Height(x, z)
}

func (l *Landscape) stop() {
	if l.cache == nil {
		return
	}
	l.cache.Close()
	l.cache, l.scene = nil, nil
}

// SetViewport is a no-op; the projection comes from the camera.
func (l *Landscape) SetViewport(width, height int) {}

// Dispose closes the cache and frees GL objects.
func (l *Landscape) Dispose() {
	l.stop()
	if l.texture != 0 {
		graphics.Textures.Release(GrassTexturePath)
		l.texture = 0
	}
	if l.shader != nil {
		l.shader.Delete()
	}
}
