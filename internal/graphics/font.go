package graphics

import (
	"errors"
	"fmt"
	"image"
	"math"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph is one character's place in the atlas and its metrics, in pixels.
type Glyph struct {
	AtlasX, AtlasY float32
	Width, Height  float32
	BearingX       float32
	BearingY       float32
	Advance        float32
}

// FontAtlas is a baked glyph set. Texture is zero until Upload.
type FontAtlas struct {
	Texture uint32
	W, H    int
	Glyphs  map[rune]Glyph
	image   *image.Alpha
}

const atlasPadding = 1

// BakeFontAtlas rasterises printable ASCII from a TrueType/OpenType font into
// a single-channel atlas, packing glyphs into rows atlasW pixels wide.
func BakeFontAtlas(ttf []byte, pixels, atlasW int) (*FontAtlas, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(pixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	type placed struct {
		r      rune
		bounds image.Rectangle
		mask   image.Image
		maskp  image.Point
		adv    fixed.Int26_6
	}
	var glyphs []placed
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, adv, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		glyphs = append(glyphs, placed{r: r, bounds: dr, mask: mask, maskp: maskp, adv: adv})
	}
	if len(glyphs) == 0 {
		return nil, errors.New("font has no printable ASCII glyphs")
	}

	// pack rows, then size the canvas to fit
	type slot struct{ x, y int }
	slots := make([]slot, len(glyphs))
	x, y, rowH := 0, 0, 0
	for i, g := range glyphs {
		w, h := g.bounds.Dx(), g.bounds.Dy()
		if x+w > atlasW {
			x = 0
			y += rowH + atlasPadding
			rowH = 0
		}
		slots[i] = slot{x, y}
		x += w + atlasPadding
		rowH = max(rowH, h)
	}
	atlasH := y + rowH

	atlas := &FontAtlas{
		W:      atlasW,
		H:      max(atlasH, 1),
		Glyphs: make(map[rune]Glyph, len(glyphs)),
	}
	atlas.image = image.NewAlpha(image.Rect(0, 0, atlas.W, atlas.H))
	for i, g := range glyphs {
		w, h := g.bounds.Dx(), g.bounds.Dy()
		s := slots[i]
		if w > 0 && h > 0 && g.mask != nil {
			draw.Draw(atlas.image, image.Rect(s.x, s.y, s.x+w, s.y+h), g.mask, g.maskp, draw.Src)
		}
		atlas.Glyphs[g.r] = Glyph{
			AtlasX:   float32(s.x),
			AtlasY:   float32(s.y),
			Width:    float32(w),
			Height:   float32(h),
			BearingX: float32(g.bounds.Min.X),
			BearingY: float32(-g.bounds.Min.Y),
			Advance:  float32(math.Round(float64(g.adv) / 64.0)),
		}
	}
	return atlas, nil
}

// Upload moves the atlas into a GL_RED texture and drops the CPU copy.
func (a *FontAtlas) Upload() error {
	if a.image == nil {
		return errors.New("font atlas already uploaded")
	}
	gl.GenTextures(1, &a.Texture)
	gl.BindTexture(gl.TEXTURE_2D, a.Texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(a.W), int32(a.H), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(a.image.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	a.image = nil
	return glError("upload font atlas")
}

// Layout returns the quads for text starting at baseline (x, y), six
// vertices of (x, y, u, v) per drawable glyph. Missing glyphs advance like a
// space.
func (a *FontAtlas) Layout(text string, x, y, scale float32) []float32 {
	out := make([]float32, 0, len(text)*6*4)
	for _, r := range text {
		g, ok := a.Glyphs[r]
		if !ok {
			x += a.Glyphs[' '].Advance * scale
			continue
		}
		if g.Width > 0 && g.Height > 0 {
			out = append(out, a.quad(g, x, y, scale)...)
		}
		x += g.Advance * scale
	}
	return out
}

// Measure returns the width and tallest glyph height of text in pixels.
func (a *FontAtlas) Measure(text string, scale float32) (float32, float32) {
	var width, height float32
	for _, r := range text {
		g, ok := a.Glyphs[r]
		if !ok {
			g = a.Glyphs[' ']
		}
		width += g.Advance * scale
		height = max(height, g.Height*scale)
	}
	return width, height
}

func (a *FontAtlas) quad(g Glyph, x, y, scale float32) []float32 {
	x0 := x + g.BearingX*scale
	y0 := y - g.BearingY*scale
	w := g.Width * scale
	h := g.Height * scale

	u0 := g.AtlasX / float32(a.W)
	v0 := g.AtlasY / float32(a.H)
	u1 := u0 + g.Width/float32(a.W)
	v1 := v0 + g.Height/float32(a.H)

	return []float32{
		x0, y0 + h, u0, v1,
		x0, y0, u0, v0,
		x0 + w, y0, u1, v0,

		x0, y0 + h, u0, v1,
		x0 + w, y0, u1, v0,
		x0 + w, y0 + h, u1, v1,
	}
}

// TextRenderer draws screen-space text from an uploaded atlas.
type TextRenderer struct {
	atlas      *FontAtlas
	shader     *Shader
	projection mgl32.Mat4
	vao        uint32
	vbo        uint32
}

// NewTextRenderer loads the text shader and prepares a dynamic buffer.
func NewTextRenderer(atlas *FontAtlas, width, height int) (*TextRenderer, error) {
	if atlas == nil || atlas.Texture == 0 {
		return nil, errors.New("text renderer needs an uploaded atlas")
	}
	shader, err := NewShader(
		filepath.Join(ShadersDir, "hud", "text.vert"),
		filepath.Join(ShadersDir, "hud", "text.frag"),
	)
	if err != nil {
		return nil, err
	}
	tr := &TextRenderer{atlas: atlas, shader: shader}
	tr.SetViewport(width, height)

	gl.GenVertexArrays(1, &tr.vao)
	gl.GenBuffers(1, &tr.vbo)
	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, 4*floatSize, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return tr, nil
}

// SetViewport maps pixel coordinates with the origin at the top left.
func (tr *TextRenderer) SetViewport(width, height int) {
	tr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// Atlas returns the glyph atlas.
func (tr *TextRenderer) Atlas() *FontAtlas { return tr.atlas }

// RenderLines draws lines top to bottom starting at baseline (x, y),
// lineStep pixels apart.
func (tr *TextRenderer) RenderLines(lines []string, x, y, lineStep, scale float32, color mgl32.Vec3) {
	var verts []float32
	for _, line := range lines {
		verts = append(verts, tr.atlas.Layout(line, x, y, scale)...)
		y += lineStep
	}
	if len(verts) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	tr.shader.Use()
	tr.shader.SetVec3("textColor", color)
	tr.shader.SetMat4("projection", tr.projection)
	tr.shader.SetInt("text", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.atlas.Texture)

	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*floatSize, gl.Ptr(verts), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(verts)/4))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

// Dispose frees GL objects, including the atlas texture.
func (tr *TextRenderer) Dispose() {
	gl.DeleteBuffers(1, &tr.vbo)
	gl.DeleteVertexArrays(1, &tr.vao)
	gl.DeleteTextures(1, &tr.atlas.Texture)
	tr.shader.Delete()
}
