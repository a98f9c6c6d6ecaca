package hud

import (
	"time"

	"flightsim/internal/config"
	"flightsim/internal/graphics"
	renderer "flightsim/internal/graphics/renderer"
	"flightsim/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	fontPixels = 16
	atlasWidth = 512
	lineStep   = 18
	textScale  = 1
	marginX    = 10
	marginY    = 22
)

var textColor = mgl32.Vec3{1, 1, 1}

// HUD draws the flight stats overlay. It is hidden unless
// config.GetShowStats is set.
type HUD struct {
	text          *graphics.TextRenderer
	width, height int

	frameTimes frameHistory
	lastTotal  time.Duration
}

// NewHUD creates a new HUD renderable
func NewHUD(width, height int) *HUD {
	return &HUD{width: width, height: height}
}

// Init bakes the overlay font.
func (h *HUD) Init() error {
	atlas, err := graphics.BakeFontAtlas(gomono.TTF, fontPixels, atlasWidth)
	if err != nil {
		return err
	}
	if err := atlas.Upload(); err != nil {
		return err
	}
	text, err := graphics.NewTextRenderer(atlas, h.width, h.height)
	if err != nil {
		return err
	}
	h.text = text
	return nil
}

// Render draws the overlay.
func (h *HUD) Render(ctx renderer.RenderContext) error {
	if !config.GetShowStats() || ctx.Report == nil {
		return nil
	}
	defer profiling.Track("renderer.hud")()

	lines := statsLines(ctx.Camera.Position, *ctx.Report, h.frameTimes.summary(), h.lastTotal)
	lines = append(lines, cpuLine(profiling.SumWithPrefix))
	lines = append(lines, topLines(profiling.TopN(6))...)
	h.text.RenderLines(lines, marginX, marginY, lineStep, textScale, textColor)
	return nil
}

// RecordFrame feeds the total duration of the previous frame into the
// overlay's history.
func (h *HUD) RecordFrame(total time.Duration) {
	h.lastTotal = total
	h.frameTimes.add(total)
}

// SetViewport keeps the text projection in screen pixels.
func (h *HUD) SetViewport(width, height int) {
	h.width, h.height = width, height
	if h.text != nil {
		h.text.SetViewport(width, height)
	}
}

// Dispose frees the font texture and buffers.
func (h *HUD) Dispose() {
	if h.text != nil {
		h.text.Dispose()
	}
}
