package game

import (
	"io"
	"log/slog"
	"testing"

	"flightsim/internal/config"
	"flightsim/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMaxFrameDTKeepsStepUnderAChunk(t *testing.T) {
	cam := graphics.NewCamera(100, 100, mgl32.Vec3{})
	for _, width := range []int{16, 64, 256, 4096} {
		dt := maxFrameDT(cam, width)
		if dt > maxDT {
			t.Errorf("width %d: dt %v above the cap", width, dt)
		}
		if step := cam.MaxStep(dt); step >= float32(width) {
			t.Errorf("width %d: a frame can move %v", width, step)
		}
	}
}

func TestMaxFrameDTStillCapped(t *testing.T) {
	cam := graphics.NewCamera(100, 100, mgl32.Vec3{})
	cam.Speed = 0
	if got := maxFrameDT(cam, 256); got != maxDT {
		t.Errorf("stationary camera dt = %v, want %v", got, maxDT)
	}
}

func TestChangeRadiusStaysInsideWindow(t *testing.T) {
	defer config.SetRenderRadius(config.GetRenderRadius(), 1<<20)

	a := &App{cacheDim: 7, log: discardLogger()}
	config.SetRenderRadius(2, a.cacheDim)
	for range 5 {
		a.changeRadius(1)
	}
	if got := config.GetRenderRadius(); got != 3 {
		t.Errorf("radius = %d, want the window limit 3", got)
	}
	for range 10 {
		a.changeRadius(-1)
	}
	if got := config.GetRenderRadius(); got != 0 {
		t.Errorf("radius = %d, want 0", got)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
